package sql

import "strings"

// NodeKind is the closed set of parse node variants.
type NodeKind int

const (
	// LeafNode carries exactly one token.
	LeafNode NodeKind = iota
	// BranchNode groups the children of a sequence or choice.
	BranchNode
	// ConditionNode is a simple or compound condition that evaluates itself.
	ConditionNode
)

// Node is one node of a parse tree. Its span is exactly the tokens consumed
// when it was matched.
type Node struct {
	Rule     RuleName
	Kind     NodeKind
	Token    Token
	Children []*Node
}

func newLeaf(rule RuleName, tok Token) *Node {
	return &Node{Rule: rule, Kind: LeafNode, Token: tok}
}

func newBranch(rule RuleName, children ...*Node) *Node {
	kind := BranchNode
	switch rule {
	case RuleSimpleCondition, RuleCompoundWithBracket, RuleCompoundWithSimple:
		kind = ConditionNode
	}
	return &Node{Rule: rule, Kind: kind, Children: children}
}

// Find returns the first node tagged rule in pre-order, or nil.
func (n *Node) Find(rule RuleName) *Node {
	if n == nil {
		return nil
	}
	if n.Rule == rule {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(rule); found != nil {
			return found
		}
	}
	return nil
}

// Has reports whether any node in the tree is tagged rule.
func (n *Node) Has(rule RuleName) bool {
	return n.Find(rule) != nil
}

// Text returns the token text of the first leaf tagged rule.
func (n *Node) Text(rule RuleName) (string, bool) {
	found := n.Find(rule)
	if found == nil || found.Kind != LeafNode {
		return "", false
	}
	return found.Token.Text, true
}

// Values collects, in document order, the text of every node tagged rule.
// For RuleValue nodes that is the text of the literal inside the value. The
// search does not descend below a match.
func (n *Node) Values(rule RuleName) []string {
	var out []string
	n.walk(func(node *Node) bool {
		if node.Rule != rule {
			return true
		}
		switch {
		case node.Kind == LeafNode:
			out = append(out, node.Token.Text)
		case len(node.Children) > 0 && node.Children[0].Kind == LeafNode:
			out = append(out, node.Children[0].Token.Text)
		}
		return false
	})
	return out
}

// Leaves returns every leaf token under n in document order.
func (n *Node) Leaves() []Token {
	var out []Token
	n.walk(func(node *Node) bool {
		if node.Kind == LeafNode {
			out = append(out, node.Token)
		}
		return true
	})
	return out
}

// walk visits n and its descendants in pre-order. Returning false from visit
// skips the node's children.
func (n *Node) walk(visit func(*Node) bool) {
	if n == nil || !visit(n) {
		return
	}
	for _, c := range n.Children {
		c.walk(visit)
	}
}

// ColumnChecker answers whether a table has a column, case-insensitively.
type ColumnChecker interface {
	HasColumn(name string) bool
}

// MissingAttribute returns the first attribute leaf naming a column that t
// does not have.
func (n *Node) MissingAttribute(t ColumnChecker) (string, bool) {
	for _, attr := range n.Values(RuleAttribute) {
		if !t.HasColumn(attr) {
			return attr, true
		}
	}
	return "", false
}

// ReservedWordUsed returns the first database, table or attribute name that
// is a reserved word.
func (n *Node) ReservedWordUsed() (string, bool) {
	var hit string
	n.walk(func(node *Node) bool {
		if hit != "" {
			return false
		}
		if node.Kind != LeafNode {
			return true
		}
		switch node.Rule {
		case RuleDatabaseName, RuleTableName, RuleAttribute:
			if IsReserved(node.Token.Text) {
				hit = node.Token.Text
			}
		}
		return false
	})
	return hit, hit != ""
}

// RowEvaluator evaluates one simple condition against one table row.
type RowEvaluator interface {
	Evaluate(attribute, comparator, literal string, row int) ConditionResult
}

// EvaluateConditions evaluates every condition in the subtree against row
// and returns the most severe result. Subtrees without conditions yield
// ResultNone.
func (n *Node) EvaluateConditions(ev RowEvaluator, row int) ConditionResult {
	switch n.Kind {
	case LeafNode:
		return ResultNone

	case ConditionNode:
		if n.Rule == RuleSimpleCondition {
			attr := n.Children[0].Token.Text
			comparator := n.Children[1].Token.Text
			literal := n.Children[2].Children[0].Token.Text
			return ev.Evaluate(attr, comparator, literal, row)
		}
		left := n.Children[0].EvaluateConditions(ev, row)
		op := n.Children[1].Token.Text
		right := n.Children[2].EvaluateConditions(ev, row)
		return Combine(left, op, right)
	}

	result := ResultNone
	for _, c := range n.Children {
		result = MostSevere(result, c.EvaluateConditions(ev, row))
	}
	return result
}

// String renders the subtree back to its tokens separated by spaces.
func (n *Node) String() string {
	leaves := n.Leaves()
	parts := make([]string, len(leaves))
	for i, l := range leaves {
		parts[i] = l.Text
	}
	return strings.Join(parts, " ")
}
