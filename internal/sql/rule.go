package sql

import "regexp"

// RuleName tags a grammar production and every parse node it creates.
type RuleName string

const (
	RuleCommand                 RuleName = "command"
	RuleCommandType             RuleName = "command-type"
	RuleUse                     RuleName = "use"
	RuleCreate                  RuleName = "create"
	RuleCreateDatabase          RuleName = "create-database"
	RuleCreateTable             RuleName = "create-table"
	RuleCreateTableNoAttributes RuleName = "create-table-no-attributes"
	RuleCreateTableAttributes   RuleName = "create-table-attributes"
	RuleDrop                    RuleName = "drop"
	RuleDropDatabase            RuleName = "drop-database"
	RuleDropTable               RuleName = "drop-table"
	RuleAlter                   RuleName = "alter"
	RuleInsert                  RuleName = "insert"
	RuleSelect                  RuleName = "select"
	RuleSelectNoCondition       RuleName = "select-no-condition"
	RuleSelectCondition         RuleName = "select-condition"
	RuleUpdate                  RuleName = "update"
	RuleDelete                  RuleName = "delete"
	RuleJoin                    RuleName = "join"
	RuleNameValueList           RuleName = "name-value-list"
	RuleNameValueListRecursive  RuleName = "name-value-list-recursive"
	RuleNameValuePair           RuleName = "name-value-pair"
	RuleValueList               RuleName = "value-list"
	RuleValueListRecursive      RuleName = "value-list-recursive"
	RuleValue                   RuleName = "value"
	RuleWildAttributeList       RuleName = "wild-attribute-list"
	RuleAttributeList           RuleName = "attribute-list"
	RuleAttributeListRecursive  RuleName = "attribute-list-recursive"
	RuleCondition               RuleName = "condition"
	RuleCompoundWithBracket     RuleName = "compound-with-bracket"
	RuleCompoundWithSimple      RuleName = "compound-with-simple"
	RuleBracketCondition        RuleName = "bracket-condition"
	RuleSimpleCondition         RuleName = "simple-condition"
	RuleAttribute               RuleName = "attribute"
	RuleDatabaseName            RuleName = "database-name"
	RuleTableName               RuleName = "table-name"
	RuleStringLiteral           RuleName = "string-literal"
	RuleBooleanLiteral          RuleName = "boolean-literal"
	RuleFloatLiteral            RuleName = "float-literal"
	RuleIntegerLiteral          RuleName = "integer-literal"
	RuleNullLiteral             RuleName = "null-literal"
	RuleAsterisk                RuleName = "asterisk"
	RuleComparator              RuleName = "comparator"
	RuleSemicolon               RuleName = "semicolon"
	RuleComma                   RuleName = "comma"
	RuleEquals                  RuleName = "equals"
	RuleOpenParen               RuleName = "open-paren"
	RuleCloseParen              RuleName = "close-paren"
	RuleAlterationType          RuleName = "alteration-type"
	RuleBoolOperator            RuleName = "bool-operator"
	RuleKeyword                 RuleName = "keyword"
)

// RuleKind selects how a rule matches tokens.
type RuleKind int

const (
	// Terminal matches exactly one token against a pattern.
	Terminal RuleKind = iota
	// Choice returns the first sub-rule that matches.
	Choice
	// Sequence requires every sub-rule to match in order.
	Sequence
	// ConditionSpecial picks between the condition shapes by lookahead.
	ConditionSpecial
)

// Rule is one production of the grammar. Rules form a cyclic graph that is
// built once and only read afterwards.
type Rule struct {
	Name RuleName
	Kind RuleKind

	pattern *regexp.Regexp
	sub     []*Rule

	// ConditionSpecial only.
	cond *conditionRules
}

// conditionRules are the alternatives a ConditionSpecial rule dispatches to.
type conditionRules struct {
	compoundWithBracket *Rule
	bracket             *Rule
	compoundWithSimple  *Rule
	simple              *Rule
	boolOperator        *Rule
}

func terminal(name RuleName, pattern string) *Rule {
	return &Rule{
		Name:    name,
		Kind:    Terminal,
		pattern: regexp.MustCompile(`(?i)^(?:` + pattern + `)$`),
	}
}

func nonTerminal(name RuleName, kind RuleKind) *Rule {
	return &Rule{Name: name, Kind: kind}
}

func (r *Rule) set(sub ...*Rule) {
	r.sub = sub
}

// accepts reports whether a Terminal rule matches tok.
func (r *Rule) accepts(tok Token) bool {
	return r.pattern != nil && r.pattern.MatchString(tok.Text)
}

// match tries the rule at position pos. On success it returns the new subtree
// and how many tokens it consumed; on failure nothing is returned.
func (r *Rule) match(tokens []Token, pos int) (*Node, int, bool) {
	if pos >= len(tokens) {
		return nil, 0, false
	}

	switch r.Kind {
	case Terminal:
		if !r.accepts(tokens[pos]) {
			return nil, 0, false
		}
		return newLeaf(r.Name, tokens[pos]), 1, true

	case Choice:
		for _, sub := range r.sub {
			if child, n, ok := sub.match(tokens, pos); ok {
				return newBranch(r.Name, child), n, true
			}
		}
		return nil, 0, false

	case Sequence:
		children := make([]*Node, 0, len(r.sub))
		consumed := 0
		for _, sub := range r.sub {
			child, n, ok := sub.match(tokens, pos+consumed)
			if !ok {
				return nil, 0, false
			}
			children = append(children, child)
			consumed += n
		}
		return newBranch(r.Name, children...), consumed, true

	case ConditionSpecial:
		child, n, ok := r.matchCondition(tokens, pos)
		if !ok {
			return nil, 0, false
		}
		return newBranch(r.Name, child), n, true
	}

	return nil, 0, false
}

// matchCondition decides between "(cond)", "(cond) OP cond", "a == 1 OP cond"
// and "a == 1" without backtracking.
func (r *Rule) matchCondition(tokens []Token, pos int) (*Node, int, bool) {
	c := r.cond

	if tokens[pos].Text == "(" {
		if c.nakedBoolAhead(tokens, pos) {
			return c.compoundWithBracket.match(tokens, pos)
		}
		return c.bracket.match(tokens, pos)
	}

	// attribute, comparator, value and at least one more token.
	if pos+3 >= len(tokens) {
		return nil, 0, false
	}
	if c.boolOperator.accepts(tokens[pos+3]) {
		return c.compoundWithSimple.match(tokens, pos)
	}
	return c.simple.match(tokens, pos)
}

// nakedBoolAhead reports whether a boolean operator appears at bracket depth
// zero before the enclosing bracket scope closes.
func (c *conditionRules) nakedBoolAhead(tokens []Token, pos int) bool {
	depth := 0
	for _, tok := range tokens[pos:] {
		switch tok.Text {
		case "(":
			depth++
			continue
		case ")":
			depth--
			continue
		}
		if depth < 0 {
			return false
		}
		if depth == 0 && c.boolOperator.accepts(tok) {
			return true
		}
	}
	return false
}
