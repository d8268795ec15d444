package sql

import (
	"fmt"
	"strings"
)

// Parse tokenizes and parses a single command into a Statement.
func Parse(query string) (Statement, error) {
	return ParseTokens(Tokenize(query))
}

// ParseTokens parses an already tokenized command. The command must match
// the grammar exactly and use no reserved word as a name.
func ParseTokens(tokens []Token) (Statement, error) {
	if len(tokens) == 0 {
		return nil, ErrParse
	}

	tree, err := grammar.Match(tokens)
	if err != nil {
		return nil, err
	}

	if _, used := tree.ReservedWordUsed(); used {
		return nil, ErrReservedWord
	}

	return buildStatement(tree)
}

// buildStatement dispatches on the command-type alternative that matched.
func buildStatement(tree *Node) (Statement, error) {
	body := tree.Find(RuleCommandType)
	if body == nil || len(body.Children) != 1 {
		return nil, ErrParse
	}

	cmd := body.Children[0]
	switch cmd.Rule {
	case RuleUse:
		return parseUse(cmd)
	case RuleCreate:
		if cmd.Has(RuleCreateDatabase) {
			return parseCreateDatabase(cmd)
		}
		return parseCreateTable(cmd)
	case RuleDrop:
		if cmd.Has(RuleDropDatabase) {
			return parseDropDatabase(cmd)
		}
		return parseDropTable(cmd)
	case RuleAlter:
		return parseAlter(cmd)
	case RuleInsert:
		return parseInsert(cmd)
	case RuleSelect:
		return parseSelect(cmd)
	case RuleUpdate:
		return parseUpdate(cmd)
	case RuleDelete:
		return parseDelete(cmd)
	case RuleJoin:
		return parseJoin(cmd)
	}

	return nil, fmt.Errorf("sql: unhandled command %q", cmd.Rule)
}

// tableName returns the first table name under n, lower-cased.
func tableName(n *Node) (string, error) {
	name, ok := n.Text(RuleTableName)
	if !ok {
		return "", ErrParse
	}
	return strings.ToLower(name), nil
}

// condition wraps the WHERE subtree of n, or returns nil if there is none.
func condition(n *Node) *Condition {
	root := n.Find(RuleCondition)
	if root == nil {
		return nil
	}
	return &Condition{root: root}
}
