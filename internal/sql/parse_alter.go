package sql

import "strings"

// parseAlter parses:
//
//	ALTER TABLE marks ADD age;
//	ALTER TABLE marks DROP age;
func parseAlter(n *Node) (Statement, error) {
	name, err := tableName(n)
	if err != nil {
		return nil, err
	}
	action, ok := n.Text(RuleAlterationType)
	if !ok {
		return nil, ErrParse
	}
	column, ok := n.Text(RuleAttribute)
	if !ok {
		return nil, ErrParse
	}

	stmt := &AlterTableStmt{base: base{n}, TableName: name, Column: column}
	if strings.EqualFold(action, "DROP") {
		stmt.Action = AlterDrop
	}
	return stmt, nil
}
