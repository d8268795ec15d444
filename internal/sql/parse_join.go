package sql

import "strings"

// parseJoin parses:
//
//	JOIN coursework AND marks ON submission AND id;
func parseJoin(n *Node) (Statement, error) {
	tables := n.Values(RuleTableName)
	attrs := n.Values(RuleAttribute)
	if len(tables) != 2 || len(attrs) != 2 {
		return nil, ErrParse
	}
	return &JoinStmt{
		base:        base{n},
		Left:        strings.ToLower(tables[0]),
		Right:       strings.ToLower(tables[1]),
		LeftColumn:  attrs[0],
		RightColumn: attrs[1],
	}, nil
}
