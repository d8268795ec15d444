package sql

// parseSelect parses:
//
//	SELECT * FROM marks;
//	SELECT name, mark FROM marks WHERE pass == TRUE;
//	SELECT * FROM marks WHERE (mark > 50) AND name LIKE 'S';
func parseSelect(n *Node) (Statement, error) {
	name, err := tableName(n)
	if err != nil {
		return nil, err
	}

	stmt := &SelectStmt{base: base{n}, TableName: name, Where: condition(n)}

	// Attributes inside the WHERE clause are not part of the projection.
	if list := n.Find(RuleWildAttributeList); list != nil && !list.Has(RuleAsterisk) {
		stmt.Columns = list.Values(RuleAttribute)
	}
	return stmt, nil
}
