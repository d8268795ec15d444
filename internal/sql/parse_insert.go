package sql

// parseInsert parses:
//
//	INSERT INTO marks VALUES ('Simon', 65, TRUE, NULL, -1.5);
func parseInsert(n *Node) (Statement, error) {
	name, err := tableName(n)
	if err != nil {
		return nil, err
	}
	return &InsertStmt{
		base:      base{n},
		TableName: name,
		Values:    n.Values(RuleValue),
	}, nil
}
