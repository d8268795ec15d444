package sql

// parseCreateTable parses both forms:
//
//	CREATE TABLE marks;
//	CREATE TABLE marks (name, mark, pass);
//
// Attribute names keep the case they were declared with.
func parseCreateTable(n *Node) (Statement, error) {
	name, err := tableName(n)
	if err != nil {
		return nil, err
	}
	return &CreateTableStmt{
		base:      base{n},
		TableName: name,
		Columns:   n.Values(RuleAttribute),
	}, nil
}
