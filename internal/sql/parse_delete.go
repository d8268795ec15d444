package sql

// parseDelete parses:
//
//	DELETE FROM marks WHERE name == 'Dave';
func parseDelete(n *Node) (Statement, error) {
	name, err := tableName(n)
	if err != nil {
		return nil, err
	}
	return &DeleteStmt{base: base{n}, TableName: name, Where: condition(n)}, nil
}
