package sql

// parseDropTable parses:
//
//	DROP TABLE marks;
func parseDropTable(n *Node) (Statement, error) {
	name, err := tableName(n)
	if err != nil {
		return nil, err
	}
	return &DropTableStmt{base: base{n}, TableName: name}, nil
}
