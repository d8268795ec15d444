package sql

// parseUpdate parses:
//
//	UPDATE marks SET mark = 38, pass = FALSE WHERE name == 'Chris';
func parseUpdate(n *Node) (Statement, error) {
	name, err := tableName(n)
	if err != nil {
		return nil, err
	}

	list := n.Find(RuleNameValueList)
	if list == nil {
		return nil, ErrParse
	}
	columns := list.Values(RuleAttribute)
	values := list.Values(RuleValue)
	if len(columns) != len(values) || len(columns) == 0 {
		return nil, ErrParse
	}

	assignments := make([]Assignment, len(columns))
	for i := range columns {
		assignments[i] = Assignment{Column: columns[i], Value: values[i]}
	}

	return &UpdateStmt{
		base:        base{n},
		TableName:   name,
		Assignments: assignments,
		Where:       condition(n),
	}, nil
}
