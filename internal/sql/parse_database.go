package sql

import "strings"

func databaseName(n *Node) (string, error) {
	name, ok := n.Text(RuleDatabaseName)
	if !ok {
		return "", ErrParse
	}
	return strings.ToLower(name), nil
}

// parseUse parses:
//
//	USE db;
func parseUse(n *Node) (Statement, error) {
	db, err := databaseName(n)
	if err != nil {
		return nil, err
	}
	return &UseStmt{base: base{n}, Database: db}, nil
}

// parseCreateDatabase parses:
//
//	CREATE DATABASE db;
func parseCreateDatabase(n *Node) (Statement, error) {
	db, err := databaseName(n)
	if err != nil {
		return nil, err
	}
	return &CreateDatabaseStmt{base: base{n}, Database: db}, nil
}

// parseDropDatabase parses:
//
//	DROP DATABASE db;
func parseDropDatabase(n *Node) (Statement, error) {
	db, err := databaseName(n)
	if err != nil {
		return nil, err
	}
	return &DropDatabaseStmt{base: base{n}, Database: db}, nil
}
