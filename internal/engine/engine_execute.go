package engine

import (
	"fmt"
	"tabDB/internal/sql"
	"tabDB/internal/table"
)

// Execute runs a parsed statement for sess. Only SELECT and JOIN return a
// result; every other statement returns nil on success.
//
// Checks happen in a fixed order: database commands first, then a current
// database is required, then the statement's table must exist (or must not,
// for CREATE TABLE), then the table is loaded for ALTER and JOIN, and
// finally every attribute the command names must be a column before
// INSERT, SELECT, UPDATE or DELETE run.
func (e *DBEngine) Execute(sess *Session, stmt sql.Statement) (*table.Result, error) {
	if !e.started {
		return nil, errNotStarted
	}

	switch s := stmt.(type) {
	case *sql.UseStmt:
		return nil, e.executeUse(sess, s)
	case *sql.CreateDatabaseStmt:
		return nil, e.executeCreateDatabase(sess, s)
	case *sql.DropDatabaseStmt:
		return nil, e.executeDropDatabase(sess, s)
	}

	if sess.Database == "" {
		return nil, errNoDatabase
	}

	ts, ok := stmt.(sql.TableStatement)
	if !ok {
		return nil, fmt.Errorf("unsupported statement type %T", stmt)
	}

	exists, err := e.store.TableExists(sess.Database, ts.Table())
	if err != nil {
		return nil, storageErr(msgStoreFailure, err)
	}

	if s, ok := stmt.(*sql.CreateTableStmt); ok {
		if exists {
			return nil, errTableExists
		}
		return nil, e.executeCreateTable(sess, s)
	}
	if !exists {
		return nil, errTableNotFound
	}

	if s, ok := stmt.(*sql.DropTableStmt); ok {
		return nil, e.executeDropTable(sess, s)
	}

	t, err := e.store.LoadTable(sess.Database, ts.Table())
	if err != nil {
		return nil, storageErr(msgLoadFailed, err)
	}

	switch s := stmt.(type) {
	case *sql.AlterTableStmt:
		return nil, e.executeAlter(sess, t, s)
	case *sql.JoinStmt:
		return e.executeJoin(sess, t, s)
	}

	if _, missing := stmt.Tree().MissingAttribute(t); missing {
		return nil, errMissingAttributes
	}

	switch s := stmt.(type) {
	case *sql.InsertStmt:
		return nil, e.executeInsert(sess, t, s)
	case *sql.SelectStmt:
		return e.executeSelect(t, s)
	case *sql.UpdateStmt:
		return nil, e.executeUpdate(sess, t, s)
	case *sql.DeleteStmt:
		return nil, e.executeDelete(sess, t, s)
	default:
		return nil, fmt.Errorf("unsupported statement type %T", stmt)
	}
}

// save writes t back after a successful mutation.
func (e *DBEngine) save(sess *Session, t *table.Table) error {
	if err := e.store.SaveTable(sess.Database, t); err != nil {
		return storageErr(msgSaveFailed, err)
	}
	return nil
}
