package engine

import (
	"errors"
	"tabDB/internal/sql"
	"tabDB/internal/storage"
)

func (e *DBEngine) executeUse(sess *Session, stmt *sql.UseStmt) error {
	ok, err := e.store.DatabaseExists(stmt.Database)
	if err != nil {
		return storageErr(msgStoreFailure, err)
	}
	if !ok {
		return errDatabaseNotFound
	}
	sess.Database = stmt.Database
	return nil
}

// executeCreateDatabase creates the database and makes it current.
func (e *DBEngine) executeCreateDatabase(sess *Session, stmt *sql.CreateDatabaseStmt) error {
	err := e.store.CreateDatabase(stmt.Database)
	switch {
	case errors.Is(err, storage.ErrDatabaseExists):
		return errDatabaseExists
	case err != nil:
		return storageErr(msgStoreFailure, err)
	}
	sess.Database = stmt.Database
	return nil
}

// executeDropDatabase removes the database; dropping the current one
// leaves the session without a database.
func (e *DBEngine) executeDropDatabase(sess *Session, stmt *sql.DropDatabaseStmt) error {
	err := e.store.DropDatabase(stmt.Database)
	switch {
	case errors.Is(err, storage.ErrDatabaseNotFound):
		return errDropDatabase
	case err != nil:
		return storageErr(msgStoreFailure, err)
	}
	if sess.Database == stmt.Database {
		sess.Database = ""
	}
	return nil
}
