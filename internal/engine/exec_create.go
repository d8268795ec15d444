package engine

import (
	"errors"
	"tabDB/internal/sql"
	"tabDB/internal/table"
)

// executeCreateTable creates an empty table, with or without attributes.
func (e *DBEngine) executeCreateTable(sess *Session, stmt *sql.CreateTableStmt) error {
	if len(stmt.Columns)+1 > e.limits.MaxColumns {
		return errColumnLimit
	}

	t, err := table.New(stmt.TableName, stmt.Columns...)
	if errors.Is(err, table.ErrColumnExists) {
		return errDuplicateColumns
	}
	if err != nil {
		return err
	}

	return e.save(sess, t)
}
