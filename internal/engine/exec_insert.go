package engine

import (
	"tabDB/internal/sql"
	"tabDB/internal/table"
)

func (e *DBEngine) executeInsert(sess *Session, t *table.Table, stmt *sql.InsertStmt) error {
	if t.RowCount() >= e.limits.MaxRows {
		return errRowLimit
	}
	if err := t.AddRow(stmt.Values, false); err != nil {
		return errValueCount
	}
	return e.save(sess, t)
}
