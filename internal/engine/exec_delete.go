package engine

import (
	"tabDB/internal/sql"
	"tabDB/internal/table"
)

func (e *DBEngine) executeDelete(sess *Session, t *table.Table, stmt *sql.DeleteStmt) error {
	n, err := t.RemoveRows(selectionMask(t, stmt.Where))
	if err != nil {
		return err
	}
	e.log.Debug("rows deleted", "table", t.Name, "count", n)
	return e.save(sess, t)
}
