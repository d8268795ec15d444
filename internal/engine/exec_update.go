package engine

import (
	"strings"
	"tabDB/internal/sql"
	"tabDB/internal/table"
)

func (e *DBEngine) executeUpdate(sess *Session, t *table.Table, stmt *sql.UpdateStmt) error {
	pairs := make([]table.Pair, len(stmt.Assignments))
	for i, a := range stmt.Assignments {
		if strings.EqualFold(a.Column, table.IDColumn) {
			return errUpdateID
		}
		pairs[i] = table.Pair{Column: a.Column, Value: a.Value}
	}

	if err := t.UpdateRows(selectionMask(t, stmt.Where), pairs); err != nil {
		return errMissingAttributes
	}
	return e.save(sess, t)
}
