package engine

import (
	"strings"
	"tabDB/internal/sql"
	"tabDB/internal/table"
)

// executeAlter adds or drops one column. ADD checks for an existing column
// before the column limit; DROP checks existence before refusing id.
func (e *DBEngine) executeAlter(sess *Session, t *table.Table, stmt *sql.AlterTableStmt) error {
	switch stmt.Action {
	case sql.AlterAdd:
		if t.HasColumn(stmt.Column) {
			return errColumnExists
		}
		if t.ColumnCount() >= e.limits.MaxColumns {
			return errColumnLimit
		}
		if err := t.AddColumn(stmt.Column); err != nil {
			return errColumnExists
		}

	case sql.AlterDrop:
		if !t.HasColumn(stmt.Column) {
			return errColumnNotFound
		}
		if strings.EqualFold(stmt.Column, table.IDColumn) {
			return errDropID
		}
		if err := t.RemoveColumn(stmt.Column); err != nil {
			return errColumnNotFound
		}
	}

	return e.save(sess, t)
}
