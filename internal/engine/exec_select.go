package engine

import (
	"tabDB/internal/sql"
	"tabDB/internal/table"
)

// executeSelect filters rows by the WHERE clause, then projects columns.
// Projected columns appear in the order listed, without an implicit id.
func (e *DBEngine) executeSelect(t *table.Table, stmt *sql.SelectStmt) (*table.Result, error) {
	selected := t
	if stmt.Where != nil {
		var err error
		selected, err = t.SelectRows(selectionMask(t, stmt.Where))
		if err != nil {
			return nil, err
		}
	}

	if stmt.Columns == nil {
		return selected.Result(), nil
	}
	res, err := selected.Project(stmt.Columns)
	if err != nil {
		return nil, errMissingAttributes
	}
	return res, nil
}
