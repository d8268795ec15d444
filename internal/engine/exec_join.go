package engine

import (
	"strconv"
	"tabDB/internal/sql"
	"tabDB/internal/table"
)

// executeJoin pairs every left row with every right row whose join
// attribute holds the same text. The result gets fresh ids starting at 1,
// followed by the remaining left columns and then the remaining right
// columns. Neither join attribute nor either source id appears in it.
func (e *DBEngine) executeJoin(sess *Session, left *table.Table, stmt *sql.JoinStmt) (*table.Result, error) {
	ok, err := e.store.TableExists(sess.Database, stmt.Right)
	if err != nil {
		return nil, storageErr(msgStoreFailure, err)
	}
	if !ok {
		return nil, errJoinTables
	}

	right := left
	if stmt.Right != stmt.Left {
		right, err = e.store.LoadTable(sess.Database, stmt.Right)
		if err != nil {
			return nil, storageErr(msgLoadFailed, err)
		}
	}

	lc := left.ColumnIndex(stmt.LeftColumn)
	rc := right.ColumnIndex(stmt.RightColumn)
	if lc < 0 || rc < 0 {
		return nil, errJoinAttributes
	}

	lkeep := joinColumns(left, lc)
	rkeep := joinColumns(right, rc)

	lcols, rcols := left.Columns(), right.Columns()
	res := &table.Result{Header: []string{table.IDColumn}}
	for _, c := range lkeep {
		res.Header = append(res.Header, lcols[c])
	}
	for _, c := range rkeep {
		res.Header = append(res.Header, rcols[c])
	}

	next := 1
	for lp := 1; lp <= left.RowCount(); lp++ {
		lrow, _ := left.Row(lp)
		for rp := 1; rp <= right.RowCount(); rp++ {
			rrow, _ := right.Row(rp)
			if lrow[lc] != rrow[rc] {
				continue
			}
			row := make([]string, 0, len(res.Header))
			row = append(row, strconv.Itoa(next))
			for _, c := range lkeep {
				row = append(row, lrow[c])
			}
			for _, c := range rkeep {
				row = append(row, rrow[c])
			}
			res.Rows = append(res.Rows, row)
			next++
		}
	}
	return res, nil
}

// joinColumns returns the indexes of every column except id and skip.
func joinColumns(t *table.Table, skip int) []int {
	var keep []int
	for c := 1; c < t.ColumnCount(); c++ {
		if c != skip {
			keep = append(keep, c)
		}
	}
	return keep
}
