// Package table holds the in-memory model of one relation: an ordered list
// of text columns led by the identity column, plus the identity counter.
package table

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"tabDB/internal/sql"
)

// IDColumn is the name of the identity column, always column 0.
const IDColumn = "id"

var (
	ErrColumnExists   = errors.New("table: column already exists")
	ErrColumnNotFound = errors.New("table: column does not exist")
	ErrIDColumn       = errors.New("table: id column is immutable")
	ErrValueCount     = errors.New("table: value count does not match column count")
	ErrBadID          = errors.New("table: id is not an integer")
	ErrDuplicateID    = errors.New("table: duplicate id")
	ErrHeaderRow      = errors.New("table: row 0 is the header")
	ErrRowRange       = errors.New("table: row out of range")
	ErrMaskLength     = errors.New("table: mask length does not match row count")
)

// Table is a column-oriented relation. Rows are addressed 1-based; row 0
// is the header.
type Table struct {
	Name string

	header []string
	// cells[c][r] is the value of column c in data row r+1.
	cells  [][]string
	ids    []int
	lastID int
}

// Pair assigns Value to Column in UpdateRows.
type Pair struct {
	Column string
	Value  string
}

// New creates an empty table with the identity column followed by columns.
// Duplicate column names are rejected.
func New(name string, columns ...string) (*Table, error) {
	t := &Table{Name: name}
	t.header = append(t.header, IDColumn)
	t.cells = append(t.cells, nil)
	for _, c := range columns {
		if err := t.AddColumn(c); err != nil {
			return nil, fmt.Errorf("%w: %q", err, c)
		}
	}
	return t, nil
}

// Columns returns a copy of the column names, id first.
func (t *Table) Columns() []string {
	return append([]string(nil), t.header...)
}

// ColumnCount includes the identity column.
func (t *Table) ColumnCount() int { return len(t.header) }

// RowCount is the number of data rows.
func (t *Table) RowCount() int { return len(t.ids) }

// LastID is the highest identity ever assigned by AddRow.
func (t *Table) LastID() int { return t.lastID }

// SetLastID restores the identity counter after a reload.
func (t *Table) SetLastID(id int) { t.lastID = id }

// IDs returns the identity of every row in order.
func (t *Table) IDs() []int {
	return append([]int(nil), t.ids...)
}

// ColumnIndex finds a column by case-insensitive name, or returns -1.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.header {
		if strings.EqualFold(h, name) {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the table has a column named name, ignoring case.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// AddColumn appends a column filled with NULL for every existing row.
func (t *Table) AddColumn(name string) error {
	if t.HasColumn(name) {
		return ErrColumnExists
	}
	col := make([]string, len(t.ids))
	for i := range col {
		col[i] = sql.NullLiteral
	}
	t.header = append(t.header, name)
	t.cells = append(t.cells, col)
	return nil
}

// RemoveColumn drops a column. The identity column cannot be removed.
func (t *Table) RemoveColumn(name string) error {
	if strings.EqualFold(name, IDColumn) {
		return ErrIDColumn
	}
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return ErrColumnNotFound
	}
	t.header = append(t.header[:idx], t.header[idx+1:]...)
	t.cells = append(t.cells[:idx], t.cells[idx+1:]...)
	return nil
}

// AddRow appends a row. Without idProvided, values cover every column but
// id and the next identity is assigned. With idProvided, values[0] is the
// row's id and the counter is left alone; this is how rows are reloaded.
func (t *Table) AddRow(values []string, idProvided bool) error {
	want := len(t.header) - 1
	if idProvided {
		want++
	}
	if len(values) != want {
		return ErrValueCount
	}

	var id int
	if idProvided {
		n, err := strconv.Atoi(values[0])
		if err != nil {
			return fmt.Errorf("%w: %q", ErrBadID, values[0])
		}
		for _, existing := range t.ids {
			if existing == n {
				return fmt.Errorf("%w: %d", ErrDuplicateID, n)
			}
		}
		id = n
		values = values[1:]
	} else {
		t.lastID++
		id = t.lastID
	}

	t.ids = append(t.ids, id)
	t.cells[0] = append(t.cells[0], strconv.Itoa(id))
	for c, v := range values {
		t.cells[c+1] = append(t.cells[c+1], v)
	}
	return nil
}

// RemoveRow deletes the data row at 1-based position pos.
func (t *Table) RemoveRow(pos int) error {
	if pos == 0 {
		return ErrHeaderRow
	}
	if pos < 0 || pos > len(t.ids) {
		return ErrRowRange
	}
	i := pos - 1
	for c := range t.cells {
		t.cells[c] = append(t.cells[c][:i], t.cells[c][i+1:]...)
	}
	t.ids = append(t.ids[:i], t.ids[i+1:]...)
	return nil
}

// RemoveRows deletes every row whose mask entry is true and returns how
// many were removed.
func (t *Table) RemoveRows(mask []bool) (int, error) {
	if len(mask) != len(t.ids) {
		return 0, ErrMaskLength
	}
	removed := 0
	for pos := len(mask); pos >= 1; pos-- {
		if mask[pos-1] {
			if err := t.RemoveRow(pos); err != nil {
				return removed, err
			}
			removed++
		}
	}
	return removed, nil
}

// Row returns the cells of row pos; row 0 is the header.
func (t *Table) Row(pos int) ([]string, error) {
	if pos < 0 || pos > len(t.ids) {
		return nil, ErrRowRange
	}
	if pos == 0 {
		return t.Columns(), nil
	}
	out := make([]string, len(t.cells))
	for c := range t.cells {
		out[c] = t.cells[c][pos-1]
	}
	return out, nil
}

// Cell returns the value of column at data row pos.
func (t *Table) Cell(column string, pos int) (string, bool) {
	c := t.ColumnIndex(column)
	if c < 0 || pos < 1 || pos > len(t.ids) {
		return "", false
	}
	return t.cells[c][pos-1], true
}

// SelectRows returns a new table holding the masked rows with their ids.
func (t *Table) SelectRows(mask []bool) (*Table, error) {
	if len(mask) != len(t.ids) {
		return nil, ErrMaskLength
	}
	out := &Table{
		Name:   t.Name,
		header: t.Columns(),
		cells:  make([][]string, len(t.cells)),
		lastID: t.lastID,
	}
	for r, keep := range mask {
		if !keep {
			continue
		}
		out.ids = append(out.ids, t.ids[r])
		for c := range t.cells {
			out.cells[c] = append(out.cells[c], t.cells[c][r])
		}
	}
	return out, nil
}

// UpdateRows applies pairs in order to every masked row, so a column named
// twice ends with the last value. Nothing changes if any pair is invalid.
func (t *Table) UpdateRows(mask []bool, pairs []Pair) error {
	if len(mask) != len(t.ids) {
		return ErrMaskLength
	}
	cols := make([]int, len(pairs))
	for i, p := range pairs {
		if strings.EqualFold(p.Column, IDColumn) {
			return ErrIDColumn
		}
		if cols[i] = t.ColumnIndex(p.Column); cols[i] < 0 {
			return fmt.Errorf("%w: %q", ErrColumnNotFound, p.Column)
		}
	}
	for i, p := range pairs {
		for r, hit := range mask {
			if hit {
				t.cells[cols[i]][r] = p.Value
			}
		}
	}
	return nil
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	all := make([]bool, len(t.ids))
	for i := range all {
		all[i] = true
	}
	out, _ := t.SelectRows(all)
	return out
}
