package table

import (
	"strings"
	"tabDB/internal/sql"
	"unicode/utf8"
)

// tabWidth is the tab stop the rendering aligns to.
const tabWidth = 4

// Result is a rendered view of rows: a header line and data rows of equal
// width. It is what SELECT and JOIN return.
type Result struct {
	Header []string
	Rows   [][]string
}

// Result returns every column of t.
func (t *Table) Result() *Result {
	res := &Result{Header: t.Columns()}
	for pos := 1; pos <= t.RowCount(); pos++ {
		row, _ := t.Row(pos)
		res.Rows = append(res.Rows, row)
	}
	return res
}

// Project returns the named columns in the order given. A column may be
// listed more than once.
func (t *Table) Project(columns []string) (*Result, error) {
	idx := make([]int, len(columns))
	for i, name := range columns {
		if idx[i] = t.ColumnIndex(name); idx[i] < 0 {
			return nil, ErrColumnNotFound
		}
	}

	res := &Result{Header: make([]string, len(idx))}
	for i, c := range idx {
		res.Header[i] = t.header[c]
	}
	for r := range t.ids {
		row := make([]string, len(idx))
		for i, c := range idx {
			row[i] = t.cells[c][r]
		}
		res.Rows = append(res.Rows, row)
	}
	return res, nil
}

// display is how a cell is shown: the NULL literal blanked and quotes
// stripped. A quoted 'NULL' is a string and stays visible.
func display(cell string) string {
	if sql.IsNull(cell) {
		return ""
	}
	return sql.StripQuotes(cell)
}

// String renders the result with tab-aligned columns. Every line, header
// included, ends in a newline and the last column is never followed by tabs.
func (r *Result) String() string {
	lines := make([][]string, 0, len(r.Rows)+1)
	lines = append(lines, r.Header)
	lines = append(lines, r.Rows...)

	widths := make([]int, len(r.Header))
	shown := make([][]string, len(lines))
	for i, line := range lines {
		shown[i] = make([]string, len(line))
		for c, cell := range line {
			shown[i][c] = display(cell)
			if w := utf8.RuneCountInString(shown[i][c]); c < len(widths) && w > widths[c] {
				widths[c] = w
			}
		}
	}

	var b strings.Builder
	for _, line := range shown {
		for c, cell := range line {
			b.WriteString(cell)
			if c < len(line)-1 {
				b.WriteString(strings.Repeat("\t", tabsAfter(widths[c], utf8.RuneCountInString(cell))))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// tabsAfter is the number of tabs that moves a cell of width w to the
// column start shared by a column whose widest cell is widest.
func tabsAfter(widest, w int) int {
	return ceilDiv(widest+1, tabWidth) - ceilDiv(w+1, tabWidth) + 1
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
