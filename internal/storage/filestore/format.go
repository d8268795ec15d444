package filestore

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"tabDB/internal/storage"
	"tabDB/internal/table"
)

// Table file layout (<table>.tab):
//
//	id<TAB>col1<TAB>col2 ...   header line
//	1<TAB>v1<TAB>v2 ...        one line per row, id first
//
// Lines are joined by '\n' with no trailing newline. Cells are stored as
// written in the command, so string literals keep their quotes.
//
// Counter file layout (<table>_ID): the decimal last-assigned id.

const (
	fieldSep = "\t"
	lineSep  = "\n"
	// maxLine bounds one row: 100 columns of long literals fit comfortably.
	maxLine = 4 << 20
)

// encodeTable writes the header and rows of t.
func encodeTable(w io.Writer, t *table.Table) error {
	lines := make([]string, 0, t.RowCount()+1)
	for pos := 0; pos <= t.RowCount(); pos++ {
		row, err := t.Row(pos)
		if err != nil {
			return err
		}
		lines = append(lines, strings.Join(row, fieldSep))
	}
	_, err := io.WriteString(w, strings.Join(lines, lineSep))
	return err
}

// decodeTable rebuilds a table from its file: columns from the header, then
// every line replayed as a row with its stored id.
func decodeTable(name string, r io.Reader) (*table.Table, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: missing header", storage.ErrCorrupt, name)
	}
	header := strings.Split(strings.TrimSuffix(sc.Text(), "\r"), fieldSep)
	if !strings.EqualFold(header[0], table.IDColumn) {
		return nil, fmt.Errorf("%w: %s: first column is %q", storage.ErrCorrupt, name, header[0])
	}

	t, err := table.New(name, header[1:]...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", storage.ErrCorrupt, name, err)
	}

	line := 1
	for sc.Scan() {
		line++
		fields := strings.Split(strings.TrimSuffix(sc.Text(), "\r"), fieldSep)
		if err := t.AddRow(fields, true); err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %v", storage.ErrCorrupt, name, line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

func encodeCounter(w io.Writer, lastID int) error {
	_, err := io.WriteString(w, strconv.Itoa(lastID))
	return err
}

func decodeCounter(r io.Reader) (int, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(b)))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: bad id counter %q", storage.ErrCorrupt, string(b))
	}
	return n, nil
}
