// Package table holds the in-memory delimited table the classifier reads and
// extends, plus its file ingestion and egress.
package table

import (
	"fmt"
	"strings"

	"github.com/ppiankov/paperclass/internal/model"
)

// Column names the classifier depends on
const (
	ColumnTitle       = "Title"
	ColumnAbstract    = "Abstract"
	ColumnJournal     = "Journal"
	ColumnMethodType  = "method_type"
	ColumnMethodsUsed = "methods_used"
)

// Table is a header plus rows of string cells. Every row has len(Header) cells.
type Table struct {
	Header []string
	Rows   [][]string
}

// New creates a table, padding short rows with empty cells
func New(header []string, rows [][]string) *Table {
	t := &Table{
		Header: append([]string(nil), header...),
		Rows:   make([][]string, len(rows)),
	}
	for i, row := range rows {
		t.Rows[i] = pad(row, len(header))
	}
	return t
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// Index returns the position of the named column or -1
func (t *Table) Index(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Has reports whether the named column exists
func (t *Table) Has(name string) bool {
	return t.Index(name) >= 0
}

// Value returns the cell at row i in the named column, or "" if the column is absent
func (t *Table) Value(i int, column string) string {
	idx := t.Index(column)
	if idx < 0 || i < 0 || i >= len(t.Rows) {
		return ""
	}
	return t.Rows[i][idx]
}

// Column returns a copy of every cell in the named column
func (t *Table) Column(name string) []string {
	idx := t.Index(name)
	if idx < 0 {
		return nil
	}
	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[idx]
	}
	return values
}

// Record returns row i as a classifier record. Missing columns read as empty text.
func (t *Table) Record(i int) model.Record {
	return model.Record{
		Title:    t.Value(i, ColumnTitle),
		Abstract: t.Value(i, ColumnAbstract),
		Journal:  t.Value(i, ColumnJournal),
	}
}

// Records returns every row as a classifier record
func (t *Table) Records() []model.Record {
	records := make([]model.Record, len(t.Rows))
	for i := range t.Rows {
		records[i] = t.Record(i)
	}
	return records
}

// Rename renames a column in place. Renaming an absent column is a no-op.
func (t *Table) Rename(from, to string) error {
	idx := t.Index(from)
	if idx < 0 || from == to {
		return nil
	}
	if t.Has(to) {
		return fmt.Errorf("%w: cannot rename %q to %q: column already exists", model.ErrInputSchema, from, to)
	}
	t.Header[idx] = to
	return nil
}

// Drop removes the named columns if present. Absent columns are ignored.
func (t *Table) Drop(names ...string) {
	for _, name := range names {
		idx := t.Index(name)
		if idx < 0 {
			continue
		}
		t.Header = remove(t.Header, idx)
		for i, row := range t.Rows {
			t.Rows[i] = remove(row, idx)
		}
	}
}

// Require returns an input schema error naming every missing column
func (t *Table) Require(names ...string) error {
	var missing []string
	for _, name := range names {
		if !t.Has(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required column(s): %s (have: %s)",
			model.ErrInputSchema, strings.Join(missing, ", "), strings.Join(t.Header, ", "))
	}
	return nil
}

// Project returns a new table with only the named columns, in the given order
func (t *Table) Project(names ...string) (*Table, error) {
	if err := t.Require(names...); err != nil {
		return nil, err
	}
	idx := make([]int, len(names))
	for i, name := range names {
		idx[i] = t.Index(name)
	}

	out := &Table{
		Header: append([]string(nil), names...),
		Rows:   make([][]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		projected := make([]string, len(idx))
		for j, k := range idx {
			projected[j] = row[k]
		}
		out.Rows[i] = projected
	}
	return out, nil
}

// AddColumn appends a derived column, or overwrites it if a column of that name exists
func (t *Table) AddColumn(name string, values []string) error {
	if len(values) != len(t.Rows) {
		return fmt.Errorf("column %q has %d values for %d rows", name, len(values), len(t.Rows))
	}
	if idx := t.Index(name); idx >= 0 {
		for i := range t.Rows {
			t.Rows[i][idx] = values[i]
		}
		return nil
	}
	t.Header = append(t.Header, name)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], values[i])
	}
	return nil
}

// Clone returns a deep copy
func (t *Table) Clone() *Table {
	out := &Table{
		Header: append([]string(nil), t.Header...),
		Rows:   make([][]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		out.Rows[i] = append([]string(nil), row...)
	}
	return out
}

func pad(row []string, n int) []string {
	out := make([]string, n)
	copy(out, row)
	return out
}

func remove(s []string, idx int) []string {
	out := make([]string, 0, len(s)-1)
	out = append(out, s[:idx]...)
	return append(out, s[idx+1:]...)
}
