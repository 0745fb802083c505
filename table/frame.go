// Package table provides an in-memory columnar table.
//
// A Frame stores named columns of equal length in a fixed column order. It
// satisfies condition.Table and can be built from the row maps produced by
// the reader package.
package table

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vegasq/condmask/mask"
)

var (
	// ErrDuplicateColumn is returned when adding a column that already exists
	ErrDuplicateColumn = errors.New("duplicate column")

	// ErrLengthMismatch is returned when a column's length differs from the frame's
	ErrLengthMismatch = errors.New("column length mismatch")
)

// Frame is a named, column-oriented table
type Frame struct {
	name    string
	columns []string
	index   map[string]int
	data    [][]interface{}
	rows    int
}

// New creates an empty frame
func New(name string) *Frame {
	return &Frame{name: name, index: make(map[string]int)}
}

// FromRows builds a frame from row maps.
//
// columns fixes the column order; when empty, the union of all row keys is
// used in sorted order. Missing cells are nil.
func FromRows(name string, columns []string, rows []map[string]interface{}) (*Frame, error) {
	if len(columns) == 0 {
		columns = ColumnNames(rows)
	}

	f := New(name)
	for _, col := range columns {
		values := make([]interface{}, len(rows))
		for i, row := range rows {
			values[i] = row[col]
		}
		if err := f.AddColumn(col, values); err != nil {
			return nil, err
		}
	}
	f.rows = len(rows)
	return f, nil
}

// AddColumn appends a column. The first column fixes the frame's row count.
func (f *Frame) AddColumn(name string, values []interface{}) error {
	if _, ok := f.index[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateColumn, name)
	}
	if len(f.columns) > 0 && len(values) != f.rows {
		return fmt.Errorf("%w: column %s has %d values, frame has %d rows", ErrLengthMismatch, name, len(values), f.rows)
	}
	f.index[name] = len(f.columns)
	f.columns = append(f.columns, name)
	f.data = append(f.data, values)
	f.rows = len(values)
	return nil
}

// Name returns the frame's name
func (f *Frame) Name() string {
	return f.name
}

// Len returns the number of rows
func (f *Frame) Len() int {
	return f.rows
}

// Columns returns the column names in order
func (f *Frame) Columns() []string {
	out := make([]string, len(f.columns))
	copy(out, f.columns)
	return out
}

// Column returns the values of the named column in row order
func (f *Frame) Column(name string) ([]interface{}, bool) {
	i, ok := f.index[name]
	if !ok {
		return nil, false
	}
	return f.data[i], true
}

// Row returns row i as a map, or nil when out of range
func (f *Frame) Row(i int) map[string]interface{} {
	if i < 0 || i >= f.rows {
		return nil
	}
	row := make(map[string]interface{}, len(f.columns))
	for c, name := range f.columns {
		row[name] = f.data[c][i]
	}
	return row
}

// Rows returns every row as a map
func (f *Frame) Rows() []map[string]interface{} {
	rows := make([]map[string]interface{}, f.rows)
	for i := range rows {
		rows[i] = f.Row(i)
	}
	return rows
}

// Select returns the rows selected by m, in row order
func (f *Frame) Select(m *mask.Mask) ([]map[string]interface{}, error) {
	if m.Len() != f.rows {
		return nil, fmt.Errorf("%w: mask has %d rows, frame has %d", ErrLengthMismatch, m.Len(), f.rows)
	}
	indices := m.Indices()
	rows := make([]map[string]interface{}, 0, len(indices))
	for _, i := range indices {
		rows = append(rows, f.Row(i))
	}
	return rows, nil
}

// ColumnNames returns all unique column names from rows in sorted order
func ColumnNames(rows []map[string]interface{}) []string {
	seen := make(map[string]bool)
	columns := make([]string, 0)

	for _, row := range rows {
		for col := range row {
			if !seen[col] {
				seen[col] = true
				columns = append(columns, col)
			}
		}
	}

	sort.Strings(columns)
	return columns
}
