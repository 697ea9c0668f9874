// Package table provides the in-memory dataset the cleaning pipeline works on:
// uniquely named, kind-tagged columns of equal length.
package table

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrDuplicateColumn is returned when two columns share a name.
	ErrDuplicateColumn = errors.New("duplicate column name")

	// ErrRaggedColumns is returned when columns have different lengths.
	ErrRaggedColumns = errors.New("columns have different lengths")
)

// Column is a named, kind-tagged sequence of values.
type Column struct {
	Name   string
	Kind   Kind
	Values []Value
}

// NullCount returns the number of missing values in the column.
func (c *Column) NullCount() int {
	n := 0
	for _, v := range c.Values {
		if !v.Valid {
			n++
		}
	}
	return n
}

func (c *Column) clone() *Column {
	values := make([]Value, len(c.Values))
	copy(values, c.Values)
	return &Column{Name: c.Name, Kind: c.Kind, Values: values}
}

// Table is an ordered set of columns sharing a row count.
type Table struct {
	columns []*Column
	rows    int
}

// New builds a table from the given columns. Names must be unique and all
// columns must have the same number of values.
func New(columns ...*Column) (*Table, error) {
	t := &Table{columns: columns}
	seen := make(map[string]struct{}, len(columns))
	for i, col := range columns {
		if _, dup := seen[col.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, col.Name)
		}
		seen[col.Name] = struct{}{}
		if i == 0 {
			t.rows = len(col.Values)
			continue
		}
		if len(col.Values) != t.rows {
			return nil, fmt.Errorf("%w: %q has %d values, want %d",
				ErrRaggedColumns, col.Name, len(col.Values), t.rows)
		}
	}
	return t, nil
}

// NumRows returns the row count.
func (t *Table) NumRows() int {
	return t.rows
}

// NumColumns returns the column count.
func (t *Table) NumColumns() int {
	return len(t.columns)
}

// Columns returns the columns in display order. The slice is shared with the
// table; callers that own the table may modify column values in place.
func (t *Table) Columns() []*Column {
	return t.columns
}

// Column looks a column up by exact name.
func (t *Table) Column(name string) (*Column, bool) {
	for _, col := range t.columns {
		if col.Name == name {
			return col, true
		}
	}
	return nil, false
}

// Names returns the column names in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.columns))
	for i, col := range t.columns {
		names[i] = col.Name
	}
	return names
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	columns := make([]*Column, len(t.columns))
	for i, col := range t.columns {
		columns[i] = col.clone()
	}
	return &Table{columns: columns, rows: t.rows}
}

// Head returns a copy of the first n rows.
func (t *Table) Head(n int) *Table {
	if n > t.rows {
		n = t.rows
	}
	if n < 0 {
		n = 0
	}
	columns := make([]*Column, len(t.columns))
	for i, col := range t.columns {
		values := make([]Value, n)
		copy(values, col.Values[:n])
		columns[i] = &Column{Name: col.Name, Kind: col.Kind, Values: values}
	}
	return &Table{columns: columns, rows: n}
}

// Retain keeps the rows whose keep flag is true, preserving order, and
// returns how many rows were dropped. len(keep) must equal NumRows.
func (t *Table) Retain(keep []bool) int {
	kept := 0
	for _, k := range keep {
		if k {
			kept++
		}
	}
	if kept == t.rows {
		return 0
	}
	for _, col := range t.columns {
		values := make([]Value, 0, kept)
		for i, v := range col.Values {
			if keep[i] {
				values = append(values, v)
			}
		}
		col.Values = values
	}
	removed := t.rows - kept
	t.rows = kept
	return removed
}

// Rename assigns new names positionally. When two columns end up with the
// same name the later column's data replaces the earlier one, which keeps
// its position. Rename returns the names that collided.
func (t *Table) Rename(names []string) []string {
	var collisions []string
	index := make(map[string]int, len(names))
	columns := make([]*Column, 0, len(t.columns))
	for i, col := range t.columns {
		col.Name = names[i]
		if at, ok := index[col.Name]; ok {
			columns[at] = col
			collisions = append(collisions, col.Name)
			continue
		}
		index[col.Name] = len(columns)
		columns = append(columns, col)
	}
	t.columns = columns
	return collisions
}

// NullCount returns the number of missing cells in the whole table.
func (t *Table) NullCount() int {
	n := 0
	for _, col := range t.columns {
		n += col.NullCount()
	}
	return n
}

// RowKey encodes row i so that two rows share a key exactly when every
// column holds an equal value (nulls compare equal).
func (t *Table) RowKey(i int) string {
	var sb strings.Builder
	for _, col := range t.columns {
		v := col.Values[i]
		if !v.Valid {
			sb.WriteString("N;")
			continue
		}
		s := v.Format(col.Kind)
		sb.WriteString("V")
		sb.WriteString(strconv.Itoa(len(s)))
		sb.WriteByte(':')
		sb.WriteString(s)
		sb.WriteByte(';')
	}
	return sb.String()
}
