// Package table provides the columnar, in-memory view of a data set that transformers read
// from and append to.
package table

import (
	"fmt"
	"github.com/pkg/errors"
)

// Kind is the type of values held by a column.
type Kind uint8

const (
	// Text columns hold raw strings, typically categories.
	Text Kind = iota
	// Scalar columns hold a single float per row.
	Scalar
	// Vector columns hold a fixed-width float vector per row.
	Vector
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Scalar:
		return "scalar"
	case Vector:
		return "vector"
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Column is a named sequence of values of a single kind. Only the slice matching Kind is set.
type Column struct {
	Name   string
	Kind   Kind
	Width  int // number of slots per row; 1 for Text and Scalar.
	Text   []string
	Scalar []float64
	Vector [][]float64
}

// TextColumn creates a text column.
func TextColumn(name string, values []string) *Column {
	return &Column{Name: name, Kind: Text, Width: 1, Text: values}
}

// ScalarColumn creates a scalar column.
func ScalarColumn(name string, values []float64) *Column {
	return &Column{Name: name, Kind: Scalar, Width: 1, Scalar: values}
}

// VectorColumn creates a vector column where every row has width slots.
func VectorColumn(name string, width int, values [][]float64) *Column {
	return &Column{Name: name, Kind: Vector, Width: width, Vector: values}
}

// Len is the number of rows in the column.
func (c *Column) Len() int {
	switch c.Kind {
	case Text:
		return len(c.Text)
	case Scalar:
		return len(c.Scalar)
	default:
		return len(c.Vector)
	}
}

// Rename returns a copy of the column header under a new name. The values are shared.
func (c *Column) Rename(name string) *Column {
	cp := *c
	cp.Name = name
	return &cp
}

// Floats appends the numeric values of row i to dst. Text columns have no numeric value.
func (c *Column) Floats(dst []float64, i int) ([]float64, error) {
	switch c.Kind {
	case Scalar:
		return append(dst, c.Scalar[i]), nil
	case Vector:
		return append(dst, c.Vector[i]...), nil
	}
	return dst, errors.Errorf("column %q is %s, not numeric", c.Name, c.Kind)
}

func (c *Column) slice(rows []int) *Column {
	cp := &Column{Name: c.Name, Kind: c.Kind, Width: c.Width}
	switch c.Kind {
	case Text:
		cp.Text = make([]string, len(rows))
		for i, r := range rows {
			cp.Text[i] = c.Text[r]
		}
	case Scalar:
		cp.Scalar = make([]float64, len(rows))
		for i, r := range rows {
			cp.Scalar[i] = c.Scalar[r]
		}
	case Vector:
		cp.Vector = make([][]float64, len(rows))
		for i, r := range rows {
			cp.Vector[i] = c.Vector[r]
		}
	}
	return cp
}

// Table is an ordered set of equal-length columns. Adding a column with an existing name hides
// the previous one while keeping its position, so transformers may overwrite their inputs.
type Table struct {
	rows    int
	columns []*Column
	index   map[string]int
}

// New creates an empty table with a fixed number of rows.
func New(rows int) *Table {
	return &Table{
		rows:  rows,
		index: make(map[string]int),
	}
}

// Len is the number of rows.
func (t *Table) Len() int {
	return t.rows
}

// Names lists the column names in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// Column looks up a column by name.
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.columns[i], true
}

// Add appends c, or replaces the column of the same name.
func (t *Table) Add(c *Column) error {
	if len(c.Name) == 0 {
		return errors.New("column must have a name")
	}
	if c.Len() != t.rows {
		return errors.Errorf("column %q has %d rows, table has %d", c.Name, c.Len(), t.rows)
	}
	if i, ok := t.index[c.Name]; ok {
		t.columns[i] = c
		return nil
	}
	t.index[c.Name] = len(t.columns)
	t.columns = append(t.columns, c)
	return nil
}

// Clone copies the column list. Column values are shared, so a transformer can add columns to
// the clone without touching the original table.
func (t *Table) Clone() *Table {
	cp := New(t.rows)
	cp.columns = append(cp.columns, t.columns...)
	for k, v := range t.index {
		cp.index[k] = v
	}
	return cp
}

// Slice returns a new table holding only the given rows, in the given order.
func (t *Table) Slice(rows ...int) (*Table, error) {
	for _, r := range rows {
		if r < 0 || r >= t.rows {
			return nil, errors.Errorf("row %d out of range [0,%d)", r, t.rows)
		}
	}
	cp := New(len(rows))
	for _, c := range t.columns {
		cp.index[c.Name] = len(cp.columns)
		cp.columns = append(cp.columns, c.slice(rows))
	}
	return cp, nil
}

// Schema describes the table's columns; each field's Index is its position in the table.
func (t *Table) Schema() Schema {
	s := make(Schema, len(t.columns))
	for i, c := range t.columns {
		s[i] = Field{Index: i, Name: c.Name, Kind: c.Kind}
	}
	return s
}
