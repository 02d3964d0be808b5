// Copyright 2026 The Fieldplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package table provides an immutable, column-oriented table and
// relational operations over it.
//
// A Table is an ordered sequence of named, typed columns of equal
// length. Tables are immutable: every operation returns a new Table
// and leaves its inputs untouched, so a Table may be shared freely,
// including across goroutines, without synchronization.
//
// Tables are constructed with a Builder. Misusing the Builder (adding
// a non-slice value, or columns of unequal length) is a programming
// error and panics. The query operations (Filter, Select, GroupBy,
// Summarize, Mutate, Separate, Join, SampleN) are all-or-nothing:
// they either return a new value or a typed error, and never leave a
// partially transformed result.
package table

import (
	"fmt"
)

// Kind identifies the element type of a Column.
type Kind int

const (
	String Kind = iota
	Int
	Float
	Bool
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Int:
		return "int"
	case Float:
		return "float64"
	case Bool:
		return "bool"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// A Column is a typed, ordered sequence of values, some of which may
// be null. Columns are immutable.
type Column struct {
	kind Kind
	ss   []string
	is   []int
	fs   []float64
	bs   []bool
	// null marks null cells. A nil mask means no cell is null.
	null []bool
}

// Len returns the number of cells in c.
func (c *Column) Len() int {
	switch c.kind {
	case String:
		return len(c.ss)
	case Int:
		return len(c.is)
	case Float:
		return len(c.fs)
	case Bool:
		return len(c.bs)
	}
	return 0
}

// Kind returns the element type of c.
func (c *Column) Kind() Kind {
	return c.kind
}

// IsNull reports whether cell i of c is null.
func (c *Column) IsNull(i int) bool {
	return c.null != nil && c.null[i]
}

// Value returns cell i of c as an interface value, or nil if the cell
// is null.
func (c *Column) Value(i int) interface{} {
	if c.IsNull(i) {
		return nil
	}
	switch c.kind {
	case String:
		return c.ss[i]
	case Int:
		return c.is[i]
	case Float:
		return c.fs[i]
	case Bool:
		return c.bs[i]
	}
	return nil
}

// gather returns a new column containing the cells of c named by
// rows, in order. A row index of -1 produces a null cell.
func (c *Column) gather(rows []int) *Column {
	n := &Column{kind: c.kind}
	switch c.kind {
	case String:
		n.ss = make([]string, len(rows))
	case Int:
		n.is = make([]int, len(rows))
	case Float:
		n.fs = make([]float64, len(rows))
	case Bool:
		n.bs = make([]bool, len(rows))
	}
	for i, r := range rows {
		if r < 0 || c.IsNull(r) {
			n.setNull(i)
			continue
		}
		switch c.kind {
		case String:
			n.ss[i] = c.ss[r]
		case Int:
			n.is[i] = c.is[r]
		case Float:
			n.fs[i] = c.fs[r]
		case Bool:
			n.bs[i] = c.bs[r]
		}
	}
	return n
}

func (c *Column) setNull(i int) {
	if c.null == nil {
		c.null = make([]bool, c.Len())
	}
	c.null[i] = true
}

// columnOf converts a Go slice ([]string, []int, []float64, or
// []bool) or an existing *Column into a Column. It panics if data is
// any other type.
func columnOf(data interface{}) *Column {
	switch v := data.(type) {
	case *Column:
		return v
	case []string:
		return &Column{kind: String, ss: v}
	case []int:
		return &Column{kind: Int, is: v}
	case []float64:
		return &Column{kind: Float, fs: v}
	case []bool:
		return &Column{kind: Bool, bs: v}
	}
	panic(fmt.Sprintf("table: cannot make a column from %T; want []string, []int, []float64, []bool, or *Column", data))
}

// ColumnOf builds a column from interface values, inferring the type
// from the first non-nil value; nil values become null cells. Like
// Builder misuse, mixed or unsupported types panic: ColumnOf is a
// construction helper, not a query operation.
func ColumnOf(vals []interface{}) *Column {
	c, err := columnFromValues("column", vals)
	if err != nil {
		panic("table: " + err.Error())
	}
	return c
}

// A Table is an immutable relation: an ordered sequence of named
// columns of equal length. The zero value and new(Table) are the
// empty table with no columns and no rows.
type Table struct {
	names []string
	cols  []*Column
}

// Len returns the number of rows in t.
func (t *Table) Len() int {
	if len(t.cols) == 0 {
		return 0
	}
	return t.cols[0].Len()
}

// Columns returns the names of the columns of t in order. The caller
// must not modify the returned slice.
func (t *Table) Columns() []string {
	return t.names
}

// Column returns the column of t named name, or nil if there is no
// such column.
func (t *Table) Column(name string) *Column {
	for i, n := range t.names {
		if n == name {
			return t.cols[i]
		}
	}
	return nil
}

// Row returns an accessor for row i of t. It panics if i is out of
// range.
func (t *Table) Row(i int) Row {
	if i < 0 || i >= t.Len() {
		panic(fmt.Sprintf("table: row index %d out of range [0, %d)", i, t.Len()))
	}
	return Row{t, i}
}

// gather returns a new table containing the rows of t named by rows,
// in order. A row index of -1 produces a row of nulls.
func (t *Table) gather(rows []int) *Table {
	n := &Table{names: t.names, cols: make([]*Column, len(t.cols))}
	for i, c := range t.cols {
		n.cols[i] = c.gather(rows)
	}
	return n
}

// A Builder constructs a Table column by column. The zero value is an
// empty builder.
//
// Builders are for construction only; the query operations never
// mutate a built Table.
type Builder struct {
	names []string
	cols  []*Column
}

// NewBuilder returns a Builder seeded with the columns of t. If t is
// nil, the builder starts empty.
func NewBuilder(t *Table) *Builder {
	b := new(Builder)
	if t != nil {
		b.names = append(b.names, t.names...)
		b.cols = append(b.cols, t.cols...)
	}
	return b
}

// Add adds a column named name to the table being built and returns b
// for chaining. data must be a []string, []int, []float64, []bool, or
// *Column; anything else panics. If the table already has a column
// named name, Add replaces it, keeping its position.
func (b *Builder) Add(name string, data interface{}) *Builder {
	col := columnOf(data)
	for i, n := range b.names {
		if n == name {
			b.cols[i] = col
			return b
		}
	}
	b.names = append(b.names, name)
	b.cols = append(b.cols, col)
	return b
}

// Done returns the built Table. It panics if the columns do not all
// have the same length.
func (b *Builder) Done() *Table {
	for i, c := range b.cols {
		if c.Len() != b.cols[0].Len() {
			panic(fmt.Sprintf("table: column %q has %d rows; column %q has %d rows", b.names[i], c.Len(), b.names[0], b.cols[0].Len()))
		}
	}
	return &Table{names: b.names, cols: b.cols}
}

// Select returns a table containing only the named columns of t, in
// the order given. It fails with a *ColumnNotFoundError if any name
// is not a column of t.
func Select(t *Table, cols ...string) (*Table, error) {
	n := &Table{names: make([]string, len(cols)), cols: make([]*Column, len(cols))}
	for i, name := range cols {
		c := t.Column(name)
		if c == nil {
			return nil, &ColumnNotFoundError{name}
		}
		n.names[i] = name
		n.cols[i] = c
	}
	return n, nil
}
