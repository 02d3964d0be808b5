// Copyright 2026 The Fieldplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

// A Row is a read-only view of one row of a Table, addressed by
// column name. Rows are cheap values; they hold no data of their own.
type Row struct {
	t *Table
	i int
}

// Value returns the value of column col in this row, or nil if the
// cell is null. It fails with a *ColumnNotFoundError if col is not a
// column of the row's table.
func (r Row) Value(col string) (interface{}, error) {
	c := r.t.Column(col)
	if c == nil {
		return nil, &ColumnNotFoundError{col}
	}
	return c.Value(r.i), nil
}

// Null reports whether the cell in column col is null.
func (r Row) Null(col string) (bool, error) {
	c := r.t.Column(col)
	if c == nil {
		return false, &ColumnNotFoundError{col}
	}
	return c.IsNull(r.i), nil
}

func (r Row) cell(col string, want Kind) (*Column, error) {
	c := r.t.Column(col)
	if c == nil {
		return nil, &ColumnNotFoundError{col}
	}
	if c.kind != want {
		return nil, &TypeMismatchError{col, want.String(), c.kind.String()}
	}
	if c.IsNull(r.i) {
		return nil, &TypeMismatchError{col, want.String(), "null"}
	}
	return c, nil
}

// String returns the value of string column col in this row. It fails
// with a *TypeMismatchError if the column is not a string column or
// the cell is null.
func (r Row) String(col string) (string, error) {
	c, err := r.cell(col, String)
	if err != nil {
		return "", err
	}
	return c.ss[r.i], nil
}

// Int returns the value of int column col in this row.
func (r Row) Int(col string) (int, error) {
	c, err := r.cell(col, Int)
	if err != nil {
		return 0, err
	}
	return c.is[r.i], nil
}

// Float returns the value of numeric column col in this row. Int
// columns are widened to float64.
func (r Row) Float(col string) (float64, error) {
	c := r.t.Column(col)
	if c == nil {
		return 0, &ColumnNotFoundError{col}
	}
	if c.kind == Int {
		if c.IsNull(r.i) {
			return 0, &TypeMismatchError{col, "float64", "null"}
		}
		return float64(c.is[r.i]), nil
	}
	fc, err := r.cell(col, Float)
	if err != nil {
		return 0, err
	}
	return fc.fs[r.i], nil
}

// Bool returns the value of bool column col in this row.
func (r Row) Bool(col string) (bool, error) {
	c, err := r.cell(col, Bool)
	if err != nil {
		return false, err
	}
	return c.bs[r.i], nil
}
