// Copyright 2026 The Fieldplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import "fmt"

// A Predicate decides whether a row is retained by Filter. A
// predicate that cannot evaluate a row (absent column, wrong type)
// returns a non-nil error, which aborts the Filter.
type Predicate func(Row) (bool, error)

// Filter returns a table containing the rows of t satisfying pred,
// preserving row order and all columns.
func Filter(t *Table, pred Predicate) (*Table, error) {
	rows := make([]int, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		ok, err := pred(t.Row(i))
		if err != nil {
			return nil, err
		}
		if ok {
			rows = append(rows, i)
		}
	}
	return t.gather(rows), nil
}

// Eq returns a predicate that retains rows whose column col equals
// want. want must match the column's type (an int compares against a
// float column after widening); otherwise evaluation fails with a
// *TypeMismatchError. Null cells never match.
func Eq(col string, want interface{}) Predicate {
	return func(r Row) (bool, error) {
		return cellEquals(r, col, want)
	}
}

// In returns a predicate that retains rows whose column col equals
// any of want. Null cells never match.
func In(col string, want ...interface{}) Predicate {
	return func(r Row) (bool, error) {
		for _, w := range want {
			ok, err := cellEquals(r, col, w)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	}
}

// And returns a predicate satisfied only when every predicate in preds
// is satisfied.
func And(preds ...Predicate) Predicate {
	return func(r Row) (bool, error) {
		for _, p := range preds {
			ok, err := p(r)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	}
}

func cellEquals(r Row, col string, want interface{}) (bool, error) {
	c := r.t.Column(col)
	if c == nil {
		return false, &ColumnNotFoundError{col}
	}
	if c.IsNull(r.i) {
		return false, nil
	}
	switch w := want.(type) {
	case string:
		if c.kind != String {
			return false, &TypeMismatchError{col, "string", c.kind.String()}
		}
		return c.ss[r.i] == w, nil
	case int:
		switch c.kind {
		case Int:
			return c.is[r.i] == w, nil
		case Float:
			return c.fs[r.i] == float64(w), nil
		}
		return false, &TypeMismatchError{col, "int", c.kind.String()}
	case float64:
		switch c.kind {
		case Float:
			return c.fs[r.i] == w, nil
		case Int:
			return float64(c.is[r.i]) == w, nil
		}
		return false, &TypeMismatchError{col, "float64", c.kind.String()}
	case bool:
		if c.kind != Bool {
			return false, &TypeMismatchError{col, "bool", c.kind.String()}
		}
		return c.bs[r.i] == w, nil
	}
	return false, &TypeMismatchError{col, c.kind.String(), typeName(want)}
}

func typeName(v interface{}) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
