// Copyright 2026 The Fieldplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/aclements/go-moremath/stats"
)

// A Grouped is a Table partitioned by the values of one or more key
// columns. Groups appear in order of the first occurrence of each
// distinct key tuple. Like Table, a Grouped is immutable.
type Grouped struct {
	src    *Table
	keys   []string
	groups []group
}

type group struct {
	label string
	rows  []int
}

// GroupBy partitions t by the values of the key columns. It fails
// with a *ColumnNotFoundError if a key is not a column of t.
func GroupBy(t *Table, keys ...string) (*Grouped, error) {
	cols := make([]*Column, len(keys))
	for i, k := range keys {
		c := t.Column(k)
		if c == nil {
			return nil, &ColumnNotFoundError{k}
		}
		cols[i] = c
	}

	g := &Grouped{src: t, keys: keys}
	index := make(map[string]int)
	for i := 0; i < t.Len(); i++ {
		key := encodeKey(cols, i)
		gi, ok := index[key]
		if !ok {
			gi = len(g.groups)
			index[key] = gi
			g.groups = append(g.groups, group{label: keyLabel(cols, i)})
		}
		g.groups[gi].rows = append(g.groups[gi].rows, i)
	}
	return g, nil
}

// encodeKey builds a collision-free map key from the key cells of row
// i. Strings are quoted so a separator cannot be forged.
func encodeKey(cols []*Column, i int) string {
	var b strings.Builder
	for _, c := range cols {
		if c.IsNull(i) {
			b.WriteString("\x01")
		} else if c.kind == String {
			b.WriteString(strconv.Quote(c.ss[i]))
		} else {
			fmt.Fprintf(&b, "%v", c.Value(i))
		}
		b.WriteByte(0)
	}
	return b.String()
}

func keyLabel(cols []*Column, i int) string {
	parts := make([]string, len(cols))
	for j, c := range cols {
		if c.IsNull(i) {
			parts[j] = "NA"
		} else {
			parts[j] = fmt.Sprint(c.Value(i))
		}
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// Len returns the number of groups.
func (g *Grouped) Len() int {
	return len(g.groups)
}

// Keys returns the key column names g was grouped by.
func (g *Grouped) Keys() []string {
	return g.keys
}

// Ungroup flattens g back into a single Table, with rows in group
// order and, within each group, in their original order.
func (g *Grouped) Ungroup() *Table {
	var rows []int
	for _, grp := range g.groups {
		rows = append(rows, grp.rows...)
	}
	return g.src.gather(rows)
}

// An Agg is a per-group reduction used by Summarize: it maps the rows
// of one group to a single output cell.
type Agg struct {
	name string
	// kind fixes the output column type when typed is set, so the
	// type does not depend on the groups present (a Mean column is
	// Float even over zero groups).
	kind  Kind
	typed bool
	f     func(t *Table, rows []int) (interface{}, error)
}

// As returns a copy of a whose output column is named name.
func (a Agg) As(name string) Agg {
	a.name = name
	return a
}

// Mean returns an aggregation computing the arithmetic mean of
// numeric column col. Null cells are excluded; a group with no
// non-null cells yields a null. The output column is named
// "mean <col>".
func Mean(col string) Agg {
	return Agg{name: "mean " + col, kind: Float, typed: true, f: func(t *Table, rows []int) (interface{}, error) {
		xs, err := numericCells(t, col, rows)
		if err != nil {
			return nil, err
		}
		if len(xs) == 0 {
			return nil, nil
		}
		return stats.Mean(xs), nil
	}}
}

// Median returns an aggregation computing the median of numeric
// column col, named "median <col>". Null cells are excluded.
func Median(col string) Agg {
	return Agg{name: "median " + col, kind: Float, typed: true, f: func(t *Table, rows []int) (interface{}, error) {
		xs, err := numericCells(t, col, rows)
		if err != nil {
			return nil, err
		}
		if len(xs) == 0 {
			return nil, nil
		}
		return stats.Sample{Xs: xs}.Quantile(0.5), nil
	}}
}

// Count returns an aggregation counting the rows of each group,
// named "count".
func Count() Agg {
	return Agg{name: "count", kind: Int, typed: true, f: func(t *Table, rows []int) (interface{}, error) {
		return len(rows), nil
	}}
}

// SampleOne returns an aggregation that draws one value of column col
// from each group, named "sample <col>". The draw is pseudo-random
// but deterministic for a given seed.
func SampleOne(col string, seed int64) Agg {
	rng := rand.New(rand.NewSource(seed))
	return Agg{name: "sample " + col, f: func(t *Table, rows []int) (interface{}, error) {
		c := t.Column(col)
		if c == nil {
			return nil, &ColumnNotFoundError{col}
		}
		return c.Value(rows[rng.Intn(len(rows))]), nil
	}}
}

// Summarize reduces each group of g to one output row, in group
// order. The output columns are g's key columns followed by one
// column per aggregation.
func Summarize(g *Grouped, aggs ...Agg) (*Table, error) {
	// Key columns: the first row of each group.
	first := make([]int, len(g.groups))
	for i, grp := range g.groups {
		first[i] = grp.rows[0]
	}
	b := new(Builder)
	for _, k := range g.keys {
		b.Add(k, g.src.Column(k).gather(first))
	}

	for _, agg := range aggs {
		vals := make([]interface{}, len(g.groups))
		for i, grp := range g.groups {
			v, err := agg.f(g.src, grp.rows)
			if err != nil {
				return nil, err
			}
			vals[i] = v
		}
		var col *Column
		var err error
		if agg.typed {
			col, err = typedColumnFromValues(agg.name, vals, agg.kind)
		} else {
			col, err = columnFromValues(agg.name, vals)
		}
		if err != nil {
			return nil, err
		}
		b.Add(agg.name, col)
	}
	return b.Done(), nil
}

// numericCells collects the non-null cells of numeric column col at
// rows as float64s. It fails with a *TypeMismatchError if the column
// is not numeric.
func numericCells(t *Table, col string, rows []int) ([]float64, error) {
	c := t.Column(col)
	if c == nil {
		return nil, &ColumnNotFoundError{col}
	}
	if c.kind != Int && c.kind != Float {
		return nil, &TypeMismatchError{col, "numeric", c.kind.String()}
	}
	xs := make([]float64, 0, len(rows))
	for _, r := range rows {
		if c.IsNull(r) {
			continue
		}
		if c.kind == Int {
			xs = append(xs, float64(c.is[r]))
		} else {
			xs = append(xs, c.fs[r])
		}
	}
	return xs, nil
}

// columnFromValues builds a typed column from interface values, using
// the first non-nil value to pick the type. nil values become nulls.
// Mixed types fail with a *TypeMismatchError.
func columnFromValues(name string, vals []interface{}) (*Column, error) {
	kind := String
	for _, v := range vals {
		if v == nil {
			continue
		}
		switch v.(type) {
		case string:
			kind = String
		case int:
			kind = Int
		case float64:
			kind = Float
		case bool:
			kind = Bool
		default:
			return nil, &TypeMismatchError{name, "string, int, float64, or bool", typeName(v)}
		}
		break
	}
	return typedColumnFromValues(name, vals, kind)
}

// typedColumnFromValues is columnFromValues with the column type fixed
// up front, so columns keep their type even when vals is empty or all
// nil.
func typedColumnFromValues(name string, vals []interface{}, kind Kind) (*Column, error) {
	c := &Column{kind: kind}
	switch kind {
	case String:
		c.ss = make([]string, len(vals))
	case Int:
		c.is = make([]int, len(vals))
	case Float:
		c.fs = make([]float64, len(vals))
	case Bool:
		c.bs = make([]bool, len(vals))
	}
	for i, v := range vals {
		if v == nil {
			c.setNull(i)
			continue
		}
		switch kind {
		case String:
			s, ok := v.(string)
			if !ok {
				return nil, &TypeMismatchError{name, "string", typeName(v)}
			}
			c.ss[i] = s
		case Int:
			n, ok := v.(int)
			if !ok {
				return nil, &TypeMismatchError{name, "int", typeName(v)}
			}
			c.is[i] = n
		case Float:
			switch x := v.(type) {
			case float64:
				c.fs[i] = x
			case int:
				c.fs[i] = float64(x)
			default:
				return nil, &TypeMismatchError{name, "float64", typeName(v)}
			}
		case Bool:
			x, ok := v.(bool)
			if !ok {
				return nil, &TypeMismatchError{name, "bool", typeName(v)}
			}
			c.bs[i] = x
		}
	}
	return c, nil
}
