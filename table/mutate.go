// Copyright 2026 The Fieldplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"fmt"
	"strings"
)

// Mutate returns t with a column named name computed row-wise by fn.
// If t already has a column named name it is overwritten in place;
// otherwise the new column is appended. fn may return nil for a null
// cell; all non-nil results must share one type. Errors from fn
// (typically *ColumnNotFoundError or *TypeMismatchError from Row
// accessors) abort the operation.
func Mutate(t *Table, name string, fn func(Row) (interface{}, error)) (*Table, error) {
	vals := make([]interface{}, t.Len())
	for i := 0; i < t.Len(); i++ {
		v, err := fn(t.Row(i))
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	col, err := columnFromValues(name, vals)
	if err != nil {
		return nil, err
	}
	return NewBuilder(t).Add(name, col).Done(), nil
}

// A Splitter divides a string cell into parts for Separate.
type Splitter interface {
	split(s string) []string
}

type delimSplitter string

func (d delimSplitter) split(s string) []string {
	return strings.Split(s, string(d))
}

// OnDelimiter returns a Splitter that splits at every occurrence of
// sep, like strings.Split.
func OnDelimiter(sep string) Splitter {
	return delimSplitter(sep)
}

type positionSplitter []int

func (p positionSplitter) split(s string) []string {
	parts := make([]string, 0, len(p)+1)
	prev := 0
	for _, pos := range p {
		if pos < prev || pos > len(s) {
			return nil
		}
		parts = append(parts, s[prev:pos])
		prev = pos
	}
	return append(parts, s[prev:])
}

// AtPositions returns a Splitter that splits at fixed byte positions,
// producing len(pos)+1 parts. A value too short for the positions is
// malformed.
func AtPositions(pos ...int) Splitter {
	return positionSplitter(pos)
}

// Separate splits string column col of t into new string columns
// named by into, which take col's place in column order (after col
// itself if keepOriginal is set). A name in into that matches an
// existing column replaces that column, as with Mutate.
//
// The policy is strict: every non-null value must split into exactly
// len(into) parts, or Separate fails with a *MalformedValueError and
// no output is produced. Null cells yield nulls in every new column.
// Joining the parts back with the same delimiter reconstructs the
// original value.
func Separate(t *Table, col string, by Splitter, into []string, keepOriginal bool) (*Table, error) {
	src := t.Column(col)
	if src == nil {
		return nil, &ColumnNotFoundError{col}
	}
	if src.kind != String {
		return nil, &TypeMismatchError{col, "string", src.kind.String()}
	}
	if len(into) == 0 {
		return nil, &MalformedValueError{col, "", "no output column names"}
	}

	parts := make([]*Column, len(into))
	for i := range parts {
		parts[i] = &Column{kind: String, ss: make([]string, src.Len())}
	}
	for i := 0; i < src.Len(); i++ {
		if src.IsNull(i) {
			for _, p := range parts {
				p.setNull(i)
			}
			continue
		}
		ps := by.split(src.ss[i])
		if len(ps) != len(into) {
			return nil, &MalformedValueError{col, src.ss[i], fmt.Sprintf("split into %d parts; want %d", len(ps), len(into))}
		}
		for j, p := range ps {
			parts[j].ss[i] = p
		}
	}

	replaced := func(name string) bool {
		for _, out := range into {
			if out == name {
				return true
			}
		}
		return false
	}
	b := new(Builder)
	for i, name := range t.Columns() {
		if name != col {
			// Columns replaced by an into name are dropped here
			// and filled in at col's position below.
			if !replaced(name) {
				b.Add(name, t.cols[i])
			}
			continue
		}
		if keepOriginal {
			b.Add(name, t.cols[i])
		}
		for j, out := range into {
			b.Add(out, parts[j])
		}
	}
	return b.Done(), nil
}
