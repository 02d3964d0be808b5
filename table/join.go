// Copyright 2026 The Fieldplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

// JoinKind selects the relational join variant performed by Join.
type JoinKind int

const (
	// InnerJoin keeps only rows whose key tuple appears on both
	// sides, one output row per matching pair.
	InnerJoin JoinKind = iota

	// LeftJoin keeps every left row; right columns of unmatched
	// rows are null.
	LeftJoin

	// RightJoin keeps every right row; left columns of unmatched
	// rows are null.
	RightJoin

	// FullJoin keeps the union: matched pairs, then unmatched left
	// rows, then unmatched right rows, with the absent side null.
	FullJoin
)

// A JoinSpec describes a join: its kind and the key columns, which
// must be present and identically typed on both sides.
type JoinSpec struct {
	Kind JoinKind
	On   []string
}

// Join performs a relational join of left and right per spec.
//
// Output columns are the key columns, then the non-key columns of
// left, then the non-key columns of right. A non-key column name
// appearing on both sides is disambiguated deterministically by
// suffixing ".x" on the left column and ".y" on the right.
//
// Matched pairs are emitted in left-row order, ties in right-row
// order. Unmatched rows (for the outer kinds) follow in their side's
// original order with the other side's columns null-filled.
func Join(left, right *Table, spec JoinSpec) (*Table, error) {
	lkey := make([]*Column, len(spec.On))
	rkey := make([]*Column, len(spec.On))
	for i, k := range spec.On {
		lc, rc := left.Column(k), right.Column(k)
		if lc == nil {
			return nil, &JoinKeyMismatchError{k, "left", "no such column"}
		}
		if rc == nil {
			return nil, &JoinKeyMismatchError{k, "right", "no such column"}
		}
		if lc.kind != rc.kind {
			return nil, &JoinKeyMismatchError{k, "right", "column is " + rc.kind.String() + "; left is " + lc.kind.String()}
		}
		lkey[i], rkey[i] = lc, rc
	}

	// Index right rows by key tuple.
	rindex := make(map[string][]int)
	for i := 0; i < right.Len(); i++ {
		key := encodeKey(rkey, i)
		rindex[key] = append(rindex[key], i)
	}

	// Emit row pairs. -1 stands for "no row on this side".
	var lrows, rrows []int
	rmatched := make([]bool, right.Len())
	for i := 0; i < left.Len(); i++ {
		matches := rindex[encodeKey(lkey, i)]
		if len(matches) == 0 {
			if spec.Kind == LeftJoin || spec.Kind == FullJoin {
				lrows, rrows = append(lrows, i), append(rrows, -1)
			}
			continue
		}
		for _, ri := range matches {
			rmatched[ri] = true
			lrows, rrows = append(lrows, i), append(rrows, ri)
		}
	}
	if spec.Kind == RightJoin || spec.Kind == FullJoin {
		for ri, m := range rmatched {
			if !m {
				lrows, rrows = append(lrows, -1), append(rrows, ri)
			}
		}
	}
	isKey := func(name string) bool {
		for _, k := range spec.On {
			if k == name {
				return true
			}
		}
		return false
	}
	collides := func(name string) bool {
		return !isKey(name) && left.Column(name) != nil && right.Column(name) != nil
	}

	b := new(Builder)
	for i, k := range spec.On {
		b.Add(k, mergeKey(lkey[i], rkey[i], lrows, rrows))
	}
	for _, name := range left.Columns() {
		if isKey(name) {
			continue
		}
		out := name
		if collides(name) {
			out = name + ".x"
		}
		b.Add(out, left.Column(name).gather(lrows))
	}
	for _, name := range right.Columns() {
		if isKey(name) {
			continue
		}
		out := name
		if collides(name) {
			out = name + ".y"
		}
		b.Add(out, right.Column(name).gather(rrows))
	}
	return b.Done(), nil
}

// mergeKey builds a key output column, taking each cell from the left
// row when present and otherwise from the right row.
func mergeKey(lc, rc *Column, lrows, rrows []int) *Column {
	rows := make([]int, len(lrows))
	copy(rows, lrows)
	merged := lc.gather(rows)
	for i, lr := range lrows {
		if lr >= 0 || rrows[i] < 0 {
			continue
		}
		ri := rrows[i]
		if rc.IsNull(ri) {
			continue
		}
		merged.null[i] = false
		switch merged.kind {
		case String:
			merged.ss[i] = rc.ss[ri]
		case Int:
			merged.is[i] = rc.is[ri]
		case Float:
			merged.fs[i] = rc.fs[ri]
		case Bool:
			merged.bs[i] = rc.bs[ri]
		}
	}
	return merged
}
