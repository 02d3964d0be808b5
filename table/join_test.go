// Copyright 2026 The Fieldplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"errors"
	"testing"
)

func observations() *Table {
	return new(Builder).
		Add("year", []int{2008, 2009}).
		Add("state", []string{"IL", "IL"}).
		Add("species", []string{"Sora", "Sora"}).
		Done()
}

func sampleSizes() *Table {
	return new(Builder).
		Add("year", []int{2008}).
		Add("state", []string{"IL"}).
		Add("samplesize", []int{3}).
		Done()
}

func TestInnerJoin(t *testing.T) {
	got, err := Join(observations(), sampleSizes(), JoinSpec{InnerJoin, []string{"year", "state"}})
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != 1 {
		t.Fatalf("Len() = %d; want 1", got.Len())
	}
	if v, want := got.Columns(), []string{"year", "state", "species", "samplesize"}; !de(v, want) {
		t.Errorf("Columns() = %v; want %v", v, want)
	}
	if v := got.Column("samplesize").Value(0); v != 3 {
		t.Errorf("samplesize = %v; want 3", v)
	}
}

func TestFullJoinNullFills(t *testing.T) {
	got, err := Join(observations(), sampleSizes(), JoinSpec{FullJoin, []string{"year", "state"}})
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != 2 {
		t.Fatalf("Len() = %d; want 2", got.Len())
	}
	// The 2009 observation has no sample size.
	if !got.Column("samplesize").IsNull(1) {
		t.Errorf("samplesize[1] = %v; want null", got.Column("samplesize").Value(1))
	}
	if v := got.Column("year").Value(1); v != 2009 {
		t.Errorf("year[1] = %v; want 2009", v)
	}
}

func TestLeftRightJoin(t *testing.T) {
	left := new(Builder).
		Add("id", []int{1, 2, 3}).
		Add("name", []string{"a", "b", "c"}).
		Done()
	right := new(Builder).
		Add("id", []int{2, 4}).
		Add("size", []int{20, 40}).
		Done()

	lj, err := Join(left, right, JoinSpec{LeftJoin, []string{"id"}})
	if err != nil {
		t.Fatal(err)
	}
	if v, want := columnValues(lj.Column("id")), []interface{}{1, 2, 3}; !de(v, want) {
		t.Errorf("left join ids = %v; want %v", v, want)
	}
	if !lj.Column("size").IsNull(0) || lj.Column("size").IsNull(1) {
		t.Error("left join null fill wrong")
	}

	rj, err := Join(left, right, JoinSpec{RightJoin, []string{"id"}})
	if err != nil {
		t.Fatal(err)
	}
	if v, want := columnValues(rj.Column("id")), []interface{}{2, 4}; !de(v, want) {
		t.Errorf("right join ids = %v; want %v", v, want)
	}
	if !rj.Column("name").IsNull(1) {
		t.Error("right join should null-fill name for id 4")
	}
}

// Inner row count <= left row count <= full row count.
func TestJoinRowCountOrdering(t *testing.T) {
	left := new(Builder).
		Add("k", []string{"a", "b", "c", "a"}).
		Add("x", []int{1, 2, 3, 4}).
		Done()
	right := new(Builder).
		Add("k", []string{"a", "d"}).
		Add("y", []int{10, 40}).
		Done()

	counts := make(map[JoinKind]int)
	for _, kind := range []JoinKind{InnerJoin, LeftJoin, FullJoin} {
		got, err := Join(left, right, JoinSpec{kind, []string{"k"}})
		if err != nil {
			t.Fatal(err)
		}
		counts[kind] = got.Len()
	}
	if counts[InnerJoin] > counts[LeftJoin] || counts[LeftJoin] > counts[FullJoin] {
		t.Errorf("row counts inner=%d left=%d full=%d; want nondecreasing",
			counts[InnerJoin], counts[LeftJoin], counts[FullJoin])
	}
}

func TestJoinDuplicateColumnSuffix(t *testing.T) {
	left := new(Builder).
		Add("id", []int{1}).
		Add("note", []string{"left note"}).
		Done()
	right := new(Builder).
		Add("id", []int{1}).
		Add("note", []string{"right note"}).
		Done()
	got, err := Join(left, right, JoinSpec{InnerJoin, []string{"id"}})
	if err != nil {
		t.Fatal(err)
	}
	if v, want := got.Columns(), []string{"id", "note.x", "note.y"}; !de(v, want) {
		t.Errorf("Columns() = %v; want %v", v, want)
	}
	if v := got.Column("note.x").Value(0); v != "left note" {
		t.Errorf("note.x = %v", v)
	}
	if v := got.Column("note.y").Value(0); v != "right note" {
		t.Errorf("note.y = %v", v)
	}
}

func TestJoinOneToMany(t *testing.T) {
	left := new(Builder).
		Add("k", []string{"a"}).
		Add("x", []int{1}).
		Done()
	right := new(Builder).
		Add("k", []string{"a", "a"}).
		Add("y", []int{10, 11}).
		Done()
	got, err := Join(left, right, JoinSpec{InnerJoin, []string{"k"}})
	if err != nil {
		t.Fatal(err)
	}
	if v, want := columnValues(got.Column("y")), []interface{}{10, 11}; !de(v, want) {
		t.Errorf("y = %v; want one row per matching pair %v", v, want)
	}
}

func TestJoinKeyMismatch(t *testing.T) {
	var jkm *JoinKeyMismatchError

	_, err := Join(observations(), sampleSizes(), JoinSpec{InnerJoin, []string{"species"}})
	if !errors.As(err, &jkm) || jkm.Side != "right" {
		t.Errorf("err = %v; want JoinKeyMismatchError on right side", err)
	}

	// Same name, different type.
	left := new(Builder).Add("year", []int{2008}).Done()
	right := new(Builder).Add("year", []string{"2008"}).Done()
	_, err = Join(left, right, JoinSpec{InnerJoin, []string{"year"}})
	if !errors.As(err, &jkm) {
		t.Errorf("err = %v; want JoinKeyMismatchError for typed key", err)
	}
}
