// Copyright 2026 The Fieldplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"errors"
	"testing"
)

func TestFilterIn(t *testing.T) {
	tab := surveyTable()

	// Every row matches.
	got, err := Filter(tab, In("state", "AK", "AZ"))
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != 3 {
		t.Errorf("Len() = %d; want 3", got.Len())
	}

	// No row matches.
	got, err = Filter(tab, Eq("state", "AL"))
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != 0 {
		t.Errorf("Len() = %d; want 0", got.Len())
	}
	if v, want := got.Columns(), tab.Columns(); !de(v, want) {
		t.Errorf("empty filter dropped columns: %v", v)
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	tab := surveyTable()
	got, err := Filter(tab, Eq("year", 2008))
	if err != nil {
		t.Fatal(err)
	}
	if v, want := columnValues(got.Column("state")), []interface{}{"AK", "AZ"}; !de(v, want) {
		t.Errorf("state = %v; want %v", v, want)
	}
}

// Composing two filters equals filtering with the conjunction.
func TestFilterCompose(t *testing.T) {
	tab := surveyTable()
	p1, p2 := Eq("state", "AK"), Eq("year", 2008)

	one, err := Filter(tab, p1)
	if err != nil {
		t.Fatal(err)
	}
	one, err = Filter(one, p2)
	if err != nil {
		t.Fatal(err)
	}

	both, err := Filter(tab, And(p1, p2))
	if err != nil {
		t.Fatal(err)
	}

	if one.Len() != both.Len() {
		t.Fatalf("composed filter has %d rows; conjunction has %d", one.Len(), both.Len())
	}
	for _, col := range tab.Columns() {
		if !de(columnValues(one.Column(col)), columnValues(both.Column(col))) {
			t.Errorf("column %q differs between composed and conjoined filters", col)
		}
	}
}

func TestFilterErrors(t *testing.T) {
	tab := surveyTable()

	var cnf *ColumnNotFoundError
	if _, err := Filter(tab, Eq("elevation", 1)); !errors.As(err, &cnf) {
		t.Errorf("err = %v; want ColumnNotFoundError", err)
	}

	// Predicates do not coerce: comparing a string column against
	// an int is a type mismatch, not false.
	var tm *TypeMismatchError
	if _, err := Filter(tab, Eq("state", 7)); !errors.As(err, &tm) {
		t.Errorf("err = %v; want TypeMismatchError", err)
	}
}

func TestFilterNumericWidening(t *testing.T) {
	tab := surveyTable()
	// samplesize is a float column; an int want compares after
	// widening.
	got, err := Filter(tab, Eq("samplesize", 10))
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != 1 {
		t.Errorf("Len() = %d; want 1", got.Len())
	}
}

func TestFilterSkipsNulls(t *testing.T) {
	tab := new(Builder).
		Add("species", ColumnOf([]interface{}{"Sora", nil, "Sora"})).
		Done()
	got, err := Filter(tab, Eq("species", "Sora"))
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != 2 {
		t.Errorf("Len() = %d; want 2 (null never matches)", got.Len())
	}
}
