// Copyright 2026 The Fieldplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"errors"
	"testing"
)

func sampleInput() *Table {
	return new(Builder).
		Add("state", []string{"AK", "AK", "AK", "AK", "AZ", "AZ", "AZ"}).
		Add("n", []int{1, 2, 3, 4, 5, 6, 7}).
		Done()
}

func TestSampleNDeterministic(t *testing.T) {
	draw := func(seed int64) []interface{} {
		g, err := GroupBy(sampleInput(), "state")
		if err != nil {
			t.Fatal(err)
		}
		s, err := SampleN(g, 2, seed)
		if err != nil {
			t.Fatal(err)
		}
		return columnValues(s.Ungroup().Column("n"))
	}

	if a, b := draw(1), draw(1); !de(a, b) {
		t.Errorf("seed 1 drew %v then %v; want identical", a, b)
	}
}

func TestSampleNShape(t *testing.T) {
	g, err := GroupBy(sampleInput(), "state")
	if err != nil {
		t.Fatal(err)
	}
	s, err := SampleN(g, 2, 7)
	if err != nil {
		t.Fatal(err)
	}
	flat := s.Ungroup()
	if flat.Len() != 4 {
		t.Fatalf("Len() = %d; want 2 per group x 2 groups", flat.Len())
	}

	// Sampling is without replacement and keeps original order
	// within each group.
	ns := columnValues(flat.Column("n"))
	if ns[0].(int) >= ns[1].(int) || ns[2].(int) >= ns[3].(int) {
		t.Errorf("per-group rows out of order or repeated: %v", ns)
	}
	states := columnValues(flat.Column("state"))
	if !de(states, []interface{}{"AK", "AK", "AZ", "AZ"}) {
		t.Errorf("states = %v", states)
	}
}

func TestSampleNInsufficientRows(t *testing.T) {
	g, err := GroupBy(sampleInput(), "state")
	if err != nil {
		t.Fatal(err)
	}
	_, err = SampleN(g, 4, 1)
	var ir *InsufficientRowsError
	if !errors.As(err, &ir) {
		t.Fatalf("err = %v; want InsufficientRowsError", err)
	}
	if ir.N != 4 || ir.Rows != 3 {
		t.Errorf("error = %+v; want N=4 Rows=3 (AZ group)", ir)
	}
}
