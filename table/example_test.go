// Copyright 2026 The Fieldplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table_test

import (
	"log"

	"github.com/fieldplot/fieldplot/table"
)

func Example() {
	surveys := new(table.Builder).
		Add("state", []string{"AK", "AK", "AZ"}).
		Add("year", []int{2008, 2009, 2008}).
		Add("samplesize", []float64{10, 20, 5}).
		Done()

	grouped, err := table.GroupBy(surveys, "state")
	if err != nil {
		log.Fatal(err)
	}
	means, err := table.Summarize(grouped, table.Mean("samplesize").As("mean"))
	if err != nil {
		log.Fatal(err)
	}
	table.Print(means)

	// Output:
	// state  mean
	// AK       15
	// AZ        5
}
