// Copyright 2026 The Fieldplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package csvio reads delimited-text files into tables.
//
// The reader coerces each column to the narrowest type that fits
// every cell: int, then float64, then string. Empty cells and the
// value "NA" are nulls and do not constrain the column type. Parse
// and file errors are returned unchanged; csvio adds no retry or
// recovery of its own.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fieldplot/fieldplot/table"
)

// Read reads comma-delimited text from r, treating the first record
// as column names.
func Read(r io.Reader) (*table.Table, error) {
	return ReadDelimited(r, ',')
}

// ReadDelimited is Read with an explicit field delimiter.
func ReadDelimited(r io.Reader, delim rune) (*table.Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = delim
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csvio: no header record")
	}
	return fromStrings(records[0], records[1:])
}

// ReadFile reads the delimited file at path. The open error, if any,
// is returned unchanged.
func ReadFile(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

func fromStrings(header []string, records [][]string) (*table.Table, error) {
	b := new(table.Builder)
	for ci, name := range header {
		cells := make([]string, len(records))
		null := make([]bool, len(records))
		isInt, isFloat := true, true
		for ri, rec := range records {
			if ci >= len(rec) {
				return nil, fmt.Errorf("csvio: record %d has %d fields; header has %d", ri+1, len(rec), len(header))
			}
			cells[ri] = rec[ci]
			if rec[ci] == "" || rec[ci] == "NA" {
				null[ri] = true
				continue
			}
			if _, err := strconv.Atoi(rec[ci]); err != nil {
				isInt = false
			}
			if _, err := strconv.ParseFloat(rec[ci], 64); err != nil {
				isFloat = false
			}
		}
		b.Add(name, buildColumn(cells, null, isInt, isFloat))
	}
	return b.Done(), nil
}

func buildColumn(cells []string, null []bool, isInt, isFloat bool) *table.Column {
	switch {
	case isInt:
		vals := make([]interface{}, len(cells))
		for i, s := range cells {
			if null[i] {
				continue
			}
			n, _ := strconv.Atoi(s)
			vals[i] = n
		}
		return table.ColumnOf(vals)
	case isFloat:
		vals := make([]interface{}, len(cells))
		for i, s := range cells {
			if null[i] {
				continue
			}
			f, _ := strconv.ParseFloat(s, 64)
			vals[i] = f
		}
		return table.ColumnOf(vals)
	}
	vals := make([]interface{}, len(cells))
	for i, s := range cells {
		if !null[i] {
			vals[i] = s
		}
	}
	return table.ColumnOf(vals)
}
