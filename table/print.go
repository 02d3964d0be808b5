// Copyright 2026 The Fieldplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Fprint writes t to w as an aligned text table: one header line,
// then one line per row. Numeric columns are right-aligned, other
// columns left-aligned. Null cells print as "NA".
func Fprint(w io.Writer, t *Table) error {
	cells := make([][]string, len(t.names))
	widths := make([]int, len(t.names))
	for ci, name := range t.names {
		c := t.cols[ci]
		col := make([]string, t.Len())
		widths[ci] = len(name)
		for i := 0; i < t.Len(); i++ {
			if c.IsNull(i) {
				col[i] = "NA"
			} else {
				col[i] = fmt.Sprint(c.Value(i))
			}
			if len(col[i]) > widths[ci] {
				widths[ci] = len(col[i])
			}
		}
		cells[ci] = col
	}

	line := make([]string, len(t.names))
	write := func(row int) error {
		for ci, name := range t.names {
			s := name
			if row >= 0 {
				s = cells[ci][row]
			}
			if row >= 0 && (t.cols[ci].kind == Int || t.cols[ci].kind == Float) {
				line[ci] = fmt.Sprintf("%*s", widths[ci], s)
			} else {
				line[ci] = fmt.Sprintf("%-*s", widths[ci], s)
			}
		}
		_, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(line, "  "), " "))
		return err
	}

	if err := write(-1); err != nil {
		return err
	}
	for i := 0; i < t.Len(); i++ {
		if err := write(i); err != nil {
			return err
		}
	}
	return nil
}

// Print writes t to standard output.
func Print(t *Table) error {
	return Fprint(os.Stdout, t)
}
