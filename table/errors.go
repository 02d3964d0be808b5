// Copyright 2026 The Fieldplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import "fmt"

// ColumnNotFoundError reports a reference to a column that does not
// exist in the table being operated on.
type ColumnNotFoundError struct {
	Column string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("unknown column %q", e.Column)
}

// TypeMismatchError reports a value or column whose type does not
// match what an operation requires. Nothing is coerced silently: an
// operation that needs a float64 fails on a string column rather than
// parsing it.
type TypeMismatchError struct {
	Column string
	Want   string
	Got    string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("column %q: want %s, got %s", e.Column, e.Want, e.Got)
}

// MalformedValueError reports a cell value that an operation could
// not interpret, such as a string that does not split into the
// expected number of parts.
type MalformedValueError struct {
	Column string
	Value  string
	Reason string
}

func (e *MalformedValueError) Error() string {
	return fmt.Sprintf("column %q: malformed value %q: %s", e.Column, e.Value, e.Reason)
}

// InsufficientRowsError reports a group with fewer rows than a
// sampling operation asked for.
type InsufficientRowsError struct {
	Group string
	N     int
	Rows  int
}

func (e *InsufficientRowsError) Error() string {
	return fmt.Sprintf("group %s has %d rows; cannot sample %d", e.Group, e.Rows, e.N)
}

// JoinKeyMismatchError reports a join key column that is absent from
// one side of a join, or typed differently on the two sides.
type JoinKeyMismatchError struct {
	Column string
	Side   string
	Reason string
}

func (e *JoinKeyMismatchError) Error() string {
	return fmt.Sprintf("join key %q: %s side: %s", e.Column, e.Side, e.Reason)
}
