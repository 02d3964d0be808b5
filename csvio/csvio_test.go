// Copyright 2026 The Fieldplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package csvio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fieldplot/fieldplot/table"
)

const surveyCSV = `state,year,presence,species
AK,2008,0.1,amecro
AK,2009,0.25,amecro
AZ,2008,NA,amerob
AZ,2009,0.5,
`

func TestRead(t *testing.T) {
	tab, err := Read(strings.NewReader(surveyCSV))
	require.NoError(t, err)

	require.Equal(t, []string{"state", "year", "presence", "species"}, tab.Columns())
	require.Equal(t, 4, tab.Len())
	require.Equal(t, table.String, tab.Column("state").Kind())
	require.Equal(t, table.Int, tab.Column("year").Kind())
	require.Equal(t, table.Float, tab.Column("presence").Kind())
	require.Equal(t, table.String, tab.Column("species").Kind())

	require.Equal(t, 2008, tab.Column("year").Value(0))
	require.Equal(t, 0.25, tab.Column("presence").Value(1))

	// "NA" and empty cells are nulls.
	require.True(t, tab.Column("presence").IsNull(2))
	require.True(t, tab.Column("species").IsNull(3))
	require.False(t, tab.Column("presence").IsNull(3))
}

func TestReadCoercion(t *testing.T) {
	// One non-integer cell demotes the whole column to float; one
	// non-numeric cell demotes it to string.
	tab, err := Read(strings.NewReader("a,b,c\n1,1,1\n2,2.5,x\n"))
	require.NoError(t, err)
	require.Equal(t, table.Int, tab.Column("a").Kind())
	require.Equal(t, table.Float, tab.Column("b").Kind())
	require.Equal(t, table.String, tab.Column("c").Kind())
	require.Equal(t, 1.0, tab.Column("b").Value(0))
	require.Equal(t, "1", tab.Column("c").Value(0))
}

func TestReadAllNullColumn(t *testing.T) {
	tab, err := Read(strings.NewReader("a,b\nNA,1\n,2\n"))
	require.NoError(t, err)
	require.True(t, tab.Column("a").IsNull(0))
	require.True(t, tab.Column("a").IsNull(1))
	require.Equal(t, 2, tab.Column("b").Value(1))
}

func TestReadDelimited(t *testing.T) {
	tab, err := ReadDelimited(strings.NewReader("a\tb\n1\tx\n"), '\t')
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, tab.Columns())
	require.Equal(t, "x", tab.Column("b").Value(0))
}

func TestReadEmpty(t *testing.T) {
	_, err := Read(strings.NewReader(""))
	require.Error(t, err)

	// A lone header is a valid zero-row table.
	tab, err := Read(strings.NewReader("a,b\n"))
	require.NoError(t, err)
	require.Equal(t, 0, tab.Len())
	require.Equal(t, []string{"a", "b"}, tab.Columns())
}

func TestReadRaggedRecord(t *testing.T) {
	_, err := Read(strings.NewReader("a,b\n1\n"))
	require.Error(t, err)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "survey.csv")
	require.NoError(t, os.WriteFile(path, []byte(surveyCSV), 0o644))

	tab, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, 4, tab.Len())

	// The open error passes through untouched.
	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
