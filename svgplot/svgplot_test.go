// Copyright 2026 The Fieldplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package svgplot

import (
	"bytes"
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fieldplot/fieldplot/chart"
	"github.com/fieldplot/fieldplot/table"
)

func testPlan(t *testing.T) *chart.RenderPlan {
	t.Helper()
	tab := new(table.Builder).
		Add("year", []int{2008, 2009, 2010, 2008, 2009, 2010}).
		Add("presence", []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}).
		Add("species", []string{"amecro", "amecro", "amecro", "amerob", "amerob", "amerob"}).
		Done()
	plan, err := chart.New(tab, chart.Aes{chart.X: "year", chart.Y: "presence", chart.Color: "species"}).
		Add(chart.Layer{Geom: chart.GeomPoint}).
		Add(chart.Layer{Geom: chart.GeomLine}).
		Resolve()
	require.NoError(t, err)
	return plan
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, testPlan(t), Options{Width: 800, Height: 600})
	require.NoError(t, err)

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "<?xml"))
	require.Contains(t, out, `width="800"`)
	require.Contains(t, out, `height="600"`)
	require.Contains(t, out, "<circle")
	require.Contains(t, out, "<polyline")
	require.Contains(t, out, ">year</text>")
	require.Contains(t, out, ">presence</text>")
	// Legend entries for both species.
	require.Contains(t, out, ">amecro</text>")
	require.Contains(t, out, ">amerob</text>")
	require.Contains(t, out, "</svg>")
}

func TestRenderFaceted(t *testing.T) {
	tab := new(table.Builder).
		Add("year", []int{2008, 2009, 2008, 2009}).
		Add("presence", []float64{0.1, 0.2, 0.3, 0.4}).
		Add("state", []string{"AK", "AK", "AZ", "AZ"}).
		Done()
	plan, err := chart.New(tab, chart.Aes{chart.X: "year", chart.Y: "presence"}).
		Add(chart.Layer{Geom: chart.GeomPoint}).
		WithFacet("state", 0).
		Resolve()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, plan, Options{}))
	out := buf.String()
	require.Contains(t, out, ">AK</text>")
	require.Contains(t, out, ">AZ</text>")
}

func TestRenderEmptyFaceted(t *testing.T) {
	// A faceted plot over a zero-row table has no panels; rendering
	// it must still produce a well-formed image.
	empty := new(table.Builder).
		Add("year", []int{}).
		Add("presence", []float64{}).
		Add("state", []string{}).
		Done()
	plan, err := chart.New(empty, chart.Aes{chart.X: "year", chart.Y: "presence"}).
		Add(chart.Layer{Geom: chart.GeomPoint}).
		WithFacet("state", 0).
		Resolve()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, plan, Options{}))
	require.Contains(t, buf.String(), "</svg>")
}

func TestOptionsPixels(t *testing.T) {
	w, h := Options{}.pixels()
	require.Equal(t, 640, w)
	require.Equal(t, 480, h)

	w, h = Options{Width: 4, Height: 3, Unit: Inches}.pixels()
	require.Equal(t, 384, w)
	require.Equal(t, 288, h)

	w, h = Options{Width: 2.54, Height: 2.54, Unit: Centimeters, DPI: 100}.pixels()
	require.Equal(t, 100, w)
	require.Equal(t, 100, h)
}

func TestArrange(t *testing.T) {
	plans := []*chart.RenderPlan{testPlan(t), testPlan(t), testPlan(t)}

	var buf bytes.Buffer
	err := Arrange(&buf, plans, 0, 2, Options{Width: 400, Height: 400})
	require.NoError(t, err)

	out := buf.String()
	require.Equal(t, 1, strings.Count(out, "<svg"))
	require.Equal(t, 3, strings.Count(out, ">presence</text>"))
}

type failWriter struct{ n int }

func (w *failWriter) Write(p []byte) (int, error) {
	w.n += len(p)
	if w.n > 64 {
		return 0, errors.New("disk full")
	}
	return len(p), nil
}

func TestRenderWriteError(t *testing.T) {
	err := Render(&failWriter{}, testPlan(t), Options{})
	require.EqualError(t, err, "disk full")
}

func TestRGB(t *testing.T) {
	require.Equal(t, "none", rgb(nil))
	require.Equal(t, "rgb(0,0,0)", rgb(color.Black))
	require.Equal(t, "rgb(27,158,119)", rgb(color.RGBA{0x1b, 0x9e, 0x77, 0xff}))
}
