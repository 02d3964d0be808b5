// Copyright 2026 The Fieldplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package svgplot renders resolved plots as SVG.
//
// It consumes chart.RenderPlan values and draws them with
// github.com/ajstarks/svgo. Render draws one plan; Arrange composes
// several plans into a single figure on a row/column grid. Writer
// errors are returned unchanged.
package svgplot

import (
	"fmt"
	"image/color"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/fieldplot/fieldplot/chart"
)

// Unit is a physical measurement unit for Options.
type Unit int

const (
	Pixels Unit = iota
	Inches
	Centimeters
)

// Options give the physical size of the output image.
type Options struct {
	Width, Height float64
	Unit          Unit

	// DPI converts physical units to pixels. 0 means 96.
	DPI float64
}

func (o Options) pixels() (int, int) {
	dpi := o.DPI
	if dpi == 0 {
		dpi = 96
	}
	w, h := o.Width, o.Height
	switch o.Unit {
	case Inches:
		w, h = w*dpi, h*dpi
	case Centimeters:
		w, h = w*dpi/2.54, h*dpi/2.54
	}
	if w <= 0 {
		w = 640
	}
	if h <= 0 {
		h = 480
	}
	return int(w), int(h)
}

const (
	marginLeft   = 55
	marginBottom = 40
	marginTop    = 10
	stripHeight  = 18
	legendWidth  = 110
	panelGap     = 8
)

// Render draws plan to w as a standalone SVG image.
func Render(w io.Writer, plan *chart.RenderPlan, opts Options) error {
	ew := &errWriter{w: w}
	width, height := opts.pixels()
	canvas := svg.New(ew)
	canvas.Start(width, height)
	drawPlan(canvas, plan, 0, 0, width, height)
	canvas.End()
	return ew.err
}

// Arrange draws plans to w as one figure, tiled into a grid of the
// given shape (row-major). A rows or cols of 0 is computed from the
// other; if both are 0 the plans form a single row.
func Arrange(w io.Writer, plans []*chart.RenderPlan, rows, cols int, opts Options) error {
	if cols <= 0 {
		if rows <= 0 {
			rows, cols = 1, len(plans)
		} else {
			cols = (len(plans) + rows - 1) / rows
		}
	}
	if rows <= 0 {
		rows = (len(plans) + cols - 1) / cols
	}

	ew := &errWriter{w: w}
	width, height := opts.pixels()
	canvas := svg.New(ew)
	canvas.Start(width, height)
	cw, ch := width/cols, height/rows
	for i, plan := range plans {
		drawPlan(canvas, plan, (i%cols)*cw, (i/cols)*ch, cw, ch)
	}
	canvas.End()
	return ew.err
}

// errWriter remembers the first write error so svgo's unchecked
// writes still surface failures to the caller.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	if err != nil {
		ew.err = err
	}
	return n, err
}

func drawPlan(canvas *svg.SVG, plan *chart.RenderPlan, x0, y0, width, height int) {
	right := 10
	if len(plan.Legend) > 0 {
		right = legendWidth
	}
	top := marginTop
	faceted := len(plan.Panels) > 1 || (len(plan.Panels) == 1 && plan.Panels[0].Label != "")

	area := rect{x0 + marginLeft, y0 + top, width - marginLeft - right, height - top - marginBottom}
	pw := (area.w - (plan.Cols-1)*panelGap) / plan.Cols
	ph := (area.h - (plan.Rows-1)*panelGap) / plan.Rows

	textStyle := fmt.Sprintf("font-size:%.0fpx;fill:%s", sizeOf(plan.Theme.BaseSize), rgb(plan.Theme.Text))

	for _, panel := range plan.Panels {
		px := area.x + panel.Col*(pw+panelGap)
		py := area.y + panel.Row*(ph+panelGap)
		inner := rect{px, py, pw, ph}
		if faceted {
			canvas.Rect(px, py, pw, stripHeight, "fill:rgb(217,217,217)")
			canvas.Text(px+pw/2, py+stripHeight-5, panel.Label, textStyle+";text-anchor:middle")
			inner = rect{px, py + stripHeight, pw, ph - stripHeight}
		}
		drawPanel(canvas, plan, panel, inner, textStyle)
	}

	// Axis titles.
	canvas.Text(area.x+area.w/2, y0+height-8, plan.XAxis.Label, textStyle+";text-anchor:middle")
	canvas.Gtransform(fmt.Sprintf("translate(%d,%d) rotate(-90)", x0+14, area.y+area.h/2))
	canvas.Text(0, 0, plan.YAxis.Label, textStyle+";text-anchor:middle")
	canvas.Gend()

	if len(plan.Legend) > 0 {
		drawLegend(canvas, plan, x0+width-legendWidth+12, area.y+10, textStyle)
	}
}

type rect struct{ x, y, w, h int }

func sizeOf(base float64) float64 {
	if base <= 0 {
		return 11
	}
	return base
}

// drawPanel draws one facet: background, grid, marks, and tick
// labels on the outer edges of the grid.
func drawPanel(canvas *svg.SVG, plan *chart.RenderPlan, panel chart.Panel, r rect, textStyle string) {
	xa, ya := plan.XAxis, plan.YAxis
	sx := func(v float64) int {
		return r.x + int(float64(r.w)*(v-xa.Min)/(xa.Max-xa.Min))
	}
	sy := func(v float64) int {
		return r.y + r.h - int(float64(r.h)*(v-ya.Min)/(ya.Max-ya.Min))
	}

	if plan.Theme.Background != nil {
		canvas.Rect(r.x, r.y, r.w, r.h, "fill:"+rgb(plan.Theme.Background))
	}
	if plan.Theme.Grid != nil {
		grid := "stroke:" + rgb(plan.Theme.Grid) + ";stroke-width:1"
		for _, t := range xa.Ticks {
			canvas.Line(sx(t), r.y, sx(t), r.y+r.h, grid)
		}
		for _, t := range ya.Ticks {
			canvas.Line(r.x, sy(t), r.x+r.w, sy(t), grid)
		}
	}

	for _, mark := range panel.Marks {
		drawMark(canvas, mark, sx, sy)
	}

	// Tick labels: x on the bottom row, y on the left column.
	if panel.Row == plan.Rows-1 || plan.Rows == 1 {
		for i, t := range xa.Ticks {
			canvas.Text(sx(t), r.y+r.h+14, xa.TickLabels[i], textStyle+";text-anchor:middle")
		}
	}
	if panel.Col == 0 {
		for i, t := range ya.Ticks {
			canvas.Text(r.x-5, sy(t)+4, ya.TickLabels[i], textStyle+";text-anchor:end")
		}
	}
}

func drawMark(canvas *svg.SVG, mark chart.Mark, sx, sy func(float64) int) {
	stroke := rgb(mark.Stroke)
	fill := rgb(mark.Fill)

	switch mark.Geom {
	case chart.GeomPoint:
		for i := range mark.X {
			radius := 3.0 * mark.Size
			if mark.PointSize != nil {
				radius = 2 + 4*mark.PointSize[i]
			}
			alpha := mark.Alpha
			if mark.PointAlpha != nil {
				alpha = 0.1 + 0.9*mark.PointAlpha[i]
			}
			shape := mark.Shape
			if mark.PointShape != nil {
				shape = mark.PointShape[i]
			}
			style := fmt.Sprintf("fill:%s;fill-opacity:%.3g", fill, alpha)
			drawPoint(canvas, sx(mark.X[i]), sy(mark.Y[i]), int(radius), shape, style)
		}

	case chart.GeomLine, chart.GeomSmooth:
		if len(mark.X) < 2 {
			return
		}
		xs, ys := make([]int, len(mark.X)), make([]int, len(mark.Y))
		for i := range mark.X {
			xs[i], ys[i] = sx(mark.X[i]), sy(mark.Y[i])
		}
		width := 1.5
		if mark.Geom == chart.GeomSmooth {
			width = 2
		}
		canvas.Polyline(xs, ys, fmt.Sprintf("fill:none;stroke:%s;stroke-width:%.3g;stroke-opacity:%.3g", stroke, width, mark.Alpha))

	case chart.GeomBoxplot:
		for _, box := range mark.Boxes {
			// Box spans 0.6 of a level slot.
			x1, x2 := sx(box.X-0.3), sx(box.X+0.3)
			mid := sx(box.X)
			boxStyle := fmt.Sprintf("fill:%s;fill-opacity:0.5;stroke:%s", fill, stroke)
			lineStyle := "stroke:" + stroke + ";stroke-width:1"
			canvas.Rect(x1, sy(box.Q3), x2-x1, sy(box.Q1)-sy(box.Q3), boxStyle)
			canvas.Line(x1, sy(box.Median), x2, sy(box.Median), "stroke:"+stroke+";stroke-width:2")
			canvas.Line(mid, sy(box.Q3), mid, sy(box.Max), lineStyle)
			canvas.Line(mid, sy(box.Q1), mid, sy(box.Min), lineStyle)
			canvas.Line(x1, sy(box.Max), x2, sy(box.Max), lineStyle)
			canvas.Line(x1, sy(box.Min), x2, sy(box.Min), lineStyle)
		}
	}
}

func drawPoint(canvas *svg.SVG, x, y, r, shape int, style string) {
	switch shape % 3 {
	case 0:
		canvas.Circle(x, y, r, style)
	case 1:
		canvas.Rect(x-r, y-r, 2*r, 2*r, style)
	case 2:
		canvas.Polygon([]int{x, x - r, x + r}, []int{y - r, y + r, y + r}, style)
	}
}

func drawLegend(canvas *svg.SVG, plan *chart.RenderPlan, x, y int, textStyle string) {
	for i, e := range plan.Legend {
		ly := y + i*18
		canvas.Rect(x, ly, 12, 12, "fill:"+rgb(e.Color))
		canvas.Text(x+18, ly+10, e.Value, textStyle)
	}
}

func rgb(c color.Color) string {
	if c == nil {
		return "none"
	}
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("rgb(%d,%d,%d)", r>>8, g>>8, b>>8)
}
