// Copyright 2026 The Fieldplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/aclements/go-moremath/fit"
	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"

	"github.com/fieldplot/fieldplot/table"
)

// smoothSamples is the number of points a least-squares fit line is
// sampled at.
const smoothSamples = 50

// A RenderPlan is a fully resolved plot: an ordered set of drawable
// panels plus shared axes, legend, and theme. It holds no references
// back into the source tables, so a renderer needs no further data
// lookups.
type RenderPlan struct {
	// Rows and Cols give the facet grid dimensions. An unfaceted
	// plot is a 1x1 grid.
	Rows, Cols int

	Panels []Panel

	XAxis, YAxis Axis

	Legend []LegendEntry

	Theme Theme
}

// A Panel is one facet: a cell of the plot grid with its marks in
// draw order (later marks on top).
type Panel struct {
	// Label is the facet value for this panel, or "" when the
	// plot is unfaceted.
	Label string

	Row, Col int

	Marks []Mark
}

// A Mark is one drawable primitive group: the points of a scatter, a
// connected line, a fit line, or a set of boxes, in axis (data)
// coordinates.
type Mark struct {
	Geom GeomKind

	// X and Y hold point coordinates for point, line, and smooth
	// geometries. Values are in transformed (plotting) space when
	// an axis scale transform is set.
	X, Y []float64

	// Boxes holds the resolved boxes of a boxplot geometry.
	Boxes []Box

	// Group is the value of the grouping (color/fill) channel
	// this mark represents, or "".
	Group string

	Stroke color.Color
	Fill   color.Color

	// PointShape, PointSize, and PointAlpha hold per-point visual
	// values when the shape, size, or alpha channel is mapped;
	// they are empty otherwise. Sizes and alphas are normalized
	// to [0, 1].
	PointShape []int
	PointSize  []float64
	PointAlpha []float64

	// Size and Alpha are the fixed visual values used when the
	// corresponding channel is not mapped.
	Size, Alpha float64

	Shape int
}

// A Box is a five-number summary drawn at one discrete x level.
type Box struct {
	// X is the axis position of the level; Label its value.
	X     float64
	Label string

	Min, Q1, Median, Q3, Max float64
}

// An Axis describes one shared plot axis.
type Axis struct {
	Label string

	// Min and Max bound the data in plotting space.
	Min, Max float64

	// Log marks a base-10 logarithmic axis; Min, Max, and Ticks
	// are then in log space and TickLabels in data space.
	Log bool

	Ticks      []float64
	TickLabels []string

	// Discrete marks a categorical axis; Levels lists its values
	// in order and Ticks sit at 0..len(Levels)-1.
	Discrete bool
	Levels   []string
}

// A LegendEntry ties one value of a grouped visual channel to its
// resolved color.
type LegendEntry struct {
	Channel Channel
	Value   string
	Color   color.Color
}

// Resolve validates p and computes its RenderPlan. It fails with a
// *table.ColumnNotFoundError if any aesthetic or facet references a
// column absent from its layer's table, a *table.TypeMismatchError if
// a mapped column has an unusable type, a *table.MalformedValueError
// for non-positive data under a log scale, and a
// *PaletteTooSmallError for an undersized manual palette. On error no
// partial plan is returned.
func (p Plot) Resolve() (*RenderPlan, error) {
	plan := &RenderPlan{Theme: p.theme, Rows: 1, Cols: 1}

	// Facet partitioning.
	levels, err := p.facetLevels()
	if err != nil {
		return nil, err
	}
	if p.facet != nil {
		cols := p.facet.cols
		if cols <= 0 {
			cols = int(math.Ceil(math.Sqrt(float64(len(levels)))))
		}
		if cols < 1 {
			cols = 1
		}
		plan.Cols = cols
		plan.Rows = (len(levels) + cols - 1) / cols
		// A facet column with no levels (zero-row table) still
		// yields a drawable 1x1 grid.
		if plan.Rows < 1 {
			plan.Rows = 1
		}
	}
	for i, lv := range levels {
		plan.Panels = append(plan.Panels, Panel{
			Label: lv.label,
			Row:   i / plan.Cols,
			Col:   i % plan.Cols,
		})
	}

	xb, yb := newBounds(), newBounds()
	var xDiscrete []string
	var xLabel, yLabel string

	for _, layer := range p.layers {
		data := layer.Data
		if data == nil {
			data = p.data
		}
		aes := p.aes.merge(layer.Aes)

		// Every mapped column must exist in the layer's table.
		for _, col := range aes {
			if data.Column(col) == nil {
				return nil, &table.ColumnNotFoundError{Column: col}
			}
		}
		if xLabel == "" {
			xLabel = aes[X]
		}
		if yLabel == "" {
			yLabel = aes[Y]
		}

		groups, gch, err := p.groupLevels(data, aes)
		if err != nil {
			return nil, err
		}
		if gch != "" {
			for _, grp := range groups {
				entry := LegendEntry{gch, grp.label, grp.color}
				if !hasLegendEntry(plan.Legend, entry) {
					plan.Legend = append(plan.Legend, entry)
				}
			}
		}

		for pi := range plan.Panels {
			rows, err := facetRows(data, p.facet, levels[pi])
			if err != nil {
				return nil, err
			}
			for _, grp := range groups {
				grows, err := grp.filter(data, rows)
				if err != nil {
					return nil, err
				}
				mark, err := p.buildMark(layer, data, aes, grp, grows, xb, yb, &xDiscrete)
				if err != nil {
					return nil, err
				}
				if mark != nil {
					plan.Panels[pi].Marks = append(plan.Panels[pi].Marks, *mark)
				}
			}
		}
	}

	plan.XAxis = p.buildAxis(X, xLabel, xb, xDiscrete)
	plan.YAxis = p.buildAxis(Y, yLabel, yb, nil)
	return plan, nil
}

// facetLevel is one facet value; a nil Plot.facet yields a single
// level matching every row.
type facetLevel struct {
	label string
	value interface{}
	all   bool
}

func (p Plot) facetLevels() ([]facetLevel, error) {
	if p.facet == nil {
		return []facetLevel{{all: true}}, nil
	}
	c := p.data.Column(p.facet.col)
	if c == nil {
		return nil, &table.ColumnNotFoundError{Column: p.facet.col}
	}
	return distinctLevels(c), nil
}

// distinctLevels returns the distinct values of c in sorted order
// when orderable, otherwise first-seen order. Nulls become an "NA"
// level.
func distinctLevels(c *table.Column) []facetLevel {
	seen := make(map[interface{}]bool)
	var levels []facetLevel
	for i := 0; i < c.Len(); i++ {
		v := c.Value(i)
		if seen[v] {
			continue
		}
		seen[v] = true
		label := "NA"
		if v != nil {
			label = fmt.Sprint(v)
		}
		levels = append(levels, facetLevel{label: label, value: v})
	}
	sort.SliceStable(levels, func(i, j int) bool {
		return lessValue(levels[i].value, levels[j].value)
	})
	return levels
}

func lessValue(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b != nil
	}
	switch x := a.(type) {
	case string:
		y, ok := b.(string)
		return ok && x < y
	case int:
		y, ok := b.(int)
		return ok && x < y
	case float64:
		y, ok := b.(float64)
		return ok && x < y
	case bool:
		y, ok := b.(bool)
		return ok && !x && y
	}
	return false
}

// facetRows returns the row indices of data belonging to lv. A layer
// table that lacks the facet column repeats in every panel.
func facetRows(data *table.Table, f *facetSpec, lv facetLevel) ([]int, error) {
	all := lv.all
	var c *table.Column
	if !all {
		c = data.Column(f.col)
		if c == nil {
			all = true
		}
	}
	rows := make([]int, 0, data.Len())
	for i := 0; i < data.Len(); i++ {
		if all || c.Value(i) == lv.value {
			rows = append(rows, i)
		}
	}
	return rows, nil
}

// groupLevel is one value of the grouping channel with its resolved
// color.
type groupLevel struct {
	label string
	value interface{}
	color color.Color
	col   string
	all   bool
}

func (g groupLevel) filter(data *table.Table, rows []int) ([]int, error) {
	if g.all {
		return rows, nil
	}
	c := data.Column(g.col)
	out := make([]int, 0, len(rows))
	for _, r := range rows {
		if c.Value(r) == g.value {
			out = append(out, r)
		}
	}
	return out, nil
}

// groupLevels splits a layer by its color (or, failing that, fill)
// mapping and assigns palette colors to the levels.
func (p Plot) groupLevels(data *table.Table, aes Aes) ([]groupLevel, Channel, error) {
	gch := Color
	col, ok := aes[Color]
	if !ok {
		gch = Fill
		col, ok = aes[Fill]
	}
	if !ok {
		return []groupLevel{{all: true}}, "", nil
	}

	levels := distinctLevels(data.Column(col))
	pal := defaultPalette
	cycle := true
	if s, ok := p.scales[gch]; ok && len(s.Palette) > 0 {
		if len(s.Palette) < len(levels) {
			return nil, "", &PaletteTooSmallError{gch, len(levels), len(s.Palette)}
		}
		pal = s.Palette
		cycle = false
	}
	groups := make([]groupLevel, len(levels))
	for i, lv := range levels {
		ci := i
		if cycle {
			ci = i % len(pal)
		}
		groups[i] = groupLevel{label: lv.label, value: lv.value, color: pal[ci], col: col}
	}
	return groups, gch, nil
}

func hasLegendEntry(entries []LegendEntry, e LegendEntry) bool {
	for _, have := range entries {
		if have.Channel == e.Channel && have.Value == e.Value {
			return true
		}
	}
	return false
}

// buildMark resolves one (layer, panel, group) combination into a
// Mark, or nil when it has nothing to draw.
func (p Plot) buildMark(layer Layer, data *table.Table, aes Aes, grp groupLevel, rows []int, xb, yb *bounds, xDiscrete *[]string) (*Mark, error) {
	mark := &Mark{
		Geom:   layer.Geom,
		Group:  grp.label,
		Stroke: color.Black,
		Size:   1,
		Alpha:  1,
	}
	if !grp.all {
		mark.Stroke = grp.color
	}
	mark.Fill = mark.Stroke
	applyFixed(mark, layer.Fixed)

	switch layer.Geom {
	case GeomBoxplot:
		if err := p.buildBoxes(mark, data, aes, rows, xb, yb, xDiscrete); err != nil {
			return nil, err
		}
		if len(mark.Boxes) == 0 {
			return nil, nil
		}
		return mark, nil

	case GeomPoint, GeomLine, GeomSmooth:
		xs, ys, kept, err := p.xyCells(data, aes, rows)
		if err != nil {
			return nil, err
		}
		if len(xs) == 0 {
			return nil, nil
		}
		if layer.Geom == GeomSmooth {
			if len(xs) < 2 {
				return nil, nil
			}
			reg := fit.PolynomialRegression(xs, ys, nil, 1)
			lo, hi := stats.Bounds(xs)
			xs = vec.Linspace(lo, hi, smoothSamples)
			ys = vec.Map(reg.F, xs)
		} else {
			if err := p.pointChannels(mark, data, aes, kept); err != nil {
				return nil, err
			}
		}
		if layer.Geom == GeomLine || layer.Geom == GeomSmooth {
			sortByX(xs, ys)
		}
		mark.X, mark.Y = xs, ys
		xb.updateAll(xs)
		yb.updateAll(ys)
		return mark, nil
	}
	return nil, nil
}

func applyFixed(mark *Mark, fixed map[Channel]interface{}) {
	for ch, v := range fixed {
		switch ch {
		case Color:
			if c, ok := v.(color.Color); ok {
				mark.Stroke = c
				mark.Fill = c
			}
		case Fill:
			if c, ok := v.(color.Color); ok {
				mark.Fill = c
			}
		case Size:
			if f, ok := v.(float64); ok {
				mark.Size = f
			}
		case Alpha:
			if f, ok := v.(float64); ok {
				mark.Alpha = f
			}
		case Shape:
			if n, ok := v.(int); ok {
				mark.Shape = n
			}
		}
	}
}

// xyCells extracts the numeric x/y cells at rows, applying any axis
// transforms. Rows with a null in either column are skipped; kept
// reports which rows survived, for the per-point channels.
func (p Plot) xyCells(data *table.Table, aes Aes, rows []int) (xs, ys []float64, kept []int, err error) {
	xc, yc := data.Column(aes[X]), data.Column(aes[Y])
	if xc == nil {
		return nil, nil, nil, &table.ColumnNotFoundError{Column: aes[X]}
	}
	if yc == nil {
		return nil, nil, nil, &table.ColumnNotFoundError{Column: aes[Y]}
	}
	for _, r := range rows {
		x, ok, err := numericCell(xc, aes[X], r)
		if err != nil {
			return nil, nil, nil, err
		}
		if !ok {
			continue
		}
		y, ok, err := numericCell(yc, aes[Y], r)
		if err != nil {
			return nil, nil, nil, err
		}
		if !ok {
			continue
		}
		x, err = p.transform(X, aes[X], x)
		if err != nil {
			return nil, nil, nil, err
		}
		y, err = p.transform(Y, aes[Y], y)
		if err != nil {
			return nil, nil, nil, err
		}
		xs, ys, kept = append(xs, x), append(ys, y), append(kept, r)
	}
	return xs, ys, kept, nil
}

// pointChannels fills the per-point shape/size/alpha vectors for the
// rows kept by xyCells.
func (p Plot) pointChannels(mark *Mark, data *table.Table, aes Aes, kept []int) error {
	if col, ok := aes[Shape]; ok {
		levels := distinctLevels(data.Column(col))
		index := make(map[interface{}]int, len(levels))
		for i, lv := range levels {
			index[lv.value] = i
		}
		c := data.Column(col)
		mark.PointShape = make([]int, len(kept))
		for i, r := range kept {
			mark.PointShape[i] = index[c.Value(r)]
		}
	}
	var err error
	if col, ok := aes[Size]; ok {
		mark.PointSize, err = normalizedCells(data, col, kept)
		if err != nil {
			return err
		}
	}
	if col, ok := aes[Alpha]; ok {
		mark.PointAlpha, err = normalizedCells(data, col, kept)
		if err != nil {
			return err
		}
	}
	return nil
}

// normalizedCells rescales the numeric cells at rows to [0, 1]. A
// constant column maps to 1.
func normalizedCells(data *table.Table, col string, rows []int) ([]float64, error) {
	c := data.Column(col)
	xs := make([]float64, len(rows))
	for i, r := range rows {
		v, ok, err := numericCell(c, col, r)
		if err != nil {
			return nil, err
		}
		if ok {
			xs[i] = v
		}
	}
	lo, hi := stats.Bounds(xs)
	if hi <= lo {
		for i := range xs {
			xs[i] = 1
		}
		return xs, nil
	}
	for i := range xs {
		xs[i] = (xs[i] - lo) / (hi - lo)
	}
	return xs, nil
}

// buildBoxes computes one Box per discrete x level from the numeric y
// cells in rows.
func (p Plot) buildBoxes(mark *Mark, data *table.Table, aes Aes, rows []int, xb, yb *bounds, xDiscrete *[]string) error {
	xc, yc := data.Column(aes[X]), data.Column(aes[Y])
	if xc == nil {
		return &table.ColumnNotFoundError{Column: aes[X]}
	}
	if yc == nil {
		return &table.ColumnNotFoundError{Column: aes[Y]}
	}

	// The level set spans the whole column so every panel shares
	// x positions.
	for _, lv := range distinctLevels(xc) {
		if !hasLevel(*xDiscrete, lv.label) {
			*xDiscrete = append(*xDiscrete, lv.label)
		}
	}

	byLevel := make(map[string][]float64)
	for _, r := range rows {
		if xc.IsNull(r) {
			continue
		}
		y, ok, err := numericCell(yc, aes[Y], r)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		y, err = p.transform(Y, aes[Y], y)
		if err != nil {
			return err
		}
		label := fmt.Sprint(xc.Value(r))
		byLevel[label] = append(byLevel[label], y)
	}

	for pos, label := range *xDiscrete {
		ys := byLevel[label]
		if len(ys) == 0 {
			continue
		}
		s := stats.Sample{Xs: ys}
		lo, hi := stats.Bounds(ys)
		mark.Boxes = append(mark.Boxes, Box{
			X:      float64(pos),
			Label:  label,
			Min:    lo,
			Q1:     s.Quantile(0.25),
			Median: s.Quantile(0.5),
			Q3:     s.Quantile(0.75),
			Max:    hi,
		})
		xb.update(float64(pos))
		yb.update(lo)
		yb.update(hi)
	}
	return nil
}

func hasLevel(levels []string, label string) bool {
	for _, l := range levels {
		if l == label {
			return true
		}
	}
	return false
}

// transform applies the axis scale transform bound to ch, if any.
func (p Plot) transform(ch Channel, col string, v float64) (float64, error) {
	s, ok := p.scales[ch]
	if !ok || s.Transform != Log10Transform {
		return v, nil
	}
	if v <= 0 {
		return 0, &table.MalformedValueError{
			Column: col,
			Value:  fmt.Sprint(v),
			Reason: "non-positive value under log scale",
		}
	}
	return math.Log10(v), nil
}

func numericCell(c *table.Column, name string, i int) (float64, bool, error) {
	if c.IsNull(i) {
		return 0, false, nil
	}
	switch v := c.Value(i).(type) {
	case int:
		return float64(v), true, nil
	case float64:
		return v, true, nil
	}
	return 0, false, &table.TypeMismatchError{Column: name, Want: "numeric", Got: fmt.Sprintf("%T", c.Value(i))}
}

func sortByX(xs, ys []float64) {
	idx := make([]int, len(xs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool { return xs[idx[i]] < xs[idx[j]] })
	nx, ny := make([]float64, len(xs)), make([]float64, len(ys))
	for i, j := range idx {
		nx[i], ny[i] = xs[j], ys[j]
	}
	copy(xs, nx)
	copy(ys, ny)
}

// bounds accumulates a numeric axis range.
type bounds struct {
	min, max float64
	set      bool
}

func newBounds() *bounds {
	return &bounds{}
}

func (b *bounds) update(v float64) {
	if !b.set {
		b.min, b.max, b.set = v, v, true
		return
	}
	if v < b.min {
		b.min = v
	}
	if v > b.max {
		b.max = v
	}
}

func (b *bounds) updateAll(vs []float64) {
	for _, v := range vs {
		b.update(v)
	}
}

// buildAxis finalizes one axis: widened bounds and tick marks, or the
// discrete level axis for boxplot x.
func (p Plot) buildAxis(ch Channel, label string, b *bounds, discrete []string) Axis {
	ax := Axis{Label: label}
	if s, ok := p.scales[ch]; ok && s.Transform == Log10Transform {
		ax.Log = true
	}

	if len(discrete) > 0 {
		ax.Discrete = true
		ax.Levels = discrete
		ax.Min, ax.Max = -0.5, float64(len(discrete))-0.5
		for i, l := range discrete {
			ax.Ticks = append(ax.Ticks, float64(i))
			ax.TickLabels = append(ax.TickLabels, l)
		}
		return ax
	}

	if !b.set {
		b.min, b.max = 0, 1
	}
	span := b.max - b.min
	if span == 0 {
		span = 1
	}
	ax.Min, ax.Max = b.min-span*0.05, b.max+span*0.05

	if ax.Log {
		for k := math.Floor(ax.Min); k <= math.Ceil(ax.Max); k++ {
			if k < ax.Min || k > ax.Max {
				continue
			}
			ax.Ticks = append(ax.Ticks, k)
			ax.TickLabels = append(ax.TickLabels, fmt.Sprintf("%g", math.Pow(10, k)))
		}
		if len(ax.Ticks) == 0 {
			ax.Ticks = []float64{ax.Min, ax.Max}
			ax.TickLabels = []string{
				fmt.Sprintf("%.3g", math.Pow(10, ax.Min)),
				fmt.Sprintf("%.3g", math.Pow(10, ax.Max)),
			}
		}
		return ax
	}

	for _, t := range niceTicks(ax.Min, ax.Max, 5) {
		ax.Ticks = append(ax.Ticks, t)
		ax.TickLabels = append(ax.TickLabels, fmt.Sprintf("%g", t))
	}
	return ax
}

// niceTicks picks about n ticks at multiples of 1, 2, or 5 times a
// power of ten covering [lo, hi].
func niceTicks(lo, hi float64, n int) []float64 {
	if n < 2 {
		n = 2
	}
	span := hi - lo
	step := math.Pow(10, math.Floor(math.Log10(span/float64(n))))
	for _, m := range []float64{1, 2, 5, 10} {
		if span/(step*m) <= float64(n) {
			step *= m
			break
		}
	}
	var ticks []float64
	for t := math.Ceil(lo/step) * step; t <= hi+step*1e-9; t += step {
		// Clean up floating point dust so labels print nicely.
		ticks = append(ticks, math.Round(t/step)*step)
	}
	return ticks
}
