// Copyright 2026 The Fieldplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chart builds layered plot descriptions over tables.
//
// A Plot is a persistent value: New seeds it with a data table and a
// base aesthetic mapping, and Add, WithFacet, WithScale, and
// WithTheme each return a new Plot, leaving the receiver unchanged.
// This makes partial plot specifications reusable, in the manner of
// additive grammar-of-graphics composition.
//
// Nothing is computed or validated until Resolve, the single terminal
// operation, which merges base and layer aesthetics, checks every
// referenced column, computes derived layer data (least-squares fits,
// box statistics), partitions facets into a panel grid, and returns a
// RenderPlan: a fully resolved, render-ready description that needs
// no further data lookups. Rendering itself lives elsewhere (see
// package svgplot); Resolve has no side effects.
package chart

import (
	"image/color"

	"github.com/fieldplot/fieldplot/table"
)

// A Channel is a visual property a data column can be mapped to.
type Channel string

const (
	X     Channel = "x"
	Y     Channel = "y"
	Color Channel = "color"
	Fill  Channel = "fill"
	Shape Channel = "shape"
	Size  Channel = "size"
	Alpha Channel = "alpha"
)

// An Aes maps visual channels to column names.
type Aes map[Channel]string

// merge returns base overridden per-channel by over.
func (base Aes) merge(over Aes) Aes {
	m := make(Aes, len(base)+len(over))
	for ch, col := range base {
		m[ch] = col
	}
	for ch, col := range over {
		m[ch] = col
	}
	return m
}

// GeomKind is the visual form a layer renders as.
type GeomKind int

const (
	GeomPoint GeomKind = iota
	GeomLine
	GeomBoxplot
	GeomSmooth
)

func (g GeomKind) String() string {
	switch g {
	case GeomPoint:
		return "point"
	case GeomLine:
		return "line"
	case GeomBoxplot:
		return "boxplot"
	case GeomSmooth:
		return "smooth"
	}
	return "unknown"
}

// A Layer is one visual contribution to a plot. Later layers draw on
// top of earlier ones.
type Layer struct {
	// Geom selects the visual form.
	Geom GeomKind

	// Aes maps columns to channels, overriding the plot's base
	// aesthetic per channel.
	Aes Aes

	// Fixed gives constant (non-mapped) visual values: a
	// color.Color for Color or Fill, a float64 for Size or Alpha,
	// an int for Shape.
	Fixed map[Channel]interface{}

	// Data, if non-nil, replaces the plot's table for this layer
	// only.
	Data *table.Table
}

// A Plot is an immutable, additive plot specification.
type Plot struct {
	data   *table.Table
	aes    Aes
	layers []Layer
	facet  *facetSpec
	scales map[Channel]Scale
	theme  Theme
}

type facetSpec struct {
	col  string
	cols int
}

// New returns a Plot over data with base aesthetic mapping aes.
func New(data *table.Table, aes Aes) Plot {
	return Plot{data: data, aes: aes, theme: ThemeDefault()}
}

// Add returns p with layer appended.
func (p Plot) Add(layer Layer) Plot {
	layers := make([]Layer, len(p.layers), len(p.layers)+1)
	copy(layers, p.layers)
	p.layers = append(layers, layer)
	return p
}

// WithFacet returns p split into one panel per distinct value of
// column col, tiled columnsPerRow panels to a row. A columnsPerRow of
// 0 picks a near-square grid.
func (p Plot) WithFacet(col string, columnsPerRow int) Plot {
	p.facet = &facetSpec{col, columnsPerRow}
	return p
}

// WithScale returns p with scale s bound to channel ch.
func (p Plot) WithScale(ch Channel, s Scale) Plot {
	scales := make(map[Channel]Scale, len(p.scales)+1)
	for k, v := range p.scales {
		scales[k] = v
	}
	scales[ch] = s
	p.scales = scales
	return p
}

// WithTheme returns p styled by theme.
func (p Plot) WithTheme(theme Theme) Plot {
	p.theme = theme
	return p
}

// defaultPalette is the categorical palette used when no explicit
// palette is bound to the color or fill channel. It cycles when there
// are more levels than colors.
var defaultPalette = []color.Color{
	color.RGBA{0x1b, 0x9e, 0x77, 0xff},
	color.RGBA{0xd9, 0x5f, 0x02, 0xff},
	color.RGBA{0x75, 0x70, 0xb3, 0xff},
	color.RGBA{0xe7, 0x29, 0x8a, 0xff},
	color.RGBA{0x66, 0xa6, 0x1e, 0xff},
	color.RGBA{0xe6, 0xab, 0x02, 0xff},
	color.RGBA{0xa6, 0x76, 0x1d, 0xff},
	color.RGBA{0x66, 0x66, 0x66, 0xff},
}
