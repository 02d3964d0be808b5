// Copyright 2026 The Fieldplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import "image/color"

// A Theme carries the non-data styling of a plot. Use a named
// constructor for a preset, or build a custom Theme literal.
type Theme struct {
	Name string

	// Background fills the panel area.
	Background color.Color

	// Grid strokes the panel grid lines. A nil Grid draws none.
	Grid color.Color

	// Text colors axis labels, tick labels, and facet strips.
	Text color.Color

	// BaseSize is the base font size in points.
	BaseSize float64
}

// ThemeDefault is the gray-panel default styling.
func ThemeDefault() Theme {
	return Theme{
		Name:       "default",
		Background: color.RGBA{0xeb, 0xeb, 0xeb, 0xff},
		Grid:       color.White,
		Text:       color.Black,
		BaseSize:   11,
	}
}

// ThemeMinimal has no panel background and light gray grid lines.
func ThemeMinimal() Theme {
	return Theme{
		Name:       "minimal",
		Background: nil,
		Grid:       color.RGBA{0xd9, 0xd9, 0xd9, 0xff},
		Text:       color.Black,
		BaseSize:   11,
	}
}

// ThemeBW has a white panel with gray grid lines.
func ThemeBW() Theme {
	return Theme{
		Name:       "bw",
		Background: color.White,
		Grid:       color.RGBA{0xd9, 0xd9, 0xd9, 0xff},
		Text:       color.Black,
		BaseSize:   11,
	}
}

// ThemeClassic has a white panel and no grid.
func ThemeClassic() Theme {
	return Theme{
		Name:       "classic",
		Background: color.White,
		Grid:       nil,
		Text:       color.Black,
		BaseSize:   11,
	}
}
