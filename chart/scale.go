// Copyright 2026 The Fieldplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"fmt"
	"image/color"
)

// Transform is an axis transform applied by a Scale bound to the x or
// y channel.
type Transform int

const (
	// LinearTransform leaves data values unchanged.
	LinearTransform Transform = iota

	// Log10Transform plots the base-10 logarithm of the data.
	// Non-positive data under a log scale fails resolution.
	Log10Transform
)

// A Scale overrides how a channel maps data to visual values: an axis
// transform for x/y, or a discrete palette for color/fill.
type Scale struct {
	Transform Transform
	Palette   []color.Color
}

// Log10 returns a logarithmic axis scale.
func Log10() Scale {
	return Scale{Transform: Log10Transform}
}

// Palette returns a manual discrete palette scale. At resolution the
// palette must have at least as many colors as the channel has
// distinct values, or Resolve fails with a *PaletteTooSmallError.
func Palette(colors ...color.Color) Scale {
	return Scale{Palette: colors}
}

// PaletteTooSmallError reports a manual palette with fewer colors
// than the mapped column has distinct values.
type PaletteTooSmallError struct {
	Channel Channel
	Levels  int
	Colors  int
}

func (e *PaletteTooSmallError) Error() string {
	return fmt.Sprintf("palette for %q has %d colors; need %d", string(e.Channel), e.Colors, e.Levels)
}
