// Copyright 2026 The Fieldplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"math/rand"
	"sort"
)

// SampleN draws n rows from each group of g without replacement. The
// draw is pseudo-random but fully determined by seed, so sampling
// pipelines are reproducible; callers that want a fresh sample each
// run pass a time-derived seed. Within each group the sampled rows
// keep their original order.
//
// SampleN fails with an *InsufficientRowsError if any group has fewer
// than n rows.
func SampleN(g *Grouped, n int, seed int64) (*Grouped, error) {
	for _, grp := range g.groups {
		if len(grp.rows) < n {
			return nil, &InsufficientRowsError{grp.label, n, len(grp.rows)}
		}
	}

	rng := rand.New(rand.NewSource(seed))
	ng := &Grouped{src: g.src, keys: g.keys, groups: make([]group, len(g.groups))}
	for i, grp := range g.groups {
		perm := rng.Perm(len(grp.rows))[:n]
		sort.Ints(perm)
		rows := make([]int, n)
		for j, p := range perm {
			rows[j] = grp.rows[p]
		}
		ng.groups[i] = group{label: grp.label, rows: rows}
	}
	return ng, nil
}
