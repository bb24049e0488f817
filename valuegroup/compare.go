// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package valuegroup

import (
	"cmp"
	"math"

	"github.com/aclements/go-moremath/stats"
)

// Compare returns a negative number if a is a better grouping than b,
// a positive number if b is better, and 0 if they rank equally.
//
// Groupings are ranked by, in order: how far the number of groups is
// from [MinGroups, MaxGroups], the coefficient of variation of the
// group counts, the number of groups, the mode (Distinct, then Powers,
// then Multiples), and the parameter.
func Compare(a, b *Groups) int {
	if c := cmp.Compare(a.distance(), b.distance()); c != 0 {
		return c
	}
	if c := cmp.Compare(a.imbalance(), b.imbalance()); c != 0 {
		return c
	}
	if c := cmp.Compare(len(a.Groups), len(b.Groups)); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Mode, b.Mode); c != 0 {
		return c
	}
	switch {
	case !a.Param.IsValid() && !b.Param.IsValid():
		return 0
	case !a.Param.IsValid():
		return -1
	case !b.Param.IsValid():
		return 1
	}
	return a.Param.Compare(b.Param)
}

// distance returns how many groups gs is outside its window.
func (gs *Groups) distance() int {
	n := len(gs.Groups)
	switch {
	case n < gs.MinGroups:
		return gs.MinGroups - n
	case gs.MaxGroups > 0 && n > gs.MaxGroups:
		return n - gs.MaxGroups
	}
	return 0
}

// imbalance returns the coefficient of variation of the group counts.
func (gs *Groups) imbalance() float64 {
	if len(gs.Groups) < 2 {
		return 0
	}
	xs := make([]float64, len(gs.Groups))
	for i, g := range gs.Groups {
		xs[i] = float64(g.Count)
	}
	s := stats.Sample{Xs: xs}
	cv := s.StdDev() / s.Mean()
	if math.IsNaN(cv) {
		return 0
	}
	return cv
}
