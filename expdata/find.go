// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expdata

import (
	"sort"

	"golang.org/x/benchexp/numparse"
)

// Dimensions returns the dimensions of the run's values.
func (r *Run) Dimensions() DimensionSet { return r.dims }

// First returns the first point of the run.
func (r *Run) First() DataPoint { return r.Points[0] }

// Last returns the last point of the run.
func (r *Run) Last() DataPoint { return r.Points[len(r.Points)-1] }

// Column returns the values of dimension dim, one per point.
func (r *Run) Column(dim int) []numparse.Number {
	col := make([]numparse.Number, len(r.Points))
	for i, p := range r.Points {
		col[i] = p[dim]
	}
	return col
}

// Find returns the point of the run that holds the last value of
// dimension dim at or before q. A value is at or before q if it is
// <= q in an increasing dimension and >= q in a decreasing one. If
// several points hold that value, Find returns the earliest.
//
// If every value lies after q, the outcome depends on the dimension's
// type: for a time measure Find returns the first point, and for a
// solution quality it reports false.
func (r *Run) Find(dim int, q numparse.Number) (DataPoint, bool) {
	d := r.dims[dim]
	pts := r.Points
	// after reports whether v lies strictly after q.
	after := func(v numparse.Number) bool {
		c := v.Compare(q)
		if d.Direction.IsIncreasing() {
			return c > 0
		}
		return c < 0
	}
	// The column is monotonic, so the points after q form a suffix.
	n := sort.Search(len(pts), func(i int) bool { return after(pts[i][dim]) })
	if n == 0 {
		if d.Type.IsTimeMeasure() {
			return pts[0], true
		}
		return nil, false
	}
	v := pts[n-1][dim]
	first := sort.Search(n, func(i int) bool {
		c := pts[i][dim].Compare(v)
		if d.Direction.IsIncreasing() {
			return c >= 0
		}
		return c <= 0
	})
	return pts[first], true
}
