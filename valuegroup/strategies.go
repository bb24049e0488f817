// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package valuegroup

import (
	"math"

	"golang.org/x/benchexp/internal/satmath"
	"golang.org/x/benchexp/numparse"
)

var powerBases = []int64{2, 10, 100, 1000, 10000}

var intSteps = []int64{
	1, 2, 3, 4, 5, 10, 15, 20, 25, 30, 40, 50, 75,
	100, 200, 250, 500, 750, 1000, 1500, 2000, 2500, 5000,
	1e4, 1e5, 1e6, 1e7, 1e8, 1e9, 1e10, 1e11, 1e12,
}

var floatSteps = []float64{
	1e-30, 1e-24, 1e-21, 1e-18, 1e-15, 1e-12, 1e-9, 1e-6,
	1e-5, 1e-4, 1e-3, 1e-2, 0.1, 0.125, 1.0 / 3, 0.25, 0.5,
	1, 1.5, 2, 2.5, 3, 5, 7.5, 10, 15, 20, 25, 30, 40, 50, 75,
	100, 200, 250, 500, 750, 1000, 1500, 2000, 2500, 5000,
	1e4, 1e5, 1e6, 1e7, 1e8, 1e9, 1e10, 1e12, 1e15, 1e18,
	1e20, 1e21, 1e24, 1e27, 1e30, 1e35, 1e40, 1e50, 1e60,
	1e70, 1e100, 1e200, 1e300,
}

// maxBuckets bounds the number of buckets, empty or not, a Multiples
// candidate may span.
const maxBuckets = 1000

func (s *search) powers() {
	for _, b := range powerBases {
		var ok bool
		if s.isInt() {
			s.begin(Powers, numparse.IntOf(b))
			ok = s.sweep(numparse.IntOf(math.MinInt64), intPowers(b), 0)
		} else {
			s.begin(Powers, numparse.FloatOf(float64(b)))
			ok = s.sweep(numparse.FloatOf(math.Inf(-1)), floatPowers(float64(b)), 0)
		}
		if ok {
			s.finish()
		}
	}
}

// intPowers returns the ladder
//
//	MinInt64, -b^k, ..., -b, -1, 0, b, ..., b^k, MaxInt64]
//
// where b^k is the largest power of b that fits an int64.
func intPowers(b int64) ladder {
	top := b
	for next := satmath.Mul(top, b); next != math.MaxInt64; next = satmath.Mul(top, b) {
		top = next
	}
	return func(lo numparse.Number) (numparse.Number, bool, bool) {
		x := lo.Int()
		switch {
		case x == math.MinInt64:
			return numparse.IntOf(-top), false, true
		case x < 0:
			return numparse.IntOf(x / b), false, true
		case x == 0:
			return numparse.IntOf(b), false, true
		}
		hi := satmath.Mul(x, b)
		return numparse.IntOf(hi), hi == math.MaxInt64, true
	}
}

// floatPowers returns the ladder
//
//	-Inf, -b^k, ..., -b^j, 0, b^j, ..., b^k, +Inf]
//
// where b^k is the largest finite power of b and b^j the smallest
// non-zero one.
func floatPowers(b float64) ladder {
	pow := func(k int) float64 { return math.Pow(b, float64(k)) }
	top := int(math.Log(math.MaxFloat64)/math.Log(b)) + 1
	for math.IsInf(pow(top), 1) {
		top--
	}
	bottom := int(math.Log(math.SmallestNonzeroFloat64)/math.Log(b)) - 1
	for pow(bottom) == 0 {
		bottom++
	}

	k := top
	return func(lo numparse.Number) (numparse.Number, bool, bool) {
		x := lo.Float()
		switch {
		case math.IsInf(x, -1):
			k = top
			return numparse.FloatOf(-pow(k)), false, true
		case x < 0:
			k--
			hi := -pow(k)
			if hi == 0 {
				hi = 0 // drop the sign
			}
			return numparse.FloatOf(hi), false, true
		case x == 0:
			k = bottom
			return numparse.FloatOf(pow(k)), false, true
		}
		k++
		hi := pow(k)
		return numparse.FloatOf(hi), math.IsInf(hi, 1), true
	}
}

func (s *search) multiples() {
	if s.isInt() {
		for _, step := range intSteps {
			s.begin(Multiples, numparse.IntOf(step))
			if s.intMultiples(step) {
				s.finish()
			}
		}
		return
	}
	for _, step := range floatSteps {
		s.begin(Multiples, numparse.FloatOf(step))
		if s.floatMultiples(step) {
			s.finish()
		}
	}
}

func (s *search) intMultiples(step int64) bool {
	first, last := s.values[0].Value.Int(), s.values[len(s.values)-1].Value.Int()
	if step > satmath.Sub(last, first) {
		return false
	}
	lo, hi := satmath.FloorDiv(first, step), satmath.FloorDiv(last, step)
	if satmath.Add(satmath.Sub(hi, lo), 1) > maxBuckets {
		return false
	}
	// The start saturates at MinInt64, which can shift the grid by
	// one bucket.
	start := satmath.Mul(lo, step)
	return s.sweep(numparse.IntOf(start), func(lo numparse.Number) (numparse.Number, bool, bool) {
		hi := satmath.Add(lo.Int(), step)
		return numparse.IntOf(hi), hi == math.MaxInt64, true
	}, maxBuckets+1)
}

func (s *search) floatMultiples(step float64) bool {
	first, last := s.values[0].Value.Float(), s.values[len(s.values)-1].Value.Float()
	if math.IsInf(first, 0) || math.IsInf(last, 0) || step > last-first {
		return false
	}
	lo, hi := math.Floor(first/step), math.Floor(last/step)
	if !(hi-lo+1 <= maxBuckets) {
		return false
	}
	// Bucket indexes must be exact integers.
	if math.Abs(lo) >= 1<<53 || math.Abs(hi) >= 1<<53 {
		return false
	}
	k := lo
	start := k * step
	if start > first {
		k--
		start = k * step
	}
	if start == 0 {
		start = 0 // drop the sign
	}
	// Bounds are computed from the bucket index so rounding errors do
	// not accumulate. Once k is too large to increment, the ladder
	// stalls and the step is rejected.
	return s.sweep(numparse.FloatOf(start), func(lo numparse.Number) (numparse.Number, bool, bool) {
		k++
		hi := k * step
		return numparse.FloatOf(hi), false, hi > lo.Float()
	}, maxBuckets+1)
}
