// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package satmath implements saturating int64 arithmetic.
//
// Every operation clamps its result to [math.MinInt64, math.MaxInt64]
// instead of wrapping around.
package satmath

import "math"

// Add returns a+b, clamped to the int64 range.
func Add(a, b int64) int64 {
	s := a + b
	// Overflow happens only if both operands have the same sign
	// and the sign of the sum differs.
	if (a >= 0) == (b >= 0) && (s >= 0) != (a >= 0) {
		if a >= 0 {
			return math.MaxInt64
		}
		return math.MinInt64
	}
	return s
}

// Sub returns a-b, clamped to the int64 range.
func Sub(a, b int64) int64 {
	if b == math.MinInt64 {
		// -b is not representable.
		if a >= 0 {
			return math.MaxInt64
		}
		return a - b
	}
	return Add(a, -b)
}

// Mul returns a*b, clamped to the int64 range.
func Mul(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	neg := (a < 0) != (b < 0)
	p := a * b
	if p/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		if neg {
			return math.MinInt64
		}
		return math.MaxInt64
	}
	return p
}

// Abs returns |a|, with Abs(math.MinInt64) == math.MaxInt64.
func Abs(a int64) int64 {
	if a >= 0 {
		return a
	}
	if a == math.MinInt64 {
		return math.MaxInt64
	}
	return -a
}

// FloorDiv returns a/b rounded toward negative infinity.
// It panics if b is 0.
func FloorDiv(a, b int64) int64 {
	if b == -1 {
		return Sub(0, a)
	}
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
