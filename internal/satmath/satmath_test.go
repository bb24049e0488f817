// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package satmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	maxI = math.MaxInt64
	minI = math.MinInt64
)

func TestAdd(t *testing.T) {
	for _, tc := range []struct{ a, b, want int64 }{
		{1, 2, 3},
		{-1, -2, -3},
		{maxI, 0, maxI},
		{maxI, 1, maxI},
		{maxI, maxI, maxI},
		{minI, -1, minI},
		{minI, minI, minI},
		{minI, maxI, -1},
		{maxI - 5, 5, maxI},
		{minI + 5, -5, minI},
	} {
		assert.Equal(t, tc.want, Add(tc.a, tc.b), "Add(%d, %d)", tc.a, tc.b)
		assert.Equal(t, tc.want, Add(tc.b, tc.a), "Add(%d, %d)", tc.b, tc.a)
	}
}

func TestSub(t *testing.T) {
	for _, tc := range []struct{ a, b, want int64 }{
		{3, 2, 1},
		{minI, 1, minI},
		{maxI, -1, maxI},
		{0, minI, maxI},
		{-1, minI, maxI},
		{-2, minI, maxI - 1},
		{minI, minI, 0},
		{maxI, maxI, 0},
		{minI, maxI, minI},
	} {
		assert.Equal(t, tc.want, Sub(tc.a, tc.b), "Sub(%d, %d)", tc.a, tc.b)
	}
}

func TestMul(t *testing.T) {
	for _, tc := range []struct{ a, b, want int64 }{
		{3, 4, 12},
		{-3, 4, -12},
		{0, minI, 0},
		{maxI, 2, maxI},
		{maxI, -2, minI},
		{minI, -1, maxI},
		{-1, minI, maxI},
		{minI, 1, minI},
		{1e18, 10, maxI},
		{-1e18, 10, minI},
		{1 << 62, 2, maxI},
		{-(1 << 62), 2, minI},
	} {
		assert.Equal(t, tc.want, Mul(tc.a, tc.b), "Mul(%d, %d)", tc.a, tc.b)
	}
}

func TestAbs(t *testing.T) {
	assert.Equal(t, int64(5), Abs(-5))
	assert.Equal(t, int64(5), Abs(5))
	assert.Equal(t, int64(maxI), Abs(minI))
	assert.Equal(t, int64(maxI), Abs(maxI))
}

func TestFloorDiv(t *testing.T) {
	for _, tc := range []struct{ a, b, want int64 }{
		{7, 5, 1},
		{-7, 5, -2},
		{-10, 5, -2},
		{7, -5, -2},
		{-7, -5, 1},
		{minI, 3, -3074457345618258603},
		{maxI, 1, maxI},
		{minI, -1, maxI},
	} {
		assert.Equal(t, tc.want, FloorDiv(tc.a, tc.b), "FloorDiv(%d, %d)", tc.a, tc.b)
	}
}
