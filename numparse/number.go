// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package numparse implements the numbers stored in experiment data
// and the parsers that read them from text.
//
// A Number is either an exact 64-bit integer or a float64. Parsers
// define the numeric domain of a dimension: its kind and its
// inclusive bounds.
package numparse

import (
	"fmt"
	"math"
	"strconv"
)

// A Kind is the representation of a Number.
type Kind uint8

const (
	// Invalid is the Kind of the zero Number.
	Invalid Kind = iota
	// Int numbers are exact signed 64-bit integers.
	Int
	// Float numbers are IEEE 754 binary64 values.
	Float
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case Int:
		return "int"
	case Float:
		return "float"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// A Number is an integer or floating-point value. The zero Number is
// invalid. Numbers are comparable with ==, which compares both the
// kind and the value.
type Number struct {
	kind Kind
	i    int64
	f    float64
}

// IntOf returns the integer Number v.
func IntOf(v int64) Number {
	return Number{kind: Int, i: v}
}

// FloatOf returns the floating-point Number v.
func FloatOf(v float64) Number {
	return Number{kind: Float, f: v}
}

// Kind returns the representation of n.
func (n Number) Kind() Kind {
	return n.kind
}

// IsValid reports whether n is not the zero Number.
func (n Number) IsValid() bool {
	return n.kind != Invalid
}

// IsInt reports whether n is an integer Number.
func (n Number) IsInt() bool {
	return n.kind == Int
}

// Int returns n as an int64. Floats are truncated toward zero and
// clamped to the int64 range; NaN yields 0.
func (n Number) Int() int64 {
	if n.kind == Int {
		return n.i
	}
	switch {
	case n.f != n.f:
		return 0
	case n.f >= math.MaxInt64:
		return math.MaxInt64
	case n.f <= math.MinInt64:
		return math.MinInt64
	}
	return int64(n.f)
}

// Float returns n as a float64.
func (n Number) Float() float64 {
	if n.kind == Int {
		return float64(n.i)
	}
	return n.f
}

// IsIntegral reports whether n holds a whole value that fits an
// int64.
func (n Number) IsIntegral() bool {
	if n.kind == Int {
		return true
	}
	return n.f == math.Trunc(n.f) && n.f >= math.MinInt64 && n.f < math.MaxInt64
}

// Compare returns -1, 0 or +1 depending on whether n is less than,
// equal to, or greater than o. Integers and floats are compared by
// value without losing integer precision. NaN sorts after every
// other value.
func (n Number) Compare(o Number) int {
	switch {
	case n.kind == Int && o.kind == Int:
		return cmpInt(n.i, o.i)
	case n.kind == Int:
		return cmpIntFloat(n.i, o.f)
	case o.kind == Int:
		return -cmpIntFloat(o.i, n.f)
	}
	return cmpFloat(n.f, o.f)
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	case a == b:
		return 0
	}
	// At least one NaN.
	an, bn := a != a, b != b
	switch {
	case an && bn:
		return 0
	case an:
		return 1
	}
	return -1
}

func cmpIntFloat(i int64, f float64) int {
	switch {
	case f != f:
		return -1
	case f >= math.MaxInt64:
		// 2^63 and beyond exceed every int64.
		return -1
	case f < math.MinInt64:
		return 1
	}
	t := math.Trunc(f)
	if c := cmpInt(i, int64(t)); c != 0 {
		return c
	}
	switch {
	case f > t:
		return -1
	case f < t:
		return 1
	}
	return 0
}

// Append appends the canonical text form of n to buf. Integers are
// written in decimal, floats with the fewest digits that parse back
// to the same value.
func (n Number) Append(buf []byte) []byte {
	switch n.kind {
	case Int:
		return strconv.AppendInt(buf, n.i, 10)
	case Float:
		return strconv.AppendFloat(buf, n.f, 'g', -1, 64)
	}
	return append(buf, "<invalid>"...)
}

// String returns the canonical text form of n.
func (n Number) String() string {
	return string(n.Append(make([]byte, 0, 24)))
}

// As converts n to kind k. Converting a float to Int requires an
// integral value.
func (n Number) As(k Kind) (Number, bool) {
	switch {
	case n.kind == k:
		return n, true
	case k == Float && n.kind == Int:
		return FloatOf(float64(n.i)), true
	case k == Int && n.kind == Float && n.IsIntegral():
		return IntOf(int64(n.f)), true
	}
	return Number{}, false
}
