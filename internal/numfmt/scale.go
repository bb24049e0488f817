// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package numfmt formats numbers and group bounds for people, using
// SI or binary prefixes and a common precision.
package numfmt

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/benchexp/numparse"
	"golang.org/x/benchexp/valuegroup"
)

// A Class specifies what class of prefixes is in use.
type Class int

const (
	// Decimal scales by powers of 1000 with SI prefixes (k, M, ...).
	Decimal Class = iota
	// Binary scales by powers of 1024 with IEC prefixes (Ki, Mi,
	// ...).
	Binary
)

func (c Class) String() string {
	switch c {
	case Decimal:
		return "Decimal"
	case Binary:
		return "Binary"
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

// ClassOf returns Binary for groupings into powers of two and Decimal
// otherwise.
func ClassOf(gs *valuegroup.Groups) Class {
	if gs.Mode == valuegroup.Powers && gs.Param.Float() == 2 {
		return Binary
	}
	return Decimal
}

// A Scaler represents a scaling factor for a number and its prefix.
type Scaler struct {
	Prec   int     // Digits after the decimal point
	Factor float64 // Unscaled value of 1 Prefix (e.g., 1 k => 1000)
	Prefix string  // Prefix ("k", "M", "Ki", etc)
}

// NoOpScaler formats numbers in their canonical form, with no prefix.
var NoOpScaler = Scaler{-1, 1, ""}

// Append appends n formatted according to s to buf. Integers that s
// does not scale are written exactly, and infinities and NaN are
// written in their canonical form.
func (s Scaler) Append(buf []byte, n numparse.Number) []byte {
	f := n.Float()
	if s.Prec < 0 || math.IsInf(f, 0) || math.IsNaN(f) || (n.IsInt() && s.Factor == 1) {
		return n.Append(buf)
	}
	buf = strconv.AppendFloat(buf, f/s.Factor, 'f', s.Prec, 64)
	return append(buf, s.Prefix...)
}

// Format formats n according to s. For example, if s was computed for
// class Decimal, Format(123456789) may return "123.5M".
func (s Scaler) Format(n numparse.Number) string {
	return string(s.Append(make([]byte, 0, 20), n))
}

// Range formats the range of g, such as "[1.000k,10.00k)".
func (s Scaler) Range(g valuegroup.Group) string {
	buf := make([]byte, 0, 32)
	buf = append(buf, '[')
	buf = s.Append(buf, g.Lower)
	buf = append(buf, ',')
	buf = s.Append(buf, g.Upper)
	if g.UpperExclusive {
		buf = append(buf, ')')
	} else {
		buf = append(buf, ']')
	}
	return string(buf)
}

type factor struct {
	factor float64
	prefix string
	// Thresholds for 100.0, 10.00, 1.000.
	t100, t10, t1 float64
}

var siFactors = mkSIFactors()
var iecFactors = mkIECFactors()
var sigfigs, sigfigsBase = mkSigfigs()

func mkSIFactors() []factor {
	// Thresholds are parsed from printed text so that they match
	// how printing itself rounds.
	var factors []factor
	exp := 18
	for _, p := range []string{"E", "P", "T", "G", "M", "k", "", "m", "µ", "n"} {
		t100, _ := strconv.ParseFloat(fmt.Sprintf("99.995e%d", exp), 64)
		t10, _ := strconv.ParseFloat(fmt.Sprintf("9.9995e%d", exp), 64)
		t1, _ := strconv.ParseFloat(fmt.Sprintf(".99995e%d", exp), 64)
		factors = append(factors, factor{math.Pow(10, float64(exp)), p, t100, t10, t1})
		exp -= 3
	}
	return factors
}

func mkIECFactors() []factor {
	var factors []factor
	exp := 60
	// There are no fractional binary prefixes. Values in [1000,
	// 1024) of one factor are rendered with the next smaller one.
	for _, p := range []string{"Ei", "Pi", "Ti", "Gi", "Mi", "Ki", ""} {
		t100, _ := strconv.ParseFloat(fmt.Sprintf("0x1.8ffae147ae148p%d", 6+exp), 64) // 99.995
		t10, _ := strconv.ParseFloat(fmt.Sprintf("0x1.3ffbe76c8b439p%d", 3+exp), 64)  // 9.9995
		t1, _ := strconv.ParseFloat(fmt.Sprintf("0x1.fff972474538fp%d", -1+exp), 64)  // .99995
		factors = append(factors, factor{math.Pow(2, float64(exp)), p, t100, t10, t1})
		exp -= 10
	}
	return factors
}

func mkSigfigs() ([]float64, int) {
	var sigfigs []float64
	// Print up to 10 digits after the decimal place.
	for exp := -1; exp > -9; exp-- {
		thresh, _ := strconv.ParseFloat(fmt.Sprintf("9.9995e%d", exp), 64)
		sigfigs = append(sigfigs, thresh)
	}
	// sigfigs[0] is the threshold for 3 digits after the decimal.
	return sigfigs, 3
}

// Scale formats n using at least three significant digits, appending
// a prefix of class cls.
func Scale(n numparse.Number, cls Class) string {
	return CommonScale([]numparse.Number{n}, cls).Format(n)
}

// CommonScale returns a Scaler to apply to all of nums. This scale
// shows at least three significant digits for every finite value.
func CommonScale(nums []numparse.Number, cls Class) Scaler {
	// The common scale is determined by the finite non-zero value
	// closest to zero.
	var min float64
	for _, n := range nums {
		v := math.Abs(n.Float())
		if v != 0 && !math.IsInf(v, 0) && !math.IsNaN(v) && (min == 0 || v < min) {
			min = v
		}
	}
	if min == 0 {
		return Scaler{3, 1, ""}
	}

	var factors []factor
	switch cls {
	default:
		panic(fmt.Sprintf("bad Class %v", cls))
	case Decimal:
		factors = siFactors
	case Binary:
		factors = iecFactors
	}

	for _, factor := range factors {
		switch {
		case min >= factor.t100:
			return Scaler{1, factor.factor, factor.prefix}
		case min >= factor.t10:
			return Scaler{2, factor.factor, factor.prefix}
		case min >= factor.t1:
			return Scaler{3, factor.factor, factor.prefix}
		}
	}

	// The value is less than the smallest factor. Print it using
	// the smallest factor and more precision to achieve the
	// desired sigfigs.
	factor := factors[len(factors)-1]
	val := min / factor.factor
	for i, thresh := range sigfigs {
		if val >= thresh || i == len(sigfigs)-1 {
			return Scaler{i + sigfigsBase, factor.factor, factor.prefix}
		}
	}

	panic("not reachable")
}

// GroupScale returns a common Scaler for the bounds of gs.
func GroupScale(gs *valuegroup.Groups) Scaler {
	bounds := make([]numparse.Number, 0, 2*len(gs.Groups))
	for _, g := range gs.Groups {
		bounds = append(bounds, g.Lower, g.Upper)
	}
	return CommonScale(bounds, ClassOf(gs))
}
