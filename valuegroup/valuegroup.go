// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package valuegroup partitions observed numbers into a small number
// of contiguous, human-friendly ranges.
//
// A Grouper tries several strategies (distinct values, powers of a
// base, multiples of a step) and keeps the candidate that Compare
// ranks best. Every result covers each input value exactly once with
// ascending, non-overlapping groups.
package valuegroup

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/benchexp/numparse"
)

// A Mode selects the strategies a Grouper considers.
type Mode uint8

const (
	// Distinct puts each distinct value in its own group.
	Distinct Mode = iota
	// Powers groups values between successive powers of a base.
	Powers
	// Multiples groups values between successive multiples of a step.
	Multiples
	// Any considers all strategies.
	Any
)

var modeNames = [...]string{"distinct", "powers", "multiples", "any"}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode returns the Mode named s, ignoring case.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(s, name) {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown grouping mode %q", s)
}

var (
	// ErrNoValues is returned when there is nothing to group.
	ErrNoValues = errors.New("no values to group")
	// ErrUnsorted is returned when values are not strictly ascending.
	ErrUnsorted = errors.New("values not strictly ascending")
	// ErrKind is returned when values mix integers and floats or
	// are not valid numbers.
	ErrKind = errors.New("values must all be integers or all floats")
	// ErrCount is returned for a value observed fewer than once.
	ErrCount = errors.New("value count must be positive")
)

// A Value is a distinct observed number and how often it occurs.
type Value struct {
	Value numparse.Number
	Count int
}

// Aggregate sorts nums and merges equal numbers into Values. If nums
// mixes integers and floats, all are converted to floats. NaN is
// rejected.
func Aggregate(nums []numparse.Number) ([]Value, error) {
	kind := numparse.Invalid
	for _, n := range nums {
		switch {
		case !n.IsValid():
			return nil, fmt.Errorf("%w: invalid number", ErrKind)
		case n.Kind() == numparse.Float && n.Float() != n.Float():
			return nil, fmt.Errorf("%w: NaN", ErrKind)
		case kind == numparse.Invalid:
			kind = n.Kind()
		case kind != n.Kind():
			kind = numparse.Float
		}
	}
	sorted := make([]numparse.Number, len(nums))
	for i, n := range nums {
		sorted[i], _ = n.As(kind)
	}
	slices.SortFunc(sorted, numparse.Number.Compare)

	var out []Value
	for _, n := range sorted {
		if len(out) > 0 && out[len(out)-1].Value.Compare(n) == 0 {
			out[len(out)-1].Count++
			continue
		}
		out = append(out, Value{n, 1})
	}
	return out, nil
}

// check validates the input of Grouper.Group.
func check(values []Value) error {
	if len(values) == 0 {
		return ErrNoValues
	}
	kind := values[0].Value.Kind()
	for i, v := range values {
		if !v.Value.IsValid() || v.Value.Kind() != kind {
			return fmt.Errorf("%w: value %d is %v", ErrKind, i, v.Value)
		}
		if kind == numparse.Float && v.Value.Float() != v.Value.Float() {
			return fmt.Errorf("%w: value %d is NaN", ErrKind, i)
		}
		if v.Count < 1 {
			return fmt.Errorf("%w: %v occurs %d times", ErrCount, v.Value, v.Count)
		}
		if i > 0 && values[i-1].Value.Compare(v.Value) >= 0 {
			return fmt.Errorf("%w: %v after %v", ErrUnsorted, v.Value, values[i-1].Value)
		}
	}
	return nil
}

// A Group is a range of values. The range is [Lower, Upper) if
// UpperExclusive is set and [Lower, Upper] otherwise.
type Group struct {
	Lower, Upper   numparse.Number
	UpperExclusive bool

	// Size is the number of distinct values in the group.
	Size int
	// Count is the total number of occurrences of those values.
	Count int
}

// Contains reports whether n lies in g's range.
func (g Group) Contains(n numparse.Number) bool {
	if n.Compare(g.Lower) < 0 {
		return false
	}
	c := n.Compare(g.Upper)
	return c < 0 || (c == 0 && !g.UpperExclusive)
}

// Append appends the text form of g's range, such as "[0,10)", to buf.
func (g Group) Append(buf []byte) []byte {
	buf = append(buf, '[')
	buf = g.Lower.Append(buf)
	buf = append(buf, ',')
	buf = g.Upper.Append(buf)
	if g.UpperExclusive {
		return append(buf, ')')
	}
	return append(buf, ']')
}

func (g Group) String() string {
	return string(g.Append(nil))
}

// Groups is the result of grouping a set of values.
type Groups struct {
	// Mode is the strategy that produced the groups. It is never Any.
	Mode Mode
	// Param is the base for Powers or the step for Multiples. It is
	// the invalid Number for Distinct.
	Param numparse.Number
	// Groups are ascending and non-overlapping.
	Groups []Group

	// MinGroups and MaxGroups are the window the Grouper aimed for.
	MinGroups, MaxGroups int
}

// Index returns the index of the group containing n.
func (gs *Groups) Index(n numparse.Number) (int, bool) {
	i, found := slices.BinarySearchFunc(gs.Groups, n, func(g Group, n numparse.Number) int {
		switch {
		case g.Contains(n):
			return 0
		case n.Compare(g.Lower) < 0:
			return 1
		}
		return -1
	})
	return i, found
}

// Count returns the total number of occurrences over all groups.
func (gs *Groups) Count() int {
	n := 0
	for _, g := range gs.Groups {
		n += g.Count
	}
	return n
}

func (gs *Groups) String() string {
	var b strings.Builder
	b.WriteString(gs.Mode.String())
	if gs.Param.IsValid() {
		fmt.Fprintf(&b, "(%v)", gs.Param)
	}
	for i, g := range gs.Groups {
		if i == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteByte(',')
		}
		b.Write(g.Append(nil))
	}
	return b.String()
}
