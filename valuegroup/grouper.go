// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package valuegroup

import (
	"fmt"
	"slices"
	"sync"

	"golang.org/x/benchexp/numparse"
)

// A Grouper partitions values into groups. The zero Grouper has no
// preference on the number of groups and no capacity limit.
//
// A Grouper is safe for concurrent use.
type Grouper struct {
	// MinGroups and MaxGroups give the preferred number of groups.
	// MaxGroups <= 0 means no upper preference.
	MinGroups, MaxGroups int

	// MaxCapacity, if positive, rejects Powers and Multiples
	// candidates with more groups than this.
	MaxCapacity int
}

type scratch struct {
	best, cur []Group
}

var scratchPool = sync.Pool{New: func() any { return new(scratch) }}

// Group partitions values, which must be sorted strictly ascending and
// all of one kind, using the strategies selected by mode. If every
// candidate of mode is rejected, the result is the Distinct grouping.
func (g *Grouper) Group(mode Mode, values []Value) (*Groups, error) {
	if mode > Any {
		return nil, fmt.Errorf("unknown grouping mode %v", mode)
	}
	if err := check(values); err != nil {
		return nil, err
	}

	sc := scratchPool.Get().(*scratch)
	s := search{g: g, values: values}
	s.best.Groups, s.cur.Groups = sc.best[:0], sc.cur[:0]

	switch mode {
	case Distinct:
		s.distinct()
	case Powers:
		s.powers()
	case Multiples:
		s.multiples()
	case Any:
		s.distinct()
		s.powers()
		s.multiples()
	}
	if !s.found {
		s.distinct()
	}

	out := s.best
	out.Groups = slices.Clone(s.best.Groups)
	sc.best, sc.cur = s.best.Groups[:0], s.cur.Groups[:0]
	scratchPool.Put(sc)
	return &out, nil
}

// search holds the state of one Group call. cur is the candidate
// being built and best the best finished candidate so far.
type search struct {
	g         *Grouper
	values    []Value
	best, cur Groups
	found     bool
}

func (s *search) isInt() bool {
	return s.values[0].Value.IsInt()
}

func (s *search) begin(mode Mode, param numparse.Number) {
	s.cur = Groups{
		Mode:      mode,
		Param:     param,
		Groups:    s.cur.Groups[:0],
		MinGroups: s.g.MinGroups,
		MaxGroups: s.g.MaxGroups,
	}
}

// finish offers cur as a candidate.
func (s *search) finish() {
	if !s.found || Compare(&s.cur, &s.best) < 0 {
		s.best, s.cur = s.cur, s.best
		s.found = true
	}
}

// A ladder returns the upper bound of the bucket starting at lo and
// whether that bound is inclusive. ok is false if no further bucket
// can be formed.
type ladder func(lo numparse.Number) (hi numparse.Number, inclusive, ok bool)

// sweep fills cur with the non-empty buckets of the ladder starting
// at lo. It reports false if the values cannot be partitioned this
// way: the first value is below lo, the ladder stalls or ends early,
// more than limit buckets are needed (when limit > 0), or the
// candidate exceeds MaxCapacity.
func (s *search) sweep(lo numparse.Number, next ladder, limit int) bool {
	vals := s.values
	if vals[0].Value.Compare(lo) < 0 {
		return false
	}
	for steps := 0; len(vals) > 0; steps++ {
		if limit > 0 && steps >= limit {
			return false
		}
		hi, inclusive, ok := next(lo)
		if !ok || hi.Compare(lo) <= 0 {
			return false
		}
		g := Group{Lower: lo, Upper: hi, UpperExclusive: !inclusive}
		for len(vals) > 0 && g.Contains(vals[0].Value) {
			g.Size++
			g.Count += vals[0].Count
			vals = vals[1:]
		}
		if g.Size > 0 {
			if c := s.g.MaxCapacity; c > 0 && len(s.cur.Groups) >= c {
				return false
			}
			s.cur.Groups = append(s.cur.Groups, g)
		}
		if inclusive && len(vals) > 0 {
			return false
		}
		lo = hi
	}
	return true
}

func (s *search) distinct() {
	s.begin(Distinct, numparse.Number{})
	for _, v := range s.values {
		s.cur.Groups = append(s.cur.Groups, Group{
			Lower: v.Value, Upper: v.Value,
			Size: 1, Count: v.Count,
		})
	}
	s.finish()
}
