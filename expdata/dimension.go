// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expdata

import (
	"strings"

	"golang.org/x/benchexp/hier"
	"golang.org/x/benchexp/numparse"
)

const (
	dimName = iota
	dimDescription
	dimParser
	dimType
	dimDirection
)

var dimensionFlags = []string{"name", "description", "parser", "dimension-type", "dimension-direction"}

// A DimensionBuilder builds a Dimension. It accepts no children.
type DimensionBuilder struct {
	hier.Node
	d      Dimension
	result *Dimension
}

func (b *DimensionBuilder) SetName(name string) error {
	return b.SetText(dimName, name, &b.d.Name)
}

func (b *DimensionBuilder) SetDescription(desc string) error {
	return b.SetText(dimDescription, desc, &b.d.Description)
}

// SetParser sets the parser for the dimension's values.
func (b *DimensionBuilder) SetParser(p numparse.Parser) error {
	if p == nil {
		return hier.Errorf(hier.ErrValue, b.Kind(), "parser", "", "nil parser")
	}
	desc := p.String()
	return b.Set(dimParser, desc,
		func() bool { return b.d.Parser.String() == desc },
		func() { b.d.Parser = p })
}

// SetParserSpec sets the parser described by desc. See
// numparse.ParseSpec for the syntax.
func (b *DimensionBuilder) SetParserSpec(desc string) error {
	p, err := numparse.ParseSpec(desc)
	if err != nil {
		return &hier.Error{Kind: hier.ErrValue, Builder: b.Kind(), Field: "parser", Text: desc, Err: err}
	}
	return b.SetParser(p)
}

// SetParserBounds sets a parser for the primitive type typeName with
// the given bounds. An empty bound keeps the type's full range.
func (b *DimensionBuilder) SetParserBounds(typeName, lower, upper string) error {
	if strings.TrimSpace(typeName) == "" {
		typeName = "long"
	}
	var lo, hi numparse.Number
	var err error
	if lower != "" {
		if lo, err = numparse.ParseBound(lower); err != nil {
			return &hier.Error{Kind: hier.ErrValue, Builder: b.Kind(), Field: "lower-bound", Text: lower, Err: err}
		}
	}
	if upper != "" {
		if hi, err = numparse.ParseBound(upper); err != nil {
			return &hier.Error{Kind: hier.ErrValue, Builder: b.Kind(), Field: "upper-bound", Text: upper, Err: err}
		}
	}
	p, err := numparse.New(typeName, lo, hi)
	if err != nil {
		return &hier.Error{Kind: hier.ErrValue, Builder: b.Kind(), Field: "parser", Text: typeName, Err: err}
	}
	return b.SetParser(p)
}

func (b *DimensionBuilder) SetType(t Type) error {
	return b.Set(dimType, t.String(),
		func() bool { return b.d.Type == t },
		func() { b.d.Type = t })
}

// SetTypeString sets the type from either of its name forms.
func (b *DimensionBuilder) SetTypeString(s string) error {
	t, err := ParseType(s)
	if err != nil {
		return &hier.Error{Kind: hier.ErrValue, Builder: b.Kind(), Field: "dimension-type", Text: s, Err: err}
	}
	return b.SetType(t)
}

func (b *DimensionBuilder) SetDirection(d Direction) error {
	return b.Set(dimDirection, d.String(),
		func() bool { return b.d.Direction == d },
		func() { b.d.Direction = d })
}

// SetDirectionString sets the direction from either of its name
// forms.
func (b *DimensionBuilder) SetDirectionString(s string) error {
	d, err := ParseDirection(s)
	if err != nil {
		return &hier.Error{Kind: hier.ErrValue, Builder: b.Kind(), Field: "dimension-direction", Text: s, Err: err}
	}
	return b.SetDirection(d)
}

func (b *DimensionBuilder) Compile() error {
	if err := b.RequireFlags(hier.Flag(dimName, dimParser, dimType, dimDirection)); err != nil {
		return err
	}
	d := b.d
	b.result = &d
	return nil
}
