// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package numparse

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrSyntax indicates that a text is not a number.
	ErrSyntax = errors.New("invalid syntax")
	// ErrRange indicates that a number does not fit its representation.
	ErrRange = errors.New("value out of range")
	// ErrBounds indicates that a number lies outside a parser's bounds.
	ErrBounds = errors.New("value out of bounds")
	// ErrKind indicates a Number of the wrong kind.
	ErrKind = errors.New("wrong kind of number")
)

// An Error records a failed parse or validation.
type Error struct {
	Func string // the failing function or parser
	Text string // the input text
	Err  error  // the reason, usually one of the Err variables
}

func (e *Error) Error() string {
	return "numparse: " + e.Func + " " + strconv.Quote(e.Text) + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// A Parser reads the numbers of one numeric domain.
//
// Parse fails with a descriptive *Error if text is not a number of
// the Parser's Kind or lies outside its inclusive Bounds.
type Parser interface {
	Parse(text string) (Number, error)

	// Validate checks that n has the Parser's Kind and lies within
	// its bounds.
	Validate(n Number) error

	Kind() Kind

	// Bounds returns the inclusive lower and upper bounds.
	Bounds() (lower, upper Number)

	// String returns a description of the parser that ParseSpec
	// turns back into an equivalent Parser.
	String() string
}

// IntParser parses integers within [Min, Max].
type IntParser struct {
	Min, Max int64
	// Type is the data type name used by String. It defaults to
	// "long".
	Type string
}

// NewIntParser returns an IntParser for [min, max].
func NewIntParser(min, max int64) (*IntParser, error) {
	if max < min {
		return nil, fmt.Errorf("numparse: empty integer range [%d,%d]", min, max)
	}
	return &IntParser{Min: min, Max: max}, nil
}

func (p *IntParser) Parse(text string) (Number, error) {
	v, err := ParseIntLenient(text)
	if err != nil {
		return Number{}, err
	}
	n := IntOf(v)
	if err := p.Validate(n); err != nil {
		return Number{}, &Error{p.String(), text, errors.Unwrap(err)}
	}
	return n, nil
}

func (p *IntParser) Validate(n Number) error {
	if n.kind != Int {
		return &Error{p.String(), n.String(), ErrKind}
	}
	if n.i < p.Min || n.i > p.Max {
		return &Error{p.String(), n.String(), fmt.Errorf("%w [%d,%d]", ErrBounds, p.Min, p.Max)}
	}
	return nil
}

func (p *IntParser) Kind() Kind { return Int }

func (p *IntParser) Bounds() (lower, upper Number) {
	return IntOf(p.Min), IntOf(p.Max)
}

func (p *IntParser) String() string {
	return describe(p.typeName(), IntOf(p.Min), IntOf(p.Max))
}

func (p *IntParser) typeName() string {
	if p.Type == "" {
		return "long"
	}
	return p.Type
}

// FloatParser parses floating-point numbers within [Min, Max].
// NaN is never accepted.
type FloatParser struct {
	Min, Max float64
	// Type is the data type name used by String. It defaults to
	// "double".
	Type string
}

// NewFloatParser returns a FloatParser for [min, max].
func NewFloatParser(min, max float64) (*FloatParser, error) {
	if math.IsNaN(min) || math.IsNaN(max) || max < min {
		return nil, fmt.Errorf("numparse: empty float range [%v,%v]", min, max)
	}
	return &FloatParser{Min: min, Max: max}, nil
}

func (p *FloatParser) Parse(text string) (Number, error) {
	v, err := ParseFloatLenient(text)
	if err != nil {
		return Number{}, err
	}
	n := FloatOf(v)
	if err := p.Validate(n); err != nil {
		return Number{}, &Error{p.String(), text, errors.Unwrap(err)}
	}
	return n, nil
}

func (p *FloatParser) Validate(n Number) error {
	if n.kind != Float {
		return &Error{p.String(), n.String(), ErrKind}
	}
	if n.f != n.f {
		return &Error{p.String(), n.String(), ErrSyntax}
	}
	if n.f < p.Min || n.f > p.Max {
		return &Error{p.String(), n.String(), fmt.Errorf("%w [%v,%v]", ErrBounds, p.Min, p.Max)}
	}
	return nil
}

func (p *FloatParser) Kind() Kind { return Float }

func (p *FloatParser) Bounds() (lower, upper Number) {
	return FloatOf(p.Min), FloatOf(p.Max)
}

func (p *FloatParser) String() string {
	return describe(p.typeName(), FloatOf(p.Min), FloatOf(p.Max))
}

func (p *FloatParser) typeName() string {
	if p.Type == "" {
		return "double"
	}
	return p.Type
}

func describe(typ string, lower, upper Number) string {
	dt := dataTypes[typ]
	if dt.lower == lower && dt.upper == upper {
		return typ
	}
	var b strings.Builder
	b.WriteString(typ)
	b.WriteByte(':')
	b.Write(lower.Append(nil))
	b.WriteByte(':')
	b.Write(upper.Append(nil))
	return b.String()
}

// Coerce converts n to p's Kind and validates it. Integers widen to
// floats; floats narrow to integers only if they are integral.
func Coerce(p Parser, n Number) (Number, error) {
	c, ok := n.As(p.Kind())
	if !ok {
		return Number{}, &Error{p.String(), n.String(), ErrKind}
	}
	if err := p.Validate(c); err != nil {
		return Number{}, err
	}
	return c, nil
}

// Intersect returns a Parser of p's kind whose bounds are the
// intersection of p's bounds and [lower, upper]. Invalid bound
// Numbers leave the corresponding bound of p unchanged.
func Intersect(p Parser, lower, upper Number) (Parser, error) {
	lo, hi := p.Bounds()
	if lower.IsValid() {
		c, err := Coerce(p, lower)
		if err != nil {
			return nil, err
		}
		lo = c
	}
	if upper.IsValid() {
		c, err := Coerce(p, upper)
		if err != nil {
			return nil, err
		}
		hi = c
	}
	if lo.Compare(hi) > 0 {
		return nil, &Error{p.String(), lo.String() + ":" + hi.String(), ErrBounds}
	}
	if p.Kind() == Int {
		return &IntParser{Min: lo.i, Max: hi.i, Type: typeOf(p)}, nil
	}
	return &FloatParser{Min: lo.f, Max: hi.f, Type: typeOf(p)}, nil
}

func typeOf(p Parser) string {
	switch p := p.(type) {
	case *IntParser:
		return p.Type
	case *FloatParser:
		return p.Type
	}
	return ""
}
