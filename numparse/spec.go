// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package numparse

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
)

type dataType struct {
	kind         Kind
	lower, upper Number
}

// dataTypes maps the primitive data type names to their full ranges.
var dataTypes = map[string]dataType{
	"byte":   {Int, IntOf(math.MinInt8), IntOf(math.MaxInt8)},
	"short":  {Int, IntOf(math.MinInt16), IntOf(math.MaxInt16)},
	"int":    {Int, IntOf(math.MinInt32), IntOf(math.MaxInt32)},
	"long":   {Int, IntOf(math.MinInt64), IntOf(math.MaxInt64)},
	"float":  {Float, FloatOf(math.Inf(-1)), FloatOf(math.Inf(1))},
	"double": {Float, FloatOf(math.Inf(-1)), FloatOf(math.Inf(1))},
}

// TypeNames returns the primitive data type names, sorted.
func TypeNames() []string {
	names := make([]string, 0, len(dataTypes))
	for name := range dataTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TypeKind returns the Kind of the primitive data type name, or
// Invalid if there is no such type.
func TypeKind(typeName string) Kind {
	return dataTypes[strings.ToLower(typeName)].kind
}

// New returns a Parser for the primitive data type typeName. Valid
// lower and upper Numbers narrow the type's full range; invalid ones
// keep it.
func New(typeName string, lower, upper Number) (Parser, error) {
	name := strings.ToLower(strings.TrimSpace(typeName))
	dt, ok := dataTypes[name]
	if !ok {
		return nil, fmt.Errorf("numparse: unknown data type %q", typeName)
	}
	var p Parser
	if dt.kind == Int {
		p = &IntParser{Min: dt.lower.i, Max: dt.upper.i, Type: name}
	} else {
		p = &FloatParser{Min: dt.lower.f, Max: dt.upper.f, Type: name}
	}
	if !lower.IsValid() && !upper.IsValid() {
		return p, nil
	}
	return Intersect(p, lower, upper)
}

var registry struct {
	sync.RWMutex
	m map[string]Parser
}

// Register makes p available to ParseSpec as "typeName#constant".
// It replaces any previous registration of the same name.
func Register(typeName, constant string, p Parser) {
	registry.Lock()
	defer registry.Unlock()
	if registry.m == nil {
		registry.m = make(map[string]Parser)
	}
	registry.m[strings.ToLower(typeName)+"#"+constant] = p
}

// Lookup returns the Parser registered as name, which has the form
// "typeName#constant".
func Lookup(name string) (Parser, bool) {
	typ, constant, ok := strings.Cut(strings.TrimSpace(name), "#")
	if !ok {
		return nil, false
	}
	registry.RLock()
	defer registry.RUnlock()
	p, ok := registry.m[strings.ToLower(typ)+"#"+constant]
	return p, ok
}

func init() {
	for _, name := range TypeNames() {
		dt := dataTypes[name]
		mustRegister := func(constant string, lower, upper Number) {
			p, err := New(name, lower, upper)
			if err != nil {
				panic(err)
			}
			Register(name, constant, p)
		}
		mustRegister("Any", Number{}, Number{})
		if dt.kind == Int {
			mustRegister("NonNegative", IntOf(0), Number{})
			mustRegister("Positive", IntOf(1), Number{})
		} else {
			mustRegister("NonNegative", FloatOf(0), Number{})
			mustRegister("Positive", FloatOf(math.SmallestNonzeroFloat64), Number{})
			mustRegister("Finite", FloatOf(-math.MaxFloat64), FloatOf(math.MaxFloat64))
		}
	}
}

// ParseSpec returns the Parser described by desc, which has one of
// the forms
//
//	typeName#Constant   a registered parser, such as "long#NonNegative"
//	typeName            a primitive type, such as "double"
//	typeName:lo:hi      a primitive type with bounds; either bound may be empty
//
// Parser.String returns descriptions in this syntax.
func ParseSpec(desc string) (Parser, error) {
	desc = strings.TrimSpace(desc)
	if strings.Contains(desc, "#") {
		if p, ok := Lookup(desc); ok {
			return p, nil
		}
		return nil, fmt.Errorf("numparse: unknown parser %q", desc)
	}
	typ, rest, hasBounds := strings.Cut(desc, ":")
	if !hasBounds {
		return New(typ, Number{}, Number{})
	}
	lo, hi, ok := strings.Cut(rest, ":")
	if !ok {
		return nil, fmt.Errorf("numparse: parser description %q: want type:lower:upper", desc)
	}
	var lower, upper Number
	var err error
	if strings.TrimSpace(lo) != "" {
		if lower, err = ParseBound(lo); err != nil {
			return nil, fmt.Errorf("numparse: parser description %q: %w", desc, err)
		}
	}
	if strings.TrimSpace(hi) != "" {
		if upper, err = ParseBound(hi); err != nil {
			return nil, fmt.Errorf("numparse: parser description %q: %w", desc, err)
		}
	}
	return New(typ, lower, upper)
}

// ParseBound reads a bound, trying in order a strict integer, a
// strict float, a lenient integer and a lenient float. If all four
// fail, the error joins every cause.
func ParseBound(text string) (Number, error) {
	i, err1 := ParseIntStrict(text)
	if err1 == nil {
		return IntOf(i), nil
	}
	f, err2 := ParseFloatStrict(text)
	if err2 == nil {
		return FloatOf(f), nil
	}
	i, err3 := ParseIntLenient(text)
	if err3 == nil {
		return IntOf(i), nil
	}
	f, err4 := ParseFloatLenient(text)
	if err4 == nil {
		return FloatOf(f), nil
	}
	return Number{}, errors.Join(err1, err2, err3, err4)
}
