// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expdata

import (
	"golang.org/x/benchexp/hier"
	"golang.org/x/benchexp/numparse"
)

const (
	instName = iota
	instDescription
)

var instanceFlags = []string{"name", "description"}

type instanceBounds struct {
	dim          *Dimension
	lower, upper numparse.Number
}

// An InstanceBuilder builds an Instance. It accepts no children.
type InstanceBuilder struct {
	hier.Node
	set *SetBuilder

	name, desc string
	features   map[string]propSetting
	bounds     map[string]*instanceBounds

	result *Instance
}

func (b *InstanceBuilder) SetName(name string) error {
	return b.SetText(instName, name, &b.name)
}

func (b *InstanceBuilder) SetDescription(desc string) error {
	return b.SetText(instDescription, desc, &b.desc)
}

// SetFeatureValue sets the value of the named feature. Descriptions
// may be empty; non-empty ones must agree with those given for the
// same feature and value anywhere in the set.
func (b *InstanceBuilder) SetFeatureValue(name, desc, value, valueDesc string) error {
	ps := propSetting{name, desc, value, valueDesc}
	if err := b.set.featureConflict(b.Kind(), ps); err != nil {
		return err
	}
	return setProperty(&b.Node, "feature", b.features, ps)
}

// SetLowerBound narrows the lower bound of the named dimension for
// runs on this instance. text is parsed by the dimension's parser.
func (b *InstanceBuilder) SetLowerBound(dim, text string) error {
	return b.setBound(dim, text, false)
}

// SetUpperBound narrows the upper bound of the named dimension for
// runs on this instance.
func (b *InstanceBuilder) SetUpperBound(dim, text string) error {
	return b.setBound(dim, text, true)
}

func (b *InstanceBuilder) setBound(dim, text string, upper bool) error {
	field := "lower-bound"
	if upper {
		field = "upper-bound"
	}
	d := b.set.Dimensions().Lookup(dim)
	if d == nil {
		return hier.Errorf(hier.ErrValue, b.Kind(), "dimension", dim, "unknown dimension")
	}
	v, err := d.Parser.Parse(text)
	if err != nil {
		return &hier.Error{Kind: hier.ErrValue, Builder: b.Kind(), Field: field, Text: text, Err: err}
	}
	return b.Mutate(func() error {
		bd := b.bounds[dim]
		if bd == nil {
			bd = &instanceBounds{dim: d}
			b.bounds[dim] = bd
		}
		dst := &bd.lower
		if upper {
			dst = &bd.upper
		}
		if dst.IsValid() && *dst != v {
			return hier.Errorf(hier.ErrValue, b.Kind(), field, text, "already set to "+dst.String())
		}
		*dst = v
		return nil
	})
}

func (b *InstanceBuilder) Compile() error {
	if err := b.RequireFlags(hier.Flag(instName)); err != nil {
		return err
	}
	in := &Instance{Name: b.name, Description: b.desc}
	for name, bd := range b.bounds {
		p, err := numparse.Intersect(bd.dim.Parser, bd.lower, bd.upper)
		if err != nil {
			return &hier.Error{Kind: hier.ErrValue, Builder: b.Kind(), Field: "bounds", Text: name, Err: err}
		}
		for len(in.parsers) <= bd.dim.Index {
			in.parsers = append(in.parsers, nil)
		}
		in.parsers[bd.dim.Index] = p
	}
	b.result = in
	return nil
}
