// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expdata

import (
	"slices"
	"strings"

	"golang.org/x/benchexp/hier"
)

// A propSetting is a property value given to an instance or
// experiment builder.
type propSetting struct {
	name, desc, value, valueDesc string
}

// merge combines s with a later setting t of the same property. Empty
// descriptions are compatible with any description.
func (s propSetting) merge(t propSetting) (propSetting, bool) {
	if s.value != t.value {
		return s, false
	}
	var ok1, ok2 bool
	s.desc, ok1 = mergeDesc(s.desc, t.desc)
	s.valueDesc, ok2 = mergeDesc(s.valueDesc, t.valueDesc)
	return s, ok1 && ok2
}

func mergeDesc(a, b string) (string, bool) {
	switch {
	case a == "":
		return b, true
	case b == "" || a == b:
		return a, true
	}
	return a, false
}

// A propTable collects the properties of one kind across a set.
type propTable struct {
	kind  PropertyKind
	props map[string]*Property
}

func (t *propTable) check(builder string, s propSetting) error {
	p := t.props[s.name]
	if p == nil {
		return nil
	}
	if _, ok := mergeDesc(p.Description, s.desc); !ok {
		return hier.Errorf(hier.ErrValue, builder, t.kind.String()+"-description", s.desc,
			"conflicts with description "+p.Description+" of "+t.kind.String()+" "+s.name)
	}
	if v := p.Value(s.value); v != nil {
		if _, ok := mergeDesc(v.ValueDescription, s.valueDesc); !ok {
			return hier.Errorf(hier.ErrValue, builder, t.kind.String()+"-value-description", s.valueDesc,
				"conflicts with description "+v.ValueDescription+" of value "+s.value)
		}
	}
	return nil
}

// add records s, which must have passed check.
func (t *propTable) add(s propSetting) *PropertyValue {
	if t.props == nil {
		t.props = make(map[string]*Property)
	}
	p := t.props[s.name]
	if p == nil {
		p = &Property{Name: s.name, Kind: t.kind}
		t.props[s.name] = p
	}
	p.Description, _ = mergeDesc(p.Description, s.desc)
	v := p.Value(s.value)
	if v == nil {
		v = &PropertyValue{Property: p, Value: s.value}
		p.Values = append(p.Values, v)
	}
	v.ValueDescription, _ = mergeDesc(v.ValueDescription, s.valueDesc)
	return v
}

// resolve checks and adds every setting, returning the values ordered
// by property name. Nothing is added if any setting conflicts.
func (t *propTable) resolve(builder string, settings map[string]propSetting) ([]*PropertyValue, error) {
	for _, s := range settings {
		if err := t.check(builder, s); err != nil {
			return nil, err
		}
	}
	vals := make([]*PropertyValue, 0, len(settings))
	for _, s := range settings {
		vals = append(vals, t.add(s))
	}
	slices.SortFunc(vals, func(a, b *PropertyValue) int {
		return strings.Compare(a.Property.Name, b.Property.Name)
	})
	return vals, nil
}

// list returns the properties ordered by name, with their values
// sorted.
func (t *propTable) list() []*Property {
	props := make([]*Property, 0, len(t.props))
	for _, p := range t.props {
		slices.SortFunc(p.Values, comparePropertyValues)
		props = append(props, p)
	}
	slices.SortFunc(props, func(a, b *Property) int {
		return strings.Compare(a.Name, b.Name)
	})
	return props
}

// setProperty records a property setting in settings under the
// setter protocol of node.
func setProperty(node *hier.Node, field string, settings map[string]propSetting, s propSetting) error {
	if strings.TrimSpace(s.name) == "" {
		return hier.Errorf(hier.ErrValue, node.Kind(), field+"-name", s.name, "empty value")
	}
	if strings.TrimSpace(s.value) == "" {
		return hier.Errorf(hier.ErrValue, node.Kind(), field+"-value", s.value, "empty value")
	}
	return node.Mutate(func() error {
		old, ok := settings[s.name]
		if !ok {
			settings[s.name] = s
			return nil
		}
		merged, ok := old.merge(s)
		if !ok {
			return hier.Errorf(hier.ErrValue, node.Kind(), field, s.name+"="+s.value,
				"conflicts with earlier value "+old.value)
		}
		settings[s.name] = merged
		return nil
	})
}
