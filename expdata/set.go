// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expdata

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/benchexp/hier"
)

type phase uint8

const (
	phaseDimensions phase = iota
	phaseInstances
	phaseExperiments
)

// A SetBuilder is the root builder of an ExperimentSet.
//
// Dimensions must be added first. Once an instance or an experiment
// has been opened no more dimensions may be added, and once an
// experiment has been opened no more instances may be added.
//
// A set may be read from several documents; see NextDocument.
type SetBuilder struct {
	hier.Node

	phase         phase
	openDims      int
	openInstances int
	// docDims counts the dimensions declared by the current document.
	docDims int

	dims        DimensionSet
	instances   map[string]*Instance
	experiments map[string]*Experiment
	features    propTable
	parameters  propTable

	result *ExperimentSet
}

// NewSetBuilder returns an open SetBuilder.
func NewSetBuilder() *SetBuilder {
	s := &SetBuilder{
		instances:   make(map[string]*Instance),
		experiments: make(map[string]*Experiment),
		features:    propTable{kind: Feature},
		parameters:  propTable{kind: Parameter},
	}
	s.Init(s, nil, "experiment-data")
	if err := s.Open(); err != nil {
		panic(err)
	}
	return s
}

// NewDimension opens a new dimension builder.
func (s *SetBuilder) NewDimension() (*DimensionBuilder, error) {
	d := &DimensionBuilder{}
	d.Init(d, s, "dimension", dimensionFlags...)
	if err := d.Open(); err != nil {
		return nil, err
	}
	return d, nil
}

// NewInstance opens a new instance builder.
func (s *SetBuilder) NewInstance() (*InstanceBuilder, error) {
	b := &InstanceBuilder{
		set:      s,
		features: make(map[string]propSetting),
		bounds:   make(map[string]*instanceBounds),
	}
	b.Init(b, s, "instance", instanceFlags...)
	if err := b.Open(); err != nil {
		return nil, err
	}
	return b, nil
}

// NewExperiment opens a new experiment builder.
func (s *SetBuilder) NewExperiment() (*ExperimentBuilder, error) {
	b := &ExperimentBuilder{
		set:    s,
		params: make(map[string]propSetting),
		runs:   make(map[string]*InstanceRuns),
	}
	b.Init(b, s, "experiment", experimentFlags...)
	if err := b.Open(); err != nil {
		return nil, err
	}
	return b, nil
}

// NextDocument starts a new document. Its dimensions, instances and
// experiments are ordered afresh. A document may declare again a
// dimension or instance already in the set if the declaration is
// identical; dimensions must then be declared in the set's order. An
// experiment declared again with identical parameters gains the runs
// of the new declaration.
func (s *SetBuilder) NextDocument() error {
	return s.Mutate(func() error {
		if s.openDims > 0 || s.openInstances > 0 {
			return s.structural("document starts while a dimension or instance is open")
		}
		s.phase = phaseDimensions
		s.docDims = 0
		return nil
	})
}

// Dimensions returns the dimensions compiled so far.
func (s *SetBuilder) Dimensions() DimensionSet {
	var dims DimensionSet
	s.View(func() { dims = slices.Clip(s.dims) })
	return dims
}

// Instance returns the compiled instance with the given name, or nil.
func (s *SetBuilder) Instance(name string) *Instance {
	var in *Instance
	s.View(func() { in = s.instances[name] })
	return in
}

// Build closes the builder and returns the compiled ExperimentSet.
func (s *SetBuilder) Build() (*ExperimentSet, error) {
	if err := s.Close(); err != nil {
		return nil, err
	}
	return s.result, nil
}

// Result returns the compiled ExperimentSet, or nil if the builder
// has not been built.
func (s *SetBuilder) Result() *ExperimentSet {
	var set *ExperimentSet
	s.View(func() { set = s.result })
	return set
}

func (s *SetBuilder) Compile() error {
	if len(s.dims) == 0 {
		return &hier.Error{Kind: hier.ErrStructure, Builder: s.Kind(), Missing: []string{"dimension"}}
	}
	set := &ExperimentSet{
		Dimensions: slices.Clip(s.dims),
		Features:   s.features.list(),
		Parameters: s.parameters.list(),
	}
	for _, in := range s.instances {
		set.Instances = append(set.Instances, in)
	}
	slices.SortFunc(set.Instances, func(a, b *Instance) int { return strings.Compare(a.Name, b.Name) })
	for _, e := range s.experiments {
		set.Experiments = append(set.Experiments, e)
	}
	slices.SortFunc(set.Experiments, func(a, b *Experiment) int { return strings.Compare(a.Name, b.Name) })
	s.result = set
	return nil
}

func (s *SetBuilder) structural(msg string) error {
	return hier.Errorf(hier.ErrStructure, s.Kind(), "", "", msg)
}

func (s *SetBuilder) BeforeChildOpens(child hier.Builder) error {
	switch child.(type) {
	case *DimensionBuilder:
		if s.phase > phaseDimensions {
			return s.structural("dimension after instances or experiments")
		}
	case *InstanceBuilder:
		if s.phase > phaseInstances {
			return s.structural("instance after experiments")
		}
		if s.openDims > 0 {
			return s.structural("instance while a dimension is open")
		}
	case *ExperimentBuilder:
		if s.openDims > 0 || s.openInstances > 0 {
			return s.structural("experiment while a dimension or instance is open")
		}
	default:
		return s.structural(fmt.Sprintf("unexpected child %T", child))
	}
	return nil
}

func (s *SetBuilder) AfterChildOpened(child hier.Builder) {
	switch child.(type) {
	case *DimensionBuilder:
		s.openDims++
	case *InstanceBuilder:
		s.openInstances++
		s.phase = phaseInstances
	case *ExperimentBuilder:
		s.phase = phaseExperiments
	}
}

func (s *SetBuilder) AfterChildDiscarded(child hier.Builder) {
	switch child.(type) {
	case *DimensionBuilder:
		s.openDims--
	case *InstanceBuilder:
		s.openInstances--
	}
}

func (s *SetBuilder) AfterChildClosed(child hier.Builder) error {
	switch b := child.(type) {
	case *DimensionBuilder:
		s.openDims--
		return s.addDimension(b.result)

	case *InstanceBuilder:
		s.openInstances--
		in := b.result
		old := s.instances[in.Name]
		if old != nil && !sameInstance(old, in, b.features) {
			return hier.Errorf(hier.ErrValue, s.Kind(), "instance", in.Name, "duplicate instance name")
		}
		feats, err := s.features.resolve(b.Kind(), b.features)
		if err != nil {
			return err
		}
		if old == nil {
			in.Features = feats
			s.instances[in.Name] = in
		}

	case *ExperimentBuilder:
		e := b.result
		old := s.experiments[e.Name]
		if old != nil && (old.Description != e.Description || !sameValues(old.Parameters, b.params)) {
			return hier.Errorf(hier.ErrValue, s.Kind(), "experiment", e.Name, "duplicate experiment name")
		}
		params, err := s.parameters.resolve(b.Kind(), b.params)
		if err != nil {
			return err
		}
		if old == nil {
			e.Parameters = params
			s.experiments[e.Name] = e
		} else {
			old.merge(e)
		}
	}
	return nil
}

func (s *SetBuilder) addDimension(d *Dimension) error {
	defer func() { s.docDims++ }()
	if old := s.dims.Lookup(d.Name); old != nil {
		if !sameDimension(old, d) {
			return hier.Errorf(hier.ErrValue, s.Kind(), "dimension", d.Name, "duplicate dimension name")
		}
		if old.Index != s.docDims {
			return s.structural(fmt.Sprintf("dimension %s declared at position %d, want %d", d.Name, s.docDims, old.Index))
		}
		return nil
	}
	if len(s.instances) > 0 || len(s.experiments) > 0 {
		return s.structural("dimension after instances or experiments")
	}
	d.Index = len(s.dims)
	s.dims = append(s.dims, d)
	return nil
}

func sameDimension(a, b *Dimension) bool {
	return a.Description == b.Description &&
		a.Parser.String() == b.Parser.String() &&
		a.Type == b.Type &&
		a.Direction == b.Direction
}

// sameInstance reports whether in, with feature settings feats, is
// declared exactly like the compiled instance old.
func sameInstance(old, in *Instance, feats map[string]propSetting) bool {
	if old.Description != in.Description || !sameValues(old.Features, feats) {
		return false
	}
	n := max(len(old.parsers), len(in.parsers))
	for i := 0; i < n; i++ {
		lo1, hi1, ok1 := old.Bounds(i)
		lo2, hi2, ok2 := in.Bounds(i)
		if ok1 != ok2 || lo1 != lo2 || hi1 != hi2 {
			return false
		}
	}
	return true
}

// sameValues reports whether settings assigns exactly the property
// values in vals.
func sameValues(vals []*PropertyValue, settings map[string]propSetting) bool {
	if len(vals) != len(settings) {
		return false
	}
	for _, v := range vals {
		ps, ok := settings[v.Property.Name]
		if !ok || ps.value != v.Value {
			return false
		}
	}
	return true
}

// featureConflict reports whether a feature setting conflicts with
// the features of compiled instances.
func (s *SetBuilder) featureConflict(builder string, ps propSetting) error {
	var err error
	s.View(func() { err = s.features.check(builder, ps) })
	return err
}

func (s *SetBuilder) parameterConflict(builder string, ps propSetting) error {
	var err error
	s.View(func() { err = s.parameters.check(builder, ps) })
	return err
}
