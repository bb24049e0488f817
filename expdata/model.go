// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package expdata is the in-memory model of a set of benchmark
// experiments and the builders that construct it.
//
// An ExperimentSet has a list of Dimensions, the numeric axes along
// which runs are measured; a list of Instances, the benchmark
// problems, each described by feature values; and a list of
// Experiments, algorithm setups described by parameter values. Each
// Experiment holds, per Instance, the Runs performed on it, and each
// Run is a sequence of DataPoints with one value per Dimension.
//
// A built ExperimentSet is immutable and safe for concurrent use. It is
// produced by a SetBuilder and its child builders, which enforce the
// model's invariants as data streams in.
package expdata

import (
	"slices"
	"sort"
	"strings"

	"golang.org/x/benchexp/numparse"
)

// A Dimension is a named numeric axis.
type Dimension struct {
	Name        string
	Description string
	Parser      numparse.Parser
	Type        Type
	Direction   Direction
	// Index is the position of the Dimension in its DimensionSet and
	// of its values in a DataPoint.
	Index int
}

// A DimensionSet is the ordered list of dimensions of an
// ExperimentSet.
type DimensionSet []*Dimension

// Lookup returns the dimension with the given name, or nil.
func (s DimensionSet) Lookup(name string) *Dimension {
	for _, d := range s {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// A PropertyKind distinguishes instance features from experiment
// parameters.
type PropertyKind uint8

const (
	Feature PropertyKind = iota
	Parameter
)

func (k PropertyKind) String() string {
	if k == Feature {
		return "feature"
	}
	return "parameter"
}

// A Property is a named attribute of instances (a feature) or of
// experiments (a parameter).
type Property struct {
	Name        string
	Description string
	Kind        PropertyKind
	// Values lists the distinct values observed in the set, ordered
	// numerically where both values are numbers and by text
	// otherwise.
	Values []*PropertyValue
}

// Value returns the value with the given text, or nil.
func (p *Property) Value(text string) *PropertyValue {
	for _, v := range p.Values {
		if v.Value == text {
			return v
		}
	}
	return nil
}

// A PropertyValue is one value of a Property.
type PropertyValue struct {
	Property         *Property
	Value            string
	ValueDescription string
}

// Number returns the value as a number if its text is a strict
// integer or float.
func (v *PropertyValue) Number() (numparse.Number, bool) {
	if i, err := numparse.ParseIntStrict(v.Value); err == nil {
		return numparse.IntOf(i), true
	}
	if f, err := numparse.ParseFloatStrict(v.Value); err == nil {
		return numparse.FloatOf(f), true
	}
	return numparse.Number{}, false
}

func comparePropertyValues(a, b *PropertyValue) int {
	an, aok := a.Number()
	bn, bok := b.Number()
	switch {
	case aok && bok:
		if c := an.Compare(bn); c != 0 {
			return c
		}
	case aok:
		return -1
	case bok:
		return 1
	}
	return strings.Compare(a.Value, b.Value)
}

// An Instance is a benchmark problem instance.
type Instance struct {
	Name        string
	Description string
	// Features holds one value per feature, ordered by feature name.
	// The values are shared with the set: their descriptions may
	// still be merged with later declarations until the set is built.
	Features []*PropertyValue

	// parsers holds, per dimension index, the dimension parser
	// narrowed to the instance's bounds, or nil.
	parsers []numparse.Parser
}

// Feature returns the instance's value of the named feature, or nil.
func (in *Instance) Feature(name string) *PropertyValue {
	return lookupValue(in.Features, name)
}

// Bounds returns the instance-specific bounds of dimension dim. ok is
// false if the instance does not override the dimension's bounds.
func (in *Instance) Bounds(dim int) (lower, upper numparse.Number, ok bool) {
	if dim >= len(in.parsers) || in.parsers[dim] == nil {
		return numparse.Number{}, numparse.Number{}, false
	}
	lower, upper = in.parsers[dim].Bounds()
	return lower, upper, true
}

// Parser returns the parser for values of dimension d in runs on this
// instance.
func (in *Instance) Parser(d *Dimension) numparse.Parser {
	if d.Index < len(in.parsers) && in.parsers[d.Index] != nil {
		return in.parsers[d.Index]
	}
	return d.Parser
}

// An Experiment is one algorithm setup and the runs it performed.
type Experiment struct {
	Name        string
	Description string
	// Parameters holds one value per parameter, ordered by parameter
	// name. Like Instance.Features, they are final once the set is
	// built.
	Parameters []*PropertyValue
	// Runs holds the runs per instance, ordered by instance name.
	// Later declarations of the experiment add to it until the set is
	// built.
	Runs []*InstanceRuns
}

// Parameter returns the experiment's value of the named parameter,
// or nil.
func (e *Experiment) Parameter(name string) *PropertyValue {
	return lookupValue(e.Parameters, name)
}

// InstanceRuns returns the runs on the named instance, or nil.
func (e *Experiment) InstanceRuns(instance string) *InstanceRuns {
	i := sort.Search(len(e.Runs), func(i int) bool {
		return e.Runs[i].Instance.Name >= instance
	})
	if i < len(e.Runs) && e.Runs[i].Instance.Name == instance {
		return e.Runs[i]
	}
	return nil
}

// merge appends the runs of e, a later declaration of the same
// experiment, to those of x.
func (x *Experiment) merge(e *Experiment) {
	for _, ir := range e.Runs {
		old := x.InstanceRuns(ir.Instance.Name)
		if old == nil {
			ir.Experiment = x
			x.Runs = append(x.Runs, ir)
			continue
		}
		for _, r := range ir.Runs {
			r.Owner = old
		}
		old.Runs = append(old.Runs, ir.Runs...)
	}
	slices.SortFunc(x.Runs, func(a, b *InstanceRuns) int {
		return strings.Compare(a.Instance.Name, b.Instance.Name)
	})
}

// InstanceRuns are the runs of one experiment on one instance.
type InstanceRuns struct {
	Instance   *Instance
	Experiment *Experiment
	// Runs are in arrival order.
	Runs []*Run
}

// A Run is one execution trace.
type Run struct {
	Owner *InstanceRuns
	// Points are in arrival order. A Run has at least one point and
	// the values of each dimension are monotonic in the dimension's
	// direction.
	Points []DataPoint

	dims DimensionSet
}

// A DataPoint holds one value per dimension, in dimension order.
type DataPoint []numparse.Number

// Compare compares p and q lexicographically in dimension order.
func (p DataPoint) Compare(q DataPoint) int {
	for i := 0; i < len(p) && i < len(q); i++ {
		if c := p[i].Compare(q[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(p) < len(q):
		return -1
	case len(p) > len(q):
		return 1
	}
	return 0
}

func (p DataPoint) String() string {
	var buf []byte
	for i, v := range p {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = v.Append(buf)
	}
	return string(buf)
}

// An ExperimentSet is a complete, validated collection of experiment
// data.
type ExperimentSet struct {
	Dimensions DimensionSet
	// Instances and Experiments are ordered by name.
	Instances   []*Instance
	Experiments []*Experiment
	// Features and Parameters are ordered by name.
	Features   []*Property
	Parameters []*Property
}

// Instance returns the named instance, or nil.
func (s *ExperimentSet) Instance(name string) *Instance {
	i := sort.Search(len(s.Instances), func(i int) bool { return s.Instances[i].Name >= name })
	if i < len(s.Instances) && s.Instances[i].Name == name {
		return s.Instances[i]
	}
	return nil
}

// Experiment returns the named experiment, or nil.
func (s *ExperimentSet) Experiment(name string) *Experiment {
	i := sort.Search(len(s.Experiments), func(i int) bool { return s.Experiments[i].Name >= name })
	if i < len(s.Experiments) && s.Experiments[i].Name == name {
		return s.Experiments[i]
	}
	return nil
}

// Feature returns the named feature, or nil.
func (s *ExperimentSet) Feature(name string) *Property {
	return lookupProperty(s.Features, name)
}

// Parameter returns the named parameter, or nil.
func (s *ExperimentSet) Parameter(name string) *Property {
	return lookupProperty(s.Parameters, name)
}

// Stats counts the entities of s.
type Stats struct {
	Dimensions, Instances, Experiments, InstanceRuns, Runs, Points int
}

// Stats returns the number of entities in s.
func (s *ExperimentSet) Stats() Stats {
	st := Stats{
		Dimensions:  len(s.Dimensions),
		Instances:   len(s.Instances),
		Experiments: len(s.Experiments),
	}
	for _, e := range s.Experiments {
		st.InstanceRuns += len(e.Runs)
		for _, ir := range e.Runs {
			st.Runs += len(ir.Runs)
			for _, r := range ir.Runs {
				st.Points += len(r.Points)
			}
		}
	}
	return st
}

func lookupValue(vals []*PropertyValue, name string) *PropertyValue {
	i := sort.Search(len(vals), func(i int) bool { return vals[i].Property.Name >= name })
	if i < len(vals) && vals[i].Property.Name == name {
		return vals[i]
	}
	return nil
}

func lookupProperty(props []*Property, name string) *Property {
	i := sort.Search(len(props), func(i int) bool { return props[i].Name >= name })
	if i < len(props) && props[i].Name == name {
		return props[i]
	}
	return nil
}
