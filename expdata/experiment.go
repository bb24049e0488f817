// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expdata

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/benchexp/hier"
	"golang.org/x/benchexp/numparse"
)

const (
	expName = iota
	expDescription
)

var experimentFlags = []string{"name", "description"}

// An ExperimentBuilder builds an Experiment. Its children are
// InstanceRunsBuilders, at most one per instance.
type ExperimentBuilder struct {
	hier.Node
	set *SetBuilder

	name, desc string
	params     map[string]propSetting
	runs       map[string]*InstanceRuns

	result *Experiment
}

func (b *ExperimentBuilder) SetName(name string) error {
	return b.SetText(expName, name, &b.name)
}

func (b *ExperimentBuilder) SetDescription(desc string) error {
	return b.SetText(expDescription, desc, &b.desc)
}

// SetParameterValue sets the value of the named parameter.
// Descriptions may be empty; non-empty ones must agree with those
// given for the same parameter and value anywhere in the set.
func (b *ExperimentBuilder) SetParameterValue(name, desc, value, valueDesc string) error {
	ps := propSetting{name, desc, value, valueDesc}
	if err := b.set.parameterConflict(b.Kind(), ps); err != nil {
		return err
	}
	return setProperty(&b.Node, "parameter", b.params, ps)
}

// NewInstanceRuns opens a builder for the runs of this experiment on
// one instance.
func (b *ExperimentBuilder) NewInstanceRuns() (*InstanceRunsBuilder, error) {
	ir := &InstanceRunsBuilder{set: b.set}
	ir.Init(ir, b, "instance-runs", "instance")
	if err := ir.Open(); err != nil {
		return nil, err
	}
	return ir, nil
}

func (b *ExperimentBuilder) Compile() error {
	if err := b.RequireFlags(hier.Flag(expName)); err != nil {
		return err
	}
	e := &Experiment{Name: b.name, Description: b.desc}
	for _, ir := range b.runs {
		ir.Experiment = e
		e.Runs = append(e.Runs, ir)
	}
	slices.SortFunc(e.Runs, func(x, y *InstanceRuns) int {
		return strings.Compare(x.Instance.Name, y.Instance.Name)
	})
	b.result = e
	return nil
}

func (b *ExperimentBuilder) BeforeChildOpens(child hier.Builder) error {
	if _, ok := child.(*InstanceRunsBuilder); !ok {
		return hier.Errorf(hier.ErrStructure, b.Kind(), "", "", fmt.Sprintf("unexpected child %T", child))
	}
	return nil
}

func (b *ExperimentBuilder) AfterChildOpened(child hier.Builder) {}

func (b *ExperimentBuilder) AfterChildClosed(child hier.Builder) error {
	ir := child.(*InstanceRunsBuilder).result
	name := ir.Instance.Name
	if b.runs[name] != nil {
		return hier.Errorf(hier.ErrValue, b.Kind(), "instance-runs", name, "duplicate runs for instance")
	}
	b.runs[name] = ir
	return nil
}

const irInstance = 0

// An InstanceRunsBuilder builds the InstanceRuns of one experiment on
// one instance. Its children are RunBuilders. The instance must be
// set before the first run is opened.
type InstanceRunsBuilder struct {
	hier.Node
	set *SetBuilder

	instance *Instance
	runs     []*Run

	result *InstanceRuns
}

// SetInstance sets the instance by name. It must name an instance
// already compiled into the set.
func (b *InstanceRunsBuilder) SetInstance(name string) error {
	in := b.set.Instance(name)
	if in == nil {
		return hier.Errorf(hier.ErrValue, b.Kind(), "instance", name, "unknown instance")
	}
	return b.Set(irInstance, name,
		func() bool { return b.instance == in },
		func() { b.instance = in })
}

// NewRun opens a builder for one run.
func (b *InstanceRunsBuilder) NewRun() (*RunBuilder, error) {
	r := &RunBuilder{}
	r.Init(r, b, "run")
	if err := r.Open(); err != nil {
		return nil, err
	}
	return r, nil
}

func (b *InstanceRunsBuilder) Compile() error {
	if err := b.RequireFlags(hier.Flag(irInstance)); err != nil {
		return err
	}
	if len(b.runs) == 0 {
		return &hier.Error{Kind: hier.ErrStructure, Builder: b.Kind(), Missing: []string{"run"}}
	}
	ir := &InstanceRuns{Instance: b.instance, Runs: slices.Clip(b.runs)}
	for _, r := range ir.Runs {
		r.Owner = ir
	}
	b.result = ir
	return nil
}

func (b *InstanceRunsBuilder) BeforeChildOpens(child hier.Builder) error {
	r, ok := child.(*RunBuilder)
	if !ok {
		return hier.Errorf(hier.ErrStructure, b.Kind(), "", "", fmt.Sprintf("unexpected child %T", child))
	}
	if !b.HasFlag(irInstance) {
		return hier.Errorf(hier.ErrStructure, b.Kind(), "instance", "", "run before instance is set")
	}
	r.dims = b.set.Dimensions()
	r.parsers = make([]numparse.Parser, len(r.dims))
	for i, d := range r.dims {
		r.parsers[i] = b.instance.Parser(d)
	}
	return nil
}

func (b *InstanceRunsBuilder) AfterChildOpened(child hier.Builder) {}

func (b *InstanceRunsBuilder) AfterChildClosed(child hier.Builder) error {
	b.runs = append(b.runs, child.(*RunBuilder).result)
	return nil
}

// A RunBuilder builds a Run. It checks every point as it is added:
// a point has one value per dimension, each value lies within the
// bounds of its dimension and of the run's instance, and each value
// progresses from the previous point in its dimension's direction.
type RunBuilder struct {
	hier.Node

	dims    DimensionSet
	parsers []numparse.Parser
	points  []DataPoint

	result *Run
}

// AddDataPoint adds a point with the given values. Integer values are
// converted for floating-point dimensions and integral floats for
// integer dimensions.
func (b *RunBuilder) AddDataPoint(values ...numparse.Number) error {
	p := make(DataPoint, len(values))
	return b.Mutate(func() error {
		if len(values) != len(b.parsers) {
			return b.widthError(DataPoint(values).String(), len(values))
		}
		for i, v := range values {
			c, err := numparse.Coerce(b.parsers[i], v)
			if err != nil {
				return &hier.Error{Kind: hier.ErrValue, Builder: b.Kind(), Field: b.dims[i].Name, Text: v.String(), Err: err}
			}
			p[i] = c
		}
		return b.add(p)
	})
}

// AddDataPointString adds a point given as whitespace-separated
// values in dimension order.
func (b *RunBuilder) AddDataPointString(text string) error {
	fields := strings.Fields(text)
	return b.Mutate(func() error {
		if len(fields) != len(b.parsers) {
			return b.widthError(text, len(fields))
		}
		p := make(DataPoint, len(fields))
		for i, f := range fields {
			v, err := b.parsers[i].Parse(f)
			if err != nil {
				return &hier.Error{Kind: hier.ErrValue, Builder: b.Kind(), Field: b.dims[i].Name, Text: f, Err: err}
			}
			p[i] = v
		}
		return b.add(p)
	})
}

func (b *RunBuilder) widthError(text string, n int) error {
	return hier.Errorf(hier.ErrValue, b.Kind(), "point", text,
		fmt.Sprintf("have %d values, want %d", n, len(b.parsers)))
}

// add appends p after checking monotonicity. The caller holds the
// lock.
func (b *RunBuilder) add(p DataPoint) error {
	if n := len(b.points); n > 0 {
		prev := b.points[n-1]
		for i, d := range b.dims {
			c := p[i].Compare(prev[i])
			if !d.Direction.IsIncreasing() {
				c = -c
			}
			if c < 0 || (c == 0 && d.Direction.IsStrict()) {
				return hier.Errorf(hier.ErrValue, b.Kind(), d.Name, p[i].String(),
					fmt.Sprintf("not %s after %s", d.Direction, prev[i]))
			}
		}
	}
	b.points = append(b.points, p)
	return nil
}

// Len returns the number of points added so far.
func (b *RunBuilder) Len() int {
	var n int
	b.View(func() { n = len(b.points) })
	return n
}

func (b *RunBuilder) Compile() error {
	if len(b.points) == 0 {
		return &hier.Error{Kind: hier.ErrStructure, Builder: b.Kind(), Missing: []string{"point"}}
	}
	b.result = &Run{Points: slices.Clip(b.points), dims: b.dims}
	return nil
}
