// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package edi reads and writes the Experiment Data Interchange
// format, an XML vocabulary for benchmark experiment data.
//
// A document looks like
//
//	<experiment-data xmlns="http://www.optimizationBenchmarking.org/...">
//		<dimension name="FEs" dimension-type="iterationFE"
//			dimension-direction="increasingStrictly" dimension-data-type="long"/>
//		<instance name="tsp1">
//			<feature name="n" feature-value="100"/>
//		</instance>
//		<experiment name="ea">
//			<parameter name="mu" parameter-value="10"/>
//			<instance-runs instance="tsp1">
//				<run><point><int>1</int></point></run>
//			</instance-runs>
//		</experiment>
//	</experiment-data>
//
// Reading is tolerant of missing levels: a feature outside an instance
// or a parameter outside an experiment implicitly creates one, as does
// a point directly inside instance-runs.
package edi

import (
	"fmt"
	"log/slog"
)

// Namespace is the XML namespace of the format.
const Namespace = "http://www.optimizationBenchmarking.org/formats/experimentDataInterchange/experimentDataInterchange.1.0.xsd"

// Element names.
const (
	elemExperimentData = "experiment-data"
	elemDimension      = "dimension"
	elemInstance       = "instance"
	elemFeature        = "feature"
	elemBounds         = "bounds"
	elemExperiment     = "experiment"
	elemParameter      = "parameter"
	elemInstanceRuns   = "instance-runs"
	elemRun            = "run"
	elemPoint          = "point"
	elemInt            = "int"
	elemFloat          = "float"
)

// Attribute names.
const (
	attrName                      = "name"
	attrDescription               = "description"
	attrDimensionType             = "dimension-type"
	attrDimensionDirection        = "dimension-direction"
	attrDimensionDataType         = "dimension-data-type"
	attrIntegerLowerBound         = "integer-lower-bound"
	attrIntegerUpperBound         = "integer-upper-bound"
	attrFloatLowerBound           = "float-lower-bound"
	attrFloatUpperBound           = "float-upper-bound"
	attrFeatureDescription        = "feature-description"
	attrFeatureValue              = "feature-value"
	attrFeatureValueDescription   = "feature-value-description"
	attrParameterDescription      = "parameter-description"
	attrParameterValue            = "parameter-value"
	attrParameterValueDescription = "parameter-value-description"
	attrInstance                  = "instance"
	attrDimension                 = "dimension"
)

// A SyntaxError reports a document that cannot be ingested. Err is
// usually a *hier.Error, a *numparse.Error or an *xml.SyntaxError.
type SyntaxError struct {
	FileName string
	Line     int
	Element  string // element being processed, if any
	Err      error
}

func (e *SyntaxError) Pos() (fileName string, line int) {
	return e.FileName, e.Line
}

func (e *SyntaxError) Error() string {
	if e.Element == "" {
		return fmt.Sprintf("%s:%d: %v", e.FileName, e.Line, e.Err)
	}
	return fmt.Sprintf("%s:%d: <%s>: %v", e.FileName, e.Line, e.Element, e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// An Option configures a Handler or Reader.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger directs diagnostics to l. By default they are discarded.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return o
}
