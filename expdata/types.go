// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expdata

import (
	"fmt"
	"strings"
)

// A Type classifies what a Dimension measures.
type Type uint8

const (
	// IterationFE counts objective function evaluations.
	IterationFE Type = iota
	// IterationAlgorithmStep counts algorithm iterations.
	IterationAlgorithmStep
	// IterationSubStep counts steps below the iteration level.
	IterationSubStep
	// RuntimeCPU is consumed CPU time.
	RuntimeCPU
	// RuntimeNormalized is CPU time normalized by a machine-specific
	// factor.
	RuntimeNormalized
	// QualityProblemDependent is a solution quality whose scale
	// depends on the problem instance.
	QualityProblemDependent
	// QualityProblemIndependent is a solution quality comparable
	// across instances.
	QualityProblemIndependent

	numTypes
)

var typeNames = [numTypes]string{
	"iterationFE",
	"iterationAlgorithmStep",
	"iterationSubStep",
	"runtimeCPU",
	"runtimeNormalized",
	"qualityProblemDependent",
	"qualityProblemIndependent",
}

var typeConsts = [numTypes]string{
	"ITERATION_FE",
	"ITERATION_ALGORITHM_STEP",
	"ITERATION_SUB_STEP",
	"RUNTIME_CPU",
	"RUNTIME_NORMALIZED",
	"QUALITY_PROBLEM_DEPENDENT",
	"QUALITY_PROBLEM_INDEPENDENT",
}

// String returns the EDI name of t, such as "runtimeCPU".
func (t Type) String() string {
	if t < numTypes {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// ConstName returns the upper snake-case name of t, such as
// "RUNTIME_CPU".
func (t Type) ConstName() string {
	if t < numTypes {
		return typeConsts[t]
	}
	return t.String()
}

// IsTimeMeasure reports whether t measures progress: elapsed
// iterations or runtime.
func (t Type) IsTimeMeasure() bool {
	return t <= RuntimeNormalized
}

// IsSolutionQualityMeasure reports whether t measures the quality of
// a solution.
func (t Type) IsSolutionQualityMeasure() bool {
	return t == QualityProblemDependent || t == QualityProblemIndependent
}

// ParseType parses either name form of a Type. Case, "_" and "-" are
// ignored.
func ParseType(s string) (Type, error) {
	key := foldName(s)
	for i, name := range typeNames {
		if foldName(name) == key {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("unknown dimension type %q", s)
}

// A Direction is the order in which a Dimension's values progress
// within a run.
type Direction uint8

const (
	Increasing Direction = iota
	IncreasingStrictly
	Decreasing
	DecreasingStrictly

	numDirections
)

var directionNames = [numDirections]string{
	"increasing",
	"increasingStrictly",
	"decreasing",
	"decreasingStrictly",
}

var directionConsts = [numDirections]string{
	"INCREASING",
	"INCREASING_STRICTLY",
	"DECREASING",
	"DECREASING_STRICTLY",
}

// String returns the EDI name of d, such as "increasingStrictly".
func (d Direction) String() string {
	if d < numDirections {
		return directionNames[d]
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ConstName returns the upper snake-case name of d.
func (d Direction) ConstName() string {
	if d < numDirections {
		return directionConsts[d]
	}
	return d.String()
}

// IsIncreasing reports whether values grow along a run.
func (d Direction) IsIncreasing() bool {
	return d == Increasing || d == IncreasingStrictly
}

// IsStrict reports whether consecutive values must differ.
func (d Direction) IsStrict() bool {
	return d == IncreasingStrictly || d == DecreasingStrictly
}

// ParseDirection parses either name form of a Direction. Case, "_"
// and "-" are ignored.
func ParseDirection(s string) (Direction, error) {
	key := foldName(s)
	for i, name := range directionNames {
		if foldName(name) == key {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("unknown dimension direction %q", s)
}

func foldName(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '_' || r == '-' {
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))
}
