// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/benchexp/hier"
	"golang.org/x/benchexp/numparse"
)

func addDim(t *testing.T, s *SetBuilder, name, parser string, typ Type, dir Direction) {
	t.Helper()
	d, err := s.NewDimension()
	require.NoError(t, err)
	require.NoError(t, d.SetName(name))
	require.NoError(t, d.SetParserSpec(parser))
	require.NoError(t, d.SetType(typ))
	require.NoError(t, d.SetDirection(dir))
	require.NoError(t, d.Close())
}

func addInstance(t *testing.T, s *SetBuilder, name string, features ...string) *InstanceBuilder {
	t.Helper()
	in, err := s.NewInstance()
	require.NoError(t, err)
	require.NoError(t, in.SetName(name))
	for i := 0; i+1 < len(features); i += 2 {
		require.NoError(t, in.SetFeatureValue(features[i], "", features[i+1], ""))
	}
	return in
}

func addRun(t *testing.T, ir *InstanceRunsBuilder, points ...string) {
	t.Helper()
	r, err := ir.NewRun()
	require.NoError(t, err)
	for _, p := range points {
		require.NoError(t, r.AddDataPointString(p))
	}
	require.NoError(t, r.Close())
}

// newTestSet builds a set with two dimensions, two instances and two
// experiments.
func newTestSet(t *testing.T) *ExperimentSet {
	s := NewSetBuilder()
	addDim(t, s, "FEs", "long:1:", IterationFE, IncreasingStrictly)
	addDim(t, s, "F", "double", QualityProblemDependent, Decreasing)

	for _, name := range []string{"tsp2", "tsp1"} {
		in := addInstance(t, s, name, "n", name[3:], "symmetric", "true")
		require.NoError(t, in.Close())
	}

	for _, name := range []string{"ea", "aco"} {
		e, err := s.NewExperiment()
		require.NoError(t, err)
		require.NoError(t, e.SetName(name))
		require.NoError(t, e.SetParameterValue("algorithm", "the algorithm", name, ""))
		for _, inst := range []string{"tsp2", "tsp1"} {
			ir, err := e.NewInstanceRuns()
			require.NoError(t, err)
			require.NoError(t, ir.SetInstance(inst))
			addRun(t, ir, "1 100", "3 50", "7 50.0", "12 10")
			addRun(t, ir, "2 80")
			require.NoError(t, ir.Close())
		}
		require.NoError(t, e.Close())
	}

	set, err := s.Build()
	require.NoError(t, err)
	return set
}

func TestBuild(t *testing.T) {
	set := newTestSet(t)

	assert.Equal(t, Stats{Dimensions: 2, Instances: 2, Experiments: 2, InstanceRuns: 4, Runs: 8, Points: 20}, set.Stats())

	require.Len(t, set.Dimensions, 2)
	assert.Equal(t, 1, set.Dimensions.Lookup("F").Index)
	assert.Nil(t, set.Dimensions.Lookup("nope"))

	assert.Equal(t, "aco", set.Experiments[0].Name)
	assert.Equal(t, "tsp1", set.Instances[0].Name)
	assert.Same(t, set.Instances[1], set.Instance("tsp2"))
	assert.Nil(t, set.Instance("tsp3"))

	e := set.Experiment("ea")
	require.NotNil(t, e)
	assert.Equal(t, "ea", e.Parameter("algorithm").Value)
	require.Len(t, e.Runs, 2)
	assert.Equal(t, "tsp1", e.Runs[0].Instance.Name)
	assert.Same(t, e, e.Runs[0].Experiment)
	ir := e.InstanceRuns("tsp2")
	require.NotNil(t, ir)
	assert.Same(t, ir, ir.Runs[0].Owner)
	assert.Equal(t, "1 100 3 50 7 50 12 10", joinPoints(ir.Runs[0].Points))

	alg := set.Parameter("algorithm")
	require.NotNil(t, alg)
	assert.Equal(t, "the algorithm", alg.Description)
	require.Len(t, alg.Values, 2)
	assert.Equal(t, "aco", alg.Values[0].Value)

	n := set.Feature("n")
	require.NotNil(t, n)
	require.Len(t, n.Values, 2)
	assert.Equal(t, "1", n.Values[0].Value)
	v, ok := n.Values[1].Number()
	require.True(t, ok)
	assert.Equal(t, numparse.IntOf(2), v)
	_, ok = set.Feature("symmetric").Values[0].Number()
	assert.False(t, ok)

	// Features are shared between instances.
	assert.Same(t, set.Instances[0].Feature("symmetric"), set.Instances[1].Feature("symmetric"))
}

func joinPoints(pts []DataPoint) string {
	var s string
	for i, p := range pts {
		if i > 0 {
			s += " "
		}
		s += p.String()
	}
	return s
}

func TestFind(t *testing.T) {
	for _, typ := range []Type{QualityProblemIndependent, RuntimeCPU} {
		s := NewSetBuilder()
		addDim(t, s, "x", "long", typ, Increasing)
		require.NoError(t, addInstance(t, s, "i").Close())
		e, err := s.NewExperiment()
		require.NoError(t, err)
		require.NoError(t, e.SetName("e"))
		ir, err := e.NewInstanceRuns()
		require.NoError(t, err)
		require.NoError(t, ir.SetInstance("i"))
		addRun(t, ir, "1", "3", "3", "7")
		require.NoError(t, ir.Close())
		require.NoError(t, e.Close())
		set, err := s.Build()
		require.NoError(t, err)

		run := set.Experiments[0].Runs[0].Runs[0]
		for _, q := range []int64{3, 5} {
			p, ok := run.Find(0, numparse.IntOf(q))
			require.True(t, ok)
			assert.Same(t, &run.Points[1][0], &p[0], "Find(%d)", q)
		}
		p, ok := run.Find(0, numparse.IntOf(100))
		require.True(t, ok)
		assert.Same(t, &run.Points[3][0], &p[0])

		p, ok = run.Find(0, numparse.IntOf(0))
		if typ.IsTimeMeasure() {
			require.True(t, ok)
			assert.Same(t, &run.Points[0][0], &p[0])
		} else {
			assert.False(t, ok)
		}

		p, ok = run.Find(0, numparse.FloatOf(2.5))
		require.True(t, ok)
		assert.Equal(t, "1", p.String())
	}
}

func TestFindDecreasing(t *testing.T) {
	set := newTestSet(t)
	run := set.Experiment("ea").InstanceRuns("tsp1").Runs[0]

	// F column is 100 50 50 10.
	p, ok := run.Find(1, numparse.FloatOf(60))
	require.True(t, ok)
	assert.Equal(t, "1 100", p.String())
	p, ok = run.Find(1, numparse.IntOf(50))
	require.True(t, ok)
	assert.Equal(t, "3 50", p.String())
	p, ok = run.Find(1, numparse.FloatOf(5))
	require.True(t, ok)
	assert.Equal(t, "12 10", p.String())
	_, ok = run.Find(1, numparse.FloatOf(200))
	assert.False(t, ok)

	assert.Equal(t, "1 100", run.First().String())
	assert.Equal(t, "12 10", run.Last().String())
	assert.Len(t, run.Column(0), 4)
}

func TestMissingFields(t *testing.T) {
	s := NewSetBuilder()
	d, err := s.NewDimension()
	require.NoError(t, err)
	require.NoError(t, d.SetName("x"))

	err = d.Close()
	var herr *hier.Error
	require.ErrorAs(t, err, &herr)
	assert.ErrorIs(t, err, hier.ErrStructure)
	assert.Equal(t, []string{"parser", "dimension-type", "dimension-direction"}, herr.Missing)

	d.Discard()
	_, err = s.Build()
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, []string{"dimension"}, herr.Missing)
}

func TestChildOrder(t *testing.T) {
	s := NewSetBuilder()
	addDim(t, s, "x", "long", RuntimeCPU, Increasing)

	in := addInstance(t, s, "i")
	_, err := s.NewDimension()
	assert.ErrorIs(t, err, hier.ErrStructure, "dimension after instance")
	_, err = s.NewExperiment()
	assert.ErrorIs(t, err, hier.ErrStructure, "experiment while instance open")
	require.NoError(t, in.Close())

	e, err := s.NewExperiment()
	require.NoError(t, err)
	_, err = s.NewInstance()
	assert.ErrorIs(t, err, hier.ErrStructure, "instance after experiment")

	require.NoError(t, e.SetName("e"))
	ir, err := e.NewInstanceRuns()
	require.NoError(t, err)
	_, err = ir.NewRun()
	assert.ErrorIs(t, err, hier.ErrStructure, "run before instance")
	assert.ErrorIs(t, ir.SetInstance("nope"), hier.ErrValue)
	require.NoError(t, ir.SetInstance("i"))

	assert.ErrorIs(t, ir.Close(), hier.ErrStructure, "no runs")
	assert.ErrorIs(t, e.Close(), hier.ErrStructure, "open child")
}

func TestRunChecks(t *testing.T) {
	s := NewSetBuilder()
	addDim(t, s, "t", "long:0:1000", RuntimeCPU, IncreasingStrictly)
	addDim(t, s, "f", "double", QualityProblemIndependent, Decreasing)
	in := addInstance(t, s, "i")
	require.NoError(t, in.SetUpperBound("f", "10"))
	require.NoError(t, in.SetLowerBound("t", "5"))
	assert.ErrorIs(t, in.SetLowerBound("t", "6"), hier.ErrValue, "bound redefinition")
	assert.ErrorIs(t, in.SetLowerBound("q", "6"), hier.ErrValue, "unknown dimension")
	assert.ErrorIs(t, in.SetLowerBound("t", "-1"), hier.ErrValue, "outside dimension bounds")
	require.NoError(t, in.Close())

	lo, hi, ok := s.Instance("i").Bounds(1)
	require.True(t, ok)
	assert.False(t, lo.IsInt())
	assert.Equal(t, numparse.FloatOf(10), hi)

	e, err := s.NewExperiment()
	require.NoError(t, err)
	require.NoError(t, e.SetName("e"))
	ir, err := e.NewInstanceRuns()
	require.NoError(t, err)
	require.NoError(t, ir.SetInstance("i"))
	r, err := ir.NewRun()
	require.NoError(t, err)

	assert.ErrorIs(t, r.AddDataPointString("4 1"), numparse.ErrBounds, "below instance bound")
	assert.ErrorIs(t, r.AddDataPointString("5 11"), numparse.ErrBounds, "above instance bound")
	assert.ErrorIs(t, r.AddDataPointString("5"), hier.ErrValue, "too few values")
	assert.ErrorIs(t, r.AddDataPointString("5.5 1"), numparse.ErrSyntax)
	require.NoError(t, r.AddDataPointString("5 9"))
	assert.ErrorIs(t, r.AddDataPointString("5 8"), hier.ErrValue, "strictly increasing")
	assert.ErrorIs(t, r.AddDataPointString("6 9.5"), hier.ErrValue, "decreasing")
	require.NoError(t, r.AddDataPoint(numparse.FloatOf(6), numparse.IntOf(9)))
	assert.Equal(t, 2, r.Len())
	require.NoError(t, r.Close())
	assert.ErrorIs(t, r.AddDataPointString("7 1"), hier.ErrState)

	empty, err := ir.NewRun()
	require.NoError(t, err)
	err = empty.Close()
	var herr *hier.Error
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, []string{"point"}, herr.Missing)
	empty.Discard()

	require.NoError(t, ir.Close())
	require.NoError(t, e.Close())
	set, err := s.Build()
	require.NoError(t, err)
	assert.Equal(t, "6 9", set.Experiments[0].Runs[0].Runs[0].Last().String())
}

func TestDuplicates(t *testing.T) {
	s := NewSetBuilder()
	addDim(t, s, "x", "long", RuntimeCPU, Increasing)
	d, err := s.NewDimension()
	require.NoError(t, err)
	require.NoError(t, d.SetName("x"))
	require.NoError(t, d.SetParserSpec("int"))
	require.NoError(t, d.SetTypeString("ITERATION_FE"))
	require.NoError(t, d.SetDirectionString("increasing-strictly"))
	assert.ErrorIs(t, d.Close(), hier.ErrValue)

	require.NoError(t, addInstance(t, s, "i").Close())
	require.NoError(t, addInstance(t, s, "i").Close(), "identical redeclaration")
	assert.ErrorIs(t, addInstance(t, s, "i", "n", "1").Close(), hier.ErrValue)

	e, err := s.NewExperiment()
	require.NoError(t, err)
	require.NoError(t, e.SetName("e"))
	for i := 0; i < 2; i++ {
		ir, err := e.NewInstanceRuns()
		require.NoError(t, err)
		require.NoError(t, ir.SetInstance("i"))
		addRun(t, ir, "1")
		if i == 0 {
			require.NoError(t, ir.Close())
		} else {
			assert.ErrorIs(t, ir.Close(), hier.ErrValue)
		}
	}
	require.NoError(t, e.Close())
	set, err := s.Build()
	require.NoError(t, err)
	assert.Len(t, set.Dimensions, 1)
	assert.Len(t, set.Instances, 1)
}

func TestPropertyDescriptions(t *testing.T) {
	s := NewSetBuilder()
	addDim(t, s, "x", "long", RuntimeCPU, Increasing)

	a, err := s.NewInstance()
	require.NoError(t, err)
	require.NoError(t, a.SetName("a"))
	require.NoError(t, a.SetFeatureValue("n", "", "10", ""))
	require.NoError(t, a.SetFeatureValue("n", "size", "10", "ten"), "descriptions fill in")
	assert.ErrorIs(t, a.SetFeatureValue("n", "", "11", ""), hier.ErrValue, "different value")
	assert.ErrorIs(t, a.SetFeatureValue("", "", "11", ""), hier.ErrValue, "empty name")
	require.NoError(t, a.Close())

	b, err := s.NewInstance()
	require.NoError(t, err)
	require.NoError(t, b.SetName("b"))
	assert.ErrorIs(t, b.SetFeatureValue("n", "count", "3", ""), hier.ErrValue, "conflicting description")
	assert.ErrorIs(t, b.SetFeatureValue("n", "", "10", "zehn"), hier.ErrValue, "conflicting value description")
	require.NoError(t, b.SetFeatureValue("n", "", "3", "three"))
	require.NoError(t, b.Close())

	set, err := s.Build()
	require.NoError(t, err)
	n := set.Feature("n")
	assert.Equal(t, "size", n.Description)
	require.Len(t, n.Values, 2)
	assert.Equal(t, "3", n.Values[0].Value)
	assert.Equal(t, "ten", n.Values[1].ValueDescription)
}

func TestSharedValues(t *testing.T) {
	s := NewSetBuilder()
	addDim(t, s, "x", "long", RuntimeCPU, Increasing)
	require.NoError(t, addInstance(t, s, "a", "n", "1").Close())
	a := s.Instance("a")
	assert.Empty(t, a.Feature("n").ValueDescription)

	b, err := s.NewInstance()
	require.NoError(t, err)
	require.NoError(t, b.SetName("b"))
	require.NoError(t, b.SetFeatureValue("n", "size", "1", "one"))
	require.NoError(t, b.Close())

	// Descriptions given later reach instances compiled earlier.
	set, err := s.Build()
	require.NoError(t, err)
	assert.Same(t, a, set.Instance("a"))
	assert.Equal(t, "one", a.Feature("n").ValueDescription)
	assert.Equal(t, "size", a.Feature("n").Property.Description)
}

func addExperiment(t *testing.T, s *SetBuilder, name, restarts string, runs map[string][]string) error {
	t.Helper()
	e, err := s.NewExperiment()
	require.NoError(t, err)
	require.NoError(t, e.SetName(name))
	require.NoError(t, e.SetParameterValue("restarts", "", restarts, ""))
	for _, inst := range []string{"i", "j"} {
		if runs[inst] == nil {
			continue
		}
		ir, err := e.NewInstanceRuns()
		require.NoError(t, err)
		require.NoError(t, ir.SetInstance(inst))
		addRun(t, ir, runs[inst]...)
		require.NoError(t, ir.Close())
	}
	return e.Close()
}

func TestNextDocument(t *testing.T) {
	s := NewSetBuilder()
	require.NoError(t, s.NextDocument())
	addDim(t, s, "t", "long:0:", RuntimeCPU, IncreasingStrictly)
	addDim(t, s, "f", "double", QualityProblemIndependent, Decreasing)
	in := addInstance(t, s, "i")
	require.NoError(t, in.SetUpperBound("f", "10"))
	require.NoError(t, in.Close())
	require.NoError(t, addExperiment(t, s, "e", "1", map[string][]string{"i": {"1 5"}}))

	// A second document repeats the declarations.
	require.NoError(t, s.NextDocument())
	addDim(t, s, "t", "long:0:", RuntimeCPU, IncreasingStrictly)
	addDim(t, s, "f", "double", QualityProblemIndependent, Decreasing)
	in = addInstance(t, s, "i")
	require.NoError(t, in.SetUpperBound("f", "10"))
	require.NoError(t, in.Close())
	require.NoError(t, addInstance(t, s, "j").Close())
	require.NoError(t, addExperiment(t, s, "e", "1", map[string][]string{"i": {"2 4"}, "j": {"3 3"}}))
	assert.ErrorIs(t, addExperiment(t, s, "e", "2", map[string][]string{"j": {"1 1"}}), hier.ErrValue, "different parameters")

	set, err := s.Build()
	require.NoError(t, err)
	assert.Equal(t, Stats{Dimensions: 2, Instances: 2, Experiments: 1, InstanceRuns: 2, Runs: 3, Points: 3}, set.Stats())
	e := set.Experiment("e")
	ir := e.InstanceRuns("i")
	require.Len(t, ir.Runs, 2)
	assert.Equal(t, "2 4", ir.Runs[1].Points[0].String())
	assert.Same(t, ir, ir.Runs[1].Owner)
	assert.Same(t, e, e.InstanceRuns("j").Experiment)
	assert.Equal(t, "1", e.Parameter("restarts").Value)
}

func TestNextDocumentConflicts(t *testing.T) {
	s := NewSetBuilder()
	addDim(t, s, "t", "long", RuntimeCPU, Increasing)
	addDim(t, s, "f", "double", QualityProblemIndependent, Decreasing)
	in := addInstance(t, s, "i")
	require.NoError(t, in.SetUpperBound("f", "10"))
	require.NoError(t, in.Close())

	require.NoError(t, s.NextDocument())
	d, err := s.NewDimension()
	require.NoError(t, err)
	require.NoError(t, d.SetName("f"))
	require.NoError(t, d.SetParserSpec("double"))
	require.NoError(t, d.SetType(QualityProblemIndependent))
	require.NoError(t, d.SetDirection(Decreasing))
	assert.ErrorIs(t, d.Close(), hier.ErrStructure, "out of order")

	require.NoError(t, s.NextDocument())
	d, err = s.NewDimension()
	require.NoError(t, err)
	require.NoError(t, d.SetName("t"))
	require.NoError(t, d.SetParserSpec("long"))
	require.NoError(t, d.SetType(RuntimeCPU))
	require.NoError(t, d.SetDirection(IncreasingStrictly))
	assert.ErrorIs(t, d.Close(), hier.ErrValue, "different direction")

	require.NoError(t, s.NextDocument())
	d, err = s.NewDimension()
	require.NoError(t, err)
	require.NoError(t, d.SetName("g"))
	require.NoError(t, d.SetParserSpec("long"))
	require.NoError(t, d.SetType(RuntimeCPU))
	require.NoError(t, d.SetDirection(Increasing))
	assert.ErrorIs(t, d.Close(), hier.ErrStructure, "new dimension after instances")

	require.NoError(t, s.NextDocument())
	in = addInstance(t, s, "i")
	require.NoError(t, in.SetUpperBound("f", "9"))
	assert.ErrorIs(t, in.Close(), hier.ErrValue, "different bounds")

	in = addInstance(t, s, "k")
	_, err = s.NewDimension()
	assert.ErrorIs(t, err, hier.ErrStructure, "dimension after instance")
	assert.ErrorIs(t, s.NextDocument(), hier.ErrStructure, "instance open")
	require.NoError(t, in.Close())
}

func TestSetterProtocol(t *testing.T) {
	s := NewSetBuilder()
	d, err := s.NewDimension()
	require.NoError(t, err)
	require.NoError(t, d.SetParserBounds("int", "0", "1e3"))
	require.NoError(t, d.SetParserSpec("int:0:1000"), "identical parser")
	assert.ErrorIs(t, d.SetParserSpec("long"), hier.ErrValue)
	assert.ErrorIs(t, d.SetParserBounds("long", "lots", ""), hier.ErrValue)
	assert.ErrorIs(t, d.SetTypeString("wallclock"), hier.ErrValue)
	assert.ErrorIs(t, d.SetName(""), hier.ErrValue)
}

func TestTypeNames(t *testing.T) {
	for _, s := range []string{"runtimeCPU", "RUNTIME_CPU", "runtime-cpu", "RuntimeCpu"} {
		typ, err := ParseType(s)
		require.NoError(t, err, s)
		assert.Equal(t, RuntimeCPU, typ)
	}
	assert.Equal(t, "runtimeCPU", RuntimeCPU.String())
	assert.Equal(t, "QUALITY_PROBLEM_DEPENDENT", QualityProblemDependent.ConstName())
	assert.True(t, IterationSubStep.IsTimeMeasure())
	assert.False(t, IterationSubStep.IsSolutionQualityMeasure())
	assert.True(t, QualityProblemIndependent.IsSolutionQualityMeasure())

	dir, err := ParseDirection("DECREASING_STRICTLY")
	require.NoError(t, err)
	assert.Equal(t, DecreasingStrictly, dir)
	assert.True(t, dir.IsStrict())
	assert.False(t, dir.IsIncreasing())
	_, err = ParseDirection("sideways")
	assert.Error(t, err)
}
