// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"golang.org/x/benchexp/expdata"
	"golang.org/x/benchexp/internal/numfmt"
	"golang.org/x/benchexp/numparse"
	"golang.org/x/benchexp/valuegroup"
)

type groupFlags struct {
	feature, parameter, dimension string
	mode                          string
	format                        string
	human                         bool
}

func (a *app) groupCmd() *cobra.Command {
	var f groupFlags
	cmd := &cobra.Command{
		Use:   "group (--feature|--parameter|--dimension) name [files...]",
		Short: "Partition feature, parameter or final run values into ranges",
		Long: `Group collects numeric values and partitions them into a few
contiguous ranges. The values are those of an instance feature over all
instances, of an experiment parameter over all experiments, or of a
dimension at the end of every run.

The mode selects the kind of ranges: distinct (one group per value),
powers (between powers of 2, 10, 100, 1000 or 10000), multiples
(between multiples of a step) or any (the best of all).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGroup(cmd.OutOrStdout(), &f, args)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.feature, "feature", "", "group the values of instance feature `name`")
	fl.StringVar(&f.parameter, "parameter", "", "group the values of experiment parameter `name`")
	fl.StringVar(&f.dimension, "dimension", "", "group the final values of dimension `name` over all runs")
	fl.StringVar(&f.mode, "mode", "", "grouping `mode`: distinct, powers, multiples or any (default from config)")
	fl.StringVar(&f.format, "format", "text", "output `format`: text, yaml or csv")
	fl.BoolVar(&f.human, "human", false, "scale range bounds with SI or binary prefixes")
	cmd.MarkFlagsMutuallyExclusive("feature", "parameter", "dimension")
	cmd.MarkFlagsOneRequired("feature", "parameter", "dimension")
	return cmd
}

// A member is one grouped item and its value.
type member struct {
	name  string
	value numparse.Number
}

func (a *app) runGroup(w io.Writer, f *groupFlags, args []string) error {
	switch f.format {
	case "text", "yaml", "csv":
	default:
		return fmt.Errorf("unknown format %q", f.format)
	}
	grouper, mode, err := a.cfg.Grouping.Grouper()
	if err != nil {
		return err
	}
	if f.mode != "" {
		if mode, err = valuegroup.ParseMode(f.mode); err != nil {
			return err
		}
	}

	set, err := a.load(args)
	if err != nil {
		return err
	}
	source, members, err := collect(set, f)
	if err != nil {
		return err
	}
	if len(members) == 0 {
		return fmt.Errorf("%s: no values", source)
	}

	nums := make([]numparse.Number, len(members))
	for i, m := range members {
		nums[i] = m.value
	}
	values, err := valuegroup.Aggregate(nums)
	if err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}
	gs, err := grouper.Group(mode, values)
	if err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}
	a.log.Debug("grouped", "source", source, "mode", gs.Mode, "param", gs.Param, "groups", len(gs.Groups))

	rep := newReport(source, gs, members, f.human)
	switch f.format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return err
		}
		return enc.Close()
	case "csv":
		return rep.writeCSV(w)
	}
	return rep.writeText(w)
}

// collect returns the values selected by f.
func collect(set *expdata.ExperimentSet, f *groupFlags) (source string, members []member, err error) {
	switch {
	case f.feature != "":
		source = "feature " + f.feature
		if set.Feature(f.feature) == nil {
			return source, nil, fmt.Errorf("unknown feature %q", f.feature)
		}
		for _, in := range set.Instances {
			if members, err = appendProperty(members, source, in.Name, in.Feature(f.feature)); err != nil {
				return source, nil, err
			}
		}
	case f.parameter != "":
		source = "parameter " + f.parameter
		if set.Parameter(f.parameter) == nil {
			return source, nil, fmt.Errorf("unknown parameter %q", f.parameter)
		}
		for _, e := range set.Experiments {
			if members, err = appendProperty(members, source, e.Name, e.Parameter(f.parameter)); err != nil {
				return source, nil, err
			}
		}
	case f.dimension != "":
		source = "dimension " + f.dimension
		d := set.Dimensions.Lookup(f.dimension)
		if d == nil {
			return source, nil, fmt.Errorf("unknown dimension %q", f.dimension)
		}
		for _, e := range set.Experiments {
			for _, ir := range e.Runs {
				for i, r := range ir.Runs {
					name := fmt.Sprintf("%s/%s#%d", e.Name, ir.Instance.Name, i+1)
					members = append(members, member{name, r.Last()[d.Index]})
				}
			}
		}
	default:
		return "", nil, errors.New("one of --feature, --parameter or --dimension is required")
	}
	return source, members, nil
}

// appendProperty appends owner's value v, if any, to members.
func appendProperty(members []member, source, owner string, v *expdata.PropertyValue) ([]member, error) {
	if v == nil {
		return members, nil
	}
	n, ok := v.Number()
	if !ok {
		return nil, fmt.Errorf("%s: value %q of %s is not a number", source, v.Value, owner)
	}
	return append(members, member{owner, n}), nil
}

// report is the printed result of grouping.
type report struct {
	Source string        `yaml:"source"`
	Mode   string        `yaml:"mode"`
	Param  string        `yaml:"param,omitempty"`
	Groups []reportGroup `yaml:"groups"`
}

type reportGroup struct {
	Range   string   `yaml:"range"`
	Values  int      `yaml:"values"`
	Count   int      `yaml:"count"`
	Members []string `yaml:"members"`
}

func newReport(source string, gs *valuegroup.Groups, members []member, human bool) *report {
	rep := &report{Source: source, Mode: gs.Mode.String()}
	if gs.Param.IsValid() {
		rep.Param = gs.Param.String()
	}
	scaler := numfmt.NoOpScaler
	if human {
		scaler = numfmt.GroupScale(gs)
	}
	for _, g := range gs.Groups {
		rep.Groups = append(rep.Groups, reportGroup{
			Range:  scaler.Range(g),
			Values: g.Size,
			Count:  g.Count,
		})
	}
	for _, m := range members {
		if i, ok := gs.Index(m.value); ok {
			rep.Groups[i].Members = append(rep.Groups[i].Members, m.name)
		}
	}
	return rep
}

func (rep *report) writeText(w io.Writer) error {
	mode := rep.Mode
	if rep.Param != "" {
		mode += "(" + rep.Param + ")"
	}
	tbl := newTable()
	tbl.AppendHeader(table.Row{"range", "values", "count", "members"})
	for _, g := range rep.Groups {
		tbl.AppendRow(table.Row{g.Range, g.Values, g.Count, strings.Join(g.Members, " ")})
	}
	_, err := fmt.Fprintf(w, "%s: %s, %d groups\n%s\n", rep.Source, mode, len(rep.Groups), tbl.Render())
	return err
}

// writeCSV writes one row per member: the range of its group, the
// group's position and the member name.
func (rep *report) writeCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	cw.Write([]string{"group", "range", "member"})
	for i, g := range rep.Groups {
		for _, m := range g.Members {
			cw.Write([]string{strconv.Itoa(i), g.Range, m})
		}
	}
	cw.Flush()
	return cw.Error()
}
