// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"golang.org/x/benchexp/expdata"
)

func (a *app) summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary [files...]",
		Short: "List dimensions and the runs of each experiment",
		Long: `Summary prints the dimensions of the experiment set, followed by
one row per experiment and instance with the number of runs and points
and the best final value of every solution-quality dimension.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := a.load(args)
			if err != nil {
				return err
			}
			return writeSummary(cmd.OutOrStdout(), set)
		},
	}
}

// newTable returns a borderless table in the style of the command.
func newTable() table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateHeader = false
	return tbl
}

func writeSummary(w io.Writer, set *expdata.ExperimentSet) error {
	dims := newTable()
	dims.AppendHeader(table.Row{"dimension", "type", "direction", "values"})
	var quality []*expdata.Dimension
	for _, d := range set.Dimensions {
		dims.AppendRow(table.Row{d.Name, d.Type.String(), d.Direction.String(), d.Parser.String()})
		if d.Type.IsSolutionQualityMeasure() {
			quality = append(quality, d)
		}
	}

	runs := newTable()
	header := table.Row{"experiment", "instance", "runs", "points"}
	for _, d := range quality {
		header = append(header, "best "+d.Name)
	}
	runs.AppendHeader(header)
	for _, e := range set.Experiments {
		for _, ir := range e.Runs {
			points := 0
			for _, r := range ir.Runs {
				points += len(r.Points)
			}
			row := table.Row{e.Name, ir.Instance.Name, humanize.Comma(int64(len(ir.Runs))), humanize.Comma(int64(points))}
			for _, d := range quality {
				row = append(row, bestFinal(ir, d))
			}
			runs.AppendRow(row)
		}
	}
	st := set.Stats()
	runs.AppendFooter(table.Row{
		fmt.Sprintf("%d experiments", st.Experiments),
		fmt.Sprintf("%d instances", st.Instances),
		humanize.Comma(int64(st.Runs)),
		humanize.Comma(int64(st.Points)),
	})

	_, err := fmt.Fprintf(w, "%s\n\n%s\n", dims.Render(), runs.Render())
	return err
}

// bestFinal returns the best value of d over the final points of the
// runs in ir.
func bestFinal(ir *expdata.InstanceRuns, d *expdata.Dimension) string {
	var best expdata.DataPoint
	for _, r := range ir.Runs {
		last := r.Last()
		if best == nil {
			best = last
			continue
		}
		c := last[d.Index].Compare(best[d.Index])
		if (d.Direction.IsIncreasing() && c > 0) || (!d.Direction.IsIncreasing() && c < 0) {
			best = last
		}
	}
	if best == nil {
		return ""
	}
	return best[d.Index].String()
}
