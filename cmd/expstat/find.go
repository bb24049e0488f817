// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"golang.org/x/benchexp/expdata"
)

func (a *app) findCmd() *cobra.Command {
	var dimension, value string
	cmd := &cobra.Command{
		Use:   "find --dimension name --value v [files...]",
		Short: "Look up the point of every run at a dimension value",
		Long: `Find prints, for every run, the earliest point holding the last
value of the dimension that is at or before the given value. For time
dimensions a run with no such point yields its first point; for
solution-quality dimensions it yields nothing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := a.load(args)
			if err != nil {
				return err
			}
			return writeFind(cmd.OutOrStdout(), set, dimension, value)
		},
	}
	cmd.Flags().StringVar(&dimension, "dimension", "", "search dimension `name`")
	cmd.Flags().StringVar(&value, "value", "", "search for value `v`")
	cmd.MarkFlagRequired("dimension")
	cmd.MarkFlagRequired("value")
	return cmd
}

func writeFind(w io.Writer, set *expdata.ExperimentSet, dimension, value string) error {
	d := set.Dimensions.Lookup(dimension)
	if d == nil {
		return fmt.Errorf("unknown dimension %q", dimension)
	}
	q, err := d.Parser.Parse(value)
	if err != nil {
		return fmt.Errorf("dimension %s: %w", d.Name, err)
	}

	tbl := newTable()
	header := table.Row{"experiment", "instance", "run"}
	for _, dim := range set.Dimensions {
		header = append(header, dim.Name)
	}
	tbl.AppendHeader(header)
	found := 0
	for _, e := range set.Experiments {
		for _, ir := range e.Runs {
			for i, r := range ir.Runs {
				row := table.Row{e.Name, ir.Instance.Name, i + 1}
				if p, ok := r.Find(d.Index, q); ok {
					found++
					for _, v := range p {
						row = append(row, v.String())
					}
				} else {
					for range set.Dimensions {
						row = append(row, "-")
					}
				}
				tbl.AppendRow(row)
			}
		}
	}
	_, err = fmt.Fprintf(w, "%s at %v: %d of %d runs\n%s\n", d.Name, q, found, set.Stats().Runs, tbl.Render())
	return err
}
