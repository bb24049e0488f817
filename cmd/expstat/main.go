// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Expstat inspects experiment data in the Experiment Data Interchange
// (EDI) format.
//
// Usage:
//
//	expstat [--config file] command [flags] [files...]
//
// Each input is an EDI document, optionally gzip-compressed. All inputs
// of one invocation are read into a single experiment set, so
// dimensions and instances may be declared in one file and used by
// runs in another. With no files, expstat reads stdin.
//
// The commands are:
//
//	summary   list dimensions and the runs of each experiment
//	group     partition feature, parameter or final run values into ranges
//	find      look up the point of every run at a given dimension value
//	canon     write the canonical form of the input
//
// For example, to group the instances of a benchmark by size:
//
//	$ expstat group --feature n --mode powers results/*.edi
//	feature n: powers(100), 2 groups
//	 RANGE       VALUES  COUNT  MEMBERS
//	 [0,100)          2      2  berlin52 eil51
//	 [100,10000)      3      3  kroA100 kroA200 pr1002
//
// Settings are read from expstat.yaml in the current directory or
// $HOME, or from the file named by --config, and may be overridden
// by EXPSTAT_ environment variables such as EXPSTAT_GROUPING_MODE.
// A configuration file looks like:
//
//	grouping:
//	  min_groups: 2
//	  max_groups: 10
//	  max_capacity: 100
//	  mode: any
//	logging:
//	  level: warn
//	  format: text
package main

import (
	"log"
	"log/slog"

	"github.com/spf13/cobra"

	"golang.org/x/benchexp/edi"
	"golang.org/x/benchexp/expdata"
	"golang.org/x/benchexp/internal/config"
)

func main() {
	log.SetPrefix("expstat: ")
	log.SetFlags(0)

	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

// app is the state shared by all commands.
type app struct {
	configPath string
	cfg        *config.Config
	log        *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := new(app)
	root := &cobra.Command{
		Use:   "expstat",
		Short: "Inspect experiment data in EDI format",
		Long: `Expstat reads Experiment Data Interchange (EDI) documents and
summarizes, groups, searches or canonicalizes them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "read settings from `file` (default ./expstat.yaml or $HOME/expstat.yaml)")

	root.AddCommand(a.summaryCmd(), a.groupCmd(), a.findCmd(), a.canonCmd())
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	logger, err := cfg.Logging.NewLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.cfg, a.log = cfg, logger
	return nil
}

// load reads the named files, or stdin if there are none, into one
// experiment set.
func (a *app) load(paths []string) (*expdata.ExperimentSet, error) {
	a.log.Debug("loading", "files", len(paths))
	set, err := edi.LoadFiles(paths, edi.WithLogger(a.log))
	if err != nil {
		return nil, err
	}
	st := set.Stats()
	a.log.Info("loaded", "experiments", st.Experiments, "instances", st.Instances, "runs", st.Runs, "points", st.Points)
	return set, nil
}
