// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"golang.org/x/benchexp/edi"
	"golang.org/x/benchexp/expdata"
)

var errNotCanonical = errors.New("canonical form does not survive a round trip")

func (a *app) canonCmd() *cobra.Command {
	var compress, check bool
	cmd := &cobra.Command{
		Use:   "canon [-z] [--check] [files...]",
		Short: "Write the canonical form of the input",
		Long: `Canon merges its inputs and writes them as one canonical EDI
document. Reading the canonical form back and writing it again yields
identical bytes.

With --check, canon writes nothing but verifies that property for the
input, printing the digest of the canonical form, or a line diff if the
round trip changes it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := a.load(args)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if check {
				return a.check(w, set)
			}
			if !compress {
				return edi.NewWriter(w).Write(set)
			}
			zw := edi.NewGzipWriter(w)
			if err := edi.NewWriter(zw).Write(set); err != nil {
				zw.Close()
				return err
			}
			return zw.Close()
		},
	}
	cmd.Flags().BoolVarP(&compress, "gzip", "z", false, "gzip the output")
	cmd.Flags().BoolVar(&check, "check", false, "verify the canonical round trip instead of writing")
	return cmd
}

func (a *app) check(w io.Writer, set *expdata.ExperimentSet) error {
	same, delta, err := edi.RoundTrip(set)
	if err != nil {
		return fmt.Errorf("round trip: %w", err)
	}
	if !same {
		a.log.Error("round trip changed the canonical form")
		fmt.Fprint(w, delta)
		return errNotCanonical
	}
	_, err = fmt.Fprintf(w, "canonical %016x\n", edi.Digest(set))
	return err
}
