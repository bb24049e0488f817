// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package edi

import (
	"bytes"

	"github.com/cespare/xxhash/v2"

	"golang.org/x/benchexp/expdata"
	"golang.org/x/benchexp/internal/diff"
)

// Marshal returns the canonical serialization of set.
func Marshal(set *expdata.ExperimentSet) []byte {
	var buf bytes.Buffer
	// Writing to a bytes.Buffer does not fail.
	NewWriter(&buf).Write(set)
	return buf.Bytes()
}

// Digest returns the xxhash64 of the canonical serialization of set.
// Two sets have equal digests if they serialize identically.
func Digest(set *expdata.ExperimentSet) uint64 {
	d := xxhash.New()
	// xxhash.Digest.Write never fails.
	NewWriter(d).Write(set)
	return d.Sum64()
}

// RoundTrip serializes set, reads the result back and serializes it
// again. It reports whether both serializations are identical and,
// if not, a line diff between them.
func RoundTrip(set *expdata.ExperimentSet) (same bool, delta string, err error) {
	first := Marshal(set)
	again, err := Load(bytes.NewReader(first), "<round trip>")
	if err != nil {
		return false, "", err
	}
	second := Marshal(again)
	if xxhash.Sum64(first) == xxhash.Sum64(second) && bytes.Equal(first, second) {
		return true, "", nil
	}
	return false, diff.Diff(string(first), string(second)), nil
}
