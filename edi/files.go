// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package edi

import (
	"bufio"
	"bytes"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"

	"golang.org/x/benchexp/expdata"
)

var gzipMagic = []byte{0x1f, 0x8b}

// A Files reads a sequence of EDI documents into one SetBuilder.
//
// Gzip-compressed inputs are detected by their magic number and
// decompressed transparently.
type Files struct {
	// Paths is the list of file names to read in.
	Paths []string

	// AllowStdin indicates that the path "-" should be treated as
	// stdin and if the file list is empty, it should be treated
	// as consisting of stdin.
	//
	// This is generally the desired behavior when the file list
	// comes from command-line flags.
	AllowStdin bool

	// Options are passed to the Reader of each file.
	Options []Option

	// inputs is the sequence of remaining inputs, or nil if this
	// Files has not started yet.
	inputs []string
	path   string
	err    error
}

// init does first-use initialization of f.
func (f *Files) init() {
	f.inputs = []string{}
	if f.AllowStdin && len(f.Paths) == 0 {
		f.inputs = append(f.inputs, "-")
	}
	f.inputs = append(f.inputs, f.Paths...)
}

// Scan reads the next file into set and reports whether a file was
// read. If Scan reaches the end of the file sequence, or if an error
// occurs, it returns false. In this case, the caller should use the
// Err method to check for errors.
func (f *Files) Scan(set *expdata.SetBuilder) bool {
	if f.err != nil {
		return false
	}
	if f.inputs == nil {
		f.init()
	}
	if len(f.inputs) == 0 {
		return false
	}
	f.path, f.inputs = f.inputs[0], f.inputs[1:]
	f.err = f.read(set)
	return f.err == nil
}

func (f *Files) read(set *expdata.SetBuilder) error {
	var r io.Reader
	if f.AllowStdin && f.path == "-" {
		r = os.Stdin
	} else {
		file, err := os.Open(f.path)
		if err != nil {
			return err
		}
		defer file.Close()
		r = file
	}
	r, closeFn, err := decompress(r)
	if err != nil {
		return err
	}
	defer closeFn()
	return NewReader(r, f.path, f.Options...).Read(set)
}

// decompress returns a reader of the decompressed contents of r if r
// starts with a gzip header, and r otherwise.
func decompress(r io.Reader) (io.Reader, func() error, error) {
	br := bufio.NewReader(r)
	magic, _ := br.Peek(len(gzipMagic))
	if !bytes.Equal(magic, gzipMagic) {
		return br, func() error { return nil }, nil
	}
	zr, err := gzip.NewReader(br)
	if err != nil {
		return nil, nil, err
	}
	return zr, zr.Close, nil
}

// Path returns the path of the file most recently read by Scan.
func (f *Files) Path() string {
	return f.path
}

// Err returns the error that stopped Scan, if any.
// If Scan stopped because it read each file to completion,
// or if Scan has not yet returned false, Err returns nil.
func (f *Files) Err() error {
	return f.err
}

// LoadFiles reads every file in paths into a new ExperimentSet. The
// path "-" denotes stdin.
func LoadFiles(paths []string, opts ...Option) (*expdata.ExperimentSet, error) {
	set := expdata.NewSetBuilder()
	f := &Files{Paths: paths, AllowStdin: true, Options: opts}
	for f.Scan(set) {
	}
	if err := f.Err(); err != nil {
		return nil, err
	}
	return set.Build()
}

// NewGzipWriter returns a writer compressing to w. The caller must
// close it to flush the compressed stream.
func NewGzipWriter(w io.Writer) io.WriteCloser {
	return gzip.NewWriter(w)
}
