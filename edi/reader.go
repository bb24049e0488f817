// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package edi

import (
	"encoding/xml"
	"errors"
	"io"

	"golang.org/x/net/html/charset"

	"golang.org/x/benchexp/expdata"
)

// A Reader reads one EDI document.
type Reader struct {
	d        *xml.Decoder
	fileName string
	opts     []Option
}

// NewReader returns a Reader for the document in r. fileName is used
// in error messages; it is purely diagnostic.
//
// Documents in encodings other than UTF-8 are decoded according to
// their XML declaration.
func NewReader(r io.Reader, fileName string, opts ...Option) *Reader {
	d := xml.NewDecoder(r)
	d.CharsetReader = charset.NewReaderLabel
	return &Reader{d: d, fileName: fileName, opts: opts}
}

// Read ingests the document into set. On error, everything the
// document added below the set's open builders is discarded, and the
// error is a *SyntaxError.
func (r *Reader) Read(set *expdata.SetBuilder) error {
	h := NewHandler(set, r.fileName, r.opts...)
	h.SetLocator(r.d.InputPos)
	for {
		tok, err := r.d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			var serr *xml.SyntaxError
			if errors.As(err, &serr) {
				return h.FatalError(&SyntaxError{FileName: h.fileName, Line: serr.Line, Err: err})
			}
			return h.FatalError(err)
		}
		switch tok := tok.(type) {
		case xml.StartElement:
			err = h.StartElement(tok.Name.Space, tok.Name.Local, tok.Attr)
		case xml.EndElement:
			err = h.EndElement(tok.Name.Space, tok.Name.Local)
		case xml.CharData:
			h.CharData(tok)
		}
		if err != nil {
			return err
		}
	}
	return h.End()
}

// Load reads a single EDI document into a new ExperimentSet.
func Load(r io.Reader, fileName string, opts ...Option) (*expdata.ExperimentSet, error) {
	set := expdata.NewSetBuilder()
	if err := NewReader(r, fileName, opts...).Read(set); err != nil {
		return nil, err
	}
	return set.Build()
}
