// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package edi

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"golang.org/x/benchexp/expdata"
	"golang.org/x/benchexp/numparse"
)

// A Writer writes experiment sets in the canonical EDI layout.
//
// Reading the output of a Writer and writing the result again
// reproduces the output byte for byte.
type Writer struct {
	w     io.Writer
	buf   bytes.Buffer
	depth int
}

// NewWriter returns a Writer that writes to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write writes set as one document.
func (w *Writer) Write(set *expdata.ExperimentSet) error {
	w.buf.Reset()
	w.depth = 0
	w.buf.WriteString(xml.Header)
	w.open(elemExperimentData, false, "xmlns", Namespace)
	for _, d := range set.Dimensions {
		w.writeDimension(d)
	}
	for _, in := range set.Instances {
		w.writeInstance(set, in)
	}
	for _, e := range set.Experiments {
		w.writeExperiment(e)
	}
	w.close(elemExperimentData)

	// Writes to the buffer can't fail, so only this can.
	_, err := w.w.Write(w.buf.Bytes())
	return err
}

func (w *Writer) indent() {
	for i := 0; i < w.depth; i++ {
		w.buf.WriteByte('\t')
	}
}

// open writes a start tag with the given attribute name/value pairs.
// Values are whitespace-normalized like the Handler does, and empty
// ones are omitted. If empty, the element is closed immediately.
func (w *Writer) open(name string, empty bool, attrs ...string) {
	w.indent()
	w.buf.WriteByte('<')
	w.buf.WriteString(name)
	for i := 0; i+1 < len(attrs); i += 2 {
		v := strings.Join(strings.Fields(attrs[i+1]), " ")
		if v == "" {
			continue
		}
		w.buf.WriteByte(' ')
		w.buf.WriteString(attrs[i])
		w.buf.WriteString(`="`)
		xml.EscapeText(&w.buf, []byte(v))
		w.buf.WriteByte('"')
	}
	if empty {
		w.buf.WriteString("/>\n")
		return
	}
	w.buf.WriteString(">\n")
	w.depth++
}

func (w *Writer) close(name string) {
	w.depth--
	w.indent()
	w.buf.WriteString("</")
	w.buf.WriteString(name)
	w.buf.WriteString(">\n")
}

// parserAttrs returns the data type and bound attributes describing p.
func parserAttrs(p numparse.Parser) []string {
	typ, bounds, _ := strings.Cut(p.String(), ":")
	lower, upper, _ := strings.Cut(bounds, ":")
	attrs := []string{attrDimensionDataType, typ}
	if p.Kind() == numparse.Int {
		return append(attrs, attrIntegerLowerBound, lower, attrIntegerUpperBound, upper)
	}
	return append(attrs, attrFloatLowerBound, lower, attrFloatUpperBound, upper)
}

func (w *Writer) writeDimension(d *expdata.Dimension) {
	attrs := []string{
		attrName, d.Name,
		attrDescription, d.Description,
		attrDimensionType, d.Type.String(),
		attrDimensionDirection, d.Direction.String(),
	}
	w.open(elemDimension, true, append(attrs, parserAttrs(d.Parser)...)...)
}

func (w *Writer) writeInstance(set *expdata.ExperimentSet, in *expdata.Instance) {
	type bound struct {
		dim          *expdata.Dimension
		lower, upper string
	}
	var bounds []bound
	for _, d := range set.Dimensions {
		lo, hi, ok := in.Bounds(d.Index)
		if !ok {
			continue
		}
		dlo, dhi := d.Parser.Bounds()
		var b bound
		if lo != dlo {
			b.lower = lo.String()
		}
		if hi != dhi {
			b.upper = hi.String()
		}
		if b.lower != "" || b.upper != "" {
			b.dim = d
			bounds = append(bounds, b)
		}
	}

	empty := len(in.Features) == 0 && len(bounds) == 0
	w.open(elemInstance, empty, attrName, in.Name, attrDescription, in.Description)
	if empty {
		return
	}
	for _, f := range in.Features {
		w.open(elemFeature, true,
			attrName, f.Property.Name,
			attrFeatureDescription, f.Property.Description,
			attrFeatureValue, f.Value,
			attrFeatureValueDescription, f.ValueDescription)
	}
	for _, b := range bounds {
		lower, upper := attrIntegerLowerBound, attrIntegerUpperBound
		if b.dim.Parser.Kind() == numparse.Float {
			lower, upper = attrFloatLowerBound, attrFloatUpperBound
		}
		w.open(elemBounds, true, attrDimension, b.dim.Name, lower, b.lower, upper, b.upper)
	}
	w.close(elemInstance)
}

func (w *Writer) writeExperiment(e *expdata.Experiment) {
	empty := len(e.Parameters) == 0 && len(e.Runs) == 0
	w.open(elemExperiment, empty, attrName, e.Name, attrDescription, e.Description)
	if empty {
		return
	}
	for _, p := range e.Parameters {
		w.open(elemParameter, true,
			attrName, p.Property.Name,
			attrParameterDescription, p.Property.Description,
			attrParameterValue, p.Value,
			attrParameterValueDescription, p.ValueDescription)
	}
	for _, ir := range e.Runs {
		w.open(elemInstanceRuns, false, attrInstance, ir.Instance.Name)
		for _, r := range ir.Runs {
			w.open(elemRun, false)
			for _, p := range r.Points {
				w.writePoint(p)
			}
			w.close(elemRun)
		}
		w.close(elemInstanceRuns)
	}
	w.close(elemExperiment)
}

func (w *Writer) writePoint(p expdata.DataPoint) {
	w.indent()
	w.buf.WriteString("<point>")
	for _, v := range p {
		elem := elemFloat
		if v.IsInt() {
			elem = elemInt
		}
		w.buf.WriteString("<" + elem + ">")
		w.buf.Write(v.Append(w.buf.AvailableBuffer()))
		w.buf.WriteString("</" + elem + ">")
	}
	w.buf.WriteString("</point>\n")
}
