// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package edi

import (
	"encoding/xml"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"golang.org/x/benchexp/expdata"
	"golang.org/x/benchexp/hier"
)

// builder is the part of the expdata builders the Handler drives.
type builder interface {
	hier.Builder
	Kind() string
	Close() error
	Discard()
}

// A Handler ingests the events of one EDI document into a SetBuilder.
//
// The Handler keeps a stack of open builders whose bottom is the
// SetBuilder. An element either continues the builder on top of the
// stack, if that builder has the right kind, or closes builders until
// reaching an ancestor it can create its builder under.
//
// The first error is sticky: it discards every builder above the
// SetBuilder, and every later event returns it again. The SetBuilder
// itself is never closed, so several documents can be read into it.
type Handler struct {
	set      *expdata.SetBuilder
	stack    []builder
	fileName string
	locate   func() (line, column int)
	log      *slog.Logger

	// id numbers implicitly created instances and experiments.
	id int
	// inPoint is the depth of nested point elements.
	inPoint int
	text    []byte
	element string

	err error
}

// NewHandler returns a Handler feeding set. fileName is used in
// errors and diagnostics.
func NewHandler(set *expdata.SetBuilder, fileName string, opts ...Option) *Handler {
	o := newOptions(opts)
	if fileName == "" {
		fileName = "<unknown>"
	}
	return &Handler{
		set:      set,
		stack:    []builder{set},
		fileName: fileName,
		log:      o.logger.With("file", fileName),
	}
}

// SetLocator installs a function reporting the current input
// position, used in errors.
func (h *Handler) SetLocator(locate func() (line, column int)) {
	h.locate = locate
}

func (h *Handler) line() int {
	if h.locate == nil {
		return 0
	}
	line, _ := h.locate()
	return line
}

// Err returns the error that stopped ingestion, if any.
func (h *Handler) Err() error {
	return h.err
}

// fail records err, wrapped in a *SyntaxError, and discards the open
// builders.
func (h *Handler) fail(err error) error {
	if h.err != nil {
		return h.err
	}
	if _, ok := err.(*SyntaxError); !ok {
		err = &SyntaxError{FileName: h.fileName, Line: h.line(), Element: h.element, Err: err}
	}
	h.err = err
	h.Abort()
	return err
}

// Abort discards every builder above the SetBuilder.
func (h *Handler) Abort() {
	for i := len(h.stack) - 1; i > 0; i-- {
		h.stack[i].Discard()
	}
	h.stack = h.stack[:1]
	h.inPoint = 0
	h.text = h.text[:0]
}

// End finishes the document, closing any builders still open, and
// returns the sticky error.
func (h *Handler) End() error {
	if h.err != nil {
		return h.err
	}
	h.element = ""
	if err := h.closeAbove(0); err != nil {
		return h.fail(err)
	}
	return nil
}

// Warning logs a recoverable problem and continues.
func (h *Handler) Warning(err error) {
	h.log.Warn("edi warning", "line", h.line(), "err", err)
}

// Error logs an error that does not prevent ingestion and continues.
func (h *Handler) Error(err error) {
	h.log.Error("edi error", "line", h.line(), "err", err)
}

// FatalError stops ingestion with err.
func (h *Handler) FatalError(err error) error {
	return h.fail(err)
}

func isEDI(space string) bool {
	return space == "" || strings.EqualFold(space, Namespace)
}

// StartElement processes the start of an element.
func (h *Handler) StartElement(space, local string, attrs []xml.Attr) error {
	if h.err != nil {
		return h.err
	}
	if !isEDI(space) {
		return nil
	}
	name := strings.ToLower(local)
	h.element = name
	h.log.Debug("start element", "element", name, "line", h.line())

	var err error
	switch name {
	case elemExperimentData:
		if len(h.stack) == 1 {
			err = h.set.NextDocument()
		}
	case elemDimension:
		err = h.startDimension(attrs)
	case elemInstance:
		err = h.startInstance(attrs)
	case elemFeature:
		err = h.startFeature(attrs)
	case elemBounds:
		err = h.startBounds(attrs)
	case elemExperiment:
		err = h.startExperiment(attrs)
	case elemParameter:
		err = h.startParameter(attrs)
	case elemInstanceRuns:
		err = h.startInstanceRuns(attrs)
	case elemRun:
		err = h.startRun()
	case elemPoint:
		err = h.startPoint()
	case elemInt, elemFloat:
		if h.inPoint > 0 && len(h.text) > 0 {
			h.text = append(h.text, ' ')
		}
	default:
		h.Warning(fmt.Errorf("unknown element <%s>", local))
	}
	if err != nil {
		return h.fail(err)
	}
	return nil
}

// EndElement processes the end of an element.
func (h *Handler) EndElement(space, local string) error {
	if h.err != nil {
		return h.err
	}
	if !isEDI(space) {
		return nil
	}
	name := strings.ToLower(local)
	h.element = name

	var err error
	switch name {
	case elemExperimentData:
		err = h.closeAbove(0)
	case elemDimension, elemInstance, elemExperiment, elemInstanceRuns, elemRun:
		err = h.closeThrough(name)
	case elemPoint:
		err = h.endPoint()
	}
	if err != nil {
		return h.fail(err)
	}
	return nil
}

// CharData processes text. Only text inside a point is kept.
func (h *Handler) CharData(data []byte) {
	if h.err == nil && h.inPoint > 0 {
		h.text = append(h.text, data...)
	}
}

func (h *Handler) top() builder {
	return h.stack[len(h.stack)-1]
}

func (h *Handler) push(b builder) {
	h.stack = append(h.stack, b)
}

func (h *Handler) structural(msg string) error {
	return hier.Errorf(hier.ErrStructure, h.top().Kind(), "", "", msg)
}

// closeAbove closes every builder above stack index i.
func (h *Handler) closeAbove(i int) error {
	for len(h.stack) > i+1 {
		b := h.top()
		if err := b.Close(); err != nil {
			return err
		}
		h.stack = h.stack[:len(h.stack)-1]
	}
	return nil
}

// closeThrough closes builders down to and including the nearest
// builder of the given kind.
func (h *Handler) closeThrough(kind string) error {
	for i := len(h.stack) - 1; i > 0; i-- {
		if h.stack[i].Kind() == kind {
			return h.closeAbove(i - 1)
		}
	}
	return h.structural("unmatched </" + kind + ">")
}

// popTo closes builders until the top has the given kind, which must
// be on the stack.
func (h *Handler) popTo(kind string) (builder, error) {
	for i := len(h.stack) - 1; i >= 0; i-- {
		if h.stack[i].Kind() == kind {
			if err := h.closeAbove(i); err != nil {
				return nil, err
			}
			return h.stack[i], nil
		}
	}
	return nil, h.structural("<" + h.element + "> outside <" + kind + ">")
}

// autoName returns the name of the next implicitly created builder.
func (h *Handler) autoName() string {
	name := strconv.Itoa(h.id)
	h.id++
	return name
}

// attr returns the whitespace-normalized value of the named
// attribute. An empty value counts as absent.
func attr(attrs []xml.Attr, name string) (string, bool) {
	for _, a := range attrs {
		if isEDI(a.Name.Space) && strings.EqualFold(a.Name.Local, name) {
			v := strings.Join(strings.Fields(a.Value), " ")
			return v, v != ""
		}
	}
	return "", false
}

func attrOr(attrs []xml.Attr, names ...string) string {
	for _, name := range names {
		if v, ok := attr(attrs, name); ok {
			return v
		}
	}
	return ""
}

// setters applies the attributes present in attrs.
type setters []struct {
	attr string
	set  func(string) error
}

func (s setters) apply(attrs []xml.Attr) error {
	for _, a := range s {
		if v, ok := attr(attrs, a.attr); ok {
			if err := a.set(v); err != nil {
				return err
			}
		}
	}
	return nil
}

func (h *Handler) startDimension(attrs []xml.Attr) error {
	d, ok := h.top().(*expdata.DimensionBuilder)
	if !ok {
		if _, err := h.popTo(h.set.Kind()); err != nil {
			return err
		}
		var err error
		if d, err = h.set.NewDimension(); err != nil {
			return err
		}
		h.push(d)
	}
	if name, ok := attr(attrs, attrName); ok {
		h.log.Debug("begin dimension", "name", name)
	}
	err := setters{
		{attrName, d.SetName},
		{attrDescription, d.SetDescription},
		{attrDimensionType, d.SetTypeString},
		{attrDimensionDirection, d.SetDirectionString},
	}.apply(attrs)
	if err != nil {
		return err
	}

	lower := attrOr(attrs, attrIntegerLowerBound, attrFloatLowerBound)
	upper := attrOr(attrs, attrIntegerUpperBound, attrFloatUpperBound)
	typ, ok := attr(attrs, attrDimensionDataType)
	if !ok {
		if lower == "" && upper == "" {
			return nil
		}
		typ = "long"
		if attrOr(attrs, attrFloatLowerBound, attrFloatUpperBound) != "" {
			typ = "double"
		}
	}
	return d.SetParserBounds(typ, lower, upper)
}

func (h *Handler) startInstance(attrs []xml.Attr) error {
	in, ok := h.top().(*expdata.InstanceBuilder)
	if !ok {
		if _, err := h.popTo(h.set.Kind()); err != nil {
			return err
		}
		var err error
		if in, err = h.set.NewInstance(); err != nil {
			return err
		}
		h.push(in)
	}
	if name, ok := attr(attrs, attrName); ok {
		h.log.Debug("begin instance", "name", name)
	}
	return setters{
		{attrName, in.SetName},
		{attrDescription, in.SetDescription},
	}.apply(attrs)
}

func (h *Handler) startFeature(attrs []xml.Attr) error {
	in, ok := h.top().(*expdata.InstanceBuilder)
	if !ok {
		if _, err := h.popTo(h.set.Kind()); err != nil {
			return err
		}
		var err error
		if in, err = h.set.NewInstance(); err != nil {
			return err
		}
		h.push(in)
		if err := in.SetName(h.autoName()); err != nil {
			return err
		}
	}
	return in.SetFeatureValue(
		attrOr(attrs, attrName),
		attrOr(attrs, attrFeatureDescription),
		attrOr(attrs, attrFeatureValue),
		attrOr(attrs, attrFeatureValueDescription))
}

func (h *Handler) startBounds(attrs []xml.Attr) error {
	in, ok := h.top().(*expdata.InstanceBuilder)
	if !ok {
		return h.structural("<bounds> outside <instance>")
	}
	dim, ok := attr(attrs, attrDimension)
	if !ok {
		h.Warning(fmt.Errorf("<bounds> without %s attribute", attrDimension))
		return nil
	}
	if lb := attrOr(attrs, attrFloatLowerBound, attrIntegerLowerBound); lb != "" {
		if err := in.SetLowerBound(dim, lb); err != nil {
			return err
		}
	}
	if ub := attrOr(attrs, attrFloatUpperBound, attrIntegerUpperBound); ub != "" {
		if err := in.SetUpperBound(dim, ub); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) newExperiment(named bool) (*expdata.ExperimentBuilder, error) {
	if _, err := h.popTo(h.set.Kind()); err != nil {
		return nil, err
	}
	e, err := h.set.NewExperiment()
	if err != nil {
		return nil, err
	}
	h.push(e)
	if !named {
		if err := e.SetName(h.autoName()); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (h *Handler) startExperiment(attrs []xml.Attr) error {
	e, ok := h.top().(*expdata.ExperimentBuilder)
	if !ok {
		var err error
		if e, err = h.newExperiment(true); err != nil {
			return err
		}
	}
	if name, ok := attr(attrs, attrName); ok {
		h.log.Debug("begin experiment", "name", name)
	}
	return setters{
		{attrName, e.SetName},
		{attrDescription, e.SetDescription},
	}.apply(attrs)
}

func (h *Handler) startParameter(attrs []xml.Attr) error {
	e, ok := h.top().(*expdata.ExperimentBuilder)
	if !ok {
		var err error
		if e, err = h.newExperiment(false); err != nil {
			return err
		}
	}
	return e.SetParameterValue(
		attrOr(attrs, attrName),
		attrOr(attrs, attrParameterDescription),
		attrOr(attrs, attrParameterValue),
		attrOr(attrs, attrParameterValueDescription))
}

func (h *Handler) startInstanceRuns(attrs []xml.Attr) error {
	e, ok := h.top().(*expdata.ExperimentBuilder)
	if !ok {
		var err error
		if e, err = h.newExperiment(false); err != nil {
			return err
		}
	}
	ir, err := e.NewInstanceRuns()
	if err != nil {
		return err
	}
	h.push(ir)
	return setters{{attrInstance, ir.SetInstance}}.apply(attrs)
}

func (h *Handler) startRun() error {
	b, err := h.popTo("instance-runs")
	if err != nil {
		return err
	}
	r, err := b.(*expdata.InstanceRunsBuilder).NewRun()
	if err != nil {
		return err
	}
	h.push(r)
	return nil
}

func (h *Handler) startPoint() error {
	switch b := h.top().(type) {
	case *expdata.RunBuilder:
	case *expdata.InstanceRunsBuilder:
		r, err := b.NewRun()
		if err != nil {
			return err
		}
		h.push(r)
	default:
		if h.inPoint == 0 {
			return h.structural("<point> outside <run>")
		}
	}
	if h.inPoint == 0 {
		h.text = h.text[:0]
	}
	h.inPoint++
	return nil
}

func (h *Handler) endPoint() error {
	if h.inPoint == 0 {
		return h.structural("unmatched </point>")
	}
	h.inPoint--
	if h.inPoint > 0 {
		return nil
	}
	text := strings.Join(strings.Fields(string(h.text)), " ")
	h.text = h.text[:0]
	r, ok := h.top().(*expdata.RunBuilder)
	if !ok {
		return h.structural("</point> outside <run>")
	}
	return r.AddDataPointString(text)
}
