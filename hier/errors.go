// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hier

import (
	"errors"
	"strconv"
	"strings"
)

// Error kinds. Every *Error has one of these as its Kind and matches
// it with errors.Is.
var (
	// ErrStructure reports a violation of the builder tree: missing
	// fields at close, an illegal or misplaced child, or open children.
	ErrStructure = errors.New("structural error")
	// ErrValue reports an unacceptable field value.
	ErrValue = errors.New("value error")
	// ErrState reports an operation that is illegal in the builder's
	// current lifecycle state.
	ErrState = errors.New("state error")
)

// An Error describes a failed builder operation.
type Error struct {
	Kind    error    // ErrStructure, ErrValue or ErrState
	Builder string   // kind of the builder, such as "dimension"
	Field   string   // offending field, if any
	Text    string   // offending text, if any
	Missing []string // names of unset required fields
	Err     error    // underlying cause, if any
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Builder)
	if e.Field != "" {
		b.WriteString(" ")
		b.WriteString(e.Field)
	}
	if e.Text != "" {
		b.WriteString(" ")
		b.WriteString(strconv.Quote(e.Text))
	}
	b.WriteString(": ")
	switch {
	case len(e.Missing) > 0:
		b.WriteString("missing ")
		b.WriteString(strings.Join(e.Missing, ", "))
	case e.Err != nil:
		b.WriteString(e.Err.Error())
	default:
		b.WriteString(e.Kind.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Errorf is a convenience for constructing an *Error whose cause is a
// plain message.
func Errorf(kind error, builder, field, text, msg string) *Error {
	return &Error{Kind: kind, Builder: builder, Field: field, Text: text, Err: errors.New(msg)}
}
