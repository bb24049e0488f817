// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hier implements the lifecycle shared by hierarchical
// builders.
//
// A builder embeds a Node and is built in three states. A new builder
// is Constructed; Open registers it with its parent and makes it
// mutable; Close compiles it, after which it is immutable. Builders
// form a tree: a parent must be open while its children are, and a
// parent cannot close while any child is open.
//
// Each Node has its own lock. A goroutine never holds a parent's lock
// while acquiring a child's: locks are taken child first.
package hier

import (
	"fmt"
	"math/bits"
	"strings"
	"sync"
)

// A State is a builder lifecycle state.
type State uint8

const (
	Constructed State = iota
	Open
	Closed
)

func (s State) String() string {
	switch s {
	case Constructed:
		return "constructed"
	case Open:
		return "open"
	case Closed:
		return "closed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// A Builder is a type embedding a Node.
type Builder interface {
	// Compile validates the accumulated fields and produces the
	// builder's immutable result. Close calls it exactly once while
	// holding the builder's lock, so it accesses fields directly.
	Compile() error

	hierNode() *Node
}

// ChildHooks may be implemented by a Builder that wants to take part
// in the lifecycle of its children.
//
// The hooks run while both the child's and the parent's locks are
// held. They access the fields of both builders directly and must not
// call Mutate, View or any other locking method on either.
type ChildHooks interface {
	// BeforeChildOpens may veto the opening of child by returning an
	// error.
	BeforeChildOpens(child Builder) error
	// AfterChildOpened runs once child is registered as open.
	AfterChildOpened(child Builder)
	// AfterChildClosed receives a compiled child. An error rejects the
	// child's result; the child stays closed and the error is
	// returned from its Close.
	AfterChildClosed(child Builder) error
}

// DiscardHook may be implemented by a Builder that tracks its open
// children. It runs under the same locks as ChildHooks when an open
// child is discarded.
type DiscardHook interface {
	AfterChildDiscarded(child Builder)
}

// A Node carries the lifecycle state of a builder.
type Node struct {
	mu sync.RWMutex

	self   Builder
	parent *Node
	kind   string
	names  []string

	state        State
	flags        uint64
	openChildren int
}

func (n *Node) hierNode() *Node { return n }

// Init prepares a Node for use by self, the builder embedding it.
// parent is nil for a root. flagNames names the builder's flag bits:
// bit i is the field flagNames[i].
func (n *Node) Init(self, parent Builder, kind string, flagNames ...string) {
	if len(flagNames) > 64 {
		panic("hier: too many flags")
	}
	n.self = self
	if parent != nil {
		n.parent = parent.hierNode()
	}
	n.kind = kind
	n.names = flagNames
}

// Kind returns the kind of builder given to Init.
func (n *Node) Kind() string { return n.kind }

// State returns the lifecycle state.
func (n *Node) State() State {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.state
}

func (n *Node) String() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.kind + "(" + n.state.String() + ")"
}

func (n *Node) stateError(op string) *Error {
	return Errorf(ErrState, n.kind, "", "", op+" while "+n.state.String())
}

// Open moves a Constructed builder to Open and registers it as an
// open child of its parent. The parent must be open and its
// BeforeChildOpens hook, if any, must accept the child.
func (n *Node) Open() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.state != Constructed {
		return n.stateError("open")
	}
	if p := n.parent; p != nil {
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.state != Open {
			return Errorf(ErrState, p.kind, "", "", "add "+n.kind+" while "+p.state.String())
		}
		hooks, _ := p.self.(ChildHooks)
		if hooks != nil {
			if err := hooks.BeforeChildOpens(n.self); err != nil {
				return err
			}
		}
		p.openChildren++
		n.state = Open
		if hooks != nil {
			hooks.AfterChildOpened(n.self)
		}
		return nil
	}
	n.state = Open
	return nil
}

// Close compiles an Open builder and moves it to Closed. It fails if
// the builder has open children or Compile fails, in which case the
// builder stays open.
func (n *Node) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.state != Open {
		return n.stateError("close")
	}
	if n.openChildren > 0 {
		return Errorf(ErrStructure, n.kind, "", "", fmt.Sprintf("close with %d open children", n.openChildren))
	}
	if err := n.self.Compile(); err != nil {
		return err
	}
	n.state = Closed
	if p := n.parent; p != nil {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.openChildren--
		if hooks, ok := p.self.(ChildHooks); ok {
			return hooks.AfterChildClosed(n.self)
		}
	}
	return nil
}

// Discard moves a builder that is not Closed to Closed without
// compiling it and detaches it from its parent. Discarding a Closed
// builder does nothing.
func (n *Node) Discard() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.state == Closed {
		return
	}
	if p := n.parent; n.state == Open && p != nil {
		p.mu.Lock()
		p.openChildren--
		if hook, ok := p.self.(DiscardHook); ok {
			hook.AfterChildDiscarded(n.self)
		}
		p.mu.Unlock()
	}
	n.state = Closed
}

// Mutate runs fn under the builder's write lock if the builder is
// Open.
func (n *Node) Mutate(fn func() error) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.state != Open {
		return n.stateError("modify")
	}
	return fn()
}

// View runs fn under the builder's read lock.
func (n *Node) View(fn func()) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	fn()
}

// Set implements the setter protocol for flag. The first Set of a
// flag calls assign and marks the flag set. Later calls are no-ops if
// same reports that the new value equals the current one, and value
// errors otherwise. text is the new value's text form, used in errors.
func (n *Node) Set(flag int, text string, same func() bool, assign func()) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.set(flag, text, same, assign)
}

func (n *Node) set(flag int, text string, same func() bool, assign func()) error {
	if n.state != Open {
		return &Error{Kind: ErrState, Builder: n.kind, Field: n.names[flag], Text: text,
			Err: fmt.Errorf("set while %s", n.state)}
	}
	bit := uint64(1) << flag
	if n.flags&bit != 0 {
		if same() {
			return nil
		}
		return Errorf(ErrValue, n.kind, n.names[flag], text, "already set to a different value")
	}
	assign()
	n.flags |= bit
	return nil
}

// SetText sets the string field dst marked by flag. Empty or
// all-space text is a value error.
func (n *Node) SetText(flag int, text string, dst *string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.state == Open && strings.TrimSpace(text) == "" {
		return Errorf(ErrValue, n.kind, n.names[flag], text, "empty value")
	}
	return n.set(flag, text, func() bool { return *dst == text }, func() { *dst = text })
}

// IsSet reports whether flag is set.
func (n *Node) IsSet(flag int) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.flags&(1<<flag) != 0
}

// HasFlag reports whether flag is set. Unlike IsSet it takes no lock
// and is meant for Compile and hooks.
func (n *Node) HasFlag(flag int) bool {
	return n.flags&(1<<flag) != 0
}

// MarkFlag sets flag without the setter protocol. It takes no lock
// and is meant for Compile, hooks and Mutate functions.
func (n *Node) MarkFlag(flag int) {
	n.flags |= 1 << flag
}

// RequireFlags checks that every flag in mask is set, reporting the
// names of all missing ones in a structural error. It is meant to be
// called from Compile.
func (n *Node) RequireFlags(mask uint64) error {
	missing := mask &^ n.flags
	if missing == 0 {
		return nil
	}
	err := &Error{Kind: ErrStructure, Builder: n.kind}
	for missing != 0 {
		i := bits.TrailingZeros64(missing)
		err.Missing = append(err.Missing, n.names[i])
		missing &^= 1 << i
	}
	return err
}

// Flag returns the mask of the named flag bits.
func Flag(flags ...int) uint64 {
	var m uint64
	for _, b := range flags {
		m |= 1 << b
	}
	return m
}
