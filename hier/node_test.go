// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hier

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	flagName = iota
	flagSize
)

type item struct {
	Node
	name string
	size int

	compiled int
}

func newItem(parent Builder) *item {
	it := &item{}
	it.Init(it, parent, "item", "name", "size")
	return it
}

func (it *item) Compile() error {
	if err := it.RequireFlags(Flag(flagName, flagSize)); err != nil {
		return err
	}
	it.compiled++
	return nil
}

func (it *item) setSize(v int) error {
	return it.Set(flagSize, "", func() bool { return it.size == v }, func() { it.size = v })
}

type box struct {
	Node
	sealed bool
	opened []string
	names  map[string]bool
}

func newBox() *box {
	b := &box{names: map[string]bool{}}
	b.Init(b, nil, "box")
	return b
}

func (b *box) Compile() error { return nil }

func (b *box) BeforeChildOpens(child Builder) error {
	if b.sealed {
		return Errorf(ErrStructure, "box", "", "", "sealed")
	}
	return nil
}

func (b *box) AfterChildOpened(child Builder) {
	b.opened = append(b.opened, child.(*item).Kind())
}

func (b *box) AfterChildClosed(child Builder) error {
	it := child.(*item)
	if b.names[it.name] {
		return Errorf(ErrValue, "box", "name", it.name, "duplicate")
	}
	b.names[it.name] = true
	return nil
}

func TestLifecycle(t *testing.T) {
	b := newBox()
	require.NoError(t, b.Open())
	assert.Equal(t, Open, b.State())

	it := newItem(b)
	assert.Equal(t, Constructed, it.State())
	err := it.SetText(flagName, "x", &it.name)
	assert.ErrorIs(t, err, ErrState, "set before open")

	require.NoError(t, it.Open())
	assert.Equal(t, []string{"item"}, b.opened)

	err = b.Close()
	assert.ErrorIs(t, err, ErrStructure, "close with open child")
	assert.Equal(t, Open, b.State())

	require.NoError(t, it.SetText(flagName, "x", &it.name))
	require.NoError(t, it.setSize(3))
	require.NoError(t, it.Close())
	assert.Equal(t, 1, it.compiled)
	assert.Equal(t, "item(closed)", it.String())

	assert.ErrorIs(t, it.Close(), ErrState, "re-close")
	assert.ErrorIs(t, it.setSize(4), ErrState, "set after close")
	assert.ErrorIs(t, it.Mutate(func() error { return nil }), ErrState)
	assert.Equal(t, 1, it.compiled)

	require.NoError(t, b.Close())
	assert.ErrorIs(t, newItem(b).Open(), ErrState, "open child of closed parent")
}

func TestMissingFlags(t *testing.T) {
	it := newItem(nil)
	require.NoError(t, it.Open())

	err := it.Close()
	var herr *Error
	require.ErrorAs(t, err, &herr)
	assert.ErrorIs(t, err, ErrStructure)
	assert.Equal(t, []string{"name", "size"}, herr.Missing)
	assert.Equal(t, "item: missing name, size", err.Error())
	assert.Equal(t, Open, it.State(), "failed compile keeps the builder open")

	require.NoError(t, it.setSize(1))
	err = it.Close()
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, []string{"name"}, herr.Missing)
}

func TestSetterProtocol(t *testing.T) {
	it := newItem(nil)
	require.NoError(t, it.Open())

	require.NoError(t, it.SetText(flagName, "a", &it.name))
	require.NoError(t, it.SetText(flagName, "a", &it.name), "identical redefinition")

	err := it.SetText(flagName, "b", &it.name)
	var herr *Error
	require.ErrorAs(t, err, &herr)
	assert.ErrorIs(t, err, ErrValue)
	assert.Equal(t, "name", herr.Field)
	assert.Equal(t, "b", herr.Text)
	assert.Equal(t, "a", it.name)

	other := newItem(nil)
	require.NoError(t, other.Open())
	assert.ErrorIs(t, other.SetText(flagName, "  ", &other.name), ErrValue)
	assert.False(t, other.IsSet(flagName))
}

func TestHooks(t *testing.T) {
	b := newBox()
	require.NoError(t, b.Open())

	add := func(name string) error {
		it := newItem(b)
		if err := it.Open(); err != nil {
			return err
		}
		if err := it.SetText(flagName, name, &it.name); err != nil {
			return err
		}
		if err := it.setSize(1); err != nil {
			return err
		}
		return it.Close()
	}
	require.NoError(t, add("a"))
	err := add("a")
	assert.ErrorIs(t, err, ErrValue)
	require.NoError(t, b.Close(), "rejected child is not left open")

	b = newBox()
	require.NoError(t, b.Open())
	b.sealed = true
	it := newItem(b)
	assert.ErrorIs(t, it.Open(), ErrStructure)
	assert.Equal(t, Constructed, it.State())
}

func TestDiscard(t *testing.T) {
	b := newBox()
	require.NoError(t, b.Open())
	it := newItem(b)
	require.NoError(t, it.Open())

	it.Discard()
	assert.Equal(t, Closed, it.State())
	assert.Equal(t, 0, it.compiled)
	require.NoError(t, b.Close(), "discarded child no longer blocks close")

	it.Discard()
	assert.Equal(t, Closed, it.State())
}

func TestConcurrentReaders(t *testing.T) {
	b := newBox()
	require.NoError(t, b.Open())

	var wg sync.WaitGroup
	stop := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				_ = b.String()
				_ = b.State()
			}
		}
	}()
	for i := 0; i < 100; i++ {
		it := newItem(b)
		require.NoError(t, it.Open())
		it.Discard()
	}
	close(stop)
	wg.Wait()
	require.NoError(t, b.Close())
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &Error{Kind: ErrValue, Builder: "run", Field: "point", Text: "1 x", Err: cause}
	assert.ErrorIs(t, err, ErrValue)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrState)
	assert.Equal(t, `run point "1 x": boom`, err.Error())
}
