// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiff(t *testing.T) {
	assert.Equal(t, "", Diff("a\nb\n", "a\nb\n"))

	got := Diff("a\nb\nc\n", "a\nB\nc\n")
	assert.Equal(t, "@@ -1 +1 @@\n a\n-b\n+B\n c\n", got)

	// Every hunk has a header, including one at the first line.
	got = Diff("a\nb\n", "A\nb\n")
	assert.Equal(t, "@@ -1 +1 @@\n-a\n+A\n b\n", got)
}

func TestDiffContext(t *testing.T) {
	var lines []string
	for i := 0; i < 20; i++ {
		lines = append(lines, strings.Repeat("x", i+1))
	}
	s1 := strings.Join(lines, "\n") + "\n"
	lines[10] = "changed"
	s2 := strings.Join(lines, "\n") + "\n"

	got := Diff(s1, s2)
	assert.Contains(t, got, "@@ -8 +8 @@\n")
	assert.Contains(t, got, "+changed\n")
	assert.NotContains(t, got, " x\n", "distant lines are elided")
	assert.Equal(t, 1+3+1+1+3, strings.Count(got, "\n"))
}
