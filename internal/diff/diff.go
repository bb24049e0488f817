// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diff formats line differences between two texts.
package diff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// context is the number of unchanged lines shown around a change.
const context = 3

// Diff returns a human-readable description of the differences
// between s1 and s2: removed lines are prefixed with "-", added lines
// with "+", and unchanged lines near a change with " ". It returns ""
// if the texts are equal.
func Diff(s1, s2 string) string {
	if s1 == s2 {
		return ""
	}
	dmp := diffmatchpatch.New()
	c1, c2, lines := dmp.DiffLinesToChars(s1, s2)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(c1, c2, false), lines)

	var b strings.Builder
	line1, line2 := 1, 1
	if len(diffs) > 0 && diffs[0].Type != diffmatchpatch.DiffEqual {
		fmt.Fprintf(&b, "@@ -%d +%d @@\n", line1, line2)
	}
	for i, d := range diffs {
		ls := splitLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			writeLines(&b, "-", ls)
			line1 += len(ls)
		case diffmatchpatch.DiffInsert:
			writeLines(&b, "+", ls)
			line2 += len(ls)
		case diffmatchpatch.DiffEqual:
			n := len(ls)
			show := func(from, to int) { writeLines(&b, " ", ls[from:to]) }
			hunk := func(skip int) { fmt.Fprintf(&b, "@@ -%d +%d @@\n", line1+skip, line2+skip) }
			switch {
			case i == len(diffs)-1:
				show(0, min(n, context))
			case i == 0:
				hunk(max(0, n-context))
				show(max(0, n-context), n)
			case n > 2*context:
				show(0, context)
				hunk(n - context)
				show(n-context, n)
			default:
				show(0, n)
			}
			line1 += n
			line2 += n
		}
	}
	return b.String()
}

func splitLines(s string) []string {
	ls := strings.SplitAfter(s, "\n")
	if len(ls) > 0 && ls[len(ls)-1] == "" {
		ls = ls[:len(ls)-1]
	}
	return ls
}

func writeLines(b *strings.Builder, prefix string, ls []string) {
	for _, l := range ls {
		b.WriteString(prefix)
		b.WriteString(l)
		if !strings.HasSuffix(l, "\n") {
			b.WriteString("\n\\ No newline at end of text\n")
		}
	}
}
