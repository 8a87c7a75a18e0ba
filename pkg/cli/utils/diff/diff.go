/* Copyright 2025 Chronicle Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package diff computes line diffs between two versions of an event body
// and renders them for the terminal.
package diff

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

var (
	colorInsert = color.New(color.FgGreen)
	colorDelete = color.New(color.FgRed)
)

// Lines computes a line-by-line diff between two strings
func Lines(before, after string) []diffmatchpatch.Diff {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = time.Minute

	a, b, lines := dmp.DiffLinesToRunes(before, after)
	diffs := dmp.DiffMainRunes(a, b, false)

	return dmp.DiffCharsToLines(diffs, lines)
}

// Changed reports whether the diff contains any insertion or deletion
func Changed(diffs []diffmatchpatch.Diff) bool {
	for _, d := range diffs {
		if d.Type != diffmatchpatch.DiffEqual {
			return true
		}
	}

	return false
}

// Render writes the diff with a +/- gutter, coloring changed lines
func Render(w io.Writer, diffs []diffmatchpatch.Diff) {
	for _, d := range diffs {
		for _, line := range splitLines(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				fmt.Fprintln(w, colorInsert.Sprintf("+ %s", line))
			case diffmatchpatch.DiffDelete:
				fmt.Fprintln(w, colorDelete.Sprintf("- %s", line))
			default:
				fmt.Fprintf(w, "  %s\n", line)
			}
		}
	}
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}

	return strings.Split(s, "\n")
}
