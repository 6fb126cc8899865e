// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package fix applies the text edits collected during a pass to source files.
package fix

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"go/token"
	"slices"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/tools/go/analysis"
)

var (
	// ErrOverlap is returned when two edits of one file overlap.
	ErrOverlap = errors.New("overlapping edits")

	// ErrRange is returned when an edit lies outside of its file.
	ErrRange = errors.New("edit out of range")
)

// edit is a text edit in file offsets.
type edit struct {
	from, to int
	text     []byte
}

// offsets converts edits into offsets of file, checking they lie within content.
func offsets(file *token.File, content []byte, edits []analysis.TextEdit) ([]edit, error) {
	es := make([]edit, 0, len(edits))

	for _, e := range edits {
		if file.Base() > int(e.Pos) || int(e.End) > file.Base()+file.Size() || e.End < e.Pos {
			return nil, fmt.Errorf("%w: %s [%d,%d)", ErrRange, file.Name(), e.Pos, e.End)
		}

		from, to := file.Offset(e.Pos), file.Offset(e.End)
		if to > len(content) {
			return nil, fmt.Errorf("%w: %s [%d,%d)", ErrRange, file.Name(), from, to)
		}

		es = append(es, edit{from: from, to: to, text: e.NewText})
	}

	return es, nil
}

// Apply applies edits to content, the text of file. All edits must lie within file.
// Identical replacements are applied once; insertions at the same position are applied in the given order.
func Apply(file *token.File, content []byte, edits []analysis.TextEdit) ([]byte, error) {
	es, err := offsets(file, content, edits)
	if err != nil {
		return nil, err
	}

	return apply(file.Name(), content, es)
}

func apply(name string, content []byte, es []edit) ([]byte, error) {
	es = slices.Clone(es)
	slices.SortStableFunc(es, func(a, b edit) int { return cmp.Or(cmp.Compare(a.from, b.from), cmp.Compare(a.to, b.to)) })

	es = slices.CompactFunc(es, func(a, b edit) bool {
		return a.from == b.from && a.to == b.to && a.from != a.to && bytes.Equal(a.text, b.text)
	})

	var out bytes.Buffer
	out.Grow(len(content))

	last := 0

	for _, e := range es {
		if e.from < last {
			return nil, fmt.Errorf("%w: %s at offset %d", ErrOverlap, name, e.from)
		}

		out.Write(content[last:e.from]) // ignore error
		out.Write(e.text)               // ignore error
		last = e.to
	}

	out.Write(content[last:]) // ignore error

	return out.Bytes(), nil
}

// Diff returns a unified diff between the old and the new content of the named file.
func Diff(name string, before, after []byte) (string, error) {
	d := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  3,
	}

	text, err := difflib.GetUnifiedDiffString(d)
	if err != nil {
		return "", fmt.Errorf("diff %s: %w", name, err)
	}

	return text, nil
}
