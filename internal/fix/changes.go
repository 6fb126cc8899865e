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

package fix

import (
	"fmt"
	"go/token"
	"iter"
	"maps"
	"os"
	"slices"
	"strings"

	"golang.org/x/tools/go/analysis"
)

// Changes collects edits for several files during a run, to be applied after analysis completed.
//
// Edits of different translation units refer to their own file sets, so they are stored
// as file offsets together with the content they were computed against.
type Changes struct {
	files map[string]*file
}

type file struct {
	content []byte
	edits   []edit
}

// Add records edits of file with the given content.
func (c *Changes) Add(f *token.File, content []byte, edits ...analysis.TextEdit) error {
	if len(edits) == 0 {
		return nil
	}

	es, err := offsets(f, content, edits)
	if err != nil {
		return err
	}

	if c.files == nil {
		c.files = make(map[string]*file)
	}

	fc, ok := c.files[f.Name()]
	if !ok {
		fc = &file{content: content}
		c.files[f.Name()] = fc
	}

	fc.edits = append(fc.edits, es...)

	return nil
}

// Len returns the number of files with edits.
func (c *Changes) Len() int { return len(c.files) }

// Files yields the names of files with edits, sorted.
func (c *Changes) Files() iter.Seq[string] {
	return slices.Values(slices.Sorted(maps.Keys(c.files)))
}

// Result returns the original and the edited content of the named file.
func (c *Changes) Result(name string) (before, after []byte, err error) {
	fc, ok := c.files[name]
	if !ok {
		return nil, nil, fmt.Errorf("%s: %w", name, os.ErrNotExist)
	}

	after, err = apply(name, fc.content, fc.edits)
	if err != nil {
		return nil, nil, err
	}

	return fc.content, after, nil
}

// Diff returns unified diffs of all edited files.
func (c *Changes) Diff() (string, error) {
	var diffs strings.Builder

	for name := range c.Files() {
		before, after, err := c.Result(name)
		if err != nil {
			return "", err
		}

		d, err := Diff(name, before, after)
		if err != nil {
			return "", err
		}

		diffs.WriteString(d) // ignore error
	}

	return diffs.String(), nil
}

// Write applies the edits and writes all edited files back. Nothing is written when any file has overlapping edits.
func (c *Changes) Write() error {
	results := make(map[string][]byte, len(c.files))

	for name := range c.Files() {
		_, after, err := c.Result(name)
		if err != nil {
			return err
		}

		results[name] = after
	}

	for name := range c.Files() {
		if err := writeFile(name, results[name]); err != nil {
			return err
		}
	}

	return nil
}

func writeFile(name string, content []byte) error {
	info, err := os.Stat(name)
	if err != nil {
		return fmt.Errorf("write fix: %w", err)
	}

	if err := os.WriteFile(name, content, info.Mode().Perm()); err != nil {
		return fmt.Errorf("write fix: %w", err)
	}

	return nil
}
