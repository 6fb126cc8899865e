// Copyright 2025-2026 Oliver Eikemeier. All Rights Reserved.
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

package report

import (
	"bytes"
	"go/token"
	"path"
	"regexp"
	"strings"

	"fillmore-labs.com/earlyexit/internal/cxx"
)

// File holds the source of a file findings are reported in.
type File struct {
	handle    *token.File
	content   []byte
	generated bool
}

// NewFile creates a new [File] from a translation unit source.
func NewFile(s *cxx.Source) File {
	if s == nil || s.File == nil || s.Content == nil {
		return File{}
	}

	return File{s.File, s.Content, isGenerated(s.Content)}
}

// Valid returns true if the [File] was successfully created from a file with content.
func (f File) Valid() bool {
	return f.handle != nil
}

// Generated returns true if the file is a generated file.
func (f File) Generated() bool {
	return f.generated
}

var generatedPattern = regexp.MustCompile(`^// Code generated .* DO NOT EDIT\.$`)

// isGenerated reports whether the leading comment lines of content carry a generated code marker.
func isGenerated(content []byte) bool {
	for line := range bytes.Lines(content) {
		line = bytes.TrimSpace(line)

		switch {
		case len(line) == 0:
			continue

		case !bytes.HasPrefix(line, []byte("//")):
			return false

		case generatedPattern.Match(line):
			return true
		}
	}

	return false
}

// line returns the text of the given line.
func (f File) line(n int) string {
	if n < 1 || n > f.handle.LineCount() {
		return ""
	}

	start := f.handle.Offset(f.handle.LineStart(n))
	if start > len(f.content) {
		return ""
	}

	text := f.content[start:]
	if i := bytes.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}

	return string(text)
}

// NoLintComment checks if the line of pos carries a NOLINT comment, or the previous line
// a NOLINTNEXTLINE comment, suppressing check.
func (f File) NoLintComment(pos token.Pos, check string) bool {
	if f.handle == nil {
		return false
	}

	n := f.handle.Line(pos)

	if checks, ok := nolint(f.line(n), "NOLINT"); ok && Suppresses(checks, check) {
		return true
	}

	if checks, ok := nolint(f.line(n-1), "NOLINTNEXTLINE"); ok && Suppresses(checks, check) {
		return true
	}

	return false
}

var nolintPattern = regexp.MustCompile(`//\s*(NOLINT(?:NEXTLINE)?)\b(?:\(([^)]*)\))?`)

// nolint finds a directive of the given kind in a line and returns its check list.
func nolint(line, kind string) (checks string, ok bool) {
	for _, m := range nolintPattern.FindAllStringSubmatch(line, -1) {
		if m[1] == kind {
			return m[2], true
		}
	}

	return "", false
}

// Suppresses checks if the provided NOLINT check list contains the check. An empty list suppresses all checks.
func Suppresses(checks, check string) bool {
	if strings.TrimSpace(checks) == "" {
		return true
	}

	// Parse comma-separated check list
	for pattern := range strings.SplitSeq(checks, ",") {
		if ok, _ := path.Match(strings.TrimSpace(pattern), check); ok {
			return true
		}
	}

	return false
}
