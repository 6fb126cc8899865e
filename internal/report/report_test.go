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

package report_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/analysis"
	"gopkg.in/yaml.v3"

	"fillmore-labs.com/earlyexit/internal/cxx"
	"fillmore-labs.com/earlyexit/internal/fix"
	. "fillmore-labs.com/earlyexit/internal/report"
	"fillmore-labs.com/earlyexit/internal/testsource"
)

const check = "earlyexit-test"

func diagnostic(tb testing.TB, src, name string) (*Emitter, *Collector, *Unit, analysis.Diagnostic) {
	tb.Helper()

	u := testsource.Parse(tb, src)
	fn := testsource.Function(tb, u, name)

	c := &Collector{}
	e := &Emitter{Sink: c}

	return e, c, e.Unit(u), analysis.Diagnostic{Pos: fn.NameRange.Pos(), Category: check, Message: "Message."}
}

func TestSuppression(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		src      string
		reported bool
	}{
		{"plain", "void f() {}\n", true},
		{"nolint", "void f() {} // NOLINT\n", false},
		{"nolint_check", "void f() {} // NOLINT(earlyexit-test)\n", false},
		{"nolint_glob", "void f() {} // NOLINT(bugprone-*, earlyexit-*)\n", false},
		{"nolint_other", "void f() {} // NOLINT(bugprone-*)\n", true},
		{"nolintnextline", "// NOLINTNEXTLINE(earlyexit-test)\nvoid f() {}\n", false},
		{"nolintnextline_far", "// NOLINTNEXTLINE\n\nvoid f() {}\n", true},
		{"generated", "// Code generated by hand. DO NOT EDIT.\n\nvoid f() {}\n", false},
		{"generated_late", "void g();\n// Code generated by hand. DO NOT EDIT.\nvoid f() {}\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e, c, p, d := diagnostic(t, tt.src, "f")

			p.Report(d)

			require.NoError(t, p.Err())
			assert.Equal(t, tt.reported, len(c.Findings()) == 1)
			assert.Equal(t, len(c.Findings()), e.Count(Warning))
		})
	}
}

func TestInternalErrorNotSuppressed(t *testing.T) {
	t.Parallel()

	e, c, p, d := diagnostic(t, "void f() {} // NOLINT\n", "f")

	InternalError(p, cxx.Range{From: d.Pos, To: d.Pos}, "unexpected %s", "node")

	findings := c.Findings()
	require.Len(t, findings, 1)
	assert.Equal(t, Error, findings[0].Level)
	assert.Equal(t, InternalCheck, findings[0].Check)
	assert.Equal(t, "Internal Error: unexpected node", findings[0].Message)
	assert.Equal(t, 1, e.Count(Error))
}

func TestFinding(t *testing.T) {
	t.Parallel()

	const src = "int x;\nvoid f() {}\n"

	_, c, p, d := diagnostic(t, src, "f")

	d.SuggestedFixes = []analysis.SuggestedFix{{TextEdits: []analysis.TextEdit{
		{Pos: d.Pos, End: d.Pos + 1, NewText: []byte("g")},
	}}}

	p.Note(d)

	findings := c.Findings()
	require.Len(t, findings, 1)

	f := findings[0]
	assert.Equal(t, Note, f.Level)
	assert.Equal(t, testsource.Filename, f.File)
	assert.Equal(t, 2, f.Line)
	assert.Equal(t, 6, f.Column)
	assert.Equal(t, strings.Index(src, "f()"), f.Offset)
	assert.Equal(t, []Edit{{File: testsource.Filename, Offset: f.Offset, Length: 1, Text: "g"}}, f.Edits)
}

func TestChanges(t *testing.T) {
	t.Parallel()

	u := testsource.Parse(t, "void f() {}\n")
	fn := testsource.Function(t, u, "f")

	changes := &fix.Changes{}
	e := &Emitter{Sink: &Collector{}, Changes: changes}
	p := e.Unit(u)

	d := analysis.Diagnostic{
		Pos: fn.NameRange.Pos(), Category: check, Message: "Rename.",
		SuggestedFixes: []analysis.SuggestedFix{{TextEdits: []analysis.TextEdit{
			{Pos: fn.NameRange.Pos(), End: fn.NameRange.End(), NewText: []byte("g")},
		}}},
	}

	p.Report(d)
	p.Report(d) // identical edits are applied once

	require.NoError(t, p.Err())

	_, after, err := changes.Result(testsource.Filename)
	require.NoError(t, err)
	assert.Equal(t, "void g() {}\n", string(after))
}

func TestTextSink(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	s := TextSink{W: &buf}
	require.NoError(t, s.Emit(Finding{
		Check: check, Level: Warning, File: "a.cc", Line: 3, Column: 7, Message: "Message.",
	}))
	require.NoError(t, s.Flush())

	assert.Equal(t, "a.cc:3:7: warning: Message. [earlyexit-test]\n", buf.String())
}

func TestJSONSink(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	s := NewJSONSink(&buf)
	require.NoError(t, s.Emit(Finding{Check: check, Level: Note, File: "a.cc", Line: 1, Column: 1}))
	require.NoError(t, s.Flush())

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, "note", got["level"])
	assert.Equal(t, check, got["check"])
	assert.NotContains(t, got, "edits")
}

func TestYAMLSink(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	s := &YAMLSink{W: &buf, MainFile: "a.cc"}
	require.NoError(t, s.Emit(Finding{
		Check: check, Level: Warning, File: "a.cc", Offset: 12, Message: "Message.",
		Edits: []Edit{{File: "a.h", Offset: 4, Length: 2, Text: "x"}},
	}))
	require.NoError(t, s.Flush())

	var got struct {
		MainSourceFile string `yaml:"MainSourceFile"`
		Diagnostics    []struct {
			DiagnosticName    string `yaml:"DiagnosticName"`
			Level             string `yaml:"Level"`
			DiagnosticMessage struct {
				FileOffset   int `yaml:"FileOffset"`
				Replacements []struct {
					FilePath        string `yaml:"FilePath"`
					Offset          int    `yaml:"Offset"`
					Length          int    `yaml:"Length"`
					ReplacementText string `yaml:"ReplacementText"`
				} `yaml:"Replacements"`
			} `yaml:"DiagnosticMessage"`
		} `yaml:"Diagnostics"`
	}

	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, "a.cc", got.MainSourceFile)
	require.Len(t, got.Diagnostics, 1)

	d := got.Diagnostics[0]
	assert.Equal(t, check, d.DiagnosticName)
	assert.Equal(t, "Warning", d.Level)
	assert.Equal(t, 12, d.DiagnosticMessage.FileOffset)
	require.Len(t, d.DiagnosticMessage.Replacements, 1)
	assert.Equal(t, "a.h", d.DiagnosticMessage.Replacements[0].FilePath)
	assert.Equal(t, "x", d.DiagnosticMessage.Replacements[0].ReplacementText)
}

func TestSuppresses(t *testing.T) {
	t.Parallel()

	assert.True(t, Suppresses("", check))
	assert.True(t, Suppresses(" earlyexit-test ", check))
	assert.True(t, Suppresses("*", check))
	assert.False(t, Suppresses("earlyexit-propagate", check))
}
