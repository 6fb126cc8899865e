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

package checks_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/analysis"

	. "fillmore-labs.com/earlyexit/internal/checks"
	"fillmore-labs.com/earlyexit/internal/config"
	"fillmore-labs.com/earlyexit/internal/cxx"
	"fillmore-labs.com/earlyexit/internal/fix"
	"fillmore-labs.com/earlyexit/internal/match"
	"fillmore-labs.com/earlyexit/internal/testsource"
)

type diagnostics []analysis.Diagnostic

func (d *diagnostics) Report(diag analysis.Diagnostic) { *d = append(*d, diag) }

func run(tb testing.TB, u *cxx.TranslationUnit, checks config.CheckFlags, behavior config.Config) diagnostics {
	tb.Helper()

	var ds diagnostics

	check(Checker{
		Unit:     u,
		Reporter: &ds,
		Checks:   config.NewBitMask(checks),
		Behavior: config.NewBitMask(behavior),
	})

	return ds
}

// check runs the enabled checks over the whole translation unit.
func check(c Checker) {
	var f match.Finder

	c.Register(&f)

	f.Run(c.Unit.Root)
}

func line(u *cxx.TranslationUnit, d analysis.Diagnostic) int {
	return u.Position(d.Pos).Line
}

const logPrintf = `void LogPrintf_(const char* fn, const char* file, int line, const char* fmt, int v);
void f() {
  LogPrintf_("f", "a.cc", 1, "value %d", 3);
  LogPrintf_("f", "a.cc", 2, "value %d\n", 3);
  LogPrintf_("f", "a.cc", 3, "", 3);
  LogPrintf_("f", "a.cc", 4, "path\\n", 3);
  LogPrintf_("f", "a.cc", 5, "path\\\n", 3);
  LogPrintf_("f", "a.cc", 6, "two " "parts", 3);
}
`

func TestLogPrintf(t *testing.T) {
	t.Parallel()

	u := testsource.Parse(t, logPrintf)

	ds := run(t, u, config.LogPrintfCheck, 0)

	require.Len(t, ds, 3)

	for i, want := range []int{3, 6, 8} {
		assert.Equal(t, want, line(u, ds[i]))
		assert.Equal(t, LogPrintfName, ds[i].Category)
		assert.Equal(t, "Unterminated LogPrintf", ds[i].Message)
	}

	var edits []analysis.TextEdit
	for _, d := range ds {
		require.Len(t, d.SuggestedFixes, 1)
		edits = append(edits, d.SuggestedFixes[0].TextEdits...)
	}

	for s := range u.Sources() {
		out, err := fix.Apply(s.File, s.Content, edits)
		require.NoError(t, err)

		assert.Contains(t, string(out), `"value %d\n", 3);`)
		assert.Contains(t, string(out), `"path\\n\n", 3);`)
		assert.Contains(t, string(out), `"two " "parts\n", 3);`)
		assert.Contains(t, string(out), `"", 3);`)
	}
}

func TestLogPrintfDisabled(t *testing.T) {
	t.Parallel()

	u := testsource.Parse(t, logPrintf)

	assert.Empty(t, run(t, u, config.NoADLCheck|config.InitListCheck, 0))
}

func TestNoADL(t *testing.T) {
	t.Parallel()

	u := testsource.Parse(t, `namespace ns { struct S {}; void swap(S a, S b); }
void f(ns::S a, ns::S b) {
  swap(a, b);
  ns::swap(a, b);
}
`, testsource.WithADL("swap"))

	ds := run(t, u, config.NoADLCheck, 0)

	require.Len(t, ds, 1)
	assert.Equal(t, "Use of ADL", ds[0].Message)

	text, ok := u.Text(cxx.Range{From: ds[0].Pos, To: ds[0].Pos + 1})
	require.True(t, ok)
	assert.Equal(t, ")", text)
}

func TestExportMain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		src      string
		behavior config.Config
		want     int
	}{
		{"plain", "int main() { return 0; }\n", config.TargetWindows, 1},
		{"not_windows", "int main() { return 0; }\n", 0, 0},
		{"dllexport", "__declspec(dllexport) int main() { return 0; }\n", config.TargetWindows, 0},
		{"visibility", `__attribute__((visibility("default"))) int main() { return 0; }` + "\n", config.TargetWindows, 0},
		{"member", "struct S { int main() { return 0; } };\n", config.TargetWindows, 0},
		{"namespace", "namespace ns { int main() { return 0; } }\n", config.TargetWindows, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			u := testsource.Parse(t, tt.src)

			ds := run(t, u, config.ExportMainCheck, tt.behavior)

			require.Len(t, ds, tt.want)

			for _, d := range ds {
				assert.Equal(t, "Un-exported main function", d.Message)
				assert.Equal(t, ExportMainName, d.Category)
			}
		})
	}
}

func TestInitList(t *testing.T) {
	t.Parallel()

	u := testsource.Parse(t, `struct Options {
  int a;
  bool b;
  int c = 3;
};
void f() {
  Options all{.a = 1, .b = true};
  Options partial{.b = true};
  Options positional{1};
}
`)

	ds := run(t, u, config.InitListCheck, 0)

	require.Len(t, ds, 1)
	assert.Equal(t, 8, line(u, ds[0]))
	assert.Equal(t, "Designated initializer with uninitialized member of type: int", ds[0].Message)
}

func TestLogFunction(t *testing.T) {
	t.Parallel()

	u := testsource.Parse(t, `void Log(int level, const char* fmt);
void f() {
  Log(1, "value");
  Log(1, "value\n");
}
`)

	var ds diagnostics

	check(Checker{
		Unit:        u,
		Reporter:    &ds,
		Checks:      config.NewBitMask(config.LogPrintfCheck),
		LogFunction: "Log",
		FormatArg:   1,
	})

	require.Len(t, ds, 1)
	assert.Equal(t, 3, line(u, ds[0]))
	assert.Equal(t, "Unterminated Log", ds[0].Message)
}
