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

package run_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"fillmore-labs.com/earlyexit/analyzer/level"
	"fillmore-labs.com/earlyexit/internal/clangjson"
	"fillmore-labs.com/earlyexit/internal/config"
	"fillmore-labs.com/earlyexit/internal/fix"
	"fillmore-labs.com/earlyexit/internal/report"
	. "fillmore-labs.com/earlyexit/internal/run"
	"fillmore-labs.com/earlyexit/internal/testsource"
)

var discard = slog.New(slog.DiscardHandler)

func archive(tb testing.TB, name string) *txtar.Archive {
	tb.Helper()

	ar, err := txtar.ParseFile(filepath.Join("testdata", name))
	require.NoError(tb, err)

	return ar
}

// migrate runs the checks over src and returns the findings and the fixed source.
func migrate(tb testing.TB, o *Options, src string) ([]report.Finding, string) {
	tb.Helper()

	c := &report.Collector{}
	changes := &fix.Changes{}
	r := New(o, &report.Emitter{Sink: c, Changes: changes}, discard)

	require.NoError(tb, r.Unit(tb.Context(), testsource.Parse(tb, src)))

	if changes.Len() == 0 {
		return c.Findings(), src
	}

	_, after, err := changes.Result(testsource.Filename)
	require.NoError(tb, err)

	return c.Findings(), string(after)
}

func TestGolden(t *testing.T) {
	t.Parallel()

	for _, f := range archive(t, "example.txtar").Files {
		name := strings.TrimSuffix(f.Name, ".cc")

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer

			changes := &fix.Changes{}
			r := New(DefaultOptions(), &report.Emitter{Sink: report.TextSink{W: &out}, Changes: changes}, discard)

			require.NoError(t, r.Unit(t.Context(), testsource.Parse(t, string(f.Data))))

			_, after, err := changes.Result(testsource.Filename)
			require.NoError(t, err)

			out.WriteString("---\n")
			out.Write(after)

			g := goldie.New(t)
			g.Assert(t, name, out.Bytes())
		})
	}
}

func TestFixpoint(t *testing.T) {
	t.Parallel()

	src := string(archive(t, "example.txtar").Files[0].Data)

	for range 3 {
		findings, after := migrate(t, DefaultOptions(), src)
		if after == src {
			assert.Empty(t, findings)

			break
		}

		src = after
	}

	assert.Contains(t, src, "  MAYBE_EXIT(Flush());\n")
	assert.Contains(t, src, "  NOOP_MAYBE_EXIT(Process(1));\n")

	findings, after := migrate(t, DefaultOptions(), src)
	assert.Empty(t, findings)
	assert.Equal(t, src, after)
}

func TestSessionDeduplicates(t *testing.T) {
	t.Parallel()

	const src = testsource.Preamble + "void f() {\n  may_exit();\n}\n"

	c := &report.Collector{}
	changes := &fix.Changes{}
	r := New(DefaultOptions(), &report.Emitter{Sink: c, Changes: changes}, discard)

	for range 2 {
		require.NoError(t, r.Unit(t.Context(), testsource.Parse(t, src)))
	}

	assert.Len(t, c.Findings(), 2)

	_, after, err := changes.Result(testsource.Filename)
	require.NoError(t, err)
	assert.Equal(t, testsource.Preamble+"MaybeEarlyExit<> f() {\n  MAYBE_EXIT(may_exit());\n  return {};\n}\n", string(after))
}

func TestMigrationLevels(t *testing.T) {
	t.Parallel()

	const src = testsource.Preamble + "void f() {\n  may_exit();\n}\n"

	tests := []struct {
		name      string
		migration level.Migration
		want      string
	}{
		{"full", level.MigrationFull, "MaybeEarlyExit<> f() {\n  MAYBE_EXIT(may_exit());\n  return {};\n}\n"},
		{"noop", level.MigrationNoop, "MaybeEarlyExit<> f() {\n  NOOP_MAYBE_EXIT(may_exit());\n  return {};\n}\n"},
		{"off", level.MigrationOff, "void f() {\n  may_exit();\n}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			o := DefaultOptions()
			o.Migration = tt.migration

			findings, after := migrate(t, o, src)

			assert.Len(t, findings, 2)
			assert.Equal(t, tt.want, strings.TrimPrefix(after, testsource.Preamble))
		})
	}
}

func TestReportSkipped(t *testing.T) {
	t.Parallel()

	const src = testsource.Preamble + "void f() {\n  may_exit();\n  (void)may_exit();\n}\n"

	o := DefaultOptions()

	findings, _ := migrate(t, o, src)
	assert.Len(t, findings, 2)

	o.Behavior.Enable(config.ReportSkipped)

	findings, _ = migrate(t, o, src)
	require.Len(t, findings, 3)

	skipped := findings[2]
	assert.Equal(t, report.Note, skipped.Level)
	assert.Equal(t, "Early exit of may_exit is explicitly ignored.", skipped.Message)
}

func TestChecksDisabled(t *testing.T) {
	t.Parallel()

	const src = testsource.Preamble + "void f() {\n  may_exit();\n}\n"

	o := DefaultOptions()
	o.Checks.Disable(config.PropagateCheck)

	findings, after := migrate(t, o, src)
	assert.Empty(t, findings)
	assert.Equal(t, src, after)
}

func TestTopLevel(t *testing.T) {
	t.Parallel()

	const src = testsource.Preamble + "void Shutdown() {\n  may_exit();\n}\n"

	o := DefaultOptions()
	o.TopLevel = []string{"Shutdown"}

	_, after := migrate(t, o, src)
	assert.Equal(t, "void Shutdown() {\n  NOOP_MAYBE_EXIT(may_exit());\n}\n", strings.TrimPrefix(after, testsource.Preamble))
}

func TestFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, f := range archive(t, "call.txtar").Files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f.Name), f.Data, 0o644))
	}

	c := &report.Collector{}
	changes := &fix.Changes{}
	r := New(DefaultOptions(), &report.Emitter{Sink: c, Changes: changes}, discard)

	l := clangjson.Loader{Dir: dir}

	err := r.Files(t.Context(), &l, filepath.Join(dir, "example.cc.json"), filepath.Join(dir, "missing.json"))
	require.ErrorIs(t, err, os.ErrNotExist)

	assert.Len(t, c.Findings(), 2)

	require.NoError(t, changes.Write())

	got, err := os.ReadFile(filepath.Join(dir, "example.cc"))
	require.NoError(t, err)
	assert.Equal(t, "MaybeEarlyExit<int> g();\nMaybeEarlyExit<> f() {\n  MAYBE_EXIT(g());\n  return {};\n}\n", string(got))
}
