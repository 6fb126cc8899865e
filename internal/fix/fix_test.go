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

package fix_test

import (
	"errors"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/go/analysis"

	. "fillmore-labs.com/earlyexit/internal/fix"
)

func newFile(name, content string) *token.File {
	fset := token.NewFileSet()
	f := fset.AddFile(name, -1, len(content))
	f.SetLinesForContent([]byte(content))

	return f
}

func insert(f *token.File, off int, text string) analysis.TextEdit {
	return analysis.TextEdit{Pos: f.Pos(off), End: f.Pos(off), NewText: []byte(text)}
}

func replace(f *token.File, from, to int, text string) analysis.TextEdit {
	return analysis.TextEdit{Pos: f.Pos(from), End: f.Pos(to), NewText: []byte(text)}
}

func TestApply(t *testing.T) {
	t.Parallel()

	const src = "void f() { g(); }\n"

	f := newFile("a.cc", src)

	tests := [...]struct {
		name  string
		edits func() []analysis.TextEdit
		want  string
		err   error
	}{
		{"none", func() []analysis.TextEdit { return nil }, src, nil},
		{"wrap", func() []analysis.TextEdit {
			return []analysis.TextEdit{insert(f, 14, ")"), insert(f, 11, "MAYBE_EXIT(")}
		}, "void f() { MAYBE_EXIT(g()); }\n", nil},
		{"replace", func() []analysis.TextEdit {
			return []analysis.TextEdit{replace(f, 0, 4, "MaybeEarlyExit<>")}
		}, "MaybeEarlyExit<> f() { g(); }\n", nil},
		{"duplicate", func() []analysis.TextEdit {
			return []analysis.TextEdit{replace(f, 0, 4, "int"), replace(f, 0, 4, "int")}
		}, "int f() { g(); }\n", nil},
		{"overlap", func() []analysis.TextEdit {
			return []analysis.TextEdit{replace(f, 0, 6, "int"), replace(f, 5, 8, "h()")}
		}, "", ErrOverlap},
		{"range", func() []analysis.TextEdit {
			return []analysis.TextEdit{{Pos: f.Pos(0), End: token.Pos(f.Base() + f.Size() + 10)}}
		}, "", ErrRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Apply(f, []byte(src), tt.edits())
			if !errors.Is(err, tt.err) {
				t.Fatalf("Got error %v, want %v", err, tt.err)
			}

			if err == nil && string(got) != tt.want {
				t.Errorf("Got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDiff(t *testing.T) {
	t.Parallel()

	d, err := Diff("a.cc", []byte("void f() {\n  g();\n}\n"), []byte("MaybeEarlyExit<> f() {\n  g();\n}\n"))
	if err != nil {
		t.Fatalf("Diff failed: %v", err)
	}

	for _, want := range []string{"--- a/a.cc", "+++ b/a.cc", "-void f() {", "+MaybeEarlyExit<> f() {"} {
		if !strings.Contains(d, want) {
			t.Errorf("Diff lacks %q:\n%s", want, d)
		}
	}
}

func TestChanges(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	name := filepath.Join(dir, "a.h")

	const src = "int g();\n"
	if err := os.WriteFile(name, []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}

	// The same header seen from two translation units.
	f1, f2 := newFile(name, src), newFile(name, src)

	var c Changes

	if err := c.Add(f1, []byte(src), replace(f1, 0, 3, "MaybeEarlyExit<int>")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := c.Add(f2, []byte(src), replace(f2, 0, 3, "MaybeEarlyExit<int>")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if c.Len() != 1 {
		t.Fatalf("Got %d files, want 1", c.Len())
	}

	d, err := c.Diff()
	if err != nil || !strings.Contains(d, "+MaybeEarlyExit<int> g();") {
		t.Errorf("Got diff %q, %v", d, err)
	}

	if err := c.Write(); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}

	if want := "MaybeEarlyExit<int> g();\n"; string(got) != want {
		t.Errorf("Got %q, want %q", got, want)
	}
}

func TestChangesOverlap(t *testing.T) {
	t.Parallel()

	const src = "int g();\n"

	f := newFile("missing.h", src)

	var c Changes

	_ = c.Add(f, []byte(src), replace(f, 0, 3, "long"))
	_ = c.Add(f, []byte(src), replace(f, 1, 5, "x"))

	if err := c.Write(); !errors.Is(err, ErrOverlap) {
		t.Errorf("Got error %v, want %v", err, ErrOverlap)
	}
}
