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

package plan_test

import (
	"go/token"
	"strings"
	"testing"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/earlyexit/internal/classify"
	"fillmore-labs.com/earlyexit/internal/cxx"
	"fillmore-labs.com/earlyexit/internal/fix"
	. "fillmore-labs.com/earlyexit/internal/plan"
	"fillmore-labs.com/earlyexit/internal/testsource"
)

// planAll plans all classified functions of src, checking edits of each function are disjoint.
func planAll(tb testing.TB, p *Planner, src string) (*cxx.TranslationUnit, []Rewrite) {
	tb.Helper()

	u := testsource.Parse(tb, testsource.Preamble+src)

	c := classify.Classifier{TopLevel: []string{"Shutdown"}}

	var rewrites []Rewrite

	for fn := range u.Functions() {
		f, ok := c.Classify(u, fn)
		if !ok {
			continue
		}

		rs := p.Plan(u, f)
		if edits := Edits(rs); !Disjoint(edits) {
			tb.Errorf("Overlapping edits in %s: %v", fn.Name, edits)
		}

		rewrites = append(rewrites, rs...)
	}

	return u, rewrites
}

// migrate applies all planned edits to src.
func migrate(tb testing.TB, p *Planner, src string) (string, []Rewrite) {
	tb.Helper()

	u, rewrites := planAll(tb, p, src)

	for s := range u.Sources() {
		out, err := fix.Apply(s.File, s.Content, Edits(rewrites))
		if err != nil {
			tb.Fatalf("Can't apply edits: %v", err)
		}

		return strings.TrimPrefix(string(out), testsource.Preamble), rewrites
	}

	tb.Fatal("No source")

	return "", nil
}

var migrations = [...]struct {
	name     string
	src      string
	want     string
	messages []string
}{
	{
		name:     "unused",
		src:      "void f() {\n  may_exit();\n}\n",
		want:     "MaybeEarlyExit<> f() {\n  MAYBE_EXIT(may_exit());\n  return {};\n}\n",
		messages: []string{"f should return MaybeEarlyExit.", "Early exit of may_exit is not propagated."},
	},
	{
		name: "positive",
		src:  "int f() {\n  if (maybe_early_exit()) return 1;\n  return 0;\n}\n",
		want: "MaybeEarlyExit<int> f() {\n  EXIT_OR_IF(maybe_early_exit()) return 1;\n  return 0;\n}\n",
	},
	{
		name: "negated",
		src:  "void f() {\n  if (!maybe_early_exit()) return;\n}\n",
		want: "MaybeEarlyExit<> f() {\n  EXIT_OR_IF_NOT(maybe_early_exit()) return {};\n  return {};\n}\n",
		messages: []string{
			"f should return MaybeEarlyExit.", "Should return something.",
			"Early exit of maybe_early_exit is not propagated.",
		},
	},
	{
		name: "negated_paren",
		src:  "void f() {\n  if (!(maybe_early_exit())) {}\n}\n",
		want: "MaybeEarlyExit<> f() {\n  EXIT_OR_IF_NOT((maybe_early_exit())) {}\n  return {};\n}\n",
	},
	{
		name: "assignment",
		src:  "void f() {\n  int x;\n  x = maybe_early_exit();\n}\n",
		want: "MaybeEarlyExit<> f() {\n  int x;\n  EXIT_OR_ASSIGN(x, maybe_early_exit());\n  return {};\n}\n",
	},
	{
		name: "assignment_member",
		src:  "struct S { int m_val; };\nvoid f(S& s) {\n  s.m_val = maybe_early_exit();\n}\n",
		want: "struct S { int m_val; };\nMaybeEarlyExit<> f(S& s) {\n  EXIT_OR_ASSIGN(s.m_val, maybe_early_exit());\n  return {};\n}\n",
	},
	{
		name: "declaration",
		src:  "void f() {\n  const auto& bar = maybe_early_exit();\n}\n",
		want: "MaybeEarlyExit<> f() {\n  EXIT_OR_DECL(const auto& bar, maybe_early_exit());\n  return {};\n}\n",
	},
	{
		name: "declaration_direct",
		src:  "void f() {\n  auto foo(maybe_early_exit());\n}\n",
		want: "MaybeEarlyExit<> f() {\n  EXIT_OR_DECL(auto foo, maybe_early_exit());\n  return {};\n}\n",
	},
	{
		name:     "return_same",
		src:      "int caller7() { return maybe_early_exit(); }\n",
		want:     "MaybeEarlyExit<int> caller7() { return maybe_early_exit(); }\n",
		messages: []string{"caller7 should return MaybeEarlyExit."},
	},
	{
		name: "return_bubble",
		src:  "bool f() { return may_exit(); }\n",
		want: "MaybeEarlyExit<bool> f() { return BUBBLE_UP(may_exit()); }\n",
	},
	{
		name: "return_builtin_spelling",
		src:  "MaybeEarlyExit<unsigned int> count();\nunsigned f() { return count(); }\n",
		want: "MaybeEarlyExit<unsigned int> count();\nMaybeEarlyExit<unsigned> f() { return count(); }\n",
		messages: []string{"f should return MaybeEarlyExit."},
	},
	{
		name: "return_long_spelling",
		src:  "MaybeEarlyExit<long> size();\nlong int f() { return size(); }\n",
		want: "MaybeEarlyExit<long> size();\nMaybeEarlyExit<long int> f() { return size(); }\n",
	},
	{
		name: "unbraced_branches",
		src:  "void f(bool c) {\n  if (c) may_exit(); else may_exit();\n}\n",
		want: "MaybeEarlyExit<> f(bool c) {\n  if (c) { MAYBE_EXIT(may_exit()); } else { MAYBE_EXIT(may_exit()); }\n  return {};\n}\n",
	},
	{
		name: "unbraced_assignment",
		src:  "void f(bool c) {\n  int x;\n  if (c) x = maybe_early_exit();\n  else x = 0;\n}\n",
		want: "MaybeEarlyExit<> f(bool c) {\n  int x;\n  if (c) { EXIT_OR_ASSIGN(x, maybe_early_exit()); }\n  else x = 0;\n  return {};\n}\n",
	},
	{
		name: "unbraced_loop",
		src:  "void f(int n) {\n  while (n--) may_exit();\n}\n",
		want: "MaybeEarlyExit<> f(int n) {\n  while (n--) { MAYBE_EXIT(may_exit()); }\n  return {};\n}\n",
	},
	{
		name: "return_in_branch",
		src:  "void f(bool c) {\n  may_exit();\n  if (c) {\n    return;\n  }\n}\n",
		want: "MaybeEarlyExit<> f(bool c) {\n  MAYBE_EXIT(may_exit());\n  if (c) {\n    return {};\n  }\n  return {};\n}\n",
	},
	{
		name: "return_in_both_branches",
		src:  "int f(bool c) {\n  may_exit();\n  if (c) {\n    return 1;\n  } else {\n    return 2;\n  }\n}\n",
		want: "MaybeEarlyExit<int> f(bool c) {\n  MAYBE_EXIT(may_exit());\n  if (c) {\n    return 1;\n  } else {\n    return 2;\n  }\n}\n",
	},
	{
		name: "ends_in_throw",
		src:  "void f() {\n  may_exit();\n  throw 1;\n}\n",
		want: "MaybeEarlyExit<> f() {\n  MAYBE_EXIT(may_exit());\n  throw 1;\n}\n",
	},
	{
		name: "ends_in_noreturn",
		src:  "[[noreturn]] void fail();\nvoid f() {\n  may_exit();\n  fail();\n}\n",
		want: "[[noreturn]] void fail();\nMaybeEarlyExit<> f() {\n  MAYBE_EXIT(may_exit());\n  fail();\n}\n",
	},
	{
		name: "statement_after_brace",
		src:  "void f() {  may_exit();\n}\n",
		want: "MaybeEarlyExit<> f() {  MAYBE_EXIT(may_exit());\n    return {};\n}\n",
	},
	{
		name: "nested",
		src:  "void takes(int);\nvoid f() { takes(*maybe_early_exit()); }\n",
		want: "void takes(int);\nMaybeEarlyExit<> f() { takes(*maybe_early_exit()); return {}; }\n",
		messages: []string{
			"f should return MaybeEarlyExit.",
			"Early exit of maybe_early_exit is not propagated, needs manual review.",
		},
	},
	{
		name: "redeclaration",
		src:  "namespace ns {\nconst char* g();\n}\nconst char* ns::g() {\n  may_exit();\n  return nullptr;\n}\n",
		want: "namespace ns {\nMaybeEarlyExit<const char*> g();\n}\n" +
			"MaybeEarlyExit<const char*> ns::g() {\n  MAYBE_EXIT(may_exit());\n  return nullptr;\n}\n",
	},
	{
		name:     "main",
		src:      "int main() {\n  may_exit();\n  if (may_exit()) return 1;\n  return 0;\n}\n",
		want:     "int main() {\n  NOOP_MAYBE_EXIT(may_exit());\n  NOOP_EXIT_OR_IF(may_exit()) return 1;\n  return 0;\n}\n",
		messages: []string{"Early exit of may_exit is not propagated.", "Early exit of may_exit is not propagated."},
	},
	{
		name:     "top_level_return",
		src:      "bool Shutdown() { return may_exit(); }\n",
		want:     "bool Shutdown() { return may_exit(); }\n",
		messages: []string{"Early exit of may_exit is returned from Shutdown, needs manual review."},
	},
	{
		name:     "trailing",
		src:      "auto g() -> void {\n  may_exit();\n}\n",
		want:     "auto g() -> void {\n  may_exit();\n}\n",
		messages: []string{"g should return MaybeEarlyExit (unknown return type)."},
	},
	{
		name: "trailing_redeclaration",
		src:  "auto caller2() -> void;\nvoid caller2() {\n  may_exit();\n}\n",
		want: "auto caller2() -> void;\nvoid caller2() {\n  may_exit();\n}\n",
	},
	{
		name: "constructor",
		src:  "struct S {\n  S() { may_exit(); }\n};\n",
		want: "struct S {\n  S() { may_exit(); }\n};\n",
	},
	{
		name: "local_class",
		src:  "void f() {\n  struct L {\n    void m() {\n      may_exit();\n      return;\n    }\n  };\n}\n",
		want: "void f() {\n  struct L {\n    MaybeEarlyExit<> m() {\n      MAYBE_EXIT(may_exit());\n      return {};\n    }\n  };\n}\n",
	},
	{
		name: "ignored",
		src:  "void f() { (void)may_exit(); }\n",
		want: "void f() { (void)may_exit(); }\n",
	},
	{
		name: "mixed",
		src: `void g();
void g() {
  int x;
  x = maybe_early_exit();
  auto y = maybe_early_exit();
  if (!may_exit()) return;
  if (may_exit()) {
    may_exit();
  }
  return;
}
`,
		want: `MaybeEarlyExit<> g();
MaybeEarlyExit<> g() {
  int x;
  EXIT_OR_ASSIGN(x, maybe_early_exit());
  EXIT_OR_DECL(auto y, maybe_early_exit());
  EXIT_OR_IF_NOT(may_exit()) return {};
  EXIT_OR_IF(may_exit()) {
    MAYBE_EXIT(may_exit());
  }
  return {};
}
`,
	},
}

func TestMigrate(t *testing.T) {
	t.Parallel()

	var p Planner

	for _, tt := range migrations {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, rewrites := migrate(t, &p, tt.src)
			if got != tt.want {
				t.Errorf("Got:\n%s\nwant:\n%s", got, tt.want)
			}

			if tt.messages == nil {
				return
			}

			messages := make([]string, 0, len(rewrites))
			for _, r := range rewrites {
				messages = append(messages, r.Message)
			}

			if strings.Join(messages, "\n") != strings.Join(tt.messages, "\n") {
				t.Errorf("Got messages %q, want %q", messages, tt.messages)
			}
		})
	}
}

func TestIdempotent(t *testing.T) {
	t.Parallel()

	var p Planner

	for _, tt := range migrations {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, rewrites := planAll(t, &p, tt.want)
			if edits := Edits(rewrites); len(edits) > 0 {
				t.Errorf("Got %d edits on migrated source", len(edits))
			}
		})
	}
}

func TestNoop(t *testing.T) {
	t.Parallel()

	p := Planner{Noop: true}

	got, _ := migrate(t, &p, "int f() {\n  int x;\n  x = maybe_early_exit();\n  return x;\n}\n")

	const want = "MaybeEarlyExit<int> f() {\n  int x;\n  NOOP_EXIT_OR_ASSIGN(x, maybe_early_exit());\n  return x;\n}\n"
	if got != want {
		t.Errorf("Got:\n%s\nwant:\n%s", got, want)
	}
}

func TestDiagnose(t *testing.T) {
	t.Parallel()

	p := Planner{Diagnose: true}

	_, rewrites := planAll(t, &p, "void f() {\n  may_exit();\n  return;\n}\n")

	if len(rewrites) != 3 {
		t.Fatalf("Got %d rewrites, want 3", len(rewrites))
	}

	kinds := [...]Kind{ReturnType, BareReturn, Propagate}
	for i, r := range rewrites {
		if r.Kind != kinds[i] {
			t.Errorf("Got kind %d, want %d", r.Kind, kinds[i])
		}

		if len(r.Edits) > 0 {
			t.Errorf("Got edits for %q", r.Message)
		}
	}
}

func TestCarrierName(t *testing.T) {
	t.Parallel()

	p := Planner{Carrier: "Result"}

	if got := p.CarrierType("int"); got != "Result<int>" {
		t.Errorf("Got %q", got)
	}
}

func TestUnsupportedIf(t *testing.T) {
	t.Parallel()

	var p Planner

	_, rewrites := planAll(t, &p, "void f() {\n  if constexpr (true) {}\n  if (int y = 0; maybe_early_exit()) {}\n}\n")

	var skipped int

	for _, r := range rewrites {
		if r.Kind == Skipped {
			skipped++

			if len(r.Edits) > 0 {
				t.Errorf("Got edits for skipped site")
			}
		}
	}

	if skipped != 1 {
		t.Errorf("Got %d skipped sites, want 1", skipped)
	}
}

func TestDisjoint(t *testing.T) {
	t.Parallel()

	e := func(pos, end int) analysis.TextEdit {
		return analysis.TextEdit{Pos: token.Pos(1 + pos), End: token.Pos(1 + end)}
	}

	tests := [...]struct {
		name  string
		edits []analysis.TextEdit
		want  bool
	}{
		{"empty", nil, true},
		{"adjacent", []analysis.TextEdit{e(5, 8), e(0, 5)}, true},
		{"overlap", []analysis.TextEdit{e(0, 5), e(4, 8)}, false},
		{"same_insert", []analysis.TextEdit{e(3, 3), e(3, 3)}, false},
		{"insert_inside", []analysis.TextEdit{e(0, 5), e(2, 2)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Disjoint(tt.edits); got != tt.want {
				t.Errorf("Got %t, want %t", got, tt.want)
			}
		})
	}
}
