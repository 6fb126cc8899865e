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

package cxx_test

import (
	"go/token"
	"testing"

	. "fillmore-labs.com/earlyexit/internal/cxx"
	"fillmore-labs.com/earlyexit/internal/testsource"
)

func TestReturnType(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		fnType string
		want   string
	}{
		{"int (char) const", "int"},
		{"MaybeEarlyExit<int> ()", "MaybeEarlyExit<int>"},
		{"auto (char) -> int", "int"},
		{"std::function<void (int)> (int)", "std::function<void (int)>"},
		{"int", "int"},
	}

	for _, tt := range tests {
		t.Run(tt.fnType, func(t *testing.T) {
			t.Parallel()

			if got := ReturnType(tt.fnType); got != tt.want {
				t.Errorf("Got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTemplateName(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		typ  string
		name string
		args string
		ok   bool
	}{
		{"const ns::Name<int, char> &", "Name", "int, char", true},
		{"MaybeEarlyExit<>", "MaybeEarlyExit", "", true},
		{"class Outer<Inner<int>>", "Outer", "Inner<int>", true},
		{"Name<int", "", "", false},
		{"int", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			t.Parallel()

			name, args, ok := TemplateName(tt.typ)
			if name != tt.name || args != tt.args || ok != tt.ok {
				t.Errorf("Got %q, %q, %t, want %q, %q, %t", name, args, ok, tt.name, tt.args, tt.ok)
			}
		})
	}
}

func TestNormalizeSpace(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		name string
		typ  string
		want string
	}{
		{"template", "std::pair< int,int >", "std::pair<int,int>"},
		{"separated", "std::pair<int, int>", "std::pair<int,int>"},
		{"keywords", "  unsigned   long  ", "unsigned long"},
		{"pointer", "const char *", "const char*"},
		{"empty", " ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := NormalizeSpace(tt.typ); got != tt.want {
				t.Errorf("Got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCanonicalType(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		typ  string
		want string
	}{
		{"unsigned", "unsigned int"},
		{"unsigned int", "unsigned int"},
		{"long int", "long"},
		{"long unsigned int", "unsigned long"},
		{"long long int", "long long"},
		{"short int", "short"},
		{"signed", "int"},
		{"signed char", "signed char"},
		{"unsigned char", "unsigned char"},
		{"const unsigned", "const unsigned int"},
		{"std::vector<unsigned>", "std::vector<unsigned int>"},
		{"long double", "long double"},
		{"uint32_t", "uint32_t"},
		{"const char *", "const char*"},
	}

	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			t.Parallel()

			if got := CanonicalType(tt.typ); got != tt.want {
				t.Errorf("Got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEdge(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		edge      Edge
		name      string
		statement bool
	}{
		{EdgeNone, "None", false},
		{EdgeStmt, "Stmt", true},
		{EdgeThen, "Then", true},
		{EdgeElse, "Else", true},
		{EdgeInit, "Init", false},
		{EdgeSubStmt, "SubStmt", true},
		{EdgeOther, "Other", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.edge.String(); got != tt.name {
				t.Errorf("Got %q, want %q", got, tt.name)
			}

			if got := tt.edge.Statement(); got != tt.statement {
				t.Errorf("Got statement %t, want %t", got, tt.statement)
			}
		})
	}
}

func TestRedeclarations(t *testing.T) {
	t.Parallel()

	u := testsource.Parse(t, "void g();\nvoid h();\nvoid g();\nvoid g() {}\n")

	var def *Node

	for fn := range u.Functions() {
		if fn.Name == "g" && fn.Definition() {
			def = fn
		}
	}

	if def == nil {
		t.Fatal("Definition of g not found")
	}

	decls := u.Redeclarations(def)
	if len(decls) != 3 {
		t.Fatalf("Got %d declarations, want 3", len(decls))
	}

	for _, d := range decls {
		if d.Name != "g" {
			t.Errorf("Got declaration %s, want g", d.Name)
		}
	}

	if first, last := u.Position(decls[0].Pos()).Line, u.Position(decls[2].Pos()).Line; first != 1 || last != 4 {
		t.Errorf("Got declarations on lines %d to %d, want 1 to 4", first, last)
	}

	if c := u.Canonical(def); c != decls[0] {
		t.Errorf("Got canonical declaration on line %d, want 1", u.Position(c.Pos()).Line)
	}
}

func TestTranslationUnitRoot(t *testing.T) {
	t.Parallel()

	u := testsource.Parse(t, "int main() { return 0; }\nnamespace ns {\nint main() { return 1; }\n}\n")

	if u.Root.Kind != TranslationUnitDecl || u.Root.Kind.String() != "TranslationUnitDecl" {
		t.Errorf("Got root %s, want TranslationUnitDecl", u.Root.Kind)
	}

	var mains []bool
	for fn := range u.Functions() {
		mains = append(mains, fn.IsMain())
	}

	if len(mains) != 2 || !mains[0] || mains[1] {
		t.Errorf("Got main functions %v, want [true false]", mains)
	}
}

func TestLineIndent(t *testing.T) {
	t.Parallel()

	const src = "void f() {\n\t  g();\n}\n"

	fset := token.NewFileSet()
	f := fset.AddFile("a.cc", -1, len(src))
	f.SetLinesForContent([]byte(src))

	u := NewTranslationUnit("a.cc", fset, &Node{Kind: TranslationUnitDecl}, &Source{File: f, Content: []byte(src)})

	tests := [...]struct {
		name   string
		offset int
		indent string
		start  bool
	}{
		{"line_start", 0, "", true},
		{"brace", 9, "", false},
		{"indented", 14, "\t  ", true},
		{"inside", 15, "\t  ", false},
		{"closing", 19, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pos := f.Pos(tt.offset)

			indent, ok := u.LineIndent(pos)
			if !ok || indent != tt.indent {
				t.Errorf("Got indent %q, %t, want %q", indent, ok, tt.indent)
			}

			if got := u.LineStart(pos); got != tt.start {
				t.Errorf("Got line start %t, want %t", got, tt.start)
			}
		})
	}
}

func TestAfter(t *testing.T) {
	t.Parallel()

	const src = "g() ;\nh();"

	fset := token.NewFileSet()
	f := fset.AddFile("a.cc", -1, len(src))
	f.SetLinesForContent([]byte(src))

	u := NewTranslationUnit("a.cc", fset, &Node{Kind: TranslationUnitDecl}, &Source{File: f, Content: []byte(src)})

	tests := [...]struct {
		name   string
		offset int
		want   int
		ok     bool
	}{
		{"separated", 3, 5, true},
		{"adjacent", 9, 10, true},
		{"missing", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pos, ok := u.After(f.Pos(tt.offset), ";")
			if ok != tt.ok {
				t.Fatalf("Got %t, want %t", ok, tt.ok)
			}

			if ok && f.Offset(pos) != tt.want {
				t.Errorf("Got offset %d, want %d", f.Offset(pos), tt.want)
			}
		})
	}
}
