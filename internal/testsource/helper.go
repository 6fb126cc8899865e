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

// Package testsource provides utilities for parsing C++ source fragments in tests.
//
// It understands the subset of C++ the checker's tests are written in and produces
// the same [cxx] syntax trees the clang adapter does, so tests don't need compiler
// generated AST dumps.
package testsource

import (
	"errors"
	"go/token"
	"strings"
	"testing"

	"fillmore-labs.com/earlyexit/internal/cxx"
	"fillmore-labs.com/earlyexit/internal/macros"
)

// Filename is the name of parsed sources.
const Filename = "test.cc"

// Preamble declares the carrier and two operations returning it.
const Preamble = `enum class VoidType {};
template <typename T = VoidType> class MaybeEarlyExit;
MaybeEarlyExit<int> maybe_early_exit();
MaybeEarlyExit<> may_exit();
`

// Option configures parsing.
type Option func(*options)

type options struct {
	macroCalls map[string]bool
	macroDecls map[string]bool
	adl        map[string]bool
}

// WithMacroCalls marks calls of the named functions as macro expansions.
// Their arguments are treated as macro arguments spelled in the file.
func WithMacroCalls(names ...string) Option {
	return func(o *options) { addNames(o.macroCalls, names) }
}

// WithMacroDecls marks declarations of the named functions as macro expansions.
func WithMacroDecls(names ...string) Option {
	return func(o *options) { addNames(o.macroDecls, names) }
}

// WithADL marks unqualified calls of the named functions as resolved by argument-dependent lookup.
func WithADL(names ...string) Option {
	return func(o *options) { addNames(o.adl, names) }
}

func addNames(m map[string]bool, names []string) {
	for _, n := range names {
		m[n] = true
	}
}

// Parse parses a C++ source fragment into a translation unit named [Filename].
// The propagation macros are recognized as macro expansions.
func Parse(tb testing.TB, src string, opts ...Option) *cxx.TranslationUnit {
	tb.Helper()

	u, err := parse(token.NewFileSet(), src, opts...)
	if err != nil {
		tb.Fatalf("Failed to parse source %q: %v", src, err)
	}

	return u
}

// ParseBody parses statements wrapped in the function "void f() { ... }", preceded by the [Preamble].
// It returns the translation unit and the wrapper function.
func ParseBody(tb testing.TB, src string, opts ...Option) (*cxx.TranslationUnit, *cxx.Node) {
	tb.Helper()

	u := Parse(tb, wrapSource(src), opts...)

	fn := Function(tb, u, "f")

	return u, fn
}

// Function returns the definition of the named function, or its last declaration.
func Function(tb testing.TB, u *cxx.TranslationUnit, name string) *cxx.Node {
	tb.Helper()

	var found *cxx.Node

	for fn := range u.Functions() {
		if fn.Name != name {
			continue
		}

		found = fn
		if fn.Definition() {
			break
		}
	}

	if found == nil {
		tb.Fatalf("Can't find function %s", name)
	}

	return found
}

func wrapSource(src string) string {
	const (
		header = Preamble + "\nvoid f() {\n"
		suffix = "\n}\n"
	)

	var srcFile strings.Builder
	srcFile.Grow(len(header) + len(src) + len(suffix))

	srcFile.WriteString(header) // ignore error
	srcFile.WriteString(src)    // ignore error
	srcFile.WriteString(suffix) // ignore error

	return srcFile.String()
}

var errSyntax = errors.New("syntax error")

func parse(fset *token.FileSet, src string, opts ...Option) (u *cxx.TranslationUnit, err error) {
	o := options{
		macroCalls: make(map[string]bool),
		macroDecls: make(map[string]bool),
		adl:        make(map[string]bool),
	}

	addNames(o.macroCalls, macros.Names())

	for _, opt := range opts {
		opt(&o)
	}

	toks, err := lex(src)
	if err != nil {
		return nil, err
	}

	f := fset.AddFile(Filename, -1, len(src))
	f.SetLinesForContent([]byte(src))

	p := &parser{
		src:     src,
		toks:    toks,
		file:    f,
		opts:    &o,
		records: make(map[string]*cxx.Node),
		decls:   make(map[string]*cxx.Node),
		spelled: make(map[*cxx.Node]string),
	}

	defer func() {
		if r := recover(); r != nil {
			perr, ok := r.(parseError)
			if !ok {
				panic(r)
			}

			u, err = nil, perr
		}
	}()

	root := p.translationUnit()
	p.resolve(root)

	return cxx.NewTranslationUnit(Filename, fset, root, &cxx.Source{File: f, Content: []byte(src)}), nil
}
