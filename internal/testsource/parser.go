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

package testsource

import (
	"fmt"
	"go/token"
	"strings"

	"fillmore-labs.com/earlyexit/internal/cxx"
)

type parseError struct {
	off int
	msg string
}

func (e parseError) Error() string { return fmt.Sprintf("%v at offset %d: %s", errSyntax, e.off, e.msg) }

func (e parseError) Unwrap() error { return errSyntax }

// parser is a recursive descent parser for a C++ subset.
type parser struct {
	src  string
	toks []tok
	pos  int
	file *token.File
	opts *options
	ids  int

	scope    []string // enclosing namespaces and records
	record   string   // innermost record name, for constructors
	macroArg int      // > 0 while parsing macro arguments
	macro    int      // > 0 while parsing a macro expansion

	records map[string]*cxx.Node
	decls   map[string]*cxx.Node // latest declaration by qualified name
	locals  []map[string]*cxx.Node
	refs    []*cxx.Node          // references to resolve after parsing
	spelled map[*cxx.Node]string // spelled names of qualified references
}

func (p *parser) fail(format string, args ...any) {
	panic(parseError{off: p.peek().off, msg: fmt.Sprintf(format, args...)})
}

func (p *parser) peek() tok { return p.toks[p.pos] }

func (p *parser) peekN(n int) tok {
	if p.pos+n < len(p.toks) {
		return p.toks[p.pos+n]
	}

	return p.toks[len(p.toks)-1]
}

func (p *parser) at(text string) bool { return p.peek().is(text) }

func (p *parser) next() tok {
	t := p.toks[p.pos]
	if t.kind != tEOF {
		p.pos++
	}

	return t
}

func (p *parser) accept(text string) bool {
	if p.at(text) {
		p.pos++

		return true
	}

	return false
}

func (p *parser) expect(text string) tok {
	if !p.at(text) {
		p.fail("expected %q, got %q", text, p.peek().text)
	}

	return p.next()
}

func (p *parser) ident() tok {
	if p.peek().kind != tIdent {
		p.fail("expected identifier, got %q", p.peek().text)
	}

	return p.next()
}

// last returns the end offset of the last consumed token.
func (p *parser) last() int {
	if p.pos == 0 {
		return 0
	}

	return p.toks[p.pos-1].end
}

func (p *parser) newNode(kind cxx.Kind, class string, from, to int) *cxx.Node {
	p.ids++

	return &cxx.Node{
		ID:    fmt.Sprintf("0x%x", p.ids),
		Kind:  kind,
		Class: class,
		Range: p.rng(from, to),
	}
}

func (p *parser) rng(from, to int) cxx.Range {
	r := cxx.Range{From: p.file.Pos(from), To: p.file.Pos(to)}

	switch {
	case p.macroArg > 0:
		r.Macro, r.MacroArg = true, true

	case p.macro > 0:
		r.Macro = true
	}

	return r
}

func add(parent, child *cxx.Node, e cxx.Edge) {
	if child == nil {
		return
	}

	child.Edge = e
	parent.Children = append(parent.Children, child)
}

func (p *parser) text(from, to int) string {
	return cxx.NormalizeSpace(p.src[from:to])
}

func (p *parser) qualified(name string) string {
	if len(p.scope) == 0 || strings.HasPrefix(name, "::") {
		return strings.TrimPrefix(name, "::")
	}

	return strings.Join(p.scope, "::") + "::" + name
}

func (p *parser) translationUnit() *cxx.Node {
	root := p.newNode(cxx.TranslationUnitDecl, "TranslationUnitDecl", 0, len(p.src))

	for p.peek().kind != tEOF {
		p.declaration(root)
	}

	return root
}

// declaration parses a declaration at namespace or class scope and appends it to parent.
func (p *parser) declaration(parent *cxx.Node) {
	start := p.peek().off

	switch t := p.peek(); {
	case t.is(";"):
		p.next()

	case t.is("namespace"):
		p.namespace(parent)

	case t.is("extern") && p.peekN(1).kind == tString && p.peekN(2).is("{"):
		p.next()
		p.next()
		p.next()

		n := p.newNode(cxx.Namespace, "LinkageSpecDecl", start, start)
		for !p.at("}") {
			p.declaration(n)
		}

		p.expect("}")
		n.Range = p.rng(start, p.last())
		add(parent, n, cxx.EdgeDecl)

	case t.is("using") || t.is("typedef") || t.is("static_assert"):
		p.skipTo(";")

	case t.is("enum"):
		p.skipTo(";")

	case t.is("public") || t.is("private") || t.is("protected"):
		p.next()
		p.expect(":")

	case t.is("template"):
		p.next()
		p.skipBalanced("<", ">")
		p.declarationAt(parent, start)

	default:
		p.declarationAt(parent, start)
	}
}

func (p *parser) declarationAt(parent *cxx.Node, start int) {
	if (p.at("struct") || p.at("class") || p.at("union")) && p.peekN(1).kind == tIdent {
		switch p.peekN(2).text {
		case "{", ";", ":", "final":
			add(parent, p.recordDecl(start), cxx.EdgeDecl)
			p.accept(";")

			return
		}
	}

	p.functionOrVariable(parent, start)
}

func (p *parser) namespace(parent *cxx.Node) {
	start := p.next().off

	name := ""
	if p.peek().kind == tIdent {
		name = p.next().text
	}

	n := p.newNode(cxx.Namespace, "NamespaceDecl", start, start)
	n.Name = name

	p.expect("{")
	p.scope = append(p.scope, name)

	for !p.at("}") {
		if p.peek().kind == tEOF {
			p.fail("unterminated namespace")
		}

		p.declaration(n)
	}

	p.scope = p.scope[:len(p.scope)-1]
	p.expect("}")

	n.Range = p.rng(start, p.last())
	add(parent, n, cxx.EdgeDecl)
}

// recordDecl parses a class definition or forward declaration.
func (p *parser) recordDecl(start int) *cxx.Node {
	p.next() // struct, class or union
	nameTok := p.ident()

	n := p.newNode(cxx.Record, "CXXRecordDecl", start, start)
	n.Name = nameTok.text
	n.NameRange = p.rng(nameTok.off, nameTok.end)

	p.accept("final")

	if p.accept(":") {
		for !p.at("{") {
			if p.peek().kind == tEOF {
				p.fail("unterminated base clause")
			}

			p.next()
		}
	}

	if p.at("{") {
		p.next()

		outer := p.record
		p.record = n.Name
		p.scope = append(p.scope, n.Name)
		p.locals = append(p.locals, nil)

		for !p.at("}") {
			if p.peek().kind == tEOF {
				p.fail("unterminated class %s", n.Name)
			}

			p.declaration(n)
		}

		p.locals = p.locals[:len(p.locals)-1]
		p.scope = p.scope[:len(p.scope)-1]
		p.record = outer

		p.expect("}")
		p.records[n.Name] = n
	}

	n.Range = p.rng(start, p.last())

	return n
}

// specifiers skips declaration specifiers and returns the recognized attributes.
func (p *parser) specifiers() []string {
	var attrs []string

	for {
		switch t := p.peek(); {
		case t.is("[") && p.peekN(1).is("["):
			from := p.pos
			p.skipBalanced("[", "]")

			if p.tokensContain(from, "nodiscard") {
				attrs = append(attrs, "WarnUnusedResultAttr")
			}

			if p.tokensContain(from, "noreturn") {
				attrs = append(attrs, "CXX11NoReturnAttr")
			}

		case t.is("__declspec"):
			p.next()

			from := p.pos
			p.skipBalanced("(", ")")

			if p.tokensContain(from, "dllexport") {
				attrs = append(attrs, "DLLExportAttr")
			}

		case t.is("__attribute__"):
			p.next()

			from := p.pos
			p.skipBalanced("(", ")")

			if p.tokensContain(from, "visibility") {
				attrs = append(attrs, "VisibilityAttr")
			}

		case t.is("extern") && p.peekN(1).kind == tString:
			p.next()
			p.next()

		case t.is("static"), t.is("inline"), t.is("virtual"), t.is("constexpr"), t.is("consteval"),
			t.is("explicit"), t.is("friend"), t.is("extern"), t.is("mutable"), t.is("thread_local"):
			p.next()

		default:
			return attrs
		}
	}
}

func (p *parser) tokensContain(from int, text string) bool {
	for _, t := range p.toks[from:p.pos] {
		if t.text == text {
			return true
		}
	}

	return false
}

// skipBalanced skips a bracketed token sequence starting at the current token.
func (p *parser) skipBalanced(open, close string) {
	p.expect(open)

	for depth := 1; depth > 0; {
		t := p.next()

		switch {
		case t.kind == tEOF:
			p.fail("unbalanced %q", open)

		case t.is(open):
			depth++

		case t.is(close):
			depth--
		}
	}
}

func (p *parser) skipTo(text string) {
	depth := 0

	for {
		t := p.next()

		switch {
		case t.kind == tEOF:
			p.fail("expected %q", text)

		case t.is("{") || t.is("("):
			depth++

		case t.is("}") || t.is(")"):
			depth--

		case depth == 0 && t.is(text):
			return
		}
	}
}
