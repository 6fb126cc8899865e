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
	"strings"

	"fillmore-labs.com/earlyexit/internal/cxx"
)

var builtinTypes = map[string]bool{
	"void": true, "bool": true, "char": true, "short": true, "int": true, "long": true,
	"float": true, "double": true, "signed": true, "unsigned": true, "auto": true,
	"wchar_t": true, "char8_t": true, "char16_t": true, "char32_t": true,
}

var keywords = map[string]bool{
	"return": true, "if": true, "else": true, "while": true, "for": true, "do": true,
	"switch": true, "case": true, "default": true, "break": true, "continue": true,
	"goto": true, "new": true, "delete": true, "this": true, "true": true, "false": true,
	"nullptr": true, "sizeof": true, "static_cast": true, "operator": true, "using": true,
	"typedef": true, "template": true, "namespace": true, "throw": true, "try": true,
	"catch": true, "public": true, "private": true, "protected": true,
}

// typeSpec parses a type. It restores the position and reports false when there is none.
func (p *parser) typeSpec() (from, to int, ok bool) {
	start := p.pos
	from = p.peek().off
	sawType := false

loop:
	for {
		t := p.peek()

		switch {
		case t.is("const"), t.is("volatile"), t.is("typename"), t.is("struct"), t.is("class"),
			t.is("enum"), t.is("union"):
			p.next()

		case t.kind == tIdent && builtinTypes[t.text]:
			p.next()

			sawType = true

		case !sawType && (t.kind == tIdent && !keywords[t.text] || t.is("::")):
			if !p.qualifiedName() {
				p.pos = start

				return 0, 0, false
			}

			sawType = true

		default:
			break loop
		}
	}

	if !sawType {
		p.pos = start

		return 0, 0, false
	}

	for p.at("*") || p.at("&") || p.at("&&") || p.at("const") || p.at("volatile") {
		p.next()
	}

	return from, p.last(), true
}

// qualifiedName parses a possibly qualified name with template arguments.
func (p *parser) qualifiedName() bool {
	p.accept("::")

	for {
		if p.peek().kind != tIdent {
			return false
		}

		p.next()

		if p.at("<") && !p.templateArgs() {
			return false
		}

		if !p.at("::") || p.peekN(1).kind != tIdent {
			return true
		}

		p.next()
	}
}

// templateArgs skips a template argument list, reporting false when it does not close.
func (p *parser) templateArgs() bool {
	start := p.pos
	depth := 0

	for {
		t := p.next()

		switch {
		case t.kind == tEOF, t.is(";"), t.is("{"), t.is("}"):
			p.pos = start

			return false

		case t.is("<"), t.is("("):
			depth++

		case t.is(">"), t.is(")"):
			depth--
			if depth == 0 {
				return true
			}
		}
	}
}

// declaratorName parses the declared name of a function or variable.
func (p *parser) declaratorName() (name string, last tok) {
	from := p.peek().off

	for {
		switch {
		case p.at("operator"):
			last = p.next()

			switch {
			case p.at("(") && p.peekN(1).is(")"), p.at("[") && p.peekN(1).is("]"):
				p.next()
				p.next()

			case p.peek().kind == tPunct:
				p.next()

			default:
				if _, _, ok := p.typeSpec(); !ok {
					p.fail("expected operator")
				}
			}

			return p.text(from, p.last()), last

		case p.at("~"):
			p.next()
			last = p.ident()

		default:
			last = p.ident()

			if p.at("<") && p.peekN(1).kind != tPunct {
				p.templateArgs()
			}
		}

		if !p.at("::") {
			return strings.ReplaceAll(p.src[from:p.last()], " ", ""), last
		}

		p.next()
	}
}

type funcInfo struct {
	start    int
	attrs    []string
	class    string
	name     string // spelled, possibly qualified name
	nameTok  tok
	retFrom  int
	retTo    int
	noReturn bool
}

// functionOrVariable parses a function declaration or a variable declaration at namespace or class scope.
func (p *parser) functionOrVariable(parent *cxx.Node, start int) {
	attrs := p.specifiers()

	class := "FunctionDecl"
	if p.record != "" {
		class = "CXXMethodDecl"
	}

	switch {
	case p.record != "" && p.peek().text == p.record && p.peekN(1).is("("):
		nameTok := p.next()
		p.function(parent, funcInfo{start: start, attrs: attrs, class: "CXXConstructorDecl",
			name: nameTok.text, nameTok: nameTok, noReturn: true})

		return

	case p.record != "" && p.at("~"):
		p.next()
		nameTok := p.ident()
		p.function(parent, funcInfo{start: start, attrs: attrs, class: "CXXDestructorDecl",
			name: "~" + nameTok.text, nameTok: nameTok, noReturn: true})

		return

	case p.at("operator"):
		name, nameTok := p.declaratorName()
		p.function(parent, funcInfo{start: start, attrs: attrs, class: "CXXConversionDecl",
			name: name, nameTok: nameTok, noReturn: true})

		return
	}

	retFrom, retTo, ok := p.typeSpec()
	if !ok {
		p.fail("expected type, got %q", p.peek().text)
	}

	attrs = append(attrs, p.specifiers()...)

	name, nameTok := p.declaratorName()

	if p.at("(") {
		if i := strings.LastIndex(name, "::"); i >= 0 {
			qualifier := name[:i]
			if j := strings.LastIndex(qualifier, "::"); j >= 0 {
				qualifier = qualifier[j+2:]
			}

			if _, ok := p.records[qualifier]; ok {
				class = "CXXMethodDecl"
			}
		}

		p.function(parent, funcInfo{start: start, attrs: attrs, class: class,
			name: name, nameTok: nameTok, retFrom: retFrom, retTo: retTo})

		return
	}

	kind, varClass := cxx.VarDecl, "VarDecl"
	if p.record != "" {
		kind, varClass = cxx.Field, "FieldDecl"
	}

	for {
		v := p.variable(kind, varClass, start, p.text(retFrom, retTo), nameTok)
		add(parent, v, cxx.EdgeDecl)

		if !p.accept(",") {
			break
		}

		nameTok = p.ident()
	}

	p.expect(";")
}

// function parses the remainder of a function declaration starting at the parameter list.
func (p *parser) function(parent *cxx.Node, info funcInfo) {
	n := p.newNode(cxx.Function, info.class, info.start, info.start)
	n.Name = info.name
	if i := strings.LastIndex(n.Name, "::"); i >= 0 {
		n.Name = n.Name[i+2:]
	}

	n.NameRange = p.rng(info.nameTok.off, info.nameTok.end)
	n.Attrs = info.attrs

	params := p.parameters(n)

	var quals []string

	for {
		switch t := p.peek(); {
		case t.is("const"), t.is("volatile"), t.is("&"), t.is("&&"):
			quals = append(quals, p.next().text)

		case t.is("noexcept"):
			quals = append(quals, p.next().text)
			if p.at("(") {
				p.skipBalanced("(", ")")
			}

		case t.is("override"), t.is("final"):
			p.next()

		default:
			goto done
		}
	}

done:
	var ret string

	switch {
	case info.noReturn:
		ret = "void"
		n.Flags |= cxx.NoReturnType

	default:
		ret = p.text(info.retFrom, info.retTo)
		n.RetRange = p.rng(info.retFrom, info.retTo)
	}

	typ := ret + " (" + strings.Join(params, ", ") + ")"

	if p.accept("->") {
		from, to, ok := p.typeSpec()
		if !ok {
			p.fail("expected trailing return type")
		}

		ret = p.text(from, to)
		typ = "auto (" + strings.Join(params, ", ") + ") -> " + ret
		n.Flags |= cxx.Trailing
		n.RetRange = cxx.Range{}
	}

	if len(quals) > 0 {
		typ += " " + strings.Join(quals, " ")
	}

	n.Type, n.Returns = typ, ret

	switch {
	case p.at("="):
		p.next()
		p.next() // delete or default
		n.Flags |= cxx.Deleted
		n.Range = p.rng(info.start, p.last())
		p.expect(";")

	case p.at(";"):
		n.Range = p.rng(info.start, p.last())
		p.next()

	default:
		if p.accept(":") {
			p.constructorInitializers()
		}

		p.locals = append(p.locals, make(map[string]*cxx.Node))

		for _, c := range n.Children {
			if c.Name != "" {
				p.locals[len(p.locals)-1][c.Name] = c
			}
		}

		outer := p.record
		p.record = ""
		add(n, p.compound(), cxx.EdgeBody)
		p.record = outer
		p.locals = p.locals[:len(p.locals)-1]

		n.Range = p.rng(info.start, p.last())
	}

	if p.opts.macroDecls[n.Name] {
		n.Range.Macro, n.NameRange.Macro, n.RetRange.Macro = true, true, true
	}

	key := p.qualified(info.name)
	if prev, ok := p.decls[key]; ok {
		n.Previous = prev.ID
	}

	p.decls[key] = n

	add(parent, n, cxx.EdgeDecl)
}

// parameters parses a parameter list, adds the parameters to fn and returns their types.
func (p *parser) parameters(fn *cxx.Node) []string {
	p.expect("(")

	if p.at("void") && p.peekN(1).is(")") {
		p.next()
	}

	var types []string

	for !p.accept(")") {
		start := p.peek().off

		p.specifiers()

		if p.accept("...") {
			types = append(types, "...")

			continue
		}

		from, to, ok := p.typeSpec()
		if !ok {
			p.fail("expected parameter type, got %q", p.peek().text)
		}

		param := p.newNode(cxx.Param, "ParmVarDecl", start, to)
		param.Type = p.text(from, to)
		types = append(types, param.Type)

		if p.peek().kind == tIdent {
			nameTok := p.next()
			param.Name = nameTok.text
			param.NameRange = p.rng(nameTok.off, nameTok.end)
		}

		if p.accept("=") {
			add(param, p.assignment(), cxx.EdgeVarInit)
		}

		param.Range = p.rng(start, p.last())
		add(fn, param, cxx.EdgeParam)

		if !p.at(")") {
			p.expect(",")
		}
	}

	return types
}

func (p *parser) constructorInitializers() {
	for {
		if !p.qualifiedName() {
			p.fail("expected member initializer")
		}

		switch {
		case p.at("("):
			p.skipBalanced("(", ")")

		case p.at("{"):
			p.skipBalanced("{", "}")

		default:
			p.fail("expected member initializer")
		}

		if !p.accept(",") {
			return
		}
	}
}

// variable parses the initializer of a declared variable or field.
func (p *parser) variable(kind cxx.Kind, class string, start int, typ string, nameTok tok) *cxx.Node {
	v := p.newNode(kind, class, start, nameTok.end)
	v.Name = nameTok.text
	v.NameRange = p.rng(nameTok.off, nameTok.end)
	v.Type = typ

	for p.at("[") {
		p.skipBalanced("[", "]")
	}

	switch {
	case p.accept("="):
		v.Opcode = "c"
		add(v, p.initializer(typ), cxx.EdgeVarInit)

	case p.at("{"):
		v.Opcode = "list"
		add(v, p.initList(typ), cxx.EdgeVarInit)

	case p.at("("):
		v.Opcode = "call"
		p.next()
		add(v, p.expression(), cxx.EdgeVarInit)
		p.expect(")")
	}

	v.Range = p.rng(start, p.last())

	if kind == cxx.VarDecl && len(p.locals) > 0 {
		if scope := p.locals[len(p.locals)-1]; scope != nil {
			scope[v.Name] = v
		}
	}

	return v
}

func (p *parser) initializer(typ string) *cxx.Node {
	if p.at("{") {
		return p.initList(typ)
	}

	return p.assignment()
}
