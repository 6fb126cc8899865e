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
	"fillmore-labs.com/earlyexit/internal/cxx"
	"fillmore-labs.com/earlyexit/internal/macros"
)

func (p *parser) compound() *cxx.Node {
	start := p.expect("{").off
	n := p.newNode(cxx.CompoundStmt, "CompoundStmt", start, start)

	for !p.at("}") {
		if p.peek().kind == tEOF {
			p.fail("unterminated block")
		}

		add(n, p.statement(), cxx.EdgeStmt)
	}

	p.next()
	n.Range = p.rng(start, p.last())

	return n
}

// statement parses a statement. It returns nil for statements without a syntax tree representation.
func (p *parser) statement() *cxx.Node {
	t := p.peek()

	switch {
	case t.is("{"):
		return p.compound()

	case t.is(";"):
		p.next()

		return p.newNode(cxx.NullStmt, "NullStmt", t.off, t.end)

	case t.is("return"):
		return p.returnStmt()

	case t.is("if"):
		return p.ifStmt()

	case t.is("while"):
		return p.whileStmt()

	case t.is("do"):
		return p.doStmt()

	case t.is("for"):
		return p.forStmt()

	case t.is("switch"):
		return p.switchStmt()

	case t.is("case"), t.is("default") && p.peekN(1).is(":"):
		return p.labeled()

	case t.is("break"), t.is("continue"):
		p.next()

		class := "BreakStmt"
		if t.is("continue") {
			class = "ContinueStmt"
		}

		n := p.newNode(cxx.Other, class, t.off, t.end)
		p.expect(";")

		return n

	case t.is("goto"):
		p.next()
		p.ident()
		n := p.newNode(cxx.Other, "GotoStmt", t.off, p.last())
		p.expect(";")

		return n

	case t.is("try"):
		return p.tryStmt()

	case t.is("using"), t.is("typedef"), t.is("static_assert"):
		p.skipTo(";")

		return nil

	case (t.is("struct") || t.is("class") || t.is("union")) && p.peekN(1).kind == tIdent &&
		(p.peekN(2).is("{") || p.peekN(2).is(":") || p.peekN(2).is("final")):
		n := p.newNode(cxx.DeclStmt, "DeclStmt", t.off, t.off)
		add(n, p.recordDecl(t.off), cxx.EdgeVar)
		p.expect(";")
		n.Range = p.rng(t.off, p.last())

		return n

	case t.kind == tIdent && p.opts.macroCalls[t.text] && p.peekN(1).is("("):
		if m, noop, ok := macros.Lookup(t.text); ok && m.Statement() {
			return p.macroStatement(m, noop)
		}

	case t.kind == tIdent && !keywords[t.text] && p.peekN(1).is(":") && !p.peekN(2).is(":"):
		p.next()
		p.next()

		n := p.newNode(cxx.LabeledStmt, "LabelStmt", t.off, t.off)
		n.Name = t.text
		add(n, p.statement(), cxx.EdgeSubStmt)
		n.Range = p.rng(t.off, p.last())

		return n
	}

	if p.declarationAhead() {
		return p.declStmt()
	}

	e := p.expression()
	p.expect(";")

	return e
}

func (p *parser) returnStmt() *cxx.Node {
	start := p.next().off
	n := p.newNode(cxx.ReturnStmt, "ReturnStmt", start, p.last())

	if !p.at(";") {
		add(n, p.initializer(""), cxx.EdgeValue)
	}

	n.Range = p.rng(start, p.last())
	p.expect(";")

	return n
}

func (p *parser) ifStmt() *cxx.Node {
	start := p.next().off
	n := p.newNode(cxx.IfStmt, "IfStmt", start, start)

	if p.accept("constexpr") {
		n.Opcode = "constexpr"
	}

	p.condition(n, true)
	add(n, p.statement(), cxx.EdgeThen)

	if p.accept("else") {
		add(n, p.statement(), cxx.EdgeElse)
	}

	n.Range = p.rng(start, p.last())

	return n
}

// condition parses a parenthesized condition with an optional init-statement or condition variable.
func (p *parser) condition(n *cxx.Node, withInit bool) {
	p.expect("(")

	if withInit && !p.at(";") {
		if p.declarationAhead() {
			declStart := p.peek().off
			decl := p.declarator()

			if p.at(";") {
				p.next()

				s := p.newNode(cxx.DeclStmt, "DeclStmt", declStart, p.last())
				add(s, decl, cxx.EdgeVar)
				add(n, s, cxx.EdgeInit)
			} else {
				add(n, decl, cxx.EdgeCondVar)
				p.expect(")")

				return
			}
		} else {
			e := p.expression()
			if !p.accept(";") {
				add(n, e, cxx.EdgeCond)
				p.expect(")")

				return
			}

			add(n, e, cxx.EdgeInit)
		}
	} else if withInit {
		p.next()
	}

	if p.declarationAhead() {
		add(n, p.declarator(), cxx.EdgeCondVar)
	} else {
		add(n, p.expression(), cxx.EdgeCond)
	}

	p.expect(")")
}

func (p *parser) whileStmt() *cxx.Node {
	start := p.next().off
	n := p.newNode(cxx.LoopStmt, "WhileStmt", start, start)

	p.condition(n, false)
	add(n, p.statement(), cxx.EdgeBody)

	n.Range = p.rng(start, p.last())

	return n
}

func (p *parser) doStmt() *cxx.Node {
	start := p.next().off
	n := p.newNode(cxx.LoopStmt, "DoStmt", start, start)

	add(n, p.statement(), cxx.EdgeBody)
	p.expect("while")
	p.expect("(")
	add(n, p.expression(), cxx.EdgeCond)
	p.expect(")")

	n.Range = p.rng(start, p.last())
	p.expect(";")

	return n
}

func (p *parser) forStmt() *cxx.Node {
	start := p.next().off
	p.expect("(")

	if p.rangeForAhead() {
		n := p.newNode(cxx.LoopStmt, "CXXForRangeStmt", start, start)

		declStart := p.peek().off
		from, to, _ := p.typeSpec()
		v := p.newNode(cxx.VarDecl, "VarDecl", declStart, declStart)
		nameTok := p.ident()
		v.Name, v.Type = nameTok.text, p.text(from, to)
		v.NameRange = p.rng(nameTok.off, nameTok.end)
		v.Range = p.rng(declStart, nameTok.end)
		p.declareLocal(v)

		p.expect(":")
		add(n, v, cxx.EdgeOther)
		add(n, p.expression(), cxx.EdgeOther)
		p.expect(")")
		add(n, p.statement(), cxx.EdgeBody)

		n.Range = p.rng(start, p.last())

		return n
	}

	n := p.newNode(cxx.LoopStmt, "ForStmt", start, start)

	switch {
	case p.accept(";"):

	case p.declarationAhead():
		add(n, p.declStmt(), cxx.EdgeInit)

	default:
		add(n, p.expression(), cxx.EdgeInit)
		p.expect(";")
	}

	if !p.at(";") {
		add(n, p.expression(), cxx.EdgeCond)
	}

	p.expect(";")

	if !p.at(")") {
		add(n, p.expression(), cxx.EdgeInc)
	}

	p.expect(")")
	add(n, p.statement(), cxx.EdgeBody)

	n.Range = p.rng(start, p.last())

	return n
}

func (p *parser) rangeForAhead() bool {
	save := p.pos
	defer func() { p.pos = save }()

	p.specifiers()

	if _, _, ok := p.typeSpec(); !ok {
		return false
	}

	return p.peek().kind == tIdent && p.peekN(1).is(":")
}

func (p *parser) switchStmt() *cxx.Node {
	start := p.next().off
	n := p.newNode(cxx.SwitchStmt, "SwitchStmt", start, start)

	p.condition(n, true)
	add(n, p.statement(), cxx.EdgeBody)

	n.Range = p.rng(start, p.last())

	return n
}

func (p *parser) labeled() *cxx.Node {
	t := p.next()

	n := p.newNode(cxx.LabeledStmt, "DefaultStmt", t.off, t.off)

	if t.is("case") {
		n.Class = "CaseStmt"
		add(n, p.conditional(), cxx.EdgeOther)
	}

	p.expect(":")

	if !p.at("}") && !p.at("case") && !p.at("default") {
		add(n, p.statement(), cxx.EdgeSubStmt)
	}

	n.Range = p.rng(t.off, p.last())

	return n
}

func (p *parser) tryStmt() *cxx.Node {
	start := p.next().off
	n := p.newNode(cxx.Other, "CXXTryStmt", start, start)

	add(n, p.compound(), cxx.EdgeOther)

	for p.at("catch") {
		catchStart := p.next().off
		p.skipBalanced("(", ")")

		c := p.newNode(cxx.Other, "CXXCatchStmt", catchStart, catchStart)
		add(c, p.compound(), cxx.EdgeOther)
		c.Range = p.rng(catchStart, p.last())
		add(n, c, cxx.EdgeOther)
	}

	n.Range = p.rng(start, p.last())

	return n
}

// declarationAhead reports whether a variable declaration starts at the current token.
func (p *parser) declarationAhead() bool {
	save := p.pos
	defer func() { p.pos = save }()

	p.specifiers()

	if _, _, ok := p.typeSpec(); !ok {
		return false
	}

	for p.at("*") || p.at("&") {
		p.next()
	}

	if t := p.peek(); t.kind != tIdent || keywords[t.text] {
		return false
	}

	switch p.peekN(1).text {
	case "=", ";", "{", "(", ",", "[":
		return true

	default:
		return false
	}
}

// declarator parses a single variable declaration without the terminating semicolon.
func (p *parser) declarator() *cxx.Node {
	start := p.peek().off

	p.specifiers()

	from, to, _ := p.typeSpec()

	return p.variable(cxx.VarDecl, "VarDecl", start, p.text(from, to), p.ident())
}

func (p *parser) declStmt() *cxx.Node {
	start := p.peek().off
	n := p.newNode(cxx.DeclStmt, "DeclStmt", start, start)

	p.specifiers()

	from, to, _ := p.typeSpec()
	typ := p.text(from, to)

	for {
		for p.at("*") || p.at("&") {
			p.next()
		}

		add(n, p.variable(cxx.VarDecl, "VarDecl", start, typ, p.ident()), cxx.EdgeVar)

		if !p.accept(",") {
			break
		}
	}

	p.expect(";")
	n.Range = p.rng(start, p.last())

	return n
}

func (p *parser) declareLocal(v *cxx.Node) {
	if len(p.locals) == 0 {
		return
	}

	if scope := p.locals[len(p.locals)-1]; scope != nil {
		scope[v.Name] = v
	}
}

// macroStatement parses a propagation macro in statement position into the shape of its expansion.
func (p *parser) macroStatement(m macros.Macro, noop bool) *cxx.Node {
	start := p.next().off

	p.macro++
	p.expect("(")

	switch m {
	case macros.ExitOrIf, macros.ExitOrIfNot:
		n := p.newNode(cxx.IfStmt, "IfStmt", start, start)
		add(n, p.macroArgument(), cxx.EdgeCond)
		p.expect(")")
		n.Range = p.rng(start, p.last())

		p.macro--

		add(n, p.statement(), cxx.EdgeThen)

		if p.accept("else") {
			add(n, p.statement(), cxx.EdgeElse)
		}

		n.Range.To = p.file.Pos(p.last())

		return n

	case macros.ExitOrDecl:
		n := p.newNode(cxx.DeclStmt, "DeclStmt", start, start)

		p.macroArg++
		declStart := p.peek().off
		from, to, ok := p.typeSpec()
		if !ok {
			p.fail("expected declaration")
		}

		v := p.newNode(cxx.VarDecl, "VarDecl", declStart, declStart)
		nameTok := p.ident()
		v.Name, v.Type = nameTok.text, p.text(from, to)
		v.NameRange = p.rng(nameTok.off, nameTok.end)
		p.macroArg--

		p.expect(",")
		add(v, p.macroArgument(), cxx.EdgeVarInit)
		p.expect(")")

		v.Range = p.rng(start, p.last())
		n.Range = v.Range
		add(n, v, cxx.EdgeVar)
		p.declareLocal(v)

		p.macro--
		p.accept(";")

		return n

	default:
		n := p.newNode(cxx.IfStmt, "IfStmt", start, start)

		for {
			add(n, p.macroArgument(), cxx.EdgeOther)

			if !p.accept(",") {
				break
			}
		}

		p.expect(")")
		n.Range = p.rng(start, p.last())

		if !noop {
			add(n, p.newNode(cxx.ReturnStmt, "ReturnStmt", start, p.last()), cxx.EdgeThen)
		}

		p.macro--
		p.accept(";")

		return n
	}
}

func (p *parser) macroArgument() *cxx.Node {
	p.macroArg++
	defer func() { p.macroArg-- }()

	return p.assignment()
}
