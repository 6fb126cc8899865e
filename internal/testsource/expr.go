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
	"fillmore-labs.com/earlyexit/internal/macros"
)

var assignOps = map[string]bool{
	"=": true, "+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"&=": true, "|=": true, "^=": true, "<<=": true, ">>=": true,
}

var precedence = map[string]int{
	"||": 1,
	"&&": 2,
	"|":  3,
	"^":  4,
	"&":  5,
	"==": 6, "!=": 6,
	"<": 7, ">": 7, "<=": 7, ">=": 7,
	"<<": 8, ">>": 8,
	"+": 9, "-": 9,
	"*": 10, "/": 10, "%": 10,
}

// expression parses a comma expression.
func (p *parser) expression() *cxx.Node {
	start := p.peek().off
	e := p.assignment()

	for p.accept(",") {
		rhs := p.assignment()
		b := p.newNode(cxx.BinaryOperator, "BinaryOperator", start, p.last())
		b.Opcode = ","
		add(b, e, cxx.EdgeLHS)
		add(b, rhs, cxx.EdgeRHS)
		e = b
	}

	return e
}

func (p *parser) assignment() *cxx.Node {
	start := p.peek().off
	lhs := p.conditional()

	op := p.peek()
	if op.kind != tPunct || !assignOps[op.text] {
		return lhs
	}

	p.next()
	rhs := p.initializer("")

	class := "CompoundAssignOperator"
	if op.text == "=" {
		class = "BinaryOperator"
	}

	n := p.newNode(cxx.BinaryOperator, class, start, p.last())
	n.Opcode = op.text
	add(n, lhs, cxx.EdgeLHS)
	add(n, rhs, cxx.EdgeRHS)

	return n
}

func (p *parser) conditional() *cxx.Node {
	start := p.peek().off
	c := p.binary(1)

	if !p.accept("?") {
		return c
	}

	t := p.assignment()
	p.expect(":")
	f := p.assignment()

	n := p.newNode(cxx.Other, "ConditionalOperator", start, p.last())
	add(n, c, cxx.EdgeOther)
	add(n, t, cxx.EdgeOther)
	add(n, f, cxx.EdgeOther)

	return n
}

// binaryOp returns the binary operator at the current position and its token count.
func (p *parser) binaryOp() (string, int) {
	t := p.peek()
	if t.kind != tPunct {
		return "", 0
	}

	if t.is(">") {
		if n := p.peekN(1); n.is(">") && n.off == t.end {
			return ">>", 2
		}
	}

	return t.text, 1
}

func (p *parser) binary(minPrec int) *cxx.Node {
	start := p.peek().off
	lhs := p.unary()

	for {
		op, n := p.binaryOp()

		prec := precedence[op]
		if prec == 0 || prec < minPrec {
			return lhs
		}

		for range n {
			p.next()
		}

		rhs := p.binary(prec + 1)

		b := p.newNode(cxx.BinaryOperator, "BinaryOperator", start, p.last())
		b.Opcode = op
		add(b, lhs, cxx.EdgeLHS)
		add(b, rhs, cxx.EdgeRHS)
		lhs = b
	}
}

func (p *parser) unary() *cxx.Node {
	t := p.peek()

	switch {
	case t.is("!"), t.is("-"), t.is("+"), t.is("~"), t.is("*"), t.is("&"), t.is("++"), t.is("--"):
		p.next()
		operand := p.unary()

		n := p.newNode(cxx.UnaryOperator, "UnaryOperator", t.off, p.last())
		n.Opcode = t.text
		add(n, operand, cxx.EdgeOperand)

		return n

	case t.is("(") && p.castAhead():
		p.next()
		from, to, _ := p.typeSpec()
		p.expect(")")
		operand := p.unary()

		n := p.newNode(cxx.CastExpr, "CStyleCastExpr", t.off, p.last())
		n.Type = p.text(from, to)
		n.Opcode = castKind(n.Type)
		add(n, operand, cxx.EdgeOperand)

		return n

	case t.is("sizeof"), t.is("alignof"):
		p.next()

		if p.at("(") {
			p.skipBalanced("(", ")")
		} else {
			p.unary()
		}

		return p.newNode(cxx.Other, "UnaryExprOrTypeTraitExpr", t.off, p.last())

	case t.is("new"):
		p.next()

		n := p.newNode(cxx.Other, "CXXNewExpr", t.off, t.off)
		from, to, ok := p.typeSpec()
		if !ok {
			p.fail("expected type")
		}

		n.Type = p.text(from, to) + " *"

		switch {
		case p.at("("):
			p.arguments(n, cxx.EdgeOther)

		case p.at("{"):
			add(n, p.initList(p.text(from, to)), cxx.EdgeOther)
		}

		n.Range = p.rng(t.off, p.last())

		return n

	case t.is("delete"):
		p.next()

		if p.at("[") {
			p.skipBalanced("[", "]")
		}

		n := p.newNode(cxx.Other, "CXXDeleteExpr", t.off, t.off)
		add(n, p.unary(), cxx.EdgeOther)
		n.Range = p.rng(t.off, p.last())

		return n

	case t.is("throw"):
		p.next()

		n := p.newNode(cxx.Other, "CXXThrowExpr", t.off, t.end)
		if !p.at(";") && !p.at(")") {
			add(n, p.assignment(), cxx.EdgeOther)
			n.Range = p.rng(t.off, p.last())
		}

		return n

	default:
		return p.postfix()
	}
}

// castAhead reports whether a parenthesized type starts at the current position.
func (p *parser) castAhead() bool {
	save := p.pos
	defer func() { p.pos = save }()

	p.next()

	from, to, ok := p.typeSpec()
	if !ok || !p.at(")") {
		return false
	}

	typ := p.src[from:to]
	first, _, _ := strings.Cut(typ, " ")

	return builtinTypes[first] || strings.ContainsAny(typ, "<*&:") || p.records[typ] != nil ||
		first == "const"
}

func castKind(typ string) string {
	if typ == "void" {
		return "ToVoid"
	}

	return "NoOp"
}

func (p *parser) postfix() *cxx.Node {
	start := p.peek().off
	e := p.primary()

	for {
		switch t := p.peek(); {
		case t.is("("):
			class := "CallExpr"
			if e.Kind == cxx.MemberExpr {
				class = "CXXMemberCallExpr"
			}

			call := p.newNode(cxx.CallExpr, class, start, start)
			add(call, e, cxx.EdgeCallee)
			p.arguments(call, cxx.EdgeArg)
			call.Range = p.rng(start, p.last())

			if e.Kind == cxx.DeclRefExpr && p.spelled[e] == "" && p.opts.adl[e.Name] {
				call.Flags |= cxx.ADL
			}

			e = call

		case t.is("."), t.is("->"):
			p.next()
			p.accept("template")

			var name string

			switch {
			case p.at("~"):
				p.next()
				name = "~" + p.ident().text

			case p.at("operator"):
				name, _ = p.declaratorName()

			default:
				name = p.ident().text
			}

			m := p.newNode(cxx.MemberExpr, "MemberExpr", start, p.last())
			m.Name = name
			m.Opcode = t.text
			add(m, e, cxx.EdgeBase)
			p.refs = append(p.refs, m)
			e = m

		case t.is("["):
			p.next()

			n := p.newNode(cxx.Other, "ArraySubscriptExpr", start, start)
			add(n, e, cxx.EdgeOther)
			add(n, p.expression(), cxx.EdgeOther)
			p.expect("]")
			n.Range = p.rng(start, p.last())
			e = n

		case t.is("++"), t.is("--"):
			p.next()

			n := p.newNode(cxx.UnaryOperator, "UnaryOperator", start, p.last())
			n.Opcode = t.text
			n.Value = "postfix"
			add(n, e, cxx.EdgeOperand)
			e = n

		default:
			return e
		}
	}
}

// arguments parses a parenthesized argument list.
func (p *parser) arguments(call *cxx.Node, e cxx.Edge) {
	p.expect("(")

	for !p.accept(")") {
		add(call, p.initializer(""), e)

		if !p.at(")") {
			p.expect(",")
		}
	}
}

func (p *parser) primary() *cxx.Node {
	t := p.peek()

	switch {
	case t.kind == tNumber:
		p.next()

		n := p.newNode(cxx.Other, "IntegerLiteral", t.off, t.end)
		if strings.ContainsAny(t.text, ".eE") && !strings.HasPrefix(t.text, "0x") {
			n.Class = "FloatingLiteral"
		}

		n.Value = t.text

		return n

	case t.kind == tString:
		return p.stringLiteral()

	case t.kind == tChar:
		p.next()

		n := p.newNode(cxx.Other, "CharacterLiteral", t.off, t.end)
		n.Value = t.text

		return n

	case t.is("true"), t.is("false"):
		p.next()

		n := p.newNode(cxx.Other, "CXXBoolLiteralExpr", t.off, t.end)
		n.Value = t.text

		return n

	case t.is("nullptr"):
		p.next()

		return p.newNode(cxx.Other, "CXXNullPtrLiteralExpr", t.off, t.end)

	case t.is("this"):
		p.next()

		return p.newNode(cxx.Other, "CXXThisExpr", t.off, t.end)

	case t.is("("):
		p.next()

		n := p.newNode(cxx.ParenExpr, "ParenExpr", t.off, t.off)
		add(n, p.expression(), cxx.EdgeOperand)
		p.expect(")")
		n.Range = p.rng(t.off, p.last())

		return n

	case t.is("{"):
		return p.initList("")

	case t.is("["):
		return p.lambda()

	case t.is("static_cast"), t.is("reinterpret_cast"), t.is("const_cast"), t.is("dynamic_cast"):
		p.next()
		p.expect("<")

		from, to, ok := p.typeSpec()
		if !ok {
			p.fail("expected type")
		}

		p.expect(">")
		p.expect("(")

		n := p.newNode(cxx.CastExpr, "CXX"+strings.ToUpper(t.text[:1])+
			strings.ReplaceAll(t.text[1:], "_cast", "Cast")+"Expr", t.off, t.off)
		n.Type = p.text(from, to)
		n.Opcode = castKind(n.Type)
		add(n, p.expression(), cxx.EdgeOperand)
		p.expect(")")
		n.Range = p.rng(t.off, p.last())

		return n

	case t.kind == tIdent && p.opts.macroCalls[t.text] && p.peekN(1).is("("):
		return p.macroExpression()

	case t.kind == tIdent && !keywords[t.text], t.is("::"), t.is("operator"):
		return p.idExpression()

	default:
		p.fail("unexpected %q", t.text)

		return nil
	}
}

// stringLiteral parses adjacent string literals into a single literal.
func (p *parser) stringLiteral() *cxx.Node {
	start := p.peek().off

	var parts []string
	for p.peek().kind == tString {
		parts = append(parts, p.next().text)
	}

	n := p.newNode(cxx.StringLiteral, "StringLiteral", start, p.last())

	if len(parts) == 1 {
		n.Value = parts[0]

		return n
	}

	var b strings.Builder

	b.WriteByte('"') // ignore error

	for _, s := range parts {
		body := s[strings.IndexByte(s, '"')+1 : len(s)-1]
		b.WriteString(body) // ignore error
	}

	b.WriteByte('"') // ignore error

	n.Value = b.String()

	return n
}

// idExpression parses a possibly qualified name, a temporary object or a functional cast.
func (p *parser) idExpression() *cxx.Node {
	start := p.peek().off
	qualified := p.accept("::")

	var name string

	for {
		switch {
		case p.at("operator"):
			name, _ = p.declaratorName()

		case p.at("~"):
			p.next()
			name = "~" + p.ident().text

		default:
			name = p.ident().text
		}

		if p.at("<") {
			save := p.pos
			if !p.templateArgs() || !p.at("(") && !p.at("::") && !p.at("{") {
				p.pos = save
			}
		}

		if !p.at("::") || p.peekN(1).kind != tIdent && !p.peekN(1).is("~") {
			break
		}

		p.next()

		qualified = true
	}

	spelled := cxx.NormalizeSpace(p.src[start:p.last()])

	if p.at("{") && (p.records[name] != nil || strings.Contains(spelled, "<")) {
		n := p.initList(spelled)
		n.Range = p.rng(start, p.last())

		return n
	}

	n := p.newNode(cxx.DeclRefExpr, "DeclRefExpr", start, p.last())
	n.Name = name

	if qualified {
		p.spelled[n] = spelled
	}

	if v := p.local(name); v != nil && !qualified {
		n.Ref = &cxx.Ref{ID: v.ID, Class: v.Class, Name: v.Name, Type: v.Type}

		return n
	}

	p.refs = append(p.refs, n)

	return n
}

func (p *parser) local(name string) *cxx.Node {
	for i := len(p.locals) - 1; i >= 0; i-- {
		if v, ok := p.locals[i][name]; ok {
			return v
		}
	}

	return nil
}

// initList parses a braced initializer list. Designated initializers of known records are
// expanded in member order, with implicit value initializations for omitted members.
func (p *parser) initList(typ string) *cxx.Node {
	start := p.expect("{").off
	n := p.newNode(cxx.InitListExpr, "InitListExpr", start, start)
	n.Type = typ

	base := typ
	if i := strings.LastIndex(base, "::"); i >= 0 {
		base = base[i+2:]
	}

	if rec := p.records[base]; rec != nil && p.at(".") {
		given := make(map[string]*cxx.Node)

		for !p.accept("}") {
			p.expect(".")
			field := p.ident().text
			p.accept("=")
			given[field] = p.initializer("")

			if !p.at("}") {
				p.expect(",")
			}
		}

		for f := range rec.ChildrenOf(cxx.EdgeDecl) {
			if f.Kind != cxx.Field {
				continue
			}

			switch v, ok := given[f.Name]; {
			case ok:
				add(n, v, cxx.EdgeElement)

			case f.Child(cxx.EdgeVarInit) != nil:
				d := p.newNode(cxx.Other, "CXXDefaultInitExpr", start, start)
				d.Implicit, d.Type, d.Range = true, f.Type, cxx.Range{}
				add(n, d, cxx.EdgeElement)

			default:
				v := p.newNode(cxx.ImplicitValueInitExpr, "ImplicitValueInitExpr", start, start)
				v.Implicit, v.Type, v.Range = true, f.Type, cxx.Range{}
				add(n, v, cxx.EdgeElement)
			}
		}

		n.Range = p.rng(start, p.last())

		return n
	}

	for !p.accept("}") {
		add(n, p.initializer(""), cxx.EdgeElement)

		if !p.at("}") {
			p.expect(",")
		}
	}

	n.Range = p.rng(start, p.last())

	return n
}

func (p *parser) lambda() *cxx.Node {
	start := p.peek().off
	n := p.newNode(cxx.LambdaExpr, "LambdaExpr", start, start)

	p.skipBalanced("[", "]")

	p.locals = append(p.locals, make(map[string]*cxx.Node))
	defer func() { p.locals = p.locals[:len(p.locals)-1] }()

	if p.at("(") {
		p.parameters(n)

		for _, c := range n.Children {
			if c.Name != "" {
				p.declareLocal(c)
			}
		}
	}

	for p.at("mutable") || p.at("constexpr") || p.at("noexcept") {
		p.next()
	}

	if p.accept("->") {
		from, to, ok := p.typeSpec()
		if !ok {
			p.fail("expected lambda return type")
		}

		n.Type = p.text(from, to)
	}

	outer := p.record
	p.record = ""
	add(n, p.compound(), cxx.EdgeBody)
	p.record = outer

	n.Range = p.rng(start, p.last())

	return n
}

// macroExpression parses a macro invocation in expression position into the shape of its expansion.
func (p *parser) macroExpression() *cxx.Node {
	nameTok := p.next()
	start := nameTok.off

	m, noop, known := macros.Lookup(nameTok.text)

	p.macro++

	var n *cxx.Node

	switch {
	case known && m == macros.BubbleUp && noop:
		n = p.newNode(cxx.ParenExpr, "ParenExpr", start, start)
		deref := p.newNode(cxx.UnaryOperator, "UnaryOperator", start, start)
		deref.Opcode = "*"
		add(n, deref, cxx.EdgeOperand)
		p.macroArguments(deref, cxx.EdgeOperand)
		deref.Range = p.rng(start, p.last())

	case known && m == macros.BubbleUp:
		n = p.newNode(cxx.CallExpr, "CallExpr", start, start)
		callee := p.newNode(cxx.DeclRefExpr, "DeclRefExpr", start, nameTok.end)
		callee.Name = "BubbleUp"
		callee.Ref = &cxx.Ref{ID: "BubbleUp", Class: "FunctionDecl", Name: "BubbleUp", Type: "EarlyExit (MaybeEarlyExit<T> &&)"}
		add(n, callee, cxx.EdgeCallee)
		p.macroArguments(n, cxx.EdgeArg)
		n.Type = "EarlyExit"

	default:
		n = p.newNode(cxx.CallExpr, "CallExpr", start, start)
		callee := p.newNode(cxx.DeclRefExpr, "DeclRefExpr", start, nameTok.end)
		callee.Name = nameTok.text
		add(n, callee, cxx.EdgeCallee)
		p.macroArguments(n, cxx.EdgeArg)
	}

	n.Range = p.rng(start, p.last())
	p.macro--

	return n
}

func (p *parser) macroArguments(n *cxx.Node, e cxx.Edge) {
	p.macroArg++
	defer func() { p.macroArg-- }()

	p.arguments(n, e)
}
