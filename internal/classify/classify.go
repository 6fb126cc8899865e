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

// Package classify finds functions calling operations that return the early-exit carrier
// and classifies their call sites and return statements.
//
// A function definition is classified when it calls an operation returning the carrier.
// Its body is searched without entering lambdas and local classes; methods of local
// classes are functions of their own, lambdas are not classified. Calls spelled inside
// macro expansions are considered migrated.
package classify

import (
	"slices"

	"fillmore-labs.com/earlyexit/internal/cxx"
	"fillmore-labs.com/earlyexit/internal/match"
)

// DefaultCarrier is the name of the carrier class template.
const DefaultCarrier = "MaybeEarlyExit"

// voidSuccess is the success type of a carrier without template arguments.
const voidSuccess = "VoidType"

// DeclarationSite is one declaration of a classified function.
type DeclarationSite struct {
	Decl   *cxx.Node
	Return cxx.Range // written return type, invalid when unknown
}

// CallSite is a call returning the carrier, classified by its syntactic context.
type CallSite struct {
	Call    *cxx.Node // the call
	Outer   *cxx.Node // outermost transparent wrapper of Call
	Anchor  *cxx.Node // the construct a rewrite refers to: statement, if, assignment, declaration or cast
	Via     *cxx.Node // negation of NegatedCondition, variable of DeclarationInit
	Shape   Shape
	Success string // canonical success type of the returned carrier, "" for none
}

// Function is a classified function definition.
type Function struct {
	Decl        *cxx.Node
	Mode        Mode
	Blocked     Reason
	Sites       []DeclarationSite // all declarations, in source order
	Calls       []CallSite        // calls outside of macro expansions, in source order
	Migrated    int               // number of calls inside macro expansions
	Returns     []*cxx.Node       // return statements outside of macro expansions
	BareReturns []*cxx.Node       // return statements without value
	Success     string            // success type the function returns or should return, as written, "" for none
	Type        string            // canonical success type, comparable with [CallSite.Success]
}

// Classifier classifies functions of a translation unit.
type Classifier struct {
	Carrier  string   // carrier class template name, defaults to [DefaultCarrier]
	TopLevel []string // additional names of functions handling early exits, besides main
}

func (c *Classifier) carrier() string {
	if c.Carrier == "" {
		return DefaultCarrier
	}

	return c.Carrier
}

// Success returns the normalized success type of a carrier type spelling.
func (c *Classifier) Success(typ string) (success string, ok bool) {
	name, args, ok := cxx.TemplateName(typ)
	if !ok || name != c.carrier() {
		return "", false
	}

	return normalize(args), true
}

// hostSuccess returns the canonical success type of a carrier spelled as typ or,
// when typ is an alias, as desugared.
func (c *Classifier) hostSuccess(typ, desugared string) (success string, ok bool) {
	success, ok = c.Success(typ)
	if !ok && desugared != "" {
		success, ok = c.Success(desugared)
	}

	return cxx.CanonicalType(success), ok
}

func normalize(typ string) string {
	switch t := cxx.NormalizeSpace(typ); t {
	case "void", voidSuccess:
		return ""

	default:
		return t
	}
}

// CarrierCall reports whether n is a call returning the carrier, and its success type.
func (c *Classifier) CarrierCall(n *cxx.Node) (success string, ok bool) {
	if n.Kind != cxx.CallExpr {
		return "", false
	}

	if n.Type != "" {
		return c.hostSuccess(n.Type, n.Desugared)
	}

	callee := n.Child(cxx.EdgeCallee)
	if callee == nil || !callee.Inner().Ref.Function() {
		return "", false
	}

	ref := callee.Inner().Ref

	return c.hostSuccess(cxx.ReturnType(ref.Type), cxx.ReturnType(ref.Desugared))
}

// Classify classifies a function definition. It reports false when fn is not a definition
// or does not call an operation returning the carrier.
func (c *Classifier) Classify(u *cxx.TranslationUnit, fn *cxx.Node) (*Function, bool) {
	if !fn.Definition() || fn.Implicit {
		return nil, false
	}

	f := &Function{Decl: fn}

	body := fn.Body()

	for n := range body.Scoped() {
		switch n.Kind {
		case cxx.CallExpr:
			success, ok := c.CarrierCall(n)
			if !ok || n.Implicit {
				continue
			}

			if n.Range.Macro {
				f.Migrated++

				continue
			}

			f.Calls = append(f.Calls, classifyCall(n, success))

		case cxx.ReturnStmt:
			if n.Range.Macro {
				continue
			}

			f.Returns = append(f.Returns, n)
			if n.Child(cxx.EdgeValue) == nil {
				f.BareReturns = append(f.BareReturns, n)
			}

		default:
		}
	}

	if f.Migrated == 0 && !slices.ContainsFunc(f.Calls, func(s CallSite) bool { return s.Shape != Ignored }) {
		return nil, false
	}

	for _, d := range u.Redeclarations(fn) {
		f.Sites = append(f.Sites, DeclarationSite{Decl: d, Return: d.RetRange})
	}

	switch success, ok := c.hostSuccess(fn.Returns, cxx.ReturnType(fn.Desugared)); {
	case ok && !fn.Has(cxx.NoReturnType):
		f.Mode, f.Success, f.Type = Carrier, success, success

	case fn.IsMain() || slices.Contains(c.TopLevel, fn.Name):
		f.Mode = TopLevel

	default:
		f.Mode = Obligated
		f.Success = returnSpelling(u, fn)
		f.Type = hostType(fn)
		f.Blocked = blocked(f)
	}

	return f, true
}

// returnSpelling returns the written return type of the definition, falling back to the declared type.
func returnSpelling(u *cxx.TranslationUnit, fn *cxx.Node) string {
	if text, ok := u.Text(fn.RetRange); ok && fn.RetRange.IsValid() {
		return normalize(text)
	}

	return normalize(fn.Returns)
}

// hostType returns the canonical declared return type, resolving aliases.
func hostType(fn *cxx.Node) string {
	if ret := cxx.ReturnType(fn.Desugared); ret != "" {
		return cxx.CanonicalType(normalize(ret))
	}

	return cxx.CanonicalType(normalize(fn.Returns))
}

func blocked(f *Function) Reason {
	if f.Decl.Has(cxx.NoReturnType) {
		return NoReturnType
	}

	for _, s := range f.Sites {
		d := s.Decl
		if d.Range.Macro || d.NameRange.Macro || s.Return.Macro {
			return MacroOrigin
		}
	}

	for _, s := range f.Sites {
		if s.Decl.Has(cxx.Trailing) || !s.Return.IsValid() {
			return UnknownReturnType
		}
	}

	return NotBlocked
}

var (
	isReturn   = match.Kind(cxx.ReturnStmt)
	isIf       = match.Kind(cxx.IfStmt)
	isNegation = match.And(match.Kind(cxx.UnaryOperator), match.Opcode("!"))
	isAssign   = match.And(match.Kind(cxx.BinaryOperator), match.Opcode("="))
	isVar      = match.Kind(cxx.VarDecl)
	isVoidCast = match.And(match.Kind(cxx.CastExpr), match.Opcode("ToVoid"))
)

// classifyCall determines the shape of a call from its syntactic context.
func classifyCall(call *cxx.Node, success string) CallSite {
	s := CallSite{Call: call, Outer: call.Outer(), Success: success, Shape: NestedArgument}

	o := s.Outer
	p := o.Parent

	if p == nil {
		return s
	}

	switch {
	case o.Edge == cxx.EdgeValue && isReturn(p):
		s.Shape, s.Anchor = DirectReturn, p

	case o.Edge == cxx.EdgeCond && isIf(p):
		s.Shape, s.Anchor = PositiveCondition, p

	case o.Edge == cxx.EdgeOperand && isNegation(p):
		if q := p.Outer(); q.Edge == cxx.EdgeCond && q.Parent != nil && isIf(q.Parent) {
			s.Shape, s.Anchor, s.Via = NegatedCondition, q.Parent, p
		}

	case o.Edge == cxx.EdgeRHS && isAssign(p):
		if p.Outer().Edge.Statement() {
			s.Shape, s.Anchor = Assignment, p
		}

	case o.Edge == cxx.EdgeVarInit && isVar(p):
		if d := p.Parent; d != nil && d.Kind == cxx.DeclStmt && d.Edge.Statement() {
			s.Shape, s.Anchor, s.Via = DeclarationInit, d, p
		}

	case o.Edge.Statement():
		s.Shape, s.Anchor = UnusedStatement, o

	case o.Edge == cxx.EdgeOperand && isVoidCast(p):
		if p.Outer().Edge.Statement() {
			s.Shape, s.Anchor = Ignored, p
		}
	}

	return s
}
