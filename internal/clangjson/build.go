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

package clangjson

import (
	"strings"

	"fillmore-labs.com/earlyexit/internal/cxx"
)

// builder converts resolved dump nodes into [cxx.Node] trees.
type builder struct {
	files   map[string]*cxx.Source
	aliases map[string]string // type alias names to aliased types
	nodes   int
}

func (b *builder) node(j *jsonNode) *cxx.Node {
	b.nodes++

	n := &cxx.Node{
		ID:        j.ID,
		Kind:      kindOf(j.Kind),
		Class:     j.Kind,
		Name:      j.Name,
		Type:      j.Type.String(),
		Desugared: j.Type.desugared(),
		Opcode:    j.Opcode,
		Value:     j.value(),
		Range:     b.rng(j.begin, j.end),
		Implicit:  j.IsImplicit || implicitClass(j),
		Previous:  j.PreviousDecl,
	}

	if j.CastKind != "" {
		n.Opcode = j.CastKind
	}

	if j.ADL {
		n.Flags |= cxx.ADL
	}

	if j.IsConstexpr && n.Kind == cxx.IfStmt {
		n.Opcode = "constexpr"
	}

	switch j.Kind {
	case "TypeAliasDecl", "TypedefDecl":
		b.alias(j.Name, n.Type, n.Desugared)
	}

	switch n.Kind {
	case cxx.Function:
		b.function(n, j)

	case cxx.VarDecl, cxx.Param, cxx.Field, cxx.Record:
		n.NameRange = b.rng(j.loc, j.loc)
		if n.Kind == cxx.VarDecl {
			n.Opcode = j.Init
		}

	case cxx.DeclRefExpr:
		if ref := j.ReferencedDecl; ref != nil {
			typ := ref.Type.String()
			n.Ref = &cxx.Ref{ID: ref.ID, Class: ref.Kind, Name: ref.Name, Type: typ, Desugared: b.desugarFunction(typ)}
			n.Name = ref.Name
		}

	case cxx.MemberExpr:
		if j.ReferencedMemberDecl != "" {
			class := "FieldDecl"
			if n.Type == "<bound member function type>" {
				class = "CXXMethodDecl"
			}

			n.Ref = &cxx.Ref{ID: j.ReferencedMemberDecl, Class: class, Name: j.Name}
		}

	default:
	}

	inner := make([]*jsonNode, 0, len(j.Inner))
	for _, c := range j.Inner {
		if c != nil && strings.HasSuffix(c.Kind, "Attr") {
			n.Attrs = append(n.Attrs, c.Kind)

			continue
		}

		inner = append(inner, c)
	}

	edges := edgesOf(j, inner)
	for i, c := range inner {
		if c.placeholder() {
			continue
		}

		child := b.node(c)
		child.Edge = edges[i]
		n.Children = append(n.Children, child)
	}

	switch j.Kind {
	case "CXXOperatorCallExpr":
		operatorCall(n)

	case "ImplicitCastExpr":
		if j.CastKind == "UserDefinedConversion" {
			conversionChain(n)
		}
	}

	return n
}

// rng converts a pair of resolved locations into a range ending after the last token.
func (b *builder) rng(begin, end point) cxx.Range {
	if !begin.valid() || !end.valid() || begin.file != end.file {
		return cxx.Range{Macro: begin.macro || end.macro}
	}

	s, ok := b.files[begin.file]
	if !ok {
		return cxx.Range{}
	}

	f := s.File
	from, to := begin.offset, end.offset+end.tokLen

	if from > f.Size() || to > f.Size() || to < from {
		return cxx.Range{}
	}

	return cxx.Range{
		From:     f.Pos(from),
		To:       f.Pos(to),
		Macro:    begin.macro || end.macro,
		MacroArg: begin.macroArg && end.macroArg,
	}
}

func (b *builder) function(n *cxx.Node, j *jsonNode) {
	n.NameRange = b.rng(j.loc, j.loc)
	n.Returns = cxx.ReturnType(n.Type)
	n.Desugared = b.desugarFunction(n.Type)

	switch j.Kind {
	case "CXXConstructorDecl", "CXXDestructorDecl", "CXXConversionDecl", "CXXDeductionGuideDecl":
		n.Flags |= cxx.NoReturnType
	}

	if j.ExplicitlyDeleted || j.ExplicitlyDefaulted {
		n.Flags |= cxx.Deleted
	}

	if strings.Contains(n.Type, ") -> ") {
		n.Flags |= cxx.Trailing
	}

	if n.Has(cxx.NoReturnType) || n.Has(cxx.Trailing) || n.Range.Macro || n.NameRange.Macro {
		return
	}

	s, ok := b.files[j.begin.file]
	if !ok || s.Content == nil || j.loc.file != j.begin.file {
		return
	}

	from, to, ok := returnTypeRange(s.Content, j.begin.offset, j.loc.offset)
	if !ok {
		return
	}

	n.RetRange = cxx.Range{From: s.File.Pos(from), To: s.File.Pos(to)}
}

// alias records a type alias declaration.
func (b *builder) alias(name, typ, desugared string) {
	if name == "" || typ == "" {
		return
	}

	if desugared == "" {
		desugared = b.desugar(typ)
	}

	if desugared == "" {
		desugared = typ
	}

	if b.aliases == nil {
		b.aliases = make(map[string]string)
	}

	b.aliases[name] = desugared
}

// desugar resolves a type spelled as a known alias, reporting "" when it is none.
func (b *builder) desugar(typ string) string {
	return b.aliases[cxx.NormalizeSpace(typ)]
}

// desugarFunction resolves an aliased return type of a function type. Function types
// themselves are not sugar, so the dump carries no desugared spelling for them.
func (b *builder) desugarFunction(fnType string) string {
	ret := cxx.ReturnType(fnType)
	if ret == "" {
		return ""
	}

	target := b.desugar(ret)
	if target == "" {
		return ""
	}

	rest, ok := strings.CutPrefix(fnType, ret)
	if !ok {
		return ""
	}

	return target + rest
}

// operatorCall rewrites an overloaded operator call into the operator form it was written in.
// Function call and subscript operators remain calls.
func operatorCall(n *cxx.Node) {
	if len(n.Children) == 0 {
		return
	}

	callee := n.Children[0].Inner()
	if callee.Ref == nil {
		return
	}

	op, ok := strings.CutPrefix(callee.Ref.Name, "operator")
	if !ok || op == "()" || op == "[]" || op == "->" || op == "" {
		return
	}

	args := n.Children[1:]

	switch len(args) {
	case 1:
		n.Kind, n.Opcode = cxx.UnaryOperator, op
		args[0].Edge = cxx.EdgeOperand

	case 2:
		n.Kind, n.Opcode = cxx.BinaryOperator, op
		args[0].Edge, args[1].Edge = cxx.EdgeLHS, cxx.EdgeRHS

	default:
		return
	}

	n.Children = args
}

// conversionChain marks the member call of an implicit user-defined conversion as implicit.
func conversionChain(n *cxx.Node) {
	if len(n.Children) != 1 {
		return
	}

	call := n.Children[0]
	if call.Class != "CXXMemberCallExpr" {
		return
	}

	call.Implicit = true

	if member := call.Child(cxx.EdgeCallee); member != nil && member.Kind == cxx.MemberExpr {
		member.Implicit = true
	}
}
