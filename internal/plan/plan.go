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

// Package plan computes the source edits migrating a classified function to early-exit propagation.
//
// Edits are computed from the unedited source text and never overlap within a function.
// Already migrated code (calls inside propagation macros, functions returning the carrier)
// produces no edits, so planning the migrated source again is a no-op.
package plan

import (
	"fmt"
	"go/token"
	"strings"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/earlyexit/internal/classify"
	"fillmore-labs.com/earlyexit/internal/cxx"
	"fillmore-labs.com/earlyexit/internal/macros"
)

// Kind categorizes a rewrite.
type Kind uint8

const (
	// ReturnType widens the return type of a function on all declarations.
	ReturnType Kind = iota

	// BareReturn gives a return statement without value a value.
	BareReturn

	// Propagate wraps a call site in a propagation macro.
	Propagate

	// Review is a call site without safe automatic rewrite.
	Review

	// Skipped is a call site or function that can't be rewritten, reported for information.
	Skipped
)

// Function reports whether the rewrite concerns a function instead of a single site.
func (k Kind) Function() bool { return k == ReturnType }

// Rewrite is one finding with the edits resolving it.
type Rewrite struct {
	Kind    Kind
	Node    *cxx.Node // the reported construct
	Message string
	Edits   []analysis.TextEdit
}

// Planner computes rewrites.
type Planner struct {
	Carrier  string // carrier class template name, defaults to [classify.DefaultCarrier]
	Noop     bool   // use the disabled macro variants in all functions
	Diagnose bool   // report findings without edits
}

func (p *Planner) carrier() string {
	if p.Carrier == "" {
		return classify.DefaultCarrier
	}

	return p.Carrier
}

// CarrierType returns the spelling of the carrier type with the given success type.
func (p *Planner) CarrierType(success string) string {
	return p.carrier() + "<" + success + ">"
}

// Plan computes the rewrites of a classified function: its return type, its return statements
// and its call sites, in this order.
func (p *Planner) Plan(u *cxx.TranslationUnit, f *classify.Function) []Rewrite {
	b := builder{u: u, f: f, planner: p, noop: p.Noop || f.Mode == classify.TopLevel}

	switch f.Mode {
	case classify.Obligated:
		if f.Blocked != classify.NotBlocked {
			b.blocked()

			break
		}

		b.returnType()
		b.bareReturns()
		b.callSites()

	case classify.Carrier:
		b.bareReturns()
		b.callSites()

	case classify.TopLevel:
		b.callSites()
	}

	if p.Diagnose {
		for i := range b.rewrites {
			b.rewrites[i].Edits = nil
		}
	}

	return b.rewrites
}

type builder struct {
	u        *cxx.TranslationUnit
	f        *classify.Function
	planner  *Planner
	noop     bool
	rewrites []Rewrite
}

func (b *builder) add(kind Kind, n *cxx.Node, message string, edits ...analysis.TextEdit) {
	b.rewrites = append(b.rewrites, Rewrite{Kind: kind, Node: n, Message: message, Edits: edits})
}

func (b *builder) blocked() {
	fn := b.f.Decl
	b.add(ReturnType, fn, fmt.Sprintf("%s should return %s (%s).", fn.Name, b.planner.carrier(), b.f.Blocked))
}

// returnType widens every declaration and appends a return statement when control can
// reach the end of the body.
func (b *builder) returnType() {
	fn := b.f.Decl
	typ := []byte(b.planner.CarrierType(b.f.Success))

	edits := make([]analysis.TextEdit, 0, len(b.f.Sites)+1)
	for _, s := range b.f.Sites {
		edits = append(edits, analysis.TextEdit{Pos: s.Return.From, End: s.Return.To, NewText: typ})
	}

	if !b.terminates(fn.Body()) {
		if e, ok := b.appendReturn(fn.Body()); ok {
			edits = append(edits, e)
		}
	}

	b.add(ReturnType, fn, fmt.Sprintf("%s should return %s.", fn.Name, b.planner.carrier()), edits...)
}

// appendReturn inserts "return {};" before the closing brace of body, indented like the last statement.
func (b *builder) appendReturn(body *cxx.Node) (analysis.TextEdit, bool) {
	if body == nil || !body.Range.IsValid() || body.Range.Macro {
		return analysis.TextEdit{}, false
	}

	closing := body.End() - 1

	var last *cxx.Node
	for s := range body.ChildrenOf(cxx.EdgeStmt) {
		last = s
	}

	if !b.u.LineStart(closing) {
		return analysis.TextEdit{Pos: closing, End: closing, NewText: []byte("return {}; ")}, true
	}

	line, _ := b.u.LineIndent(closing)

	indent := line + "    "
	if last != nil && b.u.LineStart(last.Pos()) {
		if i, ok := b.u.LineIndent(last.Pos()); ok {
			indent = i
		}
	}

	pos := closing - token.Pos(len(line))

	return analysis.TextEdit{Pos: pos, End: pos, NewText: []byte(indent + "return {};\n")}, true
}

const returnKeyword = "return"

func (b *builder) bareReturns() {
	for _, r := range b.f.BareReturns {
		var edits []analysis.TextEdit

		if text, ok := b.u.Text(r.Range); ok && strings.HasPrefix(text, returnKeyword) {
			kw := r.Pos() + token.Pos(len(returnKeyword))
			edits = append(edits, analysis.TextEdit{Pos: r.Pos(), End: kw, NewText: []byte(returnKeyword + " {}")})
		}

		b.add(BareReturn, r, "Should return something.", edits...)
	}
}

func (b *builder) callSites() {
	for _, s := range b.f.Calls {
		b.callSite(s)
	}
}

// Disjoint reports whether no two edits overlap. Insertions at the same position count as overlapping.
func Disjoint(edits []analysis.TextEdit) bool {
	sorted := Sorted(edits)

	for i := 1; i < len(sorted); i++ {
		prev, next := sorted[i-1], sorted[i]
		if prev.End > next.Pos || prev.Pos == next.Pos {
			return false
		}
	}

	return true
}

// Edits returns all edits of the given rewrites.
func Edits(rewrites []Rewrite) []analysis.TextEdit {
	var edits []analysis.TextEdit
	for _, r := range rewrites {
		edits = append(edits, r.Edits...)
	}

	return edits
}

func (b *builder) macro(m macros.Macro) string { return m.Open(b.noop) }
