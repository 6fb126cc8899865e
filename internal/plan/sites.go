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

package plan

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/earlyexit/internal/classify"
	"fillmore-labs.com/earlyexit/internal/cxx"
	"fillmore-labs.com/earlyexit/internal/macros"
)

func (b *builder) callSite(s classify.CallSite) {
	name := calleeName(s.Call)

	switch s.Shape {
	case classify.UnusedStatement:
		b.wrap(s, macros.MaybeExit, name)

	case classify.PositiveCondition:
		b.condition(s, macros.ExitOrIf, name)

	case classify.NegatedCondition:
		b.condition(s, macros.ExitOrIfNot, name)

	case classify.Assignment:
		b.assignment(s, name)

	case classify.DeclarationInit:
		b.declaration(s, name)

	case classify.DirectReturn:
		b.directReturn(s, name)

	case classify.NestedArgument:
		b.add(Review, s.Call, fmt.Sprintf("Early exit of %s is not propagated, needs manual review.", name))

	case classify.Ignored:
		b.add(Skipped, s.Call, fmt.Sprintf("Early exit of %s is explicitly ignored.", name))
	}
}

func propagate(name string) string {
	return fmt.Sprintf("Early exit of %s is not propagated.", name)
}

func (b *builder) skip(s classify.CallSite, name, reason string) {
	b.add(Skipped, s.Call, fmt.Sprintf("Early exit of %s is not propagated, %s.", name, reason))
}

// wrap encloses the outer call expression in a macro invocation.
func (b *builder) wrap(s classify.CallSite, m macros.Macro, name string) {
	o := s.Outer
	if o.Range.Macro || !o.Range.IsValid() {
		b.skip(s, name, "spelled in macro")

		return
	}

	open, closing, ok := b.block(o)
	if !ok {
		b.skip(s, name, "unsupported statement")

		return
	}

	b.add(Propagate, s.Call, propagate(name), append([]analysis.TextEdit{
		{Pos: o.Pos(), End: o.Pos(), NewText: []byte(open + b.macro(m))},
		{Pos: o.End(), End: o.End(), NewText: []byte(")")},
	}, closing...)...)
}

// block returns the text opening a block before stmt and the edit closing it after the
// terminating semicolon when stmt is the unbraced body of a control statement. Macros
// expanding to an if statement must not capture an else branch.
func (b *builder) block(stmt *cxx.Node) (open string, closing []analysis.TextEdit, ok bool) {
	switch stmt.Edge {
	case cxx.EdgeThen, cxx.EdgeElse, cxx.EdgeBody, cxx.EdgeSubStmt:

	default:
		return "", nil, true
	}

	semi, ok := b.u.After(stmt.End(), ";")
	if !ok {
		return "", nil, false
	}

	return "{ ", []analysis.TextEdit{{Pos: semi, End: semi, NewText: []byte(" }")}}, true
}

// condition replaces "if (" with the opening of the branching macro and removes a negation.
func (b *builder) condition(s classify.CallSite, m macros.Macro, name string) {
	stmt := s.Anchor

	switch {
	case stmt.Range.Macro:
		b.skip(s, name, "spelled in macro")

		return

	case stmt.Opcode != "" || stmt.Child(cxx.EdgeInit) != nil || stmt.Child(cxx.EdgeCondVar) != nil:
		b.skip(s, name, "unsupported if statement")

		return
	}

	cond := s.Outer
	if s.Via != nil {
		cond = s.Via.Outer()
	}

	text, ok := b.u.Text(cxx.Range{From: stmt.Pos(), To: cond.Pos()})
	if rest, found := strings.CutPrefix(text, "if"); !ok || !found || strings.TrimSpace(rest) != "(" {
		b.skip(s, name, "unsupported if statement")

		return
	}

	edits := []analysis.TextEdit{{Pos: stmt.Pos(), End: cond.Pos(), NewText: []byte(b.macro(m))}}

	if not := s.Via; not != nil {
		if op, ok := b.u.Text(cxx.Range{From: not.Pos(), To: s.Outer.Pos()}); !ok || strings.TrimSpace(op) != "!" {
			b.skip(s, name, "unsupported negation")

			return
		}

		edits = append(edits, analysis.TextEdit{Pos: not.Pos(), End: s.Outer.Pos()})
	}

	b.add(Propagate, s.Call, propagate(name), edits...)
}

// assignment transforms "x = call()" into "EXIT_OR_ASSIGN(x, call())".
func (b *builder) assignment(s classify.CallSite, name string) {
	asgn := s.Anchor
	lhs := asgn.Child(cxx.EdgeLHS)

	if asgn.Range.Macro || lhs == nil {
		b.skip(s, name, "spelled in macro")

		return
	}

	if op, ok := b.u.Text(cxx.Range{From: lhs.End(), To: s.Outer.Pos()}); !ok || strings.TrimSpace(op) != "=" {
		b.skip(s, name, "unsupported assignment")

		return
	}

	stmt := asgn.Outer()

	open, closing, ok := b.block(stmt)
	if !ok {
		b.skip(s, name, "unsupported statement")

		return
	}

	var edits []analysis.TextEdit
	if stmt.Pos() != asgn.Pos() && open != "" {
		edits = append(edits, analysis.TextEdit{Pos: stmt.Pos(), End: stmt.Pos(), NewText: []byte(open)})
		open = ""
	}

	edits = append(edits,
		analysis.TextEdit{Pos: asgn.Pos(), End: asgn.Pos(), NewText: []byte(open + b.macro(macros.ExitOrAssign))},
		analysis.TextEdit{Pos: lhs.End(), End: s.Outer.Pos(), NewText: []byte(", ")},
		analysis.TextEdit{Pos: asgn.End(), End: asgn.End(), NewText: []byte(")")},
	)

	b.add(Propagate, s.Call, propagate(name), append(edits, closing...)...)
}

// declaration replaces "T x = call();" with "EXIT_OR_DECL(T x, call());", keeping the spelling of type and call.
func (b *builder) declaration(s classify.CallSite, name string) {
	stmt, v := s.Anchor, s.Via

	if stmt.Range.Macro || v.NameRange.Macro {
		b.skip(s, name, "spelled in macro")

		return
	}

	if len(stmt.Children) != 1 {
		b.skip(s, name, "multiple declarators")

		return
	}

	typ, ok1 := b.u.Text(cxx.Range{From: v.Pos(), To: v.NameRange.From})
	ident, ok2 := b.u.Text(v.NameRange)
	call, ok3 := b.u.Text(s.Outer.Range)

	if !ok1 || !ok2 || !ok3 || strings.TrimSpace(typ) == "" {
		b.skip(s, name, "unsupported declaration")

		return
	}

	text := b.macro(macros.ExitOrDecl) + strings.TrimSpace(typ) + " " + ident + ", " + call + ");"

	b.add(Propagate, s.Call, propagate(name),
		analysis.TextEdit{Pos: stmt.Pos(), End: stmt.End(), NewText: []byte(text)})
}

// directReturn bubbles a returned result when the success types differ.
func (b *builder) directReturn(s classify.CallSite, name string) {
	if b.f.Mode == classify.TopLevel {
		b.add(Review, s.Call, fmt.Sprintf("Early exit of %s is returned from %s, needs manual review.", name, b.f.Decl.Name))

		return
	}

	if s.Success == b.f.Type {
		return
	}

	b.wrap(s, macros.BubbleUp, name)
}

// calleeName returns the spelled name of the called function.
func calleeName(call *cxx.Node) string {
	if c := call.Child(cxx.EdgeCallee); c != nil {
		c = c.Inner()
		if c.Name != "" {
			return c.Name
		}

		if c.Ref != nil && c.Ref.Name != "" {
			return c.Ref.Name
		}
	}

	return "call"
}

// Sorted returns a copy of edits, ordered by position.
func Sorted(edits []analysis.TextEdit) []analysis.TextEdit {
	sorted := slices.Clone(edits)
	slices.SortStableFunc(sorted, func(a, b analysis.TextEdit) int {
		return cmp.Or(cmp.Compare(a.Pos, b.Pos), cmp.Compare(a.End, b.End))
	})

	return sorted
}
