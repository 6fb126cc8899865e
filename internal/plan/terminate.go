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
	"fillmore-labs.com/earlyexit/internal/cxx"
	"fillmore-labs.com/earlyexit/internal/match"
)

// noReturnFuncs are library functions that do not return.
var noReturnFuncs = map[string]struct{}{
	"abort":       {},
	"exit":        {},
	"_Exit":       {},
	"_exit":       {},
	"quick_exit":  {},
	"terminate":   {},
	"unreachable": {},
}

// noReturnAttrs are attribute classes of functions that do not return.
var noReturnAttrs = [...]string{"CXX11NoReturnAttr", "NoReturnAttr", "C11NoReturnAttr"}

var isThrow = match.Class("CXXThrowExpr")

// terminates reports whether control can't flow past the end of stmt.
func (b *builder) terminates(stmt *cxx.Node) bool {
	if stmt == nil {
		return false
	}

	switch stmt.Kind {
	case cxx.ReturnStmt:
		return true

	case cxx.CompoundStmt:
		var last *cxx.Node
		for s := range stmt.ChildrenOf(cxx.EdgeStmt) {
			last = s
		}

		return b.terminates(last)

	case cxx.IfStmt:
		return b.terminates(stmt.Child(cxx.EdgeThen)) && b.terminates(stmt.Child(cxx.EdgeElse))

	default:
	}

	switch e := stmt.Inner(); {
	case isThrow(e):
		return true

	case e.Kind == cxx.CallExpr:
		return match.Callee(match.RefersTo(b.noReturn))(e)

	default:
		return false
	}
}

// noReturn reports whether the referenced function does not return.
func (b *builder) noReturn(ref *cxx.Ref) bool {
	if !ref.Function() {
		return false
	}

	if _, ok := noReturnFuncs[ref.Name]; ok {
		return true
	}

	decl := b.u.Decl(ref.ID)
	if decl == nil {
		return false
	}

	for _, d := range b.u.Redeclarations(decl) {
		for _, a := range noReturnAttrs {
			if d.HasAttr(a) {
				return true
			}
		}
	}

	return false
}
