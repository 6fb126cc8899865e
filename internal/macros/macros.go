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

// Package macros defines the propagation macro vocabulary rewritten call sites are wrapped in.
//
// The names and argument orders are a stable contract with the migrated code base,
// which defines the macros in a runtime-support header (see [Render]).
package macros

import (
	"strconv"
	"strings"
)

// Macro is one propagation macro.
type Macro uint8

const (
	// MaybeExit checks a discarded result: MAYBE_EXIT(call).
	MaybeExit Macro = iota

	// ExitOrAssign assigns the success value to an existing variable: EXIT_OR_ASSIGN(var, call).
	ExitOrAssign

	// ExitOrIf branches on the success value: EXIT_OR_IF(call) stmt.
	ExitOrIf

	// ExitOrIfNot branches on the negated success value: EXIT_OR_IF_NOT(call) stmt.
	ExitOrIfNot

	// ExitOrDecl declares a variable initialized with the success value: EXIT_OR_DECL(type name, call).
	ExitOrDecl

	// BubbleUp converts a result into the early exit of the caller: BUBBLE_UP(call).
	BubbleUp
)

// NoopPrefix marks the disabled variant of a macro, used in functions that can't propagate.
const NoopPrefix = "NOOP_"

var names = [...]string{
	MaybeExit:    "MAYBE_EXIT",
	ExitOrAssign: "EXIT_OR_ASSIGN",
	ExitOrIf:     "EXIT_OR_IF",
	ExitOrIfNot:  "EXIT_OR_IF_NOT",
	ExitOrDecl:   "EXIT_OR_DECL",
	BubbleUp:     "BUBBLE_UP",
}

func (m Macro) String() string {
	if int(m) < len(names) {
		return names[m]
	}

	return "Macro(" + strconv.Itoa(int(m)) + ")"
}

// Name returns the macro name, or the name of the disabled variant.
func (m Macro) Name(noop bool) string {
	if noop {
		return NoopPrefix + m.String()
	}

	return m.String()
}

// Open returns the macro name followed by the opening parenthesis.
func (m Macro) Open(noop bool) string {
	return m.Name(noop) + "("
}

// Statement reports whether an invocation of m forms a complete statement.
func (m Macro) Statement() bool {
	return m != BubbleUp
}

// All returns the macro vocabulary.
func All() []Macro {
	return []Macro{MaybeExit, ExitOrAssign, ExitOrIf, ExitOrIfNot, ExitOrDecl, BubbleUp}
}

// Lookup returns the macro with the given name, including disabled variants.
func Lookup(name string) (m Macro, noop, ok bool) {
	base, noop := strings.CutPrefix(name, NoopPrefix)

	for i, n := range names {
		if n == base {
			return Macro(i), noop, true
		}
	}

	return 0, false, false
}

// Names returns the names of all macros and their disabled variants.
func Names() []string {
	all := make([]string, 0, 2*len(names))
	for _, m := range All() {
		all = append(all, m.Name(false), m.Name(true))
	}

	return all
}
