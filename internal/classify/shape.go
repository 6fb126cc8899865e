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

package classify

// Shape is the syntactic context of a call returning the carrier.
type Shape uint8

//go:generate go tool stringer -type Shape,Mode,Reason -linecomment -output shape_string.go
const (
	// UnusedStatement is a call whose value is discarded: g();
	UnusedStatement Shape = iota

	// NegatedCondition is a negated call tested by an if statement: if (!g())
	NegatedCondition

	// PositiveCondition is a call tested by an if statement: if (g())
	PositiveCondition

	// Assignment is a call assigned to an existing variable: x = g();
	Assignment

	// DeclarationInit is a call initializing a new variable: int x = g();
	DeclarationInit

	// DirectReturn is a call returned by a return statement: return g();
	DirectReturn

	// NestedArgument is a call nested in another expression: h(g()), g().m(), *g()
	NestedArgument

	// Ignored is a call explicitly discarded: (void)g();
	Ignored
)

// Mode is the relation of a function to the carrier.
type Mode uint8

const (
	// Obligated functions call operations returning the carrier but don't return it themselves.
	Obligated Mode = iota // obligated

	// Carrier functions already return the carrier.
	Carrier // carrier

	// TopLevel functions are the sinks of early exits and never return the carrier.
	TopLevel // top-level
)

// Reason explains why the return type of an obligated function can't be rewritten.
type Reason uint8

const (
	// NotBlocked functions can be rewritten.
	NotBlocked Reason = iota // none

	// MacroOrigin is a declaration originating from a macro expansion.
	MacroOrigin // declared in macro

	// UnknownReturnType is a declaration whose return type has no source range, e.g. a trailing return type.
	UnknownReturnType // unknown return type

	// NoReturnType is a constructor, destructor or conversion function.
	NoReturnType // no return type
)
