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

package cxx

import (
	"go/token"
	"iter"
)

// Range is a half-open source range [From, To).
//
// Macro is set when either end of the range originates from a macro expansion.
// For macro arguments, MacroArg is set too and the positions refer to the spelling in the file.
type Range struct {
	From, To token.Pos
	Macro    bool
	MacroArg bool
}

// Pos implements [analysis.Range].
//
// [analysis.Range]: https://pkg.go.dev/golang.org/x/tools/go/analysis#Range
func (r Range) Pos() token.Pos { return r.From }

// End implements [analysis.Range].
//
// [analysis.Range]: https://pkg.go.dev/golang.org/x/tools/go/analysis#Range
func (r Range) End() token.Pos { return r.To }

// IsValid reports whether both ends of the range are known.
func (r Range) IsValid() bool { return r.From.IsValid() && r.To.IsValid() && r.From <= r.To }

// Contains reports whether o lies within r.
func (r Range) Contains(o Range) bool { return r.From <= o.From && o.To <= r.To }

// Flags are boolean node properties.
type Flags uint8

const (
	// ADL marks a call resolved through argument-dependent lookup.
	ADL Flags = 1 << iota

	// Trailing marks a function declared with a trailing return type.
	Trailing

	// NoReturnType marks constructors, destructors and conversion functions.
	NoReturnType

	// Deleted marks deleted or defaulted functions.
	Deleted
)

// Ref is a reference from an expression to a declaration.
type Ref struct {
	ID    string // Declaration identity in the translation unit
	Class string // Host class of the declaration, e.g. "FunctionDecl"
	Name  string // Declared name
	Type  string // Spelled type of the declaration, for functions the function type

	Desugared string // Type with aliases resolved, "" when Type is not sugared
}

// Function reports whether the referenced declaration is a function.
func (r *Ref) Function() bool {
	if r == nil {
		return false
	}

	switch r.Class {
	case "FunctionDecl", "CXXMethodDecl", "CXXConversionDecl", "CXXConstructorDecl", "CXXDestructorDecl":
		return true

	default:
		return false
	}
}

// Node is an element of a C++ syntax tree.
type Node struct {
	ID        string // Host node identity, unique within a translation unit
	Kind      Kind   // Node classification
	Class     string // Host node class, e.g. "CXXMemberCallExpr"
	Name      string // Declared or referenced name
	Type      string // Spelled type, for functions the function type
	Desugared string // Type with aliases resolved, "" when Type is not sugared
	Opcode    string // Operator spelling or cast kind
	Value     string // Literal spelling
	Range     Range  // Source range of the whole node
	NameRange Range  // Source range of the declared name
	Implicit  bool   // Node is not spelled in source
	Flags     Flags  // Boolean properties
	Attrs     []string
	Ref       *Ref   // Referenced declaration
	Previous  string // Previous declaration in the redeclaration chain
	Returns   string // Declared return type of functions
	RetRange  Range  // Source range of the written return type, invalid when unknown

	Edge     Edge  // Role within the parent
	Parent   *Node // Parent node, nil for the root
	Children []*Node
}

// Pos implements [analysis.Range].
//
// [analysis.Range]: https://pkg.go.dev/golang.org/x/tools/go/analysis#Range
func (n *Node) Pos() token.Pos { return n.Range.From }

// End implements [analysis.Range].
//
// [analysis.Range]: https://pkg.go.dev/golang.org/x/tools/go/analysis#Range
func (n *Node) End() token.Pos { return n.Range.To }

// Has reports whether all given flags are set.
func (n *Node) Has(f Flags) bool { return n.Flags&f == f }

// HasAttr reports whether the node carries an attribute of the given host class.
func (n *Node) HasAttr(class string) bool {
	for _, a := range n.Attrs {
		if a == class {
			return true
		}
	}

	return false
}

// Child returns the first child attached by edge e, or nil.
func (n *Node) Child(e Edge) *Node {
	for _, c := range n.Children {
		if c.Edge == e {
			return c
		}
	}

	return nil
}

// ChildrenOf yields all children attached by edge e.
func (n *Node) ChildrenOf(e Edge) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for _, c := range n.Children {
			if c.Edge == e && !yield(c) {
				return
			}
		}
	}
}

// Body returns the body of a function, lambda or loop.
func (n *Node) Body() *Node { return n.Child(EdgeBody) }

// Definition reports whether n is a function definition.
func (n *Node) Definition() bool { return n.Kind == Function && n.Body() != nil && !n.Has(Deleted) }

// IsMain reports whether n is the program entry point.
func (n *Node) IsMain() bool {
	if n.Kind != Function || n.Name != "main" {
		return false
	}

	p := n.Parent

	return p == nil || p.Kind == TranslationUnitDecl || p.Class == "LinkageSpecDecl"
}

// Preorder yields n and all its descendants in depth-first order.
func (n *Node) Preorder() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		n.preorder(yield, false)
	}
}

// Scoped yields all descendants of n in depth-first order without descending into
// nested function scopes (see [Kind.Scope]). The scope nodes themselves are yielded.
func (n *Node) Scoped() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for _, c := range n.Children {
			if !c.preorder(yield, true) {
				return
			}
		}
	}
}

func (n *Node) preorder(yield func(*Node) bool, scoped bool) bool {
	if !yield(n) {
		return false
	}

	if scoped && n.Kind.Scope() {
		return true
	}

	for _, c := range n.Children {
		if !c.preorder(yield, scoped) {
			return false
		}
	}

	return true
}

// Transparent reports whether n is a wrapper that does not change the syntactic context
// of its operand: implicit nodes and parentheses.
func (n *Node) Transparent() bool {
	return n.Implicit || n.Kind == ParenExpr
}

// Outer ascends from n through transparent parents and returns the outermost node
// that is still syntactically the same expression.
func (n *Node) Outer() *Node {
	o := n
	for o.Parent != nil && o.Parent.Transparent() {
		o = o.Parent
	}

	return o
}

// Inner descends from n through transparent single-child wrappers.
func (n *Node) Inner() *Node {
	i := n
	for i.Transparent() && len(i.Children) == 1 {
		i = i.Children[0]
	}

	return i
}
