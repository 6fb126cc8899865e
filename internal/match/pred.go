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

// Package match provides composable predicates over [cxx.Node] trees.
package match

import (
	"slices"

	"fillmore-labs.com/earlyexit/internal/cxx"
)

// Pred is a predicate over syntax tree nodes.
type Pred func(n *cxx.Node) bool

// Kind matches nodes of one of the given kinds.
func Kind(kinds ...cxx.Kind) Pred {
	return func(n *cxx.Node) bool { return slices.Contains(kinds, n.Kind) }
}

// Class matches nodes of one of the given host classes.
func Class(classes ...string) Pred {
	return func(n *cxx.Node) bool { return slices.Contains(classes, n.Class) }
}

// Named matches nodes with one of the given names.
func Named(names ...string) Pred {
	return func(n *cxx.Node) bool { return slices.Contains(names, n.Name) }
}

// Opcode matches operators with the given spelling.
func Opcode(op string) Pred {
	return func(n *cxx.Node) bool { return n.Opcode == op }
}

// Flag matches nodes with all the given flags set.
func Flag(f cxx.Flags) Pred {
	return func(n *cxx.Node) bool { return n.Has(f) }
}

// Attr matches nodes carrying the given attribute.
func Attr(class string) Pred {
	return func(n *cxx.Node) bool { return n.HasAttr(class) }
}

// And matches when all predicates match.
func And(ps ...Pred) Pred {
	return func(n *cxx.Node) bool {
		for _, p := range ps {
			if !p(n) {
				return false
			}
		}

		return true
	}
}

// Or matches when any predicate matches.
func Or(ps ...Pred) Pred {
	return func(n *cxx.Node) bool {
		for _, p := range ps {
			if p(n) {
				return true
			}
		}

		return false
	}
}

// Not negates a predicate.
func Not(p Pred) Pred {
	return func(n *cxx.Node) bool { return !p(n) }
}

// HasChild matches nodes with a matching child in the given role.
func HasChild(e cxx.Edge, p Pred) Pred {
	return func(n *cxx.Node) bool {
		for c := range n.ChildrenOf(e) {
			if p(c) {
				return true
			}
		}

		return false
	}
}

// Parent matches nodes whose outermost transparent wrapper has the role e in a parent matching p.
func Parent(e cxx.Edge, p Pred) Pred {
	return func(n *cxx.Node) bool {
		o := n.Outer()

		return o.Edge == e && o.Parent != nil && p(o.Parent)
	}
}

// Callee matches calls whose callee, stripped of implicit wrappers, matches p.
func Callee(p Pred) Pred {
	return func(n *cxx.Node) bool {
		if n.Kind != cxx.CallExpr {
			return false
		}

		c := n.Child(cxx.EdgeCallee)

		return c != nil && p(c.Inner())
	}
}

// RefersTo matches references whose declaration matches p.
func RefersTo(p func(*cxx.Ref) bool) Pred {
	return func(n *cxx.Node) bool { return n.Ref != nil && p(n.Ref) }
}
