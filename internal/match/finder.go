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

package match

import "fillmore-labs.com/earlyexit/internal/cxx"

// Rule binds a predicate to a callback.
type Rule struct {
	Name  string
	Match Pred
	Run   func(n *cxx.Node)
}

// Finder dispatches matching nodes of a single traversal to rules, in registration order.
type Finder struct {
	rules []Rule
}

// Add registers a rule.
func (f *Finder) Add(name string, p Pred, run func(n *cxx.Node)) {
	f.rules = append(f.rules, Rule{Name: name, Match: p, Run: run})
}

// Len returns the number of registered rules.
func (f *Finder) Len() int { return len(f.rules) }

// Run traverses the tree rooted at root in preorder and calls each rule matching a node.
func (f *Finder) Run(root *cxx.Node) {
	if len(f.rules) == 0 {
		return
	}

	for n := range root.Preorder() {
		for _, r := range f.rules {
			if r.Match(n) {
				r.Run(n)
			}
		}
	}
}
