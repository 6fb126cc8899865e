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

package testsource

import (
	"strings"

	"fillmore-labs.com/earlyexit/internal/cxx"
)

// resolve binds references to functions and fields after the whole source is parsed,
// and types calls by their callee's return type.
func (p *parser) resolve(root *cxx.Node) {
	funcs := make(map[string][]*cxx.Node)
	fields := make(map[string]*cxx.Node)

	for n := range root.Preorder() {
		switch n.Kind {
		case cxx.Function:
			funcs[n.Name] = append(funcs[n.Name], n)

		case cxx.Field:
			if _, ok := fields[n.Name]; !ok {
				fields[n.Name] = n
			}

		default:
		}
	}

	for _, r := range p.refs {
		if r.Ref != nil {
			continue
		}

		var decl *cxx.Node

		if candidates := funcs[r.Name]; len(candidates) > 0 {
			decl = candidates[0]

			if spelled, ok := p.spelled[r]; ok {
				if d, ok := p.decls[strings.TrimPrefix(spelled, "::")]; ok {
					decl = p.first(d, candidates)
				}
			}
		}

		switch {
		case r.Kind == cxx.MemberExpr && decl != nil && decl.Class != "FunctionDecl":
			r.Ref = &cxx.Ref{ID: decl.ID, Class: decl.Class, Name: decl.Name, Type: decl.Type}
			r.Type = "<bound member function type>"

		case r.Kind == cxx.MemberExpr:
			if f, ok := fields[r.Name]; ok {
				r.Ref = &cxx.Ref{ID: f.ID, Class: f.Class, Name: f.Name, Type: f.Type}
				r.Type = f.Type
			}

		case decl != nil:
			r.Ref = &cxx.Ref{ID: decl.ID, Class: decl.Class, Name: decl.Name, Type: decl.Type}
			r.Type = decl.Type
		}
	}

	for n := range root.Preorder() {
		if n.Kind != cxx.CallExpr || n.Type != "" || len(n.Children) == 0 {
			continue
		}

		if callee := n.Children[0].Inner(); callee.Ref.Function() {
			n.Type = cxx.ReturnType(callee.Ref.Type)
		}
	}
}

// first returns the first declaration of the redeclaration chain ending in d.
func (p *parser) first(d *cxx.Node, candidates []*cxx.Node) *cxx.Node {
	byID := make(map[string]*cxx.Node, len(candidates))
	for _, c := range candidates {
		byID[c.ID] = c
	}

	for d.Previous != "" {
		prev, ok := byID[d.Previous]
		if !ok {
			break
		}

		d = prev
	}

	return d
}
