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
	"bytes"
	"cmp"
	"go/token"
	"iter"
	"slices"

	"golang.org/x/tools/go/analysis"
)

// Source is the content of one file of a translation unit.
// Content is nil when the file could not be read.
type Source struct {
	File    *token.File
	Content []byte
}

// TranslationUnit is the syntax tree of one compilation together with the sources it was parsed from.
type TranslationUnit struct {
	Name string // Main file name
	Fset *token.FileSet
	Root *Node

	sources map[*token.File]*Source
	decls   map[string]*Node
	chains  map[string][]*Node
}

// NewTranslationUnit links the tree rooted at root and indexes its declarations.
func NewTranslationUnit(name string, fset *token.FileSet, root *Node, sources ...*Source) *TranslationUnit {
	u := &TranslationUnit{
		Name:    name,
		Fset:    fset,
		Root:    root,
		sources: make(map[*token.File]*Source, len(sources)),
		decls:   make(map[string]*Node),
	}

	for _, s := range sources {
		u.sources[s.File] = s
	}

	link(root)

	for n := range root.Preorder() {
		if n.ID != "" && (n.Kind == Function || n.Kind == VarDecl || n.Kind == Record) {
			u.decls[n.ID] = n
		}
	}

	return u
}

func link(n *Node) {
	for _, c := range n.Children {
		c.Parent = n
		link(c)
	}
}

// Decl returns the declaration with the given identity, or nil.
func (u *TranslationUnit) Decl(id string) *Node {
	return u.decls[id]
}

// Functions yields all function declarations of the translation unit, including redeclarations.
func (u *TranslationUnit) Functions() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for n := range u.Root.Preorder() {
			if n.Kind == Function && !yield(n) {
				return
			}
		}
	}
}

// Canonical returns the first declaration in the redeclaration chain of fn.
func (u *TranslationUnit) Canonical(fn *Node) *Node {
	c := fn
	for seen := 0; c.Previous != "" && seen < len(u.decls); seen++ {
		p := u.decls[c.Previous]
		if p == nil {
			break
		}

		c = p
	}

	return c
}

// Redeclarations returns every declaration of the function declared by fn, in source order.
func (u *TranslationUnit) Redeclarations(fn *Node) []*Node {
	if u.chains == nil {
		u.chains = make(map[string][]*Node)
		for f := range u.Functions() {
			c := u.Canonical(f)
			u.chains[c.ID] = append(u.chains[c.ID], f)
		}

		for _, chain := range u.chains {
			slices.SortStableFunc(chain, func(a, b *Node) int { return cmp.Compare(a.Pos(), b.Pos()) })
		}
	}

	if chain, ok := u.chains[u.Canonical(fn).ID]; ok {
		return chain
	}

	return []*Node{fn}
}

// Source returns the source file containing pos, or nil.
func (u *TranslationUnit) Source(pos token.Pos) *Source {
	f := u.Fset.File(pos)
	if f == nil {
		return nil
	}

	return u.sources[f]
}

// Sources yields all source files of the translation unit.
func (u *TranslationUnit) Sources() iter.Seq[*Source] {
	return func(yield func(*Source) bool) {
		u.Fset.Iterate(func(f *token.File) bool {
			s, ok := u.sources[f]
			if !ok {
				return true
			}

			return yield(s)
		})
	}
}

// Text returns the source text of rng.
func (u *TranslationUnit) Text(rng analysis.Range) (string, bool) {
	pos, end := rng.Pos(), rng.End()
	if !pos.IsValid() || !end.IsValid() || end < pos {
		return "", false
	}

	s := u.Source(pos)
	if s == nil || s.Content == nil || s.File != u.Fset.File(end) {
		return "", false
	}

	from, to := s.File.Offset(pos), s.File.Offset(end)
	if to > len(s.Content) {
		return "", false
	}

	return string(s.Content[from:to]), true
}

// LineIndent returns the leading white space of the line containing pos.
func (u *TranslationUnit) LineIndent(pos token.Pos) (string, bool) {
	s := u.Source(pos)
	if s == nil || s.Content == nil {
		return "", false
	}

	off := s.File.Offset(pos)
	if off > len(s.Content) {
		return "", false
	}

	start := off
	for start > 0 && s.Content[start-1] != '\n' {
		start--
	}

	end := start
	for end < off && (s.Content[end] == ' ' || s.Content[end] == '\t') {
		end++
	}

	return string(s.Content[start:end]), true
}

// After returns the position following tok when only white space separates tok from pos.
func (u *TranslationUnit) After(pos token.Pos, tok string) (token.Pos, bool) {
	s := u.Source(pos)
	if s == nil || s.Content == nil {
		return token.NoPos, false
	}

	off := s.File.Offset(pos)
	if off > len(s.Content) {
		return token.NoPos, false
	}

	rest := bytes.TrimLeft(s.Content[off:], " \t\r\n")
	if !bytes.HasPrefix(rest, []byte(tok)) {
		return token.NoPos, false
	}

	off = len(s.Content) - len(rest) + len(tok)

	return s.File.Pos(off), true
}

// LineStart reports whether only white space precedes pos on its line.
func (u *TranslationUnit) LineStart(pos token.Pos) bool {
	indent, ok := u.LineIndent(pos)
	if !ok {
		return false
	}

	s := u.Source(pos)

	return s.File.Position(pos).Column == len(indent)+1
}

// Position returns the file position of pos.
func (u *TranslationUnit) Position(pos token.Pos) token.Position {
	return u.Fset.Position(pos)
}

// InMainFile reports whether pos is located in the main file.
func (u *TranslationUnit) InMainFile(pos token.Pos) bool {
	f := u.Fset.File(pos)

	return f != nil && f.Name() == u.Name
}
