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

package clangjson

// resolver attaches file names to locations. clang omits the file of a location
// when it equals the file of the previously printed one, so locations must be
// visited in the order they were written: loc, range begin, range end, then
// the inner nodes.
type resolver struct {
	last  string
	main  string
	order []string
	size  map[string]int
}

func (r *resolver) node(n *jsonNode) {
	if n == nil {
		return
	}

	n.loc = r.point(n.Loc)

	if n.Range != nil {
		n.begin = r.point(n.Range.Begin)
		n.end = r.point(n.Range.End)
	}

	for _, c := range n.Inner {
		r.node(c)
	}
}

// point resolves a location. Macro locations are mapped to the expansion site,
// except for macro arguments, which are mapped to their spelling in the file.
func (r *resolver) point(l *jsonLoc) point {
	if l == nil {
		return point{}
	}

	if l.SpellingLoc == nil && l.ExpansionLoc == nil {
		return r.bare(l)
	}

	spelling := r.bare(l.SpellingLoc)
	expansion := r.bare(l.ExpansionLoc)

	if l.ExpansionLoc != nil && l.ExpansionLoc.IsMacroArgExpansion && spelling.valid() {
		spelling.macro, spelling.macroArg = true, true

		return spelling
	}

	expansion.macro = true

	return expansion
}

func (r *resolver) bare(l *jsonLoc) point {
	if l == nil || l.Offset == nil {
		return point{}
	}

	if l.File != "" {
		r.last = l.File
	}

	if r.last == "" {
		return point{}
	}

	p := point{
		file:     r.last,
		offset:   *l.Offset,
		tokLen:   l.TokLen,
		included: l.IncludedFrom != nil,
	}

	r.track(p)

	return p
}

func (r *resolver) track(p point) {
	if r.size == nil {
		r.size = make(map[string]int)
	}

	end, seen := r.size[p.file]
	if !seen {
		r.order = append(r.order, p.file)
	}

	r.size[p.file] = max(end, p.offset+p.tokLen)

	if r.main == "" && !p.included && p.file[0] != '<' {
		r.main = p.file
	}
}
