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

package report

import (
	"errors"
	"go/token"
	"regexp"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/earlyexit/internal/cxx"
	"fillmore-labs.com/earlyexit/internal/fix"
)

// Emitter resolves diagnostics into findings, forwards them to a sink and collects their edits.
type Emitter struct {
	Sink         Sink
	HeaderFilter *regexp.Regexp // files besides the main file findings are reported for, none when nil
	Changes      *fix.Changes   // receives the edits of reported findings, if not nil

	counts [Error + 1]int
}

// Count returns the number of findings emitted with the given level.
func (e *Emitter) Count(l Level) int {
	if int(l) >= len(e.counts) {
		return 0
	}

	return e.counts[l]
}

// Unit creates a [Reporter] for diagnostics of the translation unit u.
func (e *Emitter) Unit(u *cxx.TranslationUnit) *Unit {
	return &Unit{emitter: e, unit: u, files: make(map[*token.File]File)}
}

// Unit reports diagnostics of one translation unit.
type Unit struct {
	emitter *Emitter
	unit    *cxx.TranslationUnit
	files   map[*token.File]File
	errs    []error
}

// Report implements [Reporter]. Diagnostics are warnings, internal errors are errors.
func (p *Unit) Report(d analysis.Diagnostic) {
	level := Warning
	if d.Category == InternalCheck {
		level = Error
	}

	p.emit(level, d)
}

// Note reports an informational diagnostic.
func (p *Unit) Note(d analysis.Diagnostic) {
	p.emit(Note, d)
}

// Err returns the errors encountered while emitting findings or recording edits.
func (p *Unit) Err() error {
	return errors.Join(p.errs...)
}

// Reported reports whether a diagnostic at pos would be emitted, considering header filter and suppressions.
func (p *Unit) Reported(pos token.Pos, check string) bool {
	if !pos.IsValid() {
		return false
	}

	if !p.unit.InMainFile(pos) {
		filter := p.emitter.HeaderFilter
		if filter == nil || !filter.MatchString(p.unit.Position(pos).Filename) {
			return false
		}
	}

	f := p.file(pos)

	return !f.Generated() && !f.NoLintComment(pos, check)
}

func (p *Unit) file(pos token.Pos) File {
	handle := p.unit.Fset.File(pos)

	f, ok := p.files[handle]
	if !ok {
		f = NewFile(p.unit.Source(pos))
		p.files[handle] = f
	}

	return f
}

func (p *Unit) emit(level Level, d analysis.Diagnostic) {
	if level != Error && !p.Reported(d.Pos, d.Category) {
		return
	}

	position := p.unit.Position(d.Pos)

	finding := Finding{
		Check:   d.Category,
		Level:   level,
		File:    position.Filename,
		Line:    position.Line,
		Column:  position.Column,
		Offset:  position.Offset,
		Message: d.Message,
	}

	for _, sf := range d.SuggestedFixes {
		for _, e := range sf.TextEdits {
			finding.Edits = append(finding.Edits, p.edit(e))
		}

		p.record(sf.TextEdits)
	}

	if err := p.emitter.Sink.Emit(finding); err != nil {
		p.errs = append(p.errs, err)

		return
	}

	p.emitter.counts[level]++
}

func (p *Unit) edit(e analysis.TextEdit) Edit {
	start, end := p.unit.Position(e.Pos), p.unit.Position(e.End)

	return Edit{File: start.Filename, Offset: start.Offset, Length: end.Offset - start.Offset, Text: string(e.NewText)}
}

// record adds edits to the collected changes, grouped by file.
func (p *Unit) record(edits []analysis.TextEdit) {
	if p.emitter.Changes == nil {
		return
	}

	byFile := make(map[*cxx.Source][]analysis.TextEdit)

	for _, e := range edits {
		s := p.unit.Source(e.Pos)
		if s == nil || s.Content == nil {
			p.errs = append(p.errs, &MissingSourceError{Position: p.unit.Position(e.Pos)})

			continue
		}

		byFile[s] = append(byFile[s], e)
	}

	for s, es := range byFile {
		if err := p.emitter.Changes.Add(s.File, s.Content, es...); err != nil {
			p.errs = append(p.errs, err)
		}
	}
}

// MissingSourceError is returned when an edit refers to a file whose content is unknown.
type MissingSourceError struct {
	Position token.Position
}

func (e *MissingSourceError) Error() string {
	return "no source for edit at " + e.Position.String()
}
