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

package macros

import (
	_ "embed"
	"io"
	"strings"
	"text/template"

	"fillmore-labs.com/earlyexit"
)

//go:embed header.h.tmpl
var headerSource string

var header = template.Must(template.New("header").Parse(headerSource))

// Header configures the rendered runtime-support header.
type Header struct {
	Carrier string // Name of the carrier class template
	Guard   string // Include guard, derived from the carrier name when empty
}

// vocabulary holds the macro names of either variant.
type vocabulary struct {
	MaybeExit, ExitOrAssign, ExitOrIf, ExitOrIfNot, ExitOrDecl, BubbleUp string
}

func makeVocabulary(noop bool) vocabulary {
	return vocabulary{
		MaybeExit:    MaybeExit.Name(noop),
		ExitOrAssign: ExitOrAssign.Name(noop),
		ExitOrIf:     ExitOrIf.Name(noop),
		ExitOrIfNot:  ExitOrIfNot.Name(noop),
		ExitOrDecl:   ExitOrDecl.Name(noop),
		BubbleUp:     BubbleUp.Name(noop),
	}
}

// Render writes the runtime-support header defining the carrier and the macro vocabulary.
func Render(w io.Writer, h Header) error {
	if h.Carrier == "" {
		h.Carrier = "MaybeEarlyExit"
	}

	if h.Guard == "" {
		h.Guard = guard(h.Carrier)
	}

	data := struct {
		Header
		vocabulary
		Noop          vocabulary
		FatalErrors   []string
		Interruptions []string
	}{
		Header:        h,
		vocabulary:    makeVocabulary(false),
		Noop:          makeVocabulary(true),
		FatalErrors:   constants(earlyexit.FatalErrors()),
		Interruptions: constants(earlyexit.Interruptions()),
	}

	return header.Execute(w, data)
}

// constants spells enumerators as C++ constants, "DiskSpaceError" as "DISK_SPACE_ERROR".
func constants[E interface{ Constant() string }](values []E) []string {
	cs := make([]string, 0, len(values))
	for _, v := range values {
		cs = append(cs, v.Constant())
	}

	return cs
}

func guard(carrier string) string {
	var b strings.Builder

	for i, r := range carrier {
		if i > 0 && 'A' <= r && r <= 'Z' {
			b.WriteByte('_') // ignore error
		}

		b.WriteRune(r) // ignore error
	}

	return strings.ToUpper(b.String()) + "_H"
}
