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

import "strings"

// ReturnType extracts the return type from a spelled function type like "int (char) const"
// or "auto (char) -> int". It returns fnType unchanged when it is not a function type.
func ReturnType(fnType string) string {
	open := paramsStart(fnType)
	if open < 0 {
		return fnType
	}

	ret := strings.TrimSpace(fnType[:open])

	if close := matchParen(fnType, open); close > 0 {
		if _, trailing, ok := strings.Cut(fnType[close+1:], "->"); ok {
			return strings.TrimSpace(trailing)
		}
	}

	return ret
}

// paramsStart finds the opening parenthesis of the parameter list, the first " (" outside of template arguments.
func paramsStart(s string) int {
	depth := 0

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++

		case '>':
			if depth > 0 {
				depth--
			}

		case '(':
			if depth == 0 && i > 0 && s[i-1] == ' ' {
				return i
			}
		}
	}

	return -1
}

func matchParen(s string, open int) int {
	depth := 0

	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++

		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

// TemplateName splits a spelled class type like "const ns::Name<int, char> &" into
// the unqualified template name "Name" and its argument text "int, char".
// ok is false when the type is not a template specialization.
func TemplateName(typ string) (name, args string, ok bool) {
	t := strings.TrimSpace(typ)

	for _, prefix := range [...]string{"const ", "volatile ", "class ", "struct ", "typename "} {
		for strings.HasPrefix(t, prefix) {
			t = strings.TrimSpace(t[len(prefix):])
		}
	}

	lt := strings.IndexByte(t, '<')
	if lt < 0 {
		return "", "", false
	}

	gt := matchAngle(t, lt)
	if gt < 0 {
		return "", "", false
	}

	name = strings.TrimSpace(t[:lt])
	if i := strings.LastIndex(name, "::"); i >= 0 {
		name = name[i+2:]
	}

	return name, strings.TrimSpace(t[lt+1 : gt]), true
}

func matchAngle(s string, open int) int {
	depth := 0

	for i := open; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++

		case '>':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

// NormalizeSpace collapses runs of white space to a single blank and removes blanks
// next to punctuation that does not need them, so that "std::pair< int,int >" and
// "std::pair<int, int>" compare equal.
func NormalizeSpace(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}

	var b strings.Builder

	for i, f := range fields {
		if i > 0 && needsBlank(fields[i-1], f) {
			b.WriteByte(' ') // ignore error
		}

		b.WriteString(f) // ignore error
	}

	return b.String()
}

func needsBlank(prev, next string) bool {
	return identChar(prev[len(prev)-1]) && identChar(next[0])
}

func identChar(c byte) bool {
	return c == '_' || '0' <= c && c <= '9' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

var integerWords = map[string]bool{
	"signed": true, "unsigned": true, "short": true, "long": true, "int": true, "char": true,
}

// CanonicalType normalizes white space and spells builtin integer types the way clang
// prints them, so that "unsigned" and "unsigned int" or "long unsigned" and "unsigned long"
// compare equal.
func CanonicalType(s string) string {
	s = NormalizeSpace(s)

	var (
		b   strings.Builder
		run []string
	)

	flush := func() {
		if len(run) > 0 {
			b.WriteString(integerType(run)) // ignore error
			run = run[:0]
		}
	}

	for i := 0; i < len(s); {
		if !identChar(s[i]) {
			if s[i] == ' ' && len(run) > 0 && integerWords[identAt(s, i+1)] {
				i++

				continue
			}

			flush()
			b.WriteByte(s[i]) // ignore error
			i++

			continue
		}

		w := identAt(s, i)
		i += len(w)

		if integerWords[w] {
			run = append(run, w)

			continue
		}

		flush()
		b.WriteString(w) // ignore error
	}

	flush()

	return b.String()
}

// identAt returns the identifier starting at s[i].
func identAt(s string, i int) string {
	j := i
	for j < len(s) && identChar(s[j]) {
		j++
	}

	return s[i:j]
}

// integerType spells a sequence of integer type specifiers.
func integerType(words []string) string {
	var (
		signed, unsigned, char, short bool
		longs                         int
	)

	for _, w := range words {
		switch w {
		case "signed":
			signed = true
		case "unsigned":
			unsigned = true
		case "char":
			char = true
		case "short":
			short = true
		case "long":
			longs++
		}
	}

	base := "int"

	switch {
	case char && unsigned:
		return "unsigned char"
	case char && signed:
		return "signed char"
	case char:
		return "char"
	case short:
		base = "short"
	case longs > 1:
		base = "long long"
	case longs == 1:
		base = "long"
	}

	if unsigned {
		return "unsigned " + base
	}

	return base
}
