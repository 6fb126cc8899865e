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
	"fmt"
	"strings"
)

type tokenKind uint8

const (
	tEOF tokenKind = iota
	tIdent
	tNumber
	tString
	tChar
	tPunct
)

type tok struct {
	kind     tokenKind
	text     string
	off, end int
}

func (t tok) is(text string) bool { return t.kind != tString && t.kind != tChar && t.text == text }

// punctuators sorted longest first.
var punctuators = [...]string{
	"...", "<<=", ">>=", "->*",
	"::", "->", "==", "!=", "<=", ">=", "&&", "||", "++", "--",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<",
}

// lex splits src into tokens. Comments and preprocessor lines are skipped.
// '>' is always a single token, so nested template argument lists close correctly.
func lex(src string) ([]tok, error) {
	var toks []tok

	lineStart := true

	for i := 0; i < len(src); {
		c := src[i]

		switch {
		case c == '\n':
			lineStart = true
			i++

			continue

		case c == ' ' || c == '\t' || c == '\r':
			i++

			continue

		case c == '#' && lineStart:
			for i < len(src) && src[i] != '\n' {
				i++
			}

			continue

		case strings.HasPrefix(src[i:], "//"):
			for i < len(src) && src[i] != '\n' {
				i++
			}

			continue

		case strings.HasPrefix(src[i:], "/*"):
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				return nil, fmt.Errorf("unterminated comment at offset %d", i)
			}

			i += end + 4

			continue
		}

		lineStart = false
		start := i

		switch {
		case identStart(c):
			for i < len(src) && identChar(src[i]) {
				i++
			}

			if i < len(src) && src[i] == '"' && isStringPrefix(src[start:i]) {
				end, err := quoted(src, i, '"')
				if err != nil {
					return nil, err
				}

				toks = append(toks, tok{kind: tString, text: src[start:end], off: start, end: end})
				i = end

				continue
			}

			toks = append(toks, tok{kind: tIdent, text: src[start:i], off: start, end: i})

		case '0' <= c && c <= '9':
			for i < len(src) && (identChar(src[i]) || src[i] == '.' || src[i] == '\'') {
				i++
			}

			toks = append(toks, tok{kind: tNumber, text: src[start:i], off: start, end: i})

		case c == '"' || c == '\'':
			end, err := quoted(src, i, c)
			if err != nil {
				return nil, err
			}

			kind := tString
			if c == '\'' {
				kind = tChar
			}

			toks = append(toks, tok{kind: kind, text: src[start:end], off: start, end: end})
			i = end

		default:
			n := 1

			for _, p := range punctuators {
				if strings.HasPrefix(src[i:], p) {
					n = len(p)

					break
				}
			}

			i += n
			toks = append(toks, tok{kind: tPunct, text: src[start:i], off: start, end: i})
		}
	}

	return append(toks, tok{kind: tEOF, off: len(src), end: len(src)}), nil
}

func quoted(src string, i int, q byte) (int, error) {
	for j := i + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++

		case q:
			return j + 1, nil

		case '\n':
			return 0, fmt.Errorf("unterminated literal at offset %d", i)
		}
	}

	return 0, fmt.Errorf("unterminated literal at offset %d", i)
}

func isStringPrefix(s string) bool {
	switch s {
	case "L", "u", "U", "u8", "R":
		return true

	default:
		return false
	}
}

func identStart(c byte) bool {
	return c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func identChar(c byte) bool {
	return identStart(c) || '0' <= c && c <= '9'
}
