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

import "bytes"

// specifiers may precede the return type of a function declaration.
var specifiers = [...]string{
	"static", "inline", "virtual", "constexpr", "consteval", "constinit",
	"extern", "explicit", "friend", "__inline", "__forceinline",
}

// returnTypeRange locates the written return type between the start of a function
// declaration at begin and its name at name. Leading specifiers, attributes and
// template headers are skipped, as is the qualifier of out-of-line definitions.
func returnTypeRange(src []byte, begin, name int) (from, to int, ok bool) {
	if begin < 0 || name > len(src) || begin >= name {
		return 0, 0, false
	}

	from, to = begin, trimQualifier(src, begin, name)

	for {
		from = skipSpace(src, from, to)

		next := skipSpecifier(src, from, to)
		if next == from {
			break
		}

		from = next
	}

	for to > from && isSpace(src[to-1]) {
		to--
	}

	if from >= to {
		return 0, 0, false
	}

	return from, to, true
}

// trimQualifier removes a trailing nested name specifier like "ns::Class<T>::" from src[begin:end].
func trimQualifier(src []byte, begin, end int) int {
	for {
		e := end
		for e > begin && isSpace(src[e-1]) {
			e--
		}

		if e-begin < 2 || src[e-1] != ':' || src[e-2] != ':' {
			return end
		}

		e -= 2
		for e > begin && isSpace(src[e-1]) {
			e--
		}

		if e > begin && src[e-1] == '>' {
			e = matchOpenAngle(src, begin, e-1)
			if e < 0 {
				return end
			}
		}

		for e > begin && isIdent(src[e-1]) {
			e--
		}

		end = e
	}
}

// matchOpenAngle returns the position of the '<' matching the '>' at close.
func matchOpenAngle(src []byte, begin, close int) int {
	depth := 0

	for i := close; i >= begin; i-- {
		switch src[i] {
		case '>':
			depth++

		case '<':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

// skipSpecifier returns the position after a declaration specifier, attribute or template header at pos,
// or pos when there is none.
func skipSpecifier(src []byte, pos, end int) int {
	rest := src[pos:end]

	switch {
	case bytes.HasPrefix(rest, []byte("[[")):
		return skipBalanced(src, pos, end, '[', ']')

	case keyword(rest, "template"):
		p := skipSpace(src, pos+len("template"), end)
		if p < end && src[p] == '<' {
			return skipBalanced(src, p, end, '<', '>')
		}

		return pos

	case keyword(rest, "__attribute__"), keyword(rest, "__declspec"), keyword(rest, "alignas"):
		p := pos
		for p < end && isIdent(src[p]) {
			p++
		}

		p = skipSpace(src, p, end)
		if p < end && src[p] == '(' {
			return skipBalanced(src, p, end, '(', ')')
		}

		return pos
	}

	for _, spec := range specifiers {
		if !keyword(rest, spec) {
			continue
		}

		p := skipSpace(src, pos+len(spec), end)
		if spec == "extern" && p < end && src[p] == '"' {
			if q := bytes.IndexByte(src[p+1:end], '"'); q >= 0 {
				return p + q + 2
			}
		}

		return p
	}

	return pos
}

// skipBalanced returns the position after the bracket closing the one at pos.
func skipBalanced(src []byte, pos, end int, open, close byte) int {
	depth := 0

	for i := pos; i < end; i++ {
		switch src[i] {
		case open:
			depth++

		case close:
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}

	return pos
}

func keyword(s []byte, kw string) bool {
	return bytes.HasPrefix(s, []byte(kw)) && (len(s) == len(kw) || !isIdent(s[len(kw)]))
}

func skipSpace(src []byte, pos, end int) int {
	for pos < end && isSpace(src[pos]) {
		pos++
	}

	return pos
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isIdent(c byte) bool {
	return c == '_' || '0' <= c && c <= '9' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}
