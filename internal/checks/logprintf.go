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

package checks

import (
	"strings"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/earlyexit/internal/cxx"
	"fillmore-labs.com/earlyexit/internal/match"
)

// Defaults of the log function checked for unterminated format strings.
const (
	DefaultLogFunction = "LogPrintf_"
	DefaultFormatArg   = 3
)

func logCall(name string) match.Pred {
	return match.And(match.Kind(cxx.CallExpr), match.Callee(match.Named(name)))
}

// formatString returns the string literal passed as argument index, or nil.
func formatString(call *cxx.Node, index int) *cxx.Node {
	i := 0
	for arg := range call.ChildrenOf(cxx.EdgeArg) {
		if i == index {
			if lit := arg.Inner(); lit.Kind == cxx.StringLiteral {
				return lit
			}

			return nil
		}
		i++
	}

	return nil
}

// unterminated reports whether the spelled string literal value is non-empty and does not end with a newline escape.
// Raw string literals are not inspected.
func unterminated(value string) bool {
	open, end := strings.IndexByte(value, '"'), strings.LastIndexByte(value, '"')
	if open < 0 || end <= open || strings.HasSuffix(value[:open], "R") {
		return false
	}

	body := value[open+1 : end]
	if body == "" {
		return false
	}

	if !strings.HasSuffix(body, `\n`) {
		return true
	}

	// "\\n" ends with a backslash followed by 'n'
	escapes := len(body) - 1 - len(strings.TrimRight(body[:len(body)-1], `\`))

	return escapes%2 == 0
}

func (c Checker) logPrintf(call *cxx.Node) {
	lit := formatString(call, c.formatArg())
	if lit == nil || !unterminated(lit.Value) || lit.Range.Macro && !lit.Range.MacroArg {
		return
	}

	quote := lit.End() - 1

	d := analysis.Diagnostic{
		Pos:      quote,
		Category: LogPrintfName,
		Message:  "Unterminated " + strings.TrimSuffix(c.logFunction(), "_"),
	}

	if text, ok := c.Unit.Text(cxx.Range{From: quote, To: lit.End()}); ok && text == `"` {
		d.SuggestedFixes = []analysis.SuggestedFix{{
			Message:   "Terminate the format string with a newline",
			TextEdits: []analysis.TextEdit{{Pos: quote, End: quote, NewText: []byte(`\n`)}},
		}}
	}

	c.Reporter.Report(d)
}
