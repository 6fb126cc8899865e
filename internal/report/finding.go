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

// Package report turns diagnostics of a translation unit into findings and forwards them to a sink.
package report

import (
	"go/token"
	"strconv"
)

// Level is the severity of a finding.
type Level uint8

const (
	// Warning is a violation of a checked rule.
	Warning Level = iota

	// Note is informational, e.g. a site that can't be rewritten.
	Note

	// Error is an internal error of the checker.
	Error
)

func (l Level) String() string {
	switch l {
	case Warning:
		return "warning"

	case Note:
		return "note"

	case Error:
		return "error"

	default:
		return "Level(" + strconv.Itoa(int(l)) + ")"
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// Edit is a text edit in file offsets.
type Edit struct {
	File   string `json:"file"`
	Offset int    `json:"offset"`
	Length int    `json:"length"`
	Text   string `json:"text"`
}

// Finding is a diagnostic resolved to file positions.
type Finding struct {
	Check   string `json:"check"`
	Level   Level  `json:"level"`
	File    string `json:"file"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Offset  int    `json:"offset"`
	Message string `json:"message"`
	Edits   []Edit `json:"edits,omitempty"`
}

// Position returns the position of the finding.
func (f Finding) Position() token.Position {
	return token.Position{Filename: f.File, Offset: f.Offset, Line: f.Line, Column: f.Column}
}
