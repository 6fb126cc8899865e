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

import (
	"encoding/json"
	"strconv"
)

// jsonNode is one object of clang's JSON AST dump.
type jsonNode struct {
	ID                   string          `json:"id"`
	Kind                 string          `json:"kind"`
	Loc                  *jsonLoc        `json:"loc"`
	Range                *jsonRange      `json:"range"`
	IsImplicit           bool            `json:"isImplicit"`
	Name                 string          `json:"name"`
	Type                 *jsonType       `json:"type"`
	PreviousDecl         string          `json:"previousDecl"`
	ReferencedDecl       *jsonRef        `json:"referencedDecl"`
	ReferencedMemberDecl string          `json:"referencedMemberDecl"`
	Opcode               string          `json:"opcode"`
	CastKind             string          `json:"castKind"`
	Value                json.RawMessage `json:"value"`
	Init                 string          `json:"init"`
	HasInit              bool            `json:"hasInit"`
	HasVar               bool            `json:"hasVar"`
	HasElse              bool            `json:"hasElse"`
	IsConstexpr          bool            `json:"isConstexpr"`
	ADL                  bool            `json:"adl"`
	Elidable             bool            `json:"elidable"`
	ExplicitlyDeleted    bool            `json:"explicitlyDeleted"`
	ExplicitlyDefaulted  bool            `json:"explicitlyDefaulted"`
	Inner                []*jsonNode     `json:"inner"`

	loc, begin, end point // resolved in emission order
}

type jsonRange struct {
	Begin *jsonLoc `json:"begin"`
	End   *jsonLoc `json:"end"`
}

// jsonLoc is a source location. "file" and "line" are only present when they differ
// from the previously printed location.
type jsonLoc struct {
	Offset              *int          `json:"offset"`
	File                string        `json:"file"`
	TokLen              int           `json:"tokLen"`
	IncludedFrom        *jsonIncluded `json:"includedFrom"`
	IsMacroArgExpansion bool          `json:"isMacroArgExpansion"`
	SpellingLoc         *jsonLoc      `json:"spellingLoc"`
	ExpansionLoc        *jsonLoc      `json:"expansionLoc"`
}

type jsonIncluded struct {
	File string `json:"file"`
}

type jsonType struct {
	QualType          string `json:"qualType"`
	DesugaredQualType string `json:"desugaredQualType"`
}

type jsonRef struct {
	ID   string    `json:"id"`
	Kind string    `json:"kind"`
	Name string    `json:"name"`
	Type *jsonType `json:"type"`
}

func (t *jsonType) String() string {
	if t == nil {
		return ""
	}

	return t.QualType
}

// desugared returns the type with sugar removed, "" when the type is not sugared.
func (t *jsonType) desugared() string {
	if t == nil {
		return ""
	}

	return t.DesugaredQualType
}

// value returns the literal spelling, unquoting JSON strings.
func (n *jsonNode) value() string {
	if len(n.Value) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(n.Value, &s); err == nil {
		return s
	}

	return string(n.Value)
}

// placeholder reports whether n stands for an absent child, printed as "{}".
func (n *jsonNode) placeholder() bool {
	return n == nil || n.Kind == ""
}

// point is a resolved source location.
type point struct {
	file     string
	offset   int
	tokLen   int
	macro    bool
	macroArg bool
	included bool
}

func (p point) valid() bool { return p.file != "" }

func (p point) String() string {
	return p.file + ":" + strconv.Itoa(p.offset)
}
