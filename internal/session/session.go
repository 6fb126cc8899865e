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

// Package session holds the de-duplication ledger of one checker run.
//
// Headers are analyzed once per including translation unit, so the same function or
// call site is seen repeatedly. A [Session] records which constructs already received a
// finding, so each is reported and edited at most once per run.
package session

import (
	"go/token"
	"log/slog"

	"github.com/google/uuid"

	"fillmore-labs.com/earlyexit/internal/cxx"
)

// Key identifies a source construct independent of the translation unit it was parsed in.
type Key struct {
	File     string
	Pos, End int
}

// Session is the run-scoped ledger. It is not safe for concurrent use.
type Session struct {
	ID string

	functions   map[Key]struct{}
	sites       map[Key]struct{}
	diagnostics map[diagnostic]struct{}
}

type diagnostic struct {
	Key
	check, message string
}

// New creates an empty session with a fresh identifier.
func New() *Session {
	return &Session{
		ID:          uuid.Must(uuid.NewV7()).String(),
		functions:   make(map[Key]struct{}),
		sites:       make(map[Key]struct{}),
		diagnostics: make(map[diagnostic]struct{}),
	}
}

// KeyOf returns the key of the source range r, with ok false when r is not resolvable to a file.
func KeyOf(fset *token.FileSet, r cxx.Range) (key Key, ok bool) {
	if !r.IsValid() {
		return Key{}, false
	}

	f := fset.File(r.From)
	if f == nil || fset.File(r.To) != f {
		return Key{}, false
	}

	return Key{File: f.Name(), Pos: f.Offset(r.From), End: f.Offset(r.To)}, true
}

// FirstFunction records the function with the given key and reports whether it was seen for the first time.
func (s *Session) FirstFunction(key Key) bool {
	return first(s.functions, key)
}

// FirstSite records the call site or return statement with the given key and reports whether it was seen for
// the first time.
func (s *Session) FirstSite(key Key) bool {
	return first(s.sites, key)
}

// FirstDiagnostic records a diagnostic of a single-node check and reports whether it was seen for the first time.
func (s *Session) FirstDiagnostic(key Key, check, message string) bool {
	return first(s.diagnostics, diagnostic{key, check, message})
}

func first[K comparable](seen map[K]struct{}, key K) bool {
	if _, ok := seen[key]; ok {
		return false
	}

	seen[key] = struct{}{}

	return true
}

// Len returns the number of recorded functions and sites.
func (s *Session) Len() (functions, sites int) {
	return len(s.functions), len(s.sites)
}

// LogValue implements [slog.LogValuer].
func (s *Session) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("id", s.ID),
		slog.Int("functions", len(s.functions)),
		slog.Int("sites", len(s.sites)),
		slog.Int("diagnostics", len(s.diagnostics)),
	)
}
