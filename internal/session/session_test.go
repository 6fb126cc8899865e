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

package session_test

import (
	"go/token"
	"testing"

	"github.com/google/uuid"

	"fillmore-labs.com/earlyexit/internal/cxx"
	. "fillmore-labs.com/earlyexit/internal/session"
)

func TestSession(t *testing.T) {
	t.Parallel()

	s := New()

	id, err := uuid.Parse(s.ID)
	if err != nil {
		t.Fatalf("Invalid session id %q: %v", s.ID, err)
	}

	if v := id.Version(); v != 7 {
		t.Errorf("Got session id version %d, want 7", v)
	}

	a := Key{File: "a.h", Pos: 10, End: 20}
	b := Key{File: "b.h", Pos: 10, End: 20}

	if !s.FirstSite(a) {
		t.Error("Expected first occurrence of a")
	}

	if s.FirstSite(a) {
		t.Error("Expected repeated occurrence of a")
	}

	if !s.FirstSite(b) {
		t.Error("Expected first occurrence of b")
	}

	if !s.FirstFunction(a) {
		t.Error("Functions and sites are tracked separately")
	}

	if f, n := s.Len(); f != 1 || n != 2 {
		t.Errorf("Got %d functions and %d sites, want 1 and 2", f, n)
	}

	if New().ID == s.ID {
		t.Error("Expected distinct session ids")
	}
}

func TestKeyOf(t *testing.T) {
	t.Parallel()

	fset := token.NewFileSet()
	h := fset.AddFile("x.h", -1, 100)
	c := fset.AddFile("x.cc", -1, 100)

	// The same header range in two units maps to the same key.
	k1, ok1 := KeyOf(fset, cxx.Range{From: h.Pos(5), To: h.Pos(9)})

	fset2 := token.NewFileSet()
	fset2.AddFile("other.cc", -1, 50)
	h2 := fset2.AddFile("x.h", -1, 100)

	k2, ok2 := KeyOf(fset2, cxx.Range{From: h2.Pos(5), To: h2.Pos(9)})

	if !ok1 || !ok2 || k1 != k2 {
		t.Errorf("Got keys %v (%t) and %v (%t), want equal", k1, ok1, k2, ok2)
	}

	if _, ok := KeyOf(fset, cxx.Range{From: h.Pos(5), To: c.Pos(9)}); ok {
		t.Error("Expected cross-file range to be unresolvable")
	}

	if _, ok := KeyOf(fset, cxx.Range{}); ok {
		t.Error("Expected invalid range to be unresolvable")
	}
}

func TestFirstDiagnostic(t *testing.T) {
	t.Parallel()

	s := New()
	k := Key{File: "a.h", Pos: 3, End: 3}

	if !s.FirstDiagnostic(k, "check", "first") {
		t.Error("Expected first occurrence")
	}

	if s.FirstDiagnostic(k, "check", "first") {
		t.Error("Expected repeated occurrence")
	}

	if !s.FirstDiagnostic(k, "check", "second") {
		t.Error("Expected different message to be distinct")
	}

	if !s.FirstSite(k) {
		t.Error("Diagnostics and sites are tracked separately")
	}
}
