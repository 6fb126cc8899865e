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

package macros_test

import (
	"bytes"
	"strings"
	"testing"

	. "fillmore-labs.com/earlyexit/internal/macros"
)

func TestLookup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		macro Macro
		noop  bool
		ok    bool
	}{
		{"MAYBE_EXIT", MaybeExit, false, true},
		{"NOOP_EXIT_OR_IF_NOT", ExitOrIfNot, true, true},
		{"EXIT_OR_DECL", ExitOrDecl, false, true},
		{"BUBBLE_UP", BubbleUp, false, true},
		{"EXIT_OR", 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, noop, ok := Lookup(tt.name)
			if ok != tt.ok || ok && (m != tt.macro || noop != tt.noop) {
				t.Errorf("Lookup(%q) = (%s, %t, %t), want (%s, %t, %t)", tt.name, m, noop, ok, tt.macro, tt.noop, tt.ok)
			}

			if ok && m.Name(noop) != tt.name {
				t.Errorf("Got name %q, want %q", m.Name(noop), tt.name)
			}
		})
	}
}

func TestRender(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Render(&buf, Header{Carrier: "MaybeEarlyExit"}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	out := buf.String()

	for _, name := range Names() {
		if !strings.Contains(out, "#define "+name+"(") {
			t.Errorf("Header misses definition of %s", name)
		}
	}

	for _, want := range []string{
		"#ifndef MAYBE_EARLY_EXIT_H",
		"class [[nodiscard]] MaybeEarlyExit",
		"    DISK_SPACE_ERROR,",
		"    BLOCK_IMPORT_COMPLETE,",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Header misses %q", want)
		}
	}
}
