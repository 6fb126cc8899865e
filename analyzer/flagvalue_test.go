// Copyright 2025-2026 Oliver Eikemeier. All Rights Reserved.
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

package analyzer_test

import (
	"flag"
	"strings"
	"testing"

	. "fillmore-labs.com/earlyexit/analyzer"
	"fillmore-labs.com/earlyexit/internal/config"
)

func TestFlagValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		initial config.CheckFlags
		args    []string
		want    bool
	}{
		{
			name:    "Enable",
			initial: config.NoADLCheck,
			args:    []string{"-init-list"},
			want:    true,
		},
		{
			name:    "Disable",
			initial: config.InitListCheck,
			args:    []string{"-init-list=off"},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var flags config.BitMask[config.CheckFlags]
			flags.Set(tt.initial, true)

			fs := flag.NewFlagSet("test", flag.ContinueOnError)

			const value = config.InitListCheck
			fv := NewCheckValue(&flags, value)
			fs.Var(fv, "init-list", "enable init list check")

			if err := fs.Parse(tt.args); err != nil {
				t.Fatalf("Parse failed: %v", err)
			}

			if fv.Get() != tt.want {
				t.Errorf("Flag get = %v, want %v", fv.Get(), tt.want)
			}

			if flags.Enabled(value) != tt.want {
				t.Errorf("InitListCheck enabled = %v, want %v", flags.Enabled(value), tt.want)
			}

			if !flags.Enabled(tt.initial) && tt.initial != value {
				t.Errorf("Other check %b was changed", tt.initial)
			}
		})
	}
}

func TestFlagValueInvalid(t *testing.T) {
	t.Parallel()

	var flags config.BitMask[config.CheckFlags]

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(&strings.Builder{})
	fs.Var(NewCheckValue(&flags, config.NoADLCheck), "no-adl", "enable no ADL check")

	if err := fs.Parse([]string{"-no-adl=maybe"}); err == nil {
		t.Error("Expected parse error")
	}
}

func TestUsage(t *testing.T) {
	t.Parallel()

	var flags config.BitMask[config.CheckFlags]
	flags.Set(config.NoADLCheck, true)

	fs := flag.NewFlagSet("test", flag.ContinueOnError)

	fv := NewCheckValue(&flags, config.NoADLCheck)
	fs.Var(fv, "no-adl", "enable no ADL check")

	const expectedUsage = `
  -no-adl
    	enable no ADL check (default true)
`

	var out strings.Builder
	fs.SetOutput(&out)
	fs.Usage()

	if got, want := out.String(), expectedUsage; !strings.HasSuffix(got, want) {
		t.Errorf("Usage() = %q, want suffix %q", got, want)
	}
}
