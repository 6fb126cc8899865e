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

package earlyexit_test

import (
	"errors"
	"testing"

	. "fillmore-labs.com/earlyexit"
)

func TestResultValue(t *testing.T) {
	t.Parallel()

	r := Ok(42)

	if r.ShouldEarlyExit() {
		t.Fatal("Expected successful result")
	}

	if got := r.Value(); got != 42 {
		t.Errorf("Got value %d, want 42", got)
	}

	if err := r.Err(); err != nil {
		t.Errorf("Got error %v, want nil", err)
	}
}

func TestResultValuePanics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result Result[string]
		cause  error
	}{
		{"fatal", Fail[string](DiskSpaceError), DiskSpaceError},
		{"interrupted", Interrupt[string](BlockImportComplete), BlockImportComplete},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			defer func() {
				r := recover()

				err, ok := r.(error)
				if !ok {
					t.Fatalf("Expected panic with error, got %v", r)
				}

				if !errors.Is(err, tt.cause) {
					t.Errorf("Got panic %v, want cause %v", err, tt.cause)
				}
			}()

			_ = tt.result.Value()
		})
	}
}

func TestTryMoveOut(t *testing.T) {
	t.Parallel()

	dst := 1

	if ok := Fail[int](BlockReadFailed).TryMoveOut(&dst); ok || dst != 1 {
		t.Errorf("Got (%t, %d), want (false, 1)", ok, dst)
	}

	if ok := Ok(7).TryMoveOut(&dst); !ok || dst != 7 {
		t.Errorf("Got (%t, %d), want (true, 7)", ok, dst)
	}
}

func TestBubble(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		exit  Exit
		fatal FatalError
		isErr bool
		intr  Interruption
	}{
		{"fatal", Bubble(Fail[int](UndoWriteFailed)), UndoWriteFailed, true, 0},
		{"interrupted", Bubble(Interrupt[int](BlockImportComplete)), 0, false, BlockImportComplete},
		{"success", Bubble(Ok(1)), FatalUnknown, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := FromExit[struct{}](tt.exit)

			if !r.ShouldEarlyExit() {
				t.Fatal("Expected bubbled result to exit early")
			}

			if got, ok := r.EarlyExit().Fatal(); ok != tt.isErr || ok && got != tt.fatal {
				t.Errorf("Got fatal error (%v, %t), want (%v, %t)", got, ok, tt.fatal, tt.isErr)
			}

			if got, ok := r.EarlyExit().Interruption(); ok == tt.isErr || ok && got != tt.intr {
				t.Errorf("Got interruption (%v, %t), want %v", got, ok, tt.intr)
			}
		})
	}
}

func TestFromZeroExit(t *testing.T) {
	t.Parallel()

	r := FromExit[int](Exit{})

	if !errors.Is(r.Err(), FatalUnknown) {
		t.Errorf("Got %v, want %v", r.Err(), FatalUnknown)
	}
}

func TestCauseNames(t *testing.T) {
	t.Parallel()

	if got, want := CoinsDBWriteFailed.Constant(), "COINSDB_WRITE_FAILED"; got != want {
		t.Errorf("Got constant %q, want %q", got, want)
	}

	if got, want := DiskSpaceError.Error(), "fatal error: disk space error"; got != want {
		t.Errorf("Got message %q, want %q", got, want)
	}

	if got, want := len(FatalErrors()), 13; got != want {
		t.Errorf("Got %d fatal errors, want %d", got, want)
	}
}
