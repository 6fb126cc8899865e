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

package earlyexit

import "fmt"

// Result holds either a success value of type T or the cause of an early exit.
//
// A Result is consumed once by the immediate caller, which either unwraps the
// success value or passes the cause on to its own caller with [Bubble].
type Result[T any] struct {
	value T
	exit  Exit
}

// Ok returns a successful result.
func Ok[T any](value T) Result[T] { return Result[T]{value: value} }

// Fail returns a result failed with err.
func Fail[T any](err FatalError) Result[T] { return Result[T]{exit: Fatal(err)} }

// Interrupt returns a result interrupted with intr.
func Interrupt[T any](intr Interruption) Result[T] { return Result[T]{exit: Interrupted(intr)} }

// FromExit returns a result carrying exit. A zero exit becomes [FatalUnknown],
// since a result constructed from an exit never holds a value.
func FromExit[T any](exit Exit) Result[T] {
	if exit.IsZero() {
		exit = Fatal(FatalUnknown)
	}

	return Result[T]{exit: exit}
}

// ShouldEarlyExit reports whether r holds an early exit instead of a value.
func (r Result[T]) ShouldEarlyExit() bool { return !r.exit.IsZero() }

// Value returns the success value. It panics when r holds an early exit,
// because the caller failed to check it.
func (r Result[T]) Value() T {
	if r.ShouldEarlyExit() {
		panic(fmt.Errorf("earlyexit: unchecked result: %w", r.exit))
	}

	return r.value
}

// TryMoveOut stores the success value in dst and reports whether there was one.
// dst is left unchanged when r holds an early exit.
func (r Result[T]) TryMoveOut(dst *T) bool {
	if r.ShouldEarlyExit() {
		return false
	}

	*dst = r.value

	return true
}

// EarlyExit returns the early exit cause, the zero [Exit] for successful results.
func (r Result[T]) EarlyExit() Exit { return r.exit }

// Err returns the early exit cause as an error, or nil.
func (r Result[T]) Err() error {
	if !r.ShouldEarlyExit() {
		return nil
	}

	return r.exit
}

// Bubble discards the success type of r and returns its cause for the caller's own result.
// Bubbling a successful result yields [FatalUnknown].
func Bubble[T any](r Result[T]) Exit {
	if !r.ShouldEarlyExit() {
		return Fatal(FatalUnknown)
	}

	return r.exit
}
