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

import (
	"strconv"
	"strings"
)

// FatalError is the cause of a fatal early exit.
type FatalError uint8

const (
	FatalUnknown FatalError = iota
	BlockDisconnectError
	BlockMutated
	BlockFlushFailed
	BlockReadFailed
	BlockReadCorrupt
	BlockWriteFailed
	BlockIndexWriteFailed
	CoinsDBWriteFailed
	DiskSpaceError
	FlushSystemError
	UndoFlushFailed
	UndoWriteFailed
)

var fatalConstants = [...]string{
	FatalUnknown:          "UNKNOWN",
	BlockDisconnectError:  "BLOCK_DISCONNECT_ERROR",
	BlockMutated:          "BLOCK_MUTATED",
	BlockFlushFailed:      "BLOCK_FLUSH_FAILED",
	BlockReadFailed:       "BLOCK_READ_FAILED",
	BlockReadCorrupt:      "BLOCK_READ_CORRUPT",
	BlockWriteFailed:      "BLOCK_WRITE_FAILED",
	BlockIndexWriteFailed: "BLOCK_INDEX_WRITE_FAILED",
	CoinsDBWriteFailed:    "COINSDB_WRITE_FAILED",
	DiskSpaceError:        "DISK_SPACE_ERROR",
	FlushSystemError:      "FLUSH_SYSTEM_ERROR",
	UndoFlushFailed:       "UNDO_FLUSH_FAILED",
	UndoWriteFailed:       "UNDO_WRITE_FAILED",
}

// FatalErrors returns all fatal error causes.
func FatalErrors() []FatalError {
	all := make([]FatalError, len(fatalConstants))
	for i := range all {
		all[i] = FatalError(i)
	}

	return all
}

// Constant returns the enumerator name, e.g. "DISK_SPACE_ERROR".
func (e FatalError) Constant() string {
	if int(e) < len(fatalConstants) {
		return fatalConstants[e]
	}

	return "FatalError(" + strconv.Itoa(int(e)) + ")"
}

func (e FatalError) String() string { return humanize(e.Constant()) }

func (e FatalError) Error() string { return "fatal error: " + e.String() }

// Interruption is the cause of a user-requested early exit.
type Interruption uint8

const (
	InterruptUnknown Interruption = iota
	BlockImportComplete
)

var interruptionConstants = [...]string{
	InterruptUnknown:    "UNKNOWN",
	BlockImportComplete: "BLOCK_IMPORT_COMPLETE",
}

// Interruptions returns all interruption causes.
func Interruptions() []Interruption {
	all := make([]Interruption, len(interruptionConstants))
	for i := range all {
		all[i] = Interruption(i)
	}

	return all
}

// Constant returns the enumerator name, e.g. "BLOCK_IMPORT_COMPLETE".
func (i Interruption) Constant() string {
	if int(i) < len(interruptionConstants) {
		return interruptionConstants[i]
	}

	return "Interruption(" + strconv.Itoa(int(i)) + ")"
}

func (i Interruption) String() string { return humanize(i.Constant()) }

func (i Interruption) Error() string { return "interrupted: " + i.String() }

func humanize(constant string) string {
	return strings.ToLower(strings.ReplaceAll(constant, "_", " "))
}

type exitKind uint8

const (
	none exitKind = iota
	fatal
	interrupted
)

// Exit is the cause of an early exit, a [FatalError] or an [Interruption].
// The zero value means no early exit.
type Exit struct {
	kind      exitKind
	fatal     FatalError
	interrupt Interruption
}

// Fatal returns the early exit caused by err.
func Fatal(err FatalError) Exit { return Exit{kind: fatal, fatal: err} }

// Interrupted returns the early exit caused by intr.
func Interrupted(intr Interruption) Exit { return Exit{kind: interrupted, interrupt: intr} }

// IsZero reports whether e is no early exit.
func (e Exit) IsZero() bool { return e.kind == none }

// Fatal returns the fatal error cause.
func (e Exit) Fatal() (FatalError, bool) { return e.fatal, e.kind == fatal }

// Interruption returns the interruption cause.
func (e Exit) Interruption() (Interruption, bool) { return e.interrupt, e.kind == interrupted }

func (e Exit) Error() string {
	switch e.kind {
	case fatal:
		return e.fatal.Error()

	case interrupted:
		return e.interrupt.Error()

	default:
		return "no early exit"
	}
}

// Unwrap returns the cause, so [errors.Is] matches [FatalError] and [Interruption] values.
func (e Exit) Unwrap() error {
	switch e.kind {
	case fatal:
		return e.fatal

	case interrupted:
		return e.interrupt

	default:
		return nil
	}
}
