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

// Package level defines the text-marshalled levels of the earlyexit checks.
package level

import (
	"fmt"
	"strings"
)

// Migration specifies how call sites are migrated.
type Migration uint8

const (
	// MigrationFull emits the propagation macros.
	MigrationFull Migration = iota

	// MigrationNoop emits the disabled NOOP_ variants of the propagation macros everywhere,
	// to stage a migration without changing behavior.
	MigrationNoop

	// MigrationOff reports findings without suggesting edits.
	MigrationOff
)

func (o Migration) String() string {
	text, err := o.MarshalText()
	if err != nil {
		return fmt.Sprintf("Migration(%d)", uint8(o))
	}

	return string(text)
}

// MarshalText implements [encoding.TextMarshaler].
func (o Migration) MarshalText() ([]byte, error) {
	switch o {
	case MigrationFull:
		return []byte("full"), nil

	case MigrationNoop:
		return []byte("noop"), nil

	case MigrationOff:
		return []byte("off"), nil

	default:
		return nil, fmt.Errorf("unknown migration level %d", o)
	}
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (o *Migration) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "", "true", "on", "full":
		*o = MigrationFull

	case "noop":
		*o = MigrationNoop

	case "off", "false":
		*o = MigrationOff

	default:
		return fmt.Errorf("unknown migration level %q", string(text))
	}

	return nil
}
