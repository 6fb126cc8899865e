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

package config

import (
	"iter"
	"log/slog"
	"math/bits"
	"strings"
)

// Flag is a single named bit of a [BitMask].
type Flag interface {
	~uint8
	String() string
}

// BitMask is a set of [Flag] values.
type BitMask[F Flag] struct {
	value F
}

// NewBitMask creates a new typed [BitMask] instance with the specified flags enabled.
func NewBitMask[F Flag](flags ...F) BitMask[F] {
	var b BitMask[F]
	for _, flag := range flags {
		b.Enable(flag)
	}

	return b
}

// Set enables or disables flag.
func (b *BitMask[F]) Set(flag F, value bool) {
	if value {
		b.value |= flag
	} else {
		b.value &^= flag
	}
}

// Enable enables flag.
func (b *BitMask[F]) Enable(flag F) { b.Set(flag, true) }

// Disable disables flag.
func (b *BitMask[F]) Disable(flag F) { b.Set(flag, false) }

// Enabled reports whether any bit of flag is enabled.
func (b BitMask[F]) Enabled(flag F) bool {
	return b.value&flag != 0
}

// Any reports whether a flag is enabled.
func (b BitMask[F]) Any() bool {
	return b.value != 0
}

// Value returns the enabled flags.
func (b BitMask[F]) Value() F {
	return b.value
}

// All yields the enabled flags, lowest bit first.
func (b BitMask[F]) All() iter.Seq[F] {
	return func(yield func(F) bool) {
		for v := uint8(b.value); v != 0; v &= v - 1 {
			if !yield(F(1 << bits.TrailingZeros8(v))) {
				return
			}
		}
	}
}

// String returns the names of the enabled flags, separated by commas.
func (b BitMask[F]) String() string {
	var names []string
	for flag := range b.All() {
		names = append(names, flag.String())
	}

	return strings.Join(names, ",")
}

// LogValue implements [slog.LogValuer].
func (b BitMask[F]) LogValue() slog.Value {
	return slog.StringValue(b.String())
}
