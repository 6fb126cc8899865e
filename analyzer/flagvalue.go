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

package analyzer

import (
	"fmt"
	"strconv"

	"fillmore-labs.com/earlyexit/internal/config"
)

// maskValue is a boolean [flag.Getter] toggling a single flag of a bit mask.
type maskValue[F config.Flag] struct {
	mask *config.BitMask[F]
	flag F
}

func checkValue(mask *config.BitMask[config.CheckFlags], flag config.CheckFlags) maskValue[config.CheckFlags] {
	return maskValue[config.CheckFlags]{mask: mask, flag: flag}
}

func behaviorValue(mask *config.BitMask[config.Config], flag config.Config) maskValue[config.Config] {
	return maskValue[config.Config]{mask: mask, flag: flag}
}

// Set implements [flag.Value]. Besides the values of [strconv.ParseBool], on and off are accepted.
func (v maskValue[F]) Set(s string) error {
	var b bool

	switch s {
	case "on", "On", "ON":
		b = true

	case "off", "Off", "OFF":
		b = false

	default:
		var err error
		if b, err = strconv.ParseBool(s); err != nil {
			return fmt.Errorf("%s: %w", v.flag, err)
		}
	}

	v.mask.Set(v.flag, b)

	return nil
}

// String implements [flag.Value].
func (v maskValue[F]) String() string {
	return strconv.FormatBool(v.enabled())
}

// Get implements [flag.Getter].
func (v maskValue[F]) Get() any {
	return v.enabled()
}

func (v maskValue[F]) enabled() bool {
	// flag.isZeroValue calls String on a zero value
	return v.mask != nil && v.mask.Enabled(v.flag)
}

// IsBoolFlag marks the value as a boolean flag, so it can be given without argument.
func (maskValue[F]) IsBoolFlag() bool { return true }
