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

package cli

import (
	"flag"
	"fmt"

	"github.com/spf13/pflag"
)

// deferredFlags holds analyzer flag values given on the command line until the settings file is applied.
type deferredFlags struct {
	target *flag.FlagSet
	values []flagSetting
}

type flagSetting struct{ name, value string }

// bindFlags adds the flags of target to fs. Values are recorded and applied by [deferredFlags.apply].
func bindFlags(fs *pflag.FlagSet, target *flag.FlagSet) *deferredFlags {
	d := &deferredFlags{target: target}

	target.VisitAll(func(f *flag.Flag) {
		pf := pflag.PFlagFromGoFlag(f)
		pf.Value = deferredValue{Value: pf.Value, name: f.Name, flags: d}
		fs.AddFlag(pf)
	})

	return d
}

func (d *deferredFlags) apply() error {
	for _, s := range d.values {
		if err := d.target.Set(s.name, s.value); err != nil {
			return fmt.Errorf("invalid argument %q for --%s: %w", s.value, s.name, err)
		}
	}

	d.values = nil

	return nil
}

// deferredValue records values set on the command line.
type deferredValue struct {
	pflag.Value
	name  string
	flags *deferredFlags
}

func (v deferredValue) Set(s string) error {
	v.flags.values = append(v.flags.values, flagSetting{v.name, s})

	return nil
}
