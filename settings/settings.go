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

// Package settings reads earlyexit settings files.
//
// A settings file is YAML:
//
//	checks: [propagate, logprintf, no-adl]
//	migration: noop
//	top-level: [Shutdown]
//	header-filter: ^src/
package settings

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/golangci/plugin-module-register/register"
	"gopkg.in/yaml.v3"

	earlyexit "fillmore-labs.com/earlyexit/analyzer"
	"fillmore-labs.com/earlyexit/analyzer/level"
)

// ErrUnknownCheck is returned for a check name not known to the analyzer.
var ErrUnknownCheck = errors.New("unknown check")

// Settings represents the configuration options of an analyzer.
type Settings struct {
	// Checks lists the enabled checks. All other checks are disabled.
	Checks []string `json:"checks,omitzero"`
	// Migration selects the suggested edits: full, noop or off.
	Migration *level.Migration `json:"migration,omitzero"`
	// Carrier is the class template name of the early-exit carrier.
	Carrier *string `json:"carrier,omitzero"`
	// TopLevel names functions terminating propagation besides main.
	TopLevel []string `json:"top-level,omitzero"`
	// HeaderFilter is a regular expression of headers findings are reported in.
	HeaderFilter *string `json:"header-filter,omitzero"`
	// ReportSkipped reports sites that can't be rewritten.
	ReportSkipped *bool `json:"report-skipped,omitzero"`
	// Windows declares the translation units target Windows.
	Windows *bool `json:"windows,omitzero"`
	// LogFunction is the name of the log function checked for unterminated format strings.
	LogFunction *string `json:"log-function,omitzero"`
	// FormatArg is the argument index of the log format string.
	FormatArg *int `json:"format-arg,omitzero"`
}

// Decode converts raw settings, e.g. a parsed YAML document, into [Settings].
// Unknown keys are an error.
func Decode(raw any) (Settings, error) {
	return register.DecodeSettings[Settings](raw)
}

// Load reads the named YAML settings file.
func Load(name string) (Settings, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return Settings{}, err
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Settings{}, fmt.Errorf("%s: %w", name, err)
	}

	if raw == nil {
		return Settings{}, nil
	}

	s, err := Decode(raw)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", name, err)
	}

	return s, nil
}

var checkOptions = map[string]func(bool) earlyexit.Option{
	"propagate":   earlyexit.WithPropagate,
	"logprintf":   earlyexit.WithLogPrintf,
	"no-adl":      earlyexit.WithNoADL,
	"export-main": earlyexit.WithExportMain,
	"init-list":   earlyexit.WithInitList,
}

// Options converts [Settings] into a list of [earlyexit.Option] for the earlyexit analyzer.
// It processes settings and applies them only when explicitly set (non-nil).
func (s Settings) Options() ([]earlyexit.Option, error) {
	var opts []earlyexit.Option

	if s.Checks != nil {
		enabled := make(map[string]bool, len(s.Checks))

		for _, c := range s.Checks {
			name := strings.TrimPrefix(c, "earlyexit-")
			if _, ok := checkOptions[name]; !ok {
				return nil, fmt.Errorf("%w: %q", ErrUnknownCheck, c)
			}

			enabled[name] = true
		}

		for _, name := range []string{"propagate", "logprintf", "no-adl", "export-main", "init-list"} {
			opts = append(opts, checkOptions[name](enabled[name]))
		}
	}

	opts = appendOption(opts, s.Migration, earlyexit.WithMigration)
	opts = appendOption(opts, s.Carrier, earlyexit.WithCarrier)
	opts = appendOption(opts, s.ReportSkipped, earlyexit.WithReportSkipped)
	opts = appendOption(opts, s.Windows, earlyexit.WithTargetWindows)

	if s.TopLevel != nil {
		opts = append(opts, earlyexit.WithTopLevel(s.TopLevel...))
	}

	if s.HeaderFilter != nil {
		re, err := regexp.Compile(*s.HeaderFilter)
		if err != nil {
			return nil, fmt.Errorf("header filter: %w", err)
		}

		opts = append(opts, earlyexit.WithHeaderFilter(re))
	}

	if s.LogFunction != nil || s.FormatArg != nil {
		var (
			name string
			arg  int
		)

		if s.LogFunction != nil {
			name = *s.LogFunction
		}

		if s.FormatArg != nil {
			arg = *s.FormatArg
		}

		opts = append(opts, earlyexit.WithLogFunction(name, arg))
	}

	return opts, nil
}

// appendOption appends a non-nil setting to a [earlyexit.Option] list.
func appendOption[T any](opts []earlyexit.Option, value *T, constructor func(T) earlyexit.Option) []earlyexit.Option {
	if value == nil {
		return opts
	}

	return append(opts, constructor(*value))
}
