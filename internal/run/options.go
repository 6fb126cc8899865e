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

package run

import (
	"log/slog"
	"regexp"

	"fillmore-labs.com/earlyexit/analyzer/level"
	"fillmore-labs.com/earlyexit/internal/classify"
	"fillmore-labs.com/earlyexit/internal/config"
)

// Options represent the configuration of a checker run.
type Options struct {
	// Checks represent the checks to be enabled.
	Checks config.BitMask[config.CheckFlags]

	// Behavior holds behavioral options.
	Behavior config.BitMask[config.Config]

	// Migration selects the edits suggested by the propagation check.
	Migration level.Migration

	// Carrier is the class template name of the early-exit carrier.
	Carrier string

	// TopLevel names functions that terminate propagation, besides main.
	TopLevel []string

	// HeaderFilter selects files besides the main file diagnostics are reported for.
	HeaderFilter *regexp.Regexp

	// LogFunction and FormatArg configure the unterminated format string check.
	LogFunction string
	FormatArg   int
}

// DefaultOptions initializes and returns a new Options instance with default values.
func DefaultOptions() *Options {
	return &Options{
		Checks:  config.NewBitMask(config.PropagateCheck | config.LogPrintfCheck | config.NoADLCheck | config.ExportMainCheck),
		Carrier: classify.DefaultCarrier,
	}
}

// LogValue implements [slog.LogValuer].
func (o *Options) LogValue() slog.Value {
	filter := ""
	if o.HeaderFilter != nil {
		filter = o.HeaderFilter.String()
	}

	return slog.GroupValue(
		slog.Any("checks", o.Checks),
		slog.Any("behavior", o.Behavior),
		slog.Any("migration", o.Migration),
		slog.String("carrier", o.Carrier),
		slog.Any("topLevel", o.TopLevel),
		slog.String("headerFilter", filter),
	)
}
