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
	"context"
	"flag"
	"log/slog"

	"fillmore-labs.com/earlyexit/internal/clangjson"
	"fillmore-labs.com/earlyexit/internal/report"
	"fillmore-labs.com/earlyexit/internal/run"
)

// Public API constants for the earlyexit analyzer.
const (
	name = "earlyexit"
	doc  = `earlyexit enforces propagation of early exits through C++ call chains`
	url  = "https://pkg.go.dev/fillmore-labs.com/earlyexit"
)

// Analyzer checks clang JSON AST dumps of C++ translation units.
type Analyzer struct {
	Name  string
	Doc   string
	URL   string
	Flags flag.FlagSet

	options *run.Options
}

// New creates a new instance of the earlyexit analyzer.
// It allows for programmatic configuration using [Option], which is useful
// for integrating the analyzer into other tools. Command line flags registered
// in [Analyzer.Flags] override the options when parsed.
func New(opts ...Option) *Analyzer {
	o := run.DefaultOptions()
	Options(opts).apply(o)

	a := &Analyzer{
		Name:    name,
		Doc:     doc,
		URL:     url,
		options: o,
	}

	a.Flags.Init(name, flag.ContinueOnError)
	registerFlags(o, &a.Flags)

	return a
}

// Apply applies further options, e.g. from a settings file.
func (a *Analyzer) Apply(opts ...Option) {
	Options(opts).apply(a.options)
}

// Check loads the named JSON AST dumps and reports their findings to e.
func (a *Analyzer) Check(ctx context.Context, e *report.Emitter, logger *slog.Logger, files ...string) error {
	if a.options.HeaderFilter != nil {
		e.HeaderFilter = a.options.HeaderFilter
	}

	r := run.New(a.options, e, logger)

	return r.Files(ctx, &clangjson.Loader{}, files...)
}

// LogValue implements [slog.LogValuer].
func (a *Analyzer) LogValue() slog.Value {
	return a.options.LogValue()
}
