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

// Package run drives the checks over translation units.
package run

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/trace"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/earlyexit/analyzer/level"
	"fillmore-labs.com/earlyexit/internal/checks"
	"fillmore-labs.com/earlyexit/internal/clangjson"
	"fillmore-labs.com/earlyexit/internal/classify"
	"fillmore-labs.com/earlyexit/internal/config"
	"fillmore-labs.com/earlyexit/internal/cxx"
	"fillmore-labs.com/earlyexit/internal/match"
	"fillmore-labs.com/earlyexit/internal/plan"
	"fillmore-labs.com/earlyexit/internal/report"
	"fillmore-labs.com/earlyexit/internal/session"
)

// PropagateName is the check name of the early-exit propagation check.
const PropagateName = "earlyexit-propagate"

// Runner checks translation units, sharing one session across all of them.
type Runner struct {
	Options *Options
	Session *session.Session
	Emitter *report.Emitter
	Logger  *slog.Logger
}

// New creates a [Runner] with a fresh session.
func New(o *Options, e *report.Emitter, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}

	s := session.New()

	return &Runner{Options: o, Session: s, Emitter: e, Logger: logger.With(slog.String("session", s.ID))}
}

// Files loads and checks the named JSON AST dumps. A dump that can't be loaded is reported in the
// returned error and does not stop the run.
func (r *Runner) Files(ctx context.Context, l *clangjson.Loader, names ...string) error {
	ctx, task := trace.NewTask(ctx, "EarlyExit")
	defer task.End()

	r.Logger.LogAttrs(ctx, slog.LevelDebug, "Starting run", slog.Any("options", r.Options), slog.Int("units", len(names)))

	var errs []error

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)

			break
		}

		u, err := l.LoadFile(ctx, name)
		if err != nil {
			r.Logger.LogAttrs(ctx, slog.LevelWarn, "Can't load translation unit", slog.String("file", name), slog.Any("error", err))
			errs = append(errs, err)

			continue
		}

		if err := r.Unit(ctx, u); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	if err := r.Emitter.Sink.Flush(); err != nil {
		errs = append(errs, err)
	}

	r.Logger.LogAttrs(ctx, slog.LevelDebug, "Finished run", slog.Any("session", r.Session))

	return errors.Join(errs...)
}

// Unit checks one translation unit.
func (r *Runner) Unit(ctx context.Context, u *cxx.TranslationUnit) error {
	defer trace.StartRegion(ctx, "Unit").End()

	trace.Log(ctx, "unit", u.Name)

	logger := r.Logger.With(slog.String("unit", u.Name))
	p := r.Emitter.Unit(u)

	var f match.Finder

	checks.Checker{
		Unit:        u,
		Reporter:    deduplicated{unit: u, pass: p, session: r.Session},
		Checks:      r.Options.Checks,
		Behavior:    r.Options.Behavior,
		LogFunction: r.Options.LogFunction,
		FormatArg:   r.Options.FormatArg,
	}.Register(&f)

	if r.Options.Checks.Enabled(config.PropagateCheck) {
		c := propagation{
			unit:    u,
			pass:    p,
			session: r.Session,
			logger:  logger,
			report:  r.Options.Behavior.Enabled(config.ReportSkipped),
			classifier: classify.Classifier{
				Carrier:  r.Options.Carrier,
				TopLevel: r.Options.TopLevel,
			},
			planner: plan.Planner{
				Carrier:  r.Options.Carrier,
				Noop:     r.Options.Migration == level.MigrationNoop,
				Diagnose: r.Options.Migration == level.MigrationOff,
			},
		}

		f.Add(PropagateName, (*cxx.Node).Definition, func(fn *cxx.Node) { c.function(ctx, fn) })
	}

	if f.Len() == 0 {
		return nil
	}

	trace.WithRegion(ctx, "Match", func() { f.Run(u.Root) })

	logger.LogAttrs(ctx, slog.LevelDebug, "Checked translation unit", slog.Any("session", r.Session))

	return p.Err()
}

// deduplicated reports diagnostics of single-node checks once per run.
type deduplicated struct {
	unit    *cxx.TranslationUnit
	pass    *report.Unit
	session *session.Session
}

func (d deduplicated) Report(diag analysis.Diagnostic) {
	if key, ok := session.KeyOf(d.unit.Fset, cxx.Range{From: diag.Pos, To: diag.Pos}); ok &&
		!d.session.FirstDiagnostic(key, diag.Category, diag.Message) {
		return
	}

	d.pass.Report(diag)
}
