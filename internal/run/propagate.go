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

package run

import (
	"context"
	"log/slog"
	"runtime/trace"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/earlyexit/internal/classify"
	"fillmore-labs.com/earlyexit/internal/cxx"
	"fillmore-labs.com/earlyexit/internal/plan"
	"fillmore-labs.com/earlyexit/internal/report"
	"fillmore-labs.com/earlyexit/internal/session"
)

// propagation runs the early-exit propagation check over the functions of one translation unit.
type propagation struct {
	unit       *cxx.TranslationUnit
	pass       *report.Unit
	session    *session.Session
	logger     *slog.Logger
	report     bool // report skipped sites
	classifier classify.Classifier
	planner    plan.Planner
}

func (c *propagation) function(ctx context.Context, fn *cxx.Node) {
	f, ok := c.classifier.Classify(c.unit, fn)
	if !ok {
		return
	}

	// Functions defined in headers are seen once per including translation unit.
	if key, ok := session.KeyOf(c.unit.Fset, fn.Range); ok && !c.session.FirstFunction(key) {
		return
	}

	if !c.pass.Reported(fn.Pos(), PropagateName) {
		return
	}

	trace.Logf(ctx, "function", "%s %s", fn.Name, f.Mode)

	if f.Blocked != classify.NotBlocked {
		c.logger.LogAttrs(ctx, slog.LevelDebug, "Function can't be rewritten",
			slog.String("function", fn.Name), slog.String("reason", f.Blocked.String()))
	}

	for _, rw := range c.planner.Plan(c.unit, f) {
		c.rewrite(ctx, rw)
	}
}

func (c *propagation) rewrite(ctx context.Context, rw plan.Rewrite) {
	n := rw.Node

	if rw.Kind == plan.Skipped {
		c.logger.LogAttrs(ctx, slog.LevelDebug, "Call site skipped",
			slog.String("position", c.unit.Position(n.Pos()).String()), slog.String("message", rw.Message))

		if !c.report {
			return
		}
	}

	if !rw.Kind.Function() {
		if key, ok := session.KeyOf(c.unit.Fset, n.Range); ok && !c.session.FirstSite(key) {
			return
		}
	}

	pos := n.Pos()
	if rw.Kind.Function() && n.NameRange.IsValid() {
		pos = n.NameRange.Pos()
	}

	if !pos.IsValid() {
		report.InternalError(c.pass, n.Range, "%s without source position: %s", n.Kind, rw.Message)

		return
	}

	d := analysis.Diagnostic{
		Pos:      pos,
		End:      n.End(),
		Category: PropagateName,
		Message:  rw.Message,
	}

	if len(rw.Edits) > 0 {
		d.SuggestedFixes = []analysis.SuggestedFix{{Message: rw.Message, TextEdits: rw.Edits}}
	}

	if rw.Kind == plan.Skipped {
		c.pass.Note(d)

		return
	}

	c.pass.Report(d)
}
