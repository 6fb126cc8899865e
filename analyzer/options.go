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
	"log/slog"
	"regexp"
	"slices"

	"fillmore-labs.com/earlyexit/analyzer/level"
	"fillmore-labs.com/earlyexit/internal/config"
	"fillmore-labs.com/earlyexit/internal/run"
)

// Option configures specific behavior of a [New] earlyexit analyzer.
type Option interface {
	apply(o *run.Options)
	LogAttr() slog.Attr
}

// Options is a list of [Option] values that itself satisfies the [Option] interface.
type Options []Option

// LogValue implements [slog.LogValuer].
func (o Options) LogValue() slog.Value {
	as := make([]slog.Attr, 0, len(o))
	as = appendOptions(as, o)

	return slog.GroupValue(as...)
}

func appendOptions(as []slog.Attr, o Options) []slog.Attr {
	for _, opt := range o {
		switch opt := opt.(type) {
		case nil:
			as = append(as, slog.String("nil", "<nil>"))

		case Options:
			as = appendOptions(as, opt)

		default:
			as = append(as, opt.LogAttr())
		}
	}

	return as
}

func (o Options) apply(r *run.Options) {
	for _, opt := range o {
		if opt == nil {
			continue
		}

		opt.apply(r)
	}
}

// LogAttr is for logging with [slog.Logger.LogAttrs].
func (o Options) LogAttr() slog.Attr {
	return slog.Any("options", o)
}

// WithPropagate is an [Option] to configure whether the early-exit propagation check is enabled.
func WithPropagate(enabled bool) Option {
	return checkOption{name: "propagate", check: config.PropagateCheck, enabled: enabled}
}

// WithLogPrintf is an [Option] to configure whether log format strings are checked for a trailing newline.
func WithLogPrintf(enabled bool) Option {
	return checkOption{name: "logprintf", check: config.LogPrintfCheck, enabled: enabled}
}

// WithNoADL is an [Option] to configure whether calls using argument-dependent lookup are reported.
func WithNoADL(enabled bool) Option {
	return checkOption{name: "no-adl", check: config.NoADLCheck, enabled: enabled}
}

// WithExportMain is an [Option] to configure whether an un-exported main function is reported on Windows targets.
func WithExportMain(enabled bool) Option {
	return checkOption{name: "export-main", check: config.ExportMainCheck, enabled: enabled}
}

// WithInitList is an [Option] to configure whether designated initializers with uninitialized members are reported.
func WithInitList(enabled bool) Option {
	return checkOption{name: "init-list", check: config.InitListCheck, enabled: enabled}
}

type checkOption struct {
	name    string
	check   config.CheckFlags
	enabled bool
}

func (o checkOption) apply(r *run.Options) {
	r.Checks.Set(o.check, o.enabled)
}

func (o checkOption) LogAttr() slog.Attr {
	return slog.Bool(o.name, o.enabled)
}

// WithReportSkipped is an [Option] to report call sites and functions that can't be rewritten.
func WithReportSkipped(report bool) Option { return reportSkippedOption{report: report} }

type reportSkippedOption struct{ report bool }

func (o reportSkippedOption) apply(r *run.Options) {
	r.Behavior.Set(config.ReportSkipped, o.report)
}

func (o reportSkippedOption) LogAttr() slog.Attr {
	return slog.Bool("report-skipped", o.report)
}

// WithTargetWindows is an [Option] to declare the translation units are compiled for Windows.
func WithTargetWindows(windows bool) Option { return targetWindowsOption{windows: windows} }

type targetWindowsOption struct{ windows bool }

func (o targetWindowsOption) apply(r *run.Options) {
	r.Behavior.Set(config.TargetWindows, o.windows)
}

func (o targetWindowsOption) LogAttr() slog.Attr {
	return slog.Bool("windows", o.windows)
}

// WithMigration is an [Option] to configure the edits suggested for call sites.
func WithMigration(migration level.Migration) Option { return migrationOption{migration: migration} }

type migrationOption struct{ migration level.Migration }

func (o migrationOption) apply(r *run.Options) {
	r.Migration = o.migration
}

func (o migrationOption) LogAttr() slog.Attr {
	return slog.Any("migration", o.migration)
}

// WithCarrier is an [Option] to configure the class template name of the early-exit carrier.
func WithCarrier(carrier string) Option { return carrierOption{carrier: carrier} }

type carrierOption struct{ carrier string }

func (o carrierOption) apply(r *run.Options) {
	r.Carrier = o.carrier
}

func (o carrierOption) LogAttr() slog.Attr {
	return slog.String("carrier", o.carrier)
}

// WithTopLevel is an [Option] to name functions that terminate propagation like main.
func WithTopLevel(names ...string) Option { return topLevelOption{names: slices.Clone(names)} }

type topLevelOption struct{ names []string }

func (o topLevelOption) apply(r *run.Options) {
	r.TopLevel = o.names
}

func (o topLevelOption) LogAttr() slog.Attr {
	return slog.Any("top-level", o.names)
}

// WithHeaderFilter is an [Option] to select headers findings are reported in. A nil filter
// restricts findings to the main file.
func WithHeaderFilter(filter *regexp.Regexp) Option { return headerFilterOption{filter: filter} }

type headerFilterOption struct{ filter *regexp.Regexp }

func (o headerFilterOption) apply(r *run.Options) {
	r.HeaderFilter = o.filter
}

func (o headerFilterOption) LogAttr() slog.Attr {
	if o.filter == nil {
		return slog.String("header-filter", "")
	}

	return slog.String("header-filter", o.filter.String())
}

// WithLogFunction is an [Option] to configure the log function whose format strings are checked.
func WithLogFunction(name string, formatArg int) Option {
	return logFunctionOption{name: name, formatArg: formatArg}
}

type logFunctionOption struct {
	name      string
	formatArg int
}

func (o logFunctionOption) apply(r *run.Options) {
	r.LogFunction, r.FormatArg = o.name, o.formatArg
}

func (o logFunctionOption) LogAttr() slog.Attr {
	return slog.Group("log-function", slog.String("name", o.name), slog.Int("format-arg", o.formatArg))
}
