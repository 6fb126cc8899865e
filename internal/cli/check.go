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
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	earlyexit "fillmore-labs.com/earlyexit/analyzer"
	"fillmore-labs.com/earlyexit/internal/fix"
	"fillmore-labs.com/earlyexit/internal/report"
	"fillmore-labs.com/earlyexit/settings"
)

// ErrFindings is returned when a check reported warnings or errors.
var ErrFindings = errors.New("findings reported")

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// CheckOptions holds the flags of the check command.
type CheckOptions struct {
	Fix    bool
	Diff   bool
	Format string
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{}
	a := earlyexit.New()

	cmd := &cobra.Command{
		Use:   "check <ast.json>...",
		Short: "Check translation units",
		Long: `Check clang JSON AST dumps, as produced by

  clang++ -fsyntax-only -Xclang -ast-dump=json file.cc > file.cc.json

Sources are read from the locations recorded in the dump.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().BoolVar(&opts.Fix, "fix", false, "apply suggested fixes")
	cmd.Flags().BoolVar(&opts.Diff, "diff", false, "print suggested fixes as unified diff")
	cmd.Flags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")

	deferred := bindFlags(cmd.Flags(), &a.Flags)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if !isValidFormat(opts.Format) {
			return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
		}

		if err := configure(a, rootOpts.Config, deferred); err != nil {
			return err
		}

		return runCheck(cmd, rootOpts, opts, a, args)
	}

	return cmd
}

// configure applies the settings file, then the command line flags overriding it.
func configure(a *earlyexit.Analyzer, config string, deferred *deferredFlags) error {
	if config != "" {
		s, err := settings.Load(config)
		if err != nil {
			return err
		}

		opts, err := s.Options()
		if err != nil {
			return fmt.Errorf("%s: %w", config, err)
		}

		a.Apply(opts...)
	}

	return deferred.apply()
}

func runCheck(cmd *cobra.Command, rootOpts *RootOptions, opts *CheckOptions, a *earlyexit.Analyzer, args []string) error {
	logger := rootOpts.logger(cmd.ErrOrStderr())
	logger.Debug("Configured analyzer", "analyzer", a)

	changes := &fix.Changes{}
	e := &report.Emitter{Sink: sink(opts.Format, cmd.OutOrStdout(), args), Changes: changes}

	if err := a.Check(cmd.Context(), e, logger, args...); err != nil {
		return err
	}

	if err := output(cmd.OutOrStdout(), opts, changes); err != nil {
		return err
	}

	if e.Count(report.Warning)+e.Count(report.Error) > 0 && !opts.Fix {
		return ErrFindings
	}

	return nil
}

func output(w io.Writer, opts *CheckOptions, changes *fix.Changes) error {
	if opts.Diff {
		diff, err := changes.Diff()
		if err != nil {
			return err
		}

		if _, err := io.WriteString(w, diff); err != nil {
			return err
		}
	}

	if opts.Fix {
		return changes.Write()
	}

	return nil
}

func sink(format string, w io.Writer, args []string) report.Sink {
	switch format {
	case "json":
		return report.NewJSONSink(w)

	case "yaml":
		var main string
		if len(args) == 1 {
			main = strings.TrimSuffix(args[0], ".json")
		}

		return &report.YAMLSink{W: w, MainFile: main}

	default:
		return report.TextSink{W: w}
	}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}

	return false
}
