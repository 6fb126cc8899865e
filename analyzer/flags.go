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
	"flag"
	"regexp"
	"strings"

	"fillmore-labs.com/earlyexit/internal/config"
	"fillmore-labs.com/earlyexit/internal/run"
)

// registerFlags binds the [run.Options] values to command line flag values.
// A nil flag set value defaults to the program's command line.
func registerFlags(o *run.Options, flags *flag.FlagSet) {
	if flags == nil {
		flags = flag.CommandLine
	}

	flags.Var(checkValue(&o.Checks, config.PropagateCheck), "propagate", "check propagation of early exits")
	flags.Var(checkValue(&o.Checks, config.LogPrintfCheck), "logprintf", "check for unterminated log format strings")
	flags.Var(checkValue(&o.Checks, config.NoADLCheck), "no-adl", "check for calls using argument-dependent lookup")
	flags.Var(checkValue(&o.Checks, config.ExportMainCheck), "export-main", "check for an un-exported main function")
	flags.Var(checkValue(&o.Checks, config.InitListCheck), "init-list", "check designated initializers for uninitialized members")

	flags.Var(behaviorValue(&o.Behavior, config.ReportSkipped), "report-skipped", "report call sites that can't be rewritten")
	flags.Var(behaviorValue(&o.Behavior, config.TargetWindows), "windows", "translation units target Windows")

	flags.TextVar(&o.Migration, "migration", o.Migration, "migration `level`: full, noop or off")
	flags.StringVar(&o.Carrier, "carrier", o.Carrier, "class template `name` of the early-exit carrier")
	flags.Func("top-level", "comma-separated `names` of functions terminating propagation", func(s string) error {
		o.TopLevel = splitList(s)

		return nil
	})
	flags.Func("header-filter", "`regexp` of headers to report findings in", func(s string) error {
		re, err := regexp.Compile(s)
		if err != nil {
			return err
		}

		o.HeaderFilter = re

		return nil
	})
	flags.StringVar(&o.LogFunction, "log-function", o.LogFunction, "`name` of the log function checked for format strings")
	flags.IntVar(&o.FormatArg, "format-arg", o.FormatArg, "argument `index` of the log format string")
}

func splitList(s string) []string {
	var names []string

	for name := range strings.SplitSeq(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}

	return names
}
