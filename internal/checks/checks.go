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

// Package checks implements the single-node checks running alongside the propagation check.
//
// Each check registers a rule with a [match.Finder], so all of them share one traversal
// of the translation unit.
package checks

import (
	"fillmore-labs.com/earlyexit/internal/config"
	"fillmore-labs.com/earlyexit/internal/cxx"
	"fillmore-labs.com/earlyexit/internal/match"
	"fillmore-labs.com/earlyexit/internal/report"
)

// Check names.
const (
	LogPrintfName  = "earlyexit-logprintf"
	NoADLName      = "earlyexit-no-adl"
	ExportMainName = "earlyexit-export-main"
	InitListName   = "earlyexit-init-list"
)

// Checker reports findings of the enabled checks in one translation unit.
type Checker struct {
	Unit     *cxx.TranslationUnit
	Reporter report.Reporter
	Checks   config.BitMask[config.CheckFlags]
	Behavior config.BitMask[config.Config]

	LogFunction string // Name of the log function, [DefaultLogFunction] when empty
	FormatArg   int    // Argument index of the format string, [DefaultFormatArg] when zero
}

func (c Checker) logFunction() string {
	if c.LogFunction == "" {
		return DefaultLogFunction
	}

	return c.LogFunction
}

func (c Checker) formatArg() int {
	if c.FormatArg <= 0 {
		return DefaultFormatArg
	}

	return c.FormatArg
}

// Register adds rules for all enabled checks to f.
func (c Checker) Register(f *match.Finder) {
	if c.Checks.Enabled(config.LogPrintfCheck) {
		f.Add(LogPrintfName, logCall(c.logFunction()), c.logPrintf)
	}

	if c.Checks.Enabled(config.NoADLCheck) {
		f.Add(NoADLName, adlCall, c.noADL)
	}

	if c.Checks.Enabled(config.ExportMainCheck) && c.Behavior.Enabled(config.TargetWindows) {
		f.Add(ExportMainName, unexportedMain, c.exportMain)
	}

	if c.Checks.Enabled(config.InitListCheck) {
		f.Add(InitListName, uninitializedMember, c.initList)
	}
}
