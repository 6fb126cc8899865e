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

// Package config holds the enabled checks and behavioral switches of a run.
package config

import "strconv"

// CheckFlags represents individual checks.
type CheckFlags uint8

const (
	// PropagateCheck enables the early-exit propagation check and its rewrites.
	PropagateCheck CheckFlags = 1 << iota

	// LogPrintfCheck enables the check for log format strings without a trailing newline.
	LogPrintfCheck

	// NoADLCheck enables the check for calls resolved by argument-dependent lookup.
	NoADLCheck

	// ExportMainCheck enables the check for an unexported main function on Windows targets.
	ExportMainCheck

	// InitListCheck enables the check for designated initializers leaving members uninitialized.
	InitListCheck
)

var checkNames = map[CheckFlags]string{
	PropagateCheck:  "propagate",
	LogPrintfCheck:  "logprintf",
	NoADLCheck:      "no-adl",
	ExportMainCheck: "export-main",
	InitListCheck:   "init-list",
}

// String returns the flag name of a single check.
func (c CheckFlags) String() string {
	if name, ok := checkNames[c]; ok {
		return name
	}

	return "CheckFlags(" + strconv.Itoa(int(c)) + ")"
}

// Config represents behavioral options of the checks.
type Config uint8

const (
	// ReportSkipped emits informational diagnostics for functions and call sites that can't be rewritten.
	ReportSkipped Config = 1 << iota

	// TargetWindows indicates the translation units are compiled for Windows.
	TargetWindows
)

// String returns the flag name of a single behavior.
func (c Config) String() string {
	switch c {
	case ReportSkipped:
		return "report-skipped"
	case TargetWindows:
		return "windows"
	default:
		return "Config(" + strconv.Itoa(int(c)) + ")"
	}
}
