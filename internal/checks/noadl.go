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

package checks

import (
	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/earlyexit/internal/cxx"
	"fillmore-labs.com/earlyexit/internal/match"
)

var adlCall = match.And(match.Kind(cxx.CallExpr), match.Flag(cxx.ADL))

// noADL reports at the closing parenthesis of the call.
func (c Checker) noADL(call *cxx.Node) {
	c.Reporter.Report(analysis.Diagnostic{
		Pos:      call.End() - 1,
		Category: NoADLName,
		Message:  "Use of ADL",
	})
}
