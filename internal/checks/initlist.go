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
	"regexp"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/earlyexit/internal/cxx"
	"fillmore-labs.com/earlyexit/internal/match"
)

var uninitializedMember = match.And(
	match.Kind(cxx.ImplicitValueInitExpr),
	match.Parent(cxx.EdgeElement, match.Kind(cxx.InitListExpr)),
)

// designatedPattern matches the spelling of a designated initializer list.
var designatedPattern = regexp.MustCompile(`^\{\s*\.`)

// designated reports whether list was written with designators. The semantic form of an
// initializer list does not always keep the designated initializer nodes, so the spelling is
// consulted too.
func (c Checker) designated(list *cxx.Node) bool {
	if match.HasChild(cxx.EdgeElement, match.Kind(cxx.DesignatedInitExpr))(list) {
		return true
	}

	text, ok := c.Unit.Text(list.Range)

	return ok && designatedPattern.MatchString(text)
}

func (c Checker) initList(value *cxx.Node) {
	list := value.Outer().Parent
	if !c.designated(list) {
		return
	}

	c.Reporter.Report(analysis.Diagnostic{
		Pos:      list.Pos(),
		Category: InitListName,
		Message:  "Designated initializer with uninitialized member of type: " + value.Type,
	})
}
