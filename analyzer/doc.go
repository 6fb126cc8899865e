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

// Package analyzer implements the earlyexit checks over C++ translation units.
//
// # Overview
//
// Operations that may end the program early return a MaybeEarlyExit<T> carrier. Every caller
// must propagate the early exit until it reaches main. The analyzer finds functions and call
// sites violating this discipline and suggests the edits migrating them.
//
// # Example
//
// Before:
//
//	void LoadBlocks() {
//	    ReadBlock();  // returns MaybeEarlyExit<>
//	}
//
// After applying the suggested fix:
//
//	MaybeEarlyExit<> LoadBlocks() {
//	    MAYBE_EXIT(ReadBlock());
//	    return {};
//	}
//
// # Call Site Shapes
//
// Depending on the context of the call, the fix uses
//
//   - MAYBE_EXIT for discarded results
//   - EXIT_OR_IF and EXIT_OR_IF_NOT for conditions
//   - EXIT_OR_ASSIGN for assignments
//   - EXIT_OR_DECL for declarations
//   - BUBBLE_UP for returned results of a different success type
//
// Calls nested in other expressions are reported for manual review. In main and other
// top-level functions the NOOP_ variants of the macros are used.
package analyzer
