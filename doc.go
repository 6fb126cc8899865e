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

// Package earlyexit models the early-exit carrier that the [analyzer] migrates C++ code to.
//
// A [Result] holds a success value, a [FatalError] or an [Interruption]. Functions
// calling an operation that returns a Result have to return a Result themselves and
// pass failures on to their caller, until the program entry point is reached:
//
//	func load() earlyexit.Result[int] {
//	    r := read()
//	    if r.ShouldEarlyExit() {
//	        return earlyexit.FromExit[int](earlyexit.Bubble(r))
//	    }
//	    return earlyexit.Ok(r.Value() + 1)
//	}
//
// The C++ counterpart is rendered by the "earlyexit header" command.
//
// [analyzer]: https://pkg.go.dev/fillmore-labs.com/earlyexit/analyzer
package earlyexit
