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

// The earlyexit command checks propagation of early exits in C++ translation units.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"fillmore-labs.com/earlyexit/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := cli.NewRootCommand().ExecuteContext(ctx)

	switch {
	case err == nil:
		return

	case errors.Is(err, cli.ErrFindings):
		stop()
		os.Exit(1)

	default:
		fmt.Fprintln(os.Stderr, "earlyexit:", err)
		stop()
		os.Exit(2)
	}
}
