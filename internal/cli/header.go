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
	"bytes"
	"os"

	"github.com/spf13/cobra"

	"fillmore-labs.com/earlyexit/internal/macros"
)

// HeaderOptions holds the flags of the header command.
type HeaderOptions struct {
	Output  string
	Carrier string
	Guard   string
}

// NewHeaderCommand creates the header command, writing the runtime-support header.
func NewHeaderCommand(_ *RootOptions) *cobra.Command {
	opts := &HeaderOptions{}

	cmd := &cobra.Command{
		Use:   "header",
		Short: "Write the runtime-support header",
		Long: `Write the C++ header defining the early-exit carrier and the macros
used by suggested fixes.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var buf bytes.Buffer
			if err := macros.Render(&buf, macros.Header{Carrier: opts.Carrier, Guard: opts.Guard}); err != nil {
				return err
			}

			if opts.Output == "" || opts.Output == "-" {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())

				return err
			}

			return os.WriteFile(opts.Output, buf.Bytes(), 0o644) //nolint:gosec
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output `file`, stdout when empty")
	cmd.Flags().StringVar(&opts.Carrier, "carrier", "MaybeEarlyExit", "class template `name` of the early-exit carrier")
	cmd.Flags().StringVar(&opts.Guard, "guard", "", "include guard, derived from the carrier when empty")

	return cmd
}
