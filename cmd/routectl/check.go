// Copyright 2025 The Rivaas Authors
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

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rivaas.dev/typedrouter"
)

func checkCmd(opts *rootOptions) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Register every route and report configuration errors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var extra []typedrouter.Option
			if strict {
				extra = append(extra, typedrouter.WithStrictTypes())
			}

			t, err := load(cmd, opts, extra...)
			if err != nil {
				return err
			}
			defer t.router.Close()

			out := colorWriter(cmd.OutOrStdout(), opts.noColor)

			if len(t.errs) > 0 {
				for _, err := range t.errs {
					fmt.Fprintln(out, errorStyle.Render("✗"), err)
				}
				return fmt.Errorf("%d of %d routes failed to register", len(t.errs), len(t.config.Routes))
			}

			fmt.Fprintln(out, successStyle.Render("✓"), fmt.Sprintf("%d routes registered", len(t.config.Routes)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "reject unknown parameter types")

	return cmd
}
