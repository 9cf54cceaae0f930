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
	"strings"

	"github.com/spf13/cobra"

	"rivaas.dev/typedrouter/route"
)

func routesCmd(opts *rootOptions) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List the registered routes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := load(cmd, opts)
			if err != nil {
				return err
			}
			defer t.router.Close()

			out := colorWriter(cmd.OutOrStdout(), opts.noColor)
			if title != "" {
				fmt.Fprint(out, banner(title))
			}

			routes := t.router.Routes()
			if len(routes) == 0 {
				fmt.Fprintln(out, "no routes")
				return nil
			}

			tbl := newTable("Method", "Pattern", "Params", "Name")
			for _, info := range routes {
				tbl.Row(styleMethod(info.Method), info.Pattern, describeParams(info.Params), t.name(info))
			}
			fmt.Fprintln(out, tbl.Render())

			errOut := colorWriter(cmd.ErrOrStderr(), opts.noColor)
			for _, err := range t.errs {
				fmt.Fprintln(errOut, errorStyle.Render("skipped:"), err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "print TITLE as a banner above the table")

	return cmd
}

// describeParams renders parameters as "id:int, name, *path".
// Unknown types are marked with a trailing "?".
func describeParams(params []route.ParamInfo) string {
	if len(params) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(params))
	for _, p := range params {
		switch {
		case p.Wildcard:
			parts = append(parts, "*"+p.Name)
		case p.Type == "":
			parts = append(parts, p.Name)
		case !p.Known:
			parts = append(parts, p.Name+":"+p.Type+"?")
		default:
			parts = append(parts, p.Name+":"+p.Type)
		}
	}
	return strings.Join(parts, ", ")
}
