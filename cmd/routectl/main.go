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

// Command routectl inspects route tables described in configuration files.
//
//	routectl routes -f routes.yaml
//	routectl match  -f routes.yaml GET /users/42
//	routectl check  -f routes.yaml --strict
//
// Configuration is read from the file, then from ROUTECTL_* environment
// variables, then from an optional Consul key.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// errNoMatch makes the process exit with status 1 without an error message;
// the command has already reported the miss.
var errNoMatch = errors.New("no match")

type rootOptions struct {
	file      string
	envPrefix string
	consulKey string
	noColor   bool
	verbose   bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "routectl",
		Short: "Inspect typed route tables",
		Long: `routectl loads a route table from configuration, registers it in a
typed router and lets you list routes, resolve requests and check the table
for errors.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.file, "file", "f", "", "route configuration file (yaml, toml or json)")
	flags.StringVar(&opts.envPrefix, "env-prefix", "ROUTECTL_", "environment variable prefix")
	flags.StringVar(&opts.consulKey, "consul", "", "Consul KV key holding configuration (needs CONSUL_HTTP_ADDR)")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log router events to stderr")

	cmd.AddCommand(
		routesCmd(opts),
		matchCmd(opts),
		checkCmd(opts),
	)

	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errNoMatch) {
			fmt.Fprintln(colorWriter(os.Stderr, false), errorStyle.Render("Error:"), err)
		}
		os.Exit(1)
	}
}
