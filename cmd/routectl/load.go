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
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"rivaas.dev/typedrouter"
	"rivaas.dev/typedrouter/config"
	"rivaas.dev/typedrouter/route"
)

// routeTable is a route table registered in a router.
type routeTable struct {
	router *typedrouter.Router
	config config.Config
	names  map[string]string // "METHOD /pattern" -> route ID
	errs   []error           // registration failures, in table order
}

// loadConfig reads the configuration selected by opts.
func loadConfig(ctx context.Context, opts *rootOptions) (config.Config, error) {
	if opts.file == "" {
		return config.Config{}, errors.New("no route file given, use --file")
	}

	loadOpts := []config.Option{config.WithFile(opts.file)}
	if opts.envPrefix != "" {
		loadOpts = append(loadOpts, config.WithEnv(opts.envPrefix))
	}
	if opts.consulKey != "" {
		loadOpts = append(loadOpts, config.WithConsul(opts.consulKey))
	}
	return config.Load(ctx, loadOpts...)
}

// buildTable registers every route of cfg. Failures are collected rather
// than returned so that check can report all of them.
func buildTable(cfg config.Config, stderr io.Writer, verbose bool, extra ...typedrouter.Option) (*routeTable, error) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if verbose {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	r, err := typedrouter.New(append([]typedrouter.Option{
		typedrouter.WithConfig(cfg),
		typedrouter.WithLogger(logger),
	}, extra...)...)
	if err != nil {
		return nil, err
	}

	t := &routeTable{router: r, config: cfg, names: make(map[string]string, len(cfg.Routes))}
	for _, rt := range cfg.Routes {
		if err := r.Insert(rt.Method, rt.Pattern, rt.ID()); err != nil {
			t.errs = append(t.errs, fmt.Errorf("%s: %w", rt.ID(), err))
			continue
		}
		// Insert succeeded, so the pattern parses.
		p := route.MustParse(rt.Pattern)
		t.names[strings.ToUpper(rt.Method)+" "+p.Path] = rt.ID()
	}
	return t, nil
}

// load reads the configuration and builds its table.
func load(cmd *cobra.Command, opts *rootOptions, extra ...typedrouter.Option) (*routeTable, error) {
	cfg, err := loadConfig(cmd.Context(), opts)
	if err != nil {
		return nil, err
	}
	return buildTable(cfg, cmd.ErrOrStderr(), opts.verbose, extra...)
}

func (t *routeTable) name(info route.Info) string {
	if n, ok := t.names[info.String()]; ok {
		return n
	}
	return "-"
}
