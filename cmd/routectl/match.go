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
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "rivaas.dev/typedrouter/cmd/routectl"

func matchCmd(opts *rootOptions) *cobra.Command {
	var traced bool

	cmd := &cobra.Command{
		Use:   "match METHOD PATH",
		Short: "Resolve one request against the route table",
		Long: `Resolve one request and print the matched route with its typed
parameters. Exits with status 1 when nothing matches.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := load(cmd, opts)
			if err != nil {
				return err
			}
			defer t.router.Close()

			method, path := args[0], args[1]
			out := colorWriter(cmd.OutOrStdout(), opts.noColor)
			errOut := colorWriter(cmd.ErrOrStderr(), opts.noColor)

			span := trace.SpanFromContext(cmd.Context())
			if traced {
				tp, err := newTracerProvider(cmd.ErrOrStderr())
				if err != nil {
					return err
				}
				defer func() { _ = tp.Shutdown(context.WithoutCancel(cmd.Context())) }()

				_, span = tp.Tracer(tracerName).Start(cmd.Context(), "routectl.match",
					trace.WithAttributes(
						attribute.String("http.request.method", method),
						attribute.String("url.path", path),
					))
				defer span.End()
			}

			m, ok := t.router.Find(method, path)
			if !ok {
				span.SetStatus(codes.Error, "no match")
				fmt.Fprintln(errOut, errorStyle.Render("no route matches"), method, path)
				return errNoMatch
			}
			span.SetAttributes(attribute.String("http.route", m.Pattern))
			span.SetStatus(codes.Ok, "")

			fmt.Fprintln(out, labelStyle.Render("Route:"), valueStyle.Render(fmt.Sprint(m.Handler)))
			fmt.Fprintln(out, labelStyle.Render("Pattern:"), m.Pattern)
			for name, value := range m.Params.All() {
				span.SetAttributes(attribute.String("route.param."+name, fmt.Sprint(value)))
				fmt.Fprintf(out, "%s %s = %v %s\n",
					labelStyle.Render("Param:"), name, value, typeStyle.Render(fmt.Sprintf("(%T)", value)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&traced, "trace", false, "print the lookup span to stderr")

	return cmd
}

// newTracerProvider exports spans synchronously as indented JSON to w.
func newTracerProvider(w io.Writer) (*sdktrace.TracerProvider, error) {
	exp, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("failed to create stdout trace exporter: %w", err)
	}
	return sdktrace.NewTracerProvider(sdktrace.WithSyncer(exp)), nil
}
