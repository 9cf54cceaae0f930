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

package typedrouter

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"rivaas.dev/typedrouter/route"
)

type paramsKey struct{}

// ParamsFromContext returns the parameters of the route that ServeHTTP
// matched for the request carrying ctx.
func ParamsFromContext(ctx context.Context) (route.Params, bool) {
	p, ok := ctx.Value(paramsKey{}).(route.Params)
	return p, ok
}

// ServeHTTP implements http.Handler.
//
// Registered handlers must be an http.Handler or a
// func(http.ResponseWriter, *http.Request); other handler values are answered
// with 500. A path that only matches under other methods is answered with
// 405 and an Allow header; anything else that does not match gets 404. Error
// responses are RFC 9457 problem details.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	var span trace.Span
	ctx := req.Context()
	if r.tracer != nil {
		ctx, span = r.tracer.Start(ctx, req.Method+" "+req.URL.Path, trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()
		span.SetAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.target", req.URL.Path),
		)
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		w = sw
		defer func() { finishSpan(span, sw.status) }()
	}

	m, ok := r.Find(req.Method, req.URL.Path)
	if !ok {
		r.notFound(w, req)
		return
	}

	if span != nil {
		span.SetName(req.Method + " " + m.Pattern)
		span.SetAttributes(attribute.String("http.route", m.Pattern))
	}

	h := handlerOf(m.Handler)
	if h == nil {
		r.logger.Error("route handler is not servable",
			"method", req.Method, "pattern", m.Pattern, "type", fmt.Sprintf("%T", m.Handler))
		writeProblem(w, newProblem(req, http.StatusInternalServerError, "route handler is not servable"))
		return
	}

	ctx = context.WithValue(ctx, paramsKey{}, m.Params)
	h.ServeHTTP(w, req.WithContext(ctx))
}

func (r *Router) notFound(w http.ResponseWriter, req *http.Request) {
	if allow := r.allowed(canonicalMethod(req.Method), req.URL.Path); len(allow) > 0 {
		r.logger.Debug("method not allowed", "method", req.Method, "path", req.URL.Path, "allow", allow)
		w.Header().Set("Allow", strings.Join(allow, ", "))
		writeProblem(w, newProblem(req, http.StatusMethodNotAllowed,
			fmt.Sprintf("method %s is not allowed for %s", req.Method, req.URL.Path)))
		return
	}

	r.logger.Debug("no route matched", "method", req.Method, "path", req.URL.Path)
	writeProblem(w, newProblem(req, http.StatusNotFound,
		fmt.Sprintf("no route matches %s %s", req.Method, req.URL.Path)))
}

func handlerOf(h any) http.Handler {
	switch h := h.(type) {
	case http.Handler:
		return h
	case func(http.ResponseWriter, *http.Request):
		return http.HandlerFunc(h)
	}
	return nil
}

func finishSpan(span trace.Span, status int) {
	span.SetAttributes(attribute.Int("http.status_code", status))
	if status >= http.StatusBadRequest {
		span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", status))
		return
	}
	span.SetStatus(codes.Ok, "")
}

// statusWriter records the status code written through it.
type statusWriter struct {
	http.ResponseWriter
	status  int
	written bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.written {
		w.status = code
		w.written = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	w.written = true
	return w.ResponseWriter.Write(b)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
