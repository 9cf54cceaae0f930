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
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"rivaas.dev/typedrouter/config"
	"rivaas.dev/typedrouter/validator"
)

// Option configures a Router.
type Option func(*Router)

// WithRegistry sets the validator registry used to resolve parameter types.
// The registry is consulted when routes are registered; validators added
// afterwards only affect routes registered later.
//
// Example:
//
//	reg := validator.Default()
//	reg.MustRegister("sku", validator.Validator{Test: isSKU})
//	r := typedrouter.MustNew(typedrouter.WithRegistry(reg))
func WithRegistry(reg *validator.Registry) Option {
	return func(r *Router) {
		r.registry = reg
		r.registrySet = true
	}
}

// WithStrictTypes makes Insert fail with ErrUnknownParamType when a pattern
// references a type the registry does not know.
func WithStrictTypes() Option {
	return func(r *Router) {
		r.strict = true
	}
}

// WithCacheSize sets the route cache capacity. Default: 1000.
func WithCacheSize(n int) Option {
	return func(r *Router) {
		r.cacheSize = n
	}
}

// WithCacheTTL expires cached lookups not stored or hit for longer than ttl.
// Zero disables expiry.
func WithCacheTTL(ttl time.Duration) Option {
	return func(r *Router) {
		r.cacheTTL = ttl
	}
}

// WithoutCache disables the route cache. Every Find searches the tree.
func WithoutCache() Option {
	return func(r *Router) {
		r.cacheDisabled = true
	}
}

// WithCacheSweep starts a background goroutine that removes expired cache
// entries every interval. It requires WithCacheTTL. Stop it with Close.
func WithCacheSweep(interval time.Duration) Option {
	return func(r *Router) {
		r.sweepInterval = interval
	}
}

// WithLogger sets the logger for registration and dispatch events.
// By default nothing is logged.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
//	r := typedrouter.MustNew(typedrouter.WithLogger(logger))
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithDiagnostics sets a diagnostic handler for the router.
//
// Example:
//
//	handler := typedrouter.DiagnosticHandlerFunc(func(e typedrouter.DiagnosticEvent) {
//	    slog.Warn(e.Message, "kind", e.Kind, "fields", e.Fields)
//	})
//	r := typedrouter.MustNew(typedrouter.WithDiagnostics(handler))
func WithDiagnostics(handler DiagnosticHandler) Option {
	return func(r *Router) {
		r.diagnostics = handler
	}
}

// WithObservability reports lookups and cache evictions to o.
// See package metrics for an OpenTelemetry implementation.
func WithObservability(o Observer) Option {
	return func(r *Router) {
		r.observer = o
	}
}

// WithTracerProvider enables spans in ServeHTTP.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(r *Router) {
		if tp != nil {
			r.tracer = tp.Tracer(instrumentationName)
		}
	}
}

// WithConfig applies the strict mode and cache settings of cfg.
// Routes listed in cfg are not registered; they carry no handlers.
//
// Example:
//
//	cfg, err := config.Load(ctx, config.WithFile("router.yaml"), config.WithEnv("ROUTER_"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r := typedrouter.MustNew(typedrouter.WithConfig(cfg))
func WithConfig(cfg config.Config) Option {
	return func(r *Router) {
		r.strict = cfg.StrictTypes
		r.cacheDisabled = !cfg.Cache.Enabled
		r.cacheSize = cfg.Cache.Capacity
		r.cacheTTL = cfg.Cache.TTL
		r.sweepInterval = cfg.Cache.SweepInterval
	}
}
