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
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"

	"rivaas.dev/typedrouter/cache"
	"rivaas.dev/typedrouter/radix"
	"rivaas.dev/typedrouter/route"
	"rivaas.dev/typedrouter/validator"
)

const (
	instrumentationName = "rivaas.dev/typedrouter"

	defaultCacheSize = 1000
)

// noopLogger is a singleton no-op logger used when no logger is configured.
var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// methods lists the supported methods in Allow header order.
var methods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodDelete,
	http.MethodPatch,
	http.MethodHead,
	http.MethodOptions,
}

// Match is the result of a successful Find.
type Match = radix.Match

// Router resolves (method, path) pairs to handlers.
//
// Thread safety: all methods are safe for concurrent use. Registration takes
// an exclusive lock and purges the route cache, so lookups never observe a
// cached result that disagrees with the current route table.
type Router struct {
	mu    sync.RWMutex
	trees map[string]*radix.Tree
	cache *cache.LRU[Match]

	registry    *validator.Registry
	registrySet bool
	strict      bool

	cacheDisabled bool
	cacheSize     int
	cacheTTL      time.Duration
	sweepInterval time.Duration

	logger      *slog.Logger
	diagnostics DiagnosticHandler
	observer    Observer
	tracer      trace.Tracer

	stopSweep context.CancelFunc
	swept     chan struct{}
	closeOnce sync.Once
}

// New creates a router. With no options it uses the built-in validators,
// permissive type handling and a 1000-entry route cache without expiry.
//
// Example:
//
//	r, err := typedrouter.New(
//	    typedrouter.WithCacheSize(5000),
//	    typedrouter.WithCacheTTL(10*time.Minute),
//	)
func New(opts ...Option) (*Router, error) {
	r := &Router{
		cacheSize: defaultCacheSize,
		logger:    noopLogger,
	}
	for _, opt := range opts {
		opt(r)
	}

	if err := r.validate(); err != nil {
		return nil, fmt.Errorf("router configuration validation failed: %w", err)
	}

	if r.registry == nil {
		r.registry = validator.Default()
	}

	r.trees = make(map[string]*radix.Tree, len(methods))
	for _, m := range methods {
		r.trees[m] = radix.New(r.registry, radix.WithStrictTypes(r.strict), radix.WithMethod(m))
	}

	if !r.cacheDisabled {
		c, err := cache.New[Match](r.cacheSize,
			cache.WithTTL(r.cacheTTL),
			cache.WithEvictionCallback(r.onEvict),
		)
		if err != nil {
			return nil, fmt.Errorf("router configuration validation failed: %w", err)
		}
		r.cache = c

		if r.sweepInterval > 0 {
			ctx, cancel := context.WithCancel(context.Background())
			r.stopSweep = cancel
			r.swept = make(chan struct{})
			go func() {
				defer close(r.swept)
				c.Sweep(ctx, r.sweepInterval)
			}()
		}
	}

	return r, nil
}

// MustNew is like New but panics if the configuration is invalid.
func MustNew(opts ...Option) *Router {
	r, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("typedrouter.MustNew: %v", err))
	}
	return r
}

// validate checks the option combination. Routes are validated when they are
// registered.
func (r *Router) validate() error {
	if r.registrySet && r.registry == nil {
		return ErrNilRegistry
	}
	if r.cacheDisabled {
		return nil
	}
	if r.cacheSize <= 0 {
		return fmt.Errorf("%w: %d", ErrCacheSizeInvalid, r.cacheSize)
	}
	if r.cacheTTL < 0 {
		return fmt.Errorf("%w: %s", ErrCacheTTLInvalid, r.cacheTTL)
	}
	if r.sweepInterval < 0 || (r.sweepInterval > 0 && r.cacheTTL == 0) {
		return fmt.Errorf("%w: interval %s, ttl %s", ErrCacheSweepInvalid, r.sweepInterval, r.cacheTTL)
	}
	return nil
}

// Insert registers handler for method and pattern. The method is
// case-insensitive. Registering an identical pattern again replaces its
// handler. A failed Insert leaves the router unchanged.
func (r *Router) Insert(method, pattern string, handler any) error {
	m := strings.ToUpper(method)
	t, ok := r.trees[m]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedMethod, method)
	}

	r.mu.Lock()
	reg, err := t.Insert(pattern, handler)
	purged := 0
	if err == nil && r.cache != nil {
		purged = r.cache.Purge()
	}
	r.mu.Unlock()

	if err != nil {
		return err
	}
	r.recordRegistration(reg, purged)
	return nil
}

// MustInsert is like Insert but panics on error.
func (r *Router) MustInsert(method, pattern string, handler any) {
	if err := r.Insert(method, pattern, handler); err != nil {
		panic(fmt.Sprintf("typedrouter: %s %s: %v", method, pattern, err))
	}
}

// GET registers a GET route. It panics on configuration errors.
func (r *Router) GET(pattern string, handler any) { r.MustInsert(http.MethodGet, pattern, handler) }

// POST registers a POST route. It panics on configuration errors.
func (r *Router) POST(pattern string, handler any) { r.MustInsert(http.MethodPost, pattern, handler) }

// PUT registers a PUT route. It panics on configuration errors.
func (r *Router) PUT(pattern string, handler any) { r.MustInsert(http.MethodPut, pattern, handler) }

// DELETE registers a DELETE route. It panics on configuration errors.
func (r *Router) DELETE(pattern string, handler any) {
	r.MustInsert(http.MethodDelete, pattern, handler)
}

// PATCH registers a PATCH route. It panics on configuration errors.
func (r *Router) PATCH(pattern string, handler any) {
	r.MustInsert(http.MethodPatch, pattern, handler)
}

// HEAD registers a HEAD route. It panics on configuration errors.
func (r *Router) HEAD(pattern string, handler any) { r.MustInsert(http.MethodHead, pattern, handler) }

// OPTIONS registers an OPTIONS route. It panics on configuration errors.
func (r *Router) OPTIONS(pattern string, handler any) {
	r.MustInsert(http.MethodOptions, pattern, handler)
}

// Find resolves method and path. It reports false when no route matches or
// the method is not supported; it never panics on malformed input.
func (r *Router) Find(method, path string) (Match, bool) {
	var start time.Time
	if r.observer != nil {
		start = time.Now()
	}

	m, outcome := r.find(method, path)

	if r.observer != nil {
		r.observer.OnLookup(canonicalMethod(method), m.Pattern, outcome, time.Since(start))
	}
	return m, outcome != LookupNotFound
}

func (r *Router) find(method, path string) (Match, LookupOutcome) {
	method = canonicalMethod(method)
	t, ok := r.trees[method]
	if !ok {
		return Match{}, LookupNotFound
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var key string
	if r.cache != nil {
		key = cache.Key(method, path)
		if m, ok := r.cache.Get(key); ok {
			return m, LookupCacheHit
		}
	}

	m, ok := t.Search(path)
	if !ok {
		return Match{}, LookupNotFound
	}
	if r.cache != nil {
		r.cache.Set(key, m)
	}
	return m, LookupTreeHit
}

// allowed returns the methods, other than method, that have a route for path.
func (r *Router) allowed(method, path string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []string
	for _, m := range methods {
		if m == method {
			continue
		}
		if _, ok := r.trees[m].Search(path); ok {
			out = append(out, m)
		}
	}
	return out
}

// Routes returns every registered route sorted by pattern, then method.
func (r *Router) Routes() []route.Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []route.Info
	for _, m := range methods {
		out = append(out, r.trees[m].Routes()...)
	}
	slices.SortFunc(out, route.CompareInfo)
	return out
}

// Searches returns how many tree searches have run, summed over all methods.
// Cache hits do not search.
func (r *Router) Searches() uint64 {
	var n uint64
	for _, t := range r.trees {
		n += t.Searches()
	}
	return n
}

// CacheStats returns route cache statistics. It returns the zero value when
// the cache is disabled.
func (r *Router) CacheStats() cache.Stats {
	if r.cache == nil {
		return cache.Stats{}
	}
	return r.cache.Stats()
}

// Close stops the cache sweeper, if any. It is safe to call more than once.
func (r *Router) Close() error {
	r.closeOnce.Do(func() {
		if r.stopSweep != nil {
			r.stopSweep()
			<-r.swept
		}
	})
	return nil
}

func (r *Router) onEvict(key string, reason cache.EvictReason) {
	if r.observer != nil {
		r.observer.OnCacheEvict(reason)
	}
}

func (r *Router) recordRegistration(reg radix.Registration, purged int) {
	info := reg.Info

	if reg.Replaced {
		r.logger.Debug("route handler overwritten", "method", info.Method, "pattern", info.Pattern)
		r.emit(DiagRouteOverwritten, "route handler overwritten", map[string]any{
			"method":  info.Method,
			"pattern": info.Pattern,
		})
	} else {
		r.logger.Debug("route registered", "method", info.Method, "pattern", info.Pattern, "static", info.Static)
		r.emit(DiagRouteRegistered, "route registered", map[string]any{
			"method":  info.Method,
			"pattern": info.Pattern,
			"static":  info.Static,
		})
	}

	for _, typ := range reg.UnknownTypes() {
		r.logger.Warn("unknown parameter type accepts any value",
			"method", info.Method, "pattern", info.Pattern, "type", typ)
		r.emit(DiagUnknownParamType, "unknown parameter type accepts any value", map[string]any{
			"method":  info.Method,
			"pattern": info.Pattern,
			"type":    typ,
		})
	}

	if purged > 0 {
		r.logger.Debug("route cache purged", "entries", purged)
		r.emit(DiagCachePurged, "route cache purged", map[string]any{"entries": purged})
	}
}

func (r *Router) emit(kind DiagnosticKind, msg string, fields map[string]any) {
	if r.diagnostics != nil {
		r.diagnostics.OnDiagnostic(DiagnosticEvent{Kind: kind, Message: msg, Fields: fields})
	}
}

// canonicalMethod upper-cases method, avoiding the allocation for the common
// already-canonical case.
func canonicalMethod(method string) string {
	for i := 0; i < len(method); i++ {
		if c := method[i]; c >= 'a' && c <= 'z' {
			return strings.ToUpper(method)
		}
	}
	return method
}
