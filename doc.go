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

// Package typedrouter is an in-process HTTP request router with typed path
// parameters and a route resolution cache.
//
// Patterns may declare parameter types. Routes that share a shape but differ
// in parameter types coexist, and each request resolves to the most specific
// one:
//
//	r := typedrouter.MustNew()
//	r.GET("/users/:id=int", showUser)
//	r.GET("/users/:name", showUserByName)
//
//	m, ok := r.Find("GET", "/users/42")   // showUser, id=int64(42)
//	m, ok = r.Find("GET", "/users/alice") // showUserByName, name="alice"
//
// # Pattern Syntax
//
//	/literal       exact segment
//	/:name         any single segment, bound as a string
//	/:name=type    a segment accepted by the named validator
//	/*  or /*name  trailing wildcard; binds the rest of the path
//
// Built-in types are listed in package validator. Unknown type names accept
// any value unless [WithStrictTypes] is set.
//
// # Matching Order
//
// At each segment the router tries the literal child first, then typed
// parameters (specific types before generic and untyped ones), then the
// wildcard. A branch that dead-ends later in the path is abandoned and the
// next candidate is tried.
//
// # Caching
//
// Successful lookups are memoized in an LRU cache keyed by method and raw
// path. Registering a route purges the cache, so cached results always agree
// with the current route table. See [WithCacheSize], [WithCacheTTL],
// [WithCacheSweep] and [WithoutCache].
//
// # Serving
//
// Router implements [net/http.Handler]. Handlers that are [net/http.Handler]
// or func(http.ResponseWriter, *http.Request) are invoked with the matched
// parameters available through [ParamsFromContext]; misses are answered with
// RFC 9457 problem details.
//
// # Thread Safety
//
// Find and ServeHTTP are safe for concurrent use, also while routes are being
// registered.
package typedrouter
