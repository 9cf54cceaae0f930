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

// Package config loads router configuration from files, environment
// variables and Consul.
//
// Sources are merged in order, later ones overriding earlier ones, and the
// result is bound onto [Default] and validated:
//
//	cfg, err := config.Load(ctx,
//	    config.WithFile("router.yaml"),
//	    config.WithEnv("ROUTER_"),
//	    config.WithConsul("services/api/router.yaml"),
//	)
//
// # Schema
//
//	strict_types: false      # reject unknown parameter types
//	cache:
//	  enabled: true
//	  capacity: 1000
//	  ttl: 5m                # 0 disables expiry
//	  sweep_interval: 0s     # background expiry; requires ttl
//	routes:
//	  - method: GET
//	    pattern: /users/:id=int
//	    name: users.show
//
// Keys are case-insensitive. Durations accept Go duration strings.
//
// # Sources
//
// Files are decoded by extension (.yaml, .yml, .json, .toml); use
// [WithFileAs] or [WithContent] to pick a codec explicitly. Environment
// variables map underscores to nesting: with prefix "ROUTER_",
// ROUTER_CACHE_TTL=1m sets cache.ttl and ROUTER_CACHE_SWEEP_INTERVAL=10s
// sets cache.sweep_interval. Consul sources are skipped when
// CONSUL_HTTP_ADDR is unset and no client was injected with [WithConsulKV].
//
// # Errors
//
// Load errors are [*Error] values that name the failing source or field and
// wrap the underlying cause.
package config
