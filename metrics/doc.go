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

// Package metrics records router lookups and route cache activity with
// OpenTelemetry instruments.
//
// A [Recorder] implements typedrouter.Observer:
//
//	recorder := metrics.MustNew(
//	    metrics.WithPrometheus(":9090", "/metrics"),
//	    metrics.WithServiceName("orders-api"),
//	)
//	defer recorder.Shutdown(context.Background())
//
//	r := typedrouter.MustNew(typedrouter.WithObservability(recorder))
//
// # Instruments
//
//	router.lookups          counter    method, outcome, http.route
//	router.lookup.duration  histogram  method, outcome (seconds)
//	router.cache.requests   counter    result (hit, miss)
//	router.cache.evictions  counter    reason (capacity, expired)
//
// Every data point also carries service.name and service.version. Lookups
// that match nothing omit http.route to keep cardinality bounded.
//
// # Providers
//
// Two providers are built in:
//   - [PrometheusProvider] (default): private registry served over HTTP
//   - [StdoutProvider]: periodic export to stdout, for development
//
// Any other metric.MeterProvider can be supplied with [WithMeterProvider].
//
// # Global State
//
// The global OpenTelemetry meter provider is left untouched unless
// [WithGlobalMeterProvider] is set, so several recorders can coexist.
package metrics
