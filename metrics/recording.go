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

package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"rivaas.dev/typedrouter"
	"rivaas.dev/typedrouter/cache"
)

var _ typedrouter.Observer = (*Recorder)(nil)

var (
	cacheHit  = attribute.String("result", "hit")
	cacheMiss = attribute.String("result", "miss")
)

func (r *Recorder) initializeMetrics() error {
	var err error

	if r.lookups, err = r.meter.Int64Counter(
		"router.lookups",
		metric.WithDescription("Route lookups by outcome"),
		metric.WithUnit("{lookup}"),
	); err != nil {
		return fmt.Errorf("failed to create lookups counter: %w", err)
	}

	if r.lookupDuration, err = r.meter.Float64Histogram(
		"router.lookup.duration",
		metric.WithDescription("Route lookup duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(r.durationBuckets...),
	); err != nil {
		return fmt.Errorf("failed to create lookup duration histogram: %w", err)
	}

	if r.cacheRequests, err = r.meter.Int64Counter(
		"router.cache.requests",
		metric.WithDescription("Route cache lookups by result"),
		metric.WithUnit("{request}"),
	); err != nil {
		return fmt.Errorf("failed to create cache requests counter: %w", err)
	}

	if r.cacheEvictions, err = r.meter.Int64Counter(
		"router.cache.evictions",
		metric.WithDescription("Route cache entries dropped for capacity or expiry"),
		metric.WithUnit("{entry}"),
	); err != nil {
		return fmt.Errorf("failed to create cache evictions counter: %w", err)
	}

	return nil
}

// OnLookup records one router lookup. A router without a cache reports
// every lookup as a cache miss.
func (r *Recorder) OnLookup(method, pattern string, outcome typedrouter.LookupOutcome, elapsed time.Duration) {
	ctx := context.Background()
	service := metric.WithAttributeSet(r.serviceAttrs)

	base := []attribute.KeyValue{
		attribute.String("method", method),
		attribute.String("outcome", outcome.String()),
	}
	r.lookupDuration.Record(ctx, elapsed.Seconds(), service, metric.WithAttributes(base...))

	if pattern != "" {
		base = append(base, attribute.String("http.route", pattern))
	}
	r.lookups.Add(ctx, 1, service, metric.WithAttributes(base...))

	result := cacheMiss
	if outcome == typedrouter.LookupCacheHit {
		result = cacheHit
	}
	r.cacheRequests.Add(ctx, 1, service, metric.WithAttributes(result))
}

// OnCacheEvict records one cache eviction.
func (r *Recorder) OnCacheEvict(reason cache.EvictReason) {
	r.cacheEvictions.Add(context.Background(), 1,
		metric.WithAttributeSet(r.serviceAttrs),
		metric.WithAttributes(attribute.String("reason", reason.String())),
	)
}
