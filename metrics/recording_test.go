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

//go:build !integration

package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"rivaas.dev/typedrouter"
	"rivaas.dev/typedrouter/cache"
)

// sumByAttr returns the int64 sum data points keyed by the value of key.
func sumByAttr(t *testing.T, rm metricdata.ResourceMetrics, name string, key attribute.Key) map[string]int64 {
	t.Helper()

	m, ok := FindMetric(rm, name)
	require.True(t, ok, "metric %s not recorded", name)
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %s is %T", name, m.Data)

	out := make(map[string]int64)
	for _, dp := range sum.DataPoints {
		v, _ := dp.Attributes.Value(key)
		out[v.AsString()] += dp.Value
	}
	return out
}

func TestRecorder_RouterLookups(t *testing.T) {
	t.Parallel()

	recorder, reader := TestingRecorder(t, WithServiceName("orders"))
	r := typedrouter.MustNew(typedrouter.WithObservability(recorder), typedrouter.WithCacheSize(1))
	r.GET("/orders/:id=int", "order")
	r.GET("/health", "health")

	r.Find("GET", "/orders/1") // tree hit
	r.Find("GET", "/orders/1") // cache hit
	r.Find("GET", "/orders/x") // not found
	r.Find("GET", "/health")   // tree hit, evicts /orders/1
	r.Find("BREW", "/health")  // not found

	rm := CollectMetrics(t, reader)

	assert.Equal(t, map[string]int64{
		"tree_hit":  2,
		"cache_hit": 1,
		"not_found": 2,
	}, sumByAttr(t, rm, "router.lookups", "outcome"))

	assert.Equal(t, map[string]int64{
		"hit":  1,
		"miss": 4,
	}, sumByAttr(t, rm, "router.cache.requests", "result"))

	assert.Equal(t, map[string]int64{
		"capacity": 1,
	}, sumByAttr(t, rm, "router.cache.evictions", "reason"))

	routes := sumByAttr(t, rm, "router.lookups", "http.route")
	assert.Equal(t, int64(2), routes["/orders/:id=int"])
	assert.Equal(t, int64(1), routes["/health"])
	assert.Equal(t, int64(2), routes[""], "misses carry no route")

	m, ok := FindMetric(rm, "router.lookup.duration")
	require.True(t, ok)
	hist, ok := m.Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	var count uint64
	for _, dp := range hist.DataPoints {
		count += dp.Count
		name, _ := dp.Attributes.Value("service.name")
		assert.Equal(t, "orders", name.AsString())
	}
	assert.EqualValues(t, 5, count)
}

func TestRecorder_OnCacheEvict(t *testing.T) {
	t.Parallel()

	recorder, reader := TestingRecorder(t)
	recorder.OnCacheEvict(cache.EvictExpired)
	recorder.OnCacheEvict(cache.EvictExpired)
	recorder.OnCacheEvict(cache.EvictCapacity)

	rm := CollectMetrics(t, reader)
	assert.Equal(t, map[string]int64{
		"expired":  2,
		"capacity": 1,
	}, sumByAttr(t, rm, "router.cache.evictions", "reason"))
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []Option
		wantErr string
	}{
		{name: "conflicting providers", opts: []Option{WithStdout(), WithPrometheus(":0", "/metrics")}, wantErr: "conflicting provider options"},
		{name: "empty service name", opts: []Option{WithStdout(), WithServiceName("")}, wantErr: "service name cannot be empty"},
		{name: "empty service version", opts: []Option{WithStdout(), WithServiceVersion("")}, wantErr: "service version cannot be empty"},
		{name: "nil meter provider", opts: []Option{WithMeterProvider(nil)}, wantErr: "custom meter provider is nil"},
		{name: "empty prometheus path", opts: []Option{WithPrometheus(":0", "")}, wantErr: "metrics path cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := New(tt.opts...)
			require.ErrorContains(t, err, tt.wantErr)
		})
	}

	assert.Panics(t, func() { MustNew(WithServiceName("")) })
}

func TestPrometheusProvider_Handler(t *testing.T) {
	t.Parallel()

	recorder := MustNew(WithPrometheus(":0", "/metrics"), WithServerDisabled())
	t.Cleanup(func() { _ = recorder.Shutdown(context.Background()) })

	assert.Equal(t, PrometheusProvider, recorder.Provider())
	assert.Equal(t, "/metrics", recorder.Path())
	assert.Empty(t, recorder.ServerAddress())

	recorder.OnLookup("GET", "/users/:id=int", typedrouter.LookupTreeHit, time.Microsecond)

	h, err := recorder.Handler()
	require.NoError(t, err)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "router_lookups")
	assert.Contains(t, body, `outcome="tree_hit"`)
	assert.Contains(t, body, "router_lookup_duration")
}

func TestPrometheusProvider_Server(t *testing.T) {
	t.Parallel()

	var (
		mu     sync.Mutex
		events []Event
	)
	recorder := MustNew(
		WithPrometheus(":0", "metrics"),
		WithEventHandler(func(e Event) {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, e)
		}),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, recorder.Start(ctx))
	require.NoError(t, recorder.Start(ctx), "Start is idempotent")

	addr := recorder.ServerAddress()
	require.NotEqual(t, ":0", addr)

	resp, err := http.Get("http://127.0.0.1" + addr + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body)

	require.NoError(t, recorder.Shutdown(context.Background()))
	require.NoError(t, recorder.Shutdown(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, events)
	assert.Equal(t, "Metrics server starting", events[0].Message)
}

func TestStdoutProvider(t *testing.T) {
	t.Parallel()

	recorder := MustNew(WithStdout(), WithExportInterval(time.Hour))
	assert.Equal(t, StdoutProvider, recorder.Provider())
	assert.Empty(t, recorder.Path())

	_, err := recorder.Handler()
	require.Error(t, err)

	require.NoError(t, recorder.Start(context.Background()))
	require.NoError(t, recorder.Shutdown(context.Background()))
	require.NoError(t, recorder.ForceFlush(context.Background()), "flush after shutdown is a no-op")
}

func TestCustomProvider_ShutdownLeavesProviderRunning(t *testing.T) {
	t.Parallel()

	recorder, reader := TestingRecorder(t)
	assert.Equal(t, Provider(""), recorder.Provider())
	require.NoError(t, recorder.Shutdown(context.Background()))

	recorder.OnCacheEvict(cache.EvictCapacity)
	rm := CollectMetrics(t, reader)
	_, ok := FindMetric(rm, "router.cache.evictions")
	assert.True(t, ok)
}

func TestDefaultEventHandler(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		DefaultEventHandler(nil)(Event{Type: EventError, Message: "dropped"})
	})
}
