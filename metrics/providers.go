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
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const instrumentationName = "rivaas.dev/typedrouter/metrics"

func (r *Recorder) initializeProvider() error {
	if r.customMeterProvider {
		r.emitDebug("Using custom user-provided meter provider")
		r.meter = r.meterProvider.Meter(instrumentationName)
		return r.initializeMetrics()
	}

	switch r.provider {
	case PrometheusProvider:
		return r.initPrometheusProvider()
	case StdoutProvider:
		return r.initStdoutProvider()
	default:
		return fmt.Errorf("unsupported metrics provider: %s", r.provider)
	}
}

func (r *Recorder) initPrometheusProvider() error {
	r.prometheusRegistry = promclient.NewRegistry()

	exporter, err := prometheus.New(
		prometheus.WithRegisterer(r.prometheusRegistry),
	)
	if err != nil {
		return fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}

	r.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	r.prometheusHandler = promhttp.HandlerFor(
		r.prometheusRegistry,
		promhttp.HandlerOpts{},
	)

	r.registerGlobalProvider()
	r.meter = r.meterProvider.Meter(instrumentationName)
	return r.initializeMetrics()
}

func (r *Recorder) initStdoutProvider() error {
	exporter, err := stdoutmetric.New()
	if err != nil {
		return fmt.Errorf("failed to create stdout exporter: %w", err)
	}

	r.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(
			exporter,
			sdkmetric.WithInterval(r.exportInterval),
		)),
	)

	r.registerGlobalProvider()
	r.meter = r.meterProvider.Meter(instrumentationName)
	return r.initializeMetrics()
}

func (r *Recorder) registerGlobalProvider() {
	if r.registerGlobal {
		r.emitDebug("Setting global OpenTelemetry meter provider", "provider", r.provider)
		otel.SetMeterProvider(r.meterProvider)
	}
}

// startMetricsServer serves the Prometheus handler until ctx is done or
// Shutdown is called.
func (r *Recorder) startMetricsServer(ctx context.Context) error {
	if r.isShuttingDown.Load() {
		return nil
	}

	requested := r.metricsPort
	var (
		listener net.Listener
		err      error
	)
	if r.strictPort {
		listener, err = net.Listen("tcp", requested)
	} else {
		listener, err = listenAvailable(requested)
	}
	if err != nil {
		r.emitError("Failed to start metrics server", "error", err, "port", requested)
		return fmt.Errorf("metrics server: %w", err)
	}

	actual := ":" + strconv.Itoa(listener.Addr().(*net.TCPAddr).Port)

	mux := http.NewServeMux()
	mux.Handle(r.metricsPath, r.prometheusHandler)
	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
	}

	r.serverMutex.Lock()
	r.metricsServer = server
	r.metricsPort = actual
	r.serverMutex.Unlock()

	if actual != requested && !strings.HasSuffix(requested, ":0") {
		r.emitWarning("Metrics server using different port than requested",
			"actual_address", actual+r.metricsPath,
			"requested_port", requested,
			"recommendation", "use WithStrictPort() to fail instead of auto-discovering")
	} else {
		r.emitInfo("Metrics server starting", "address", actual+r.metricsPath)
	}

	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			r.emitError("Metrics server error", "error", err)
		}
	}()

	if ctx.Done() == nil {
		return nil
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		_ = r.stopMetricsServer(shutdownCtx)
	}()

	return nil
}

func (r *Recorder) stopMetricsServer(ctx context.Context) error {
	r.serverMutex.Lock()
	server := r.metricsServer
	r.metricsServer = nil
	r.serverMutex.Unlock()

	if server == nil {
		return nil
	}
	if err := server.Shutdown(ctx); err != nil {
		r.emitError("Error shutting down metrics server", "error", err)
		return fmt.Errorf("metrics server shutdown: %w", err)
	}
	r.emitDebug("Metrics server shut down successfully")
	return nil
}

// listenAvailable listens on the preferred port or one of the next 99.
func listenAvailable(preferred string) (net.Listener, error) {
	portStr := strings.TrimPrefix(preferred, ":")
	portNum, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid port format: %s", preferred)
	}

	for i := range 100 {
		l, err := net.Listen("tcp", fmt.Sprintf(":%d", portNum+i))
		if err == nil {
			return l, nil
		}
		if portNum == 0 {
			break
		}
	}
	return nil, fmt.Errorf("no available port found starting from %s", preferred)
}
