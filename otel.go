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

package restroute

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// meterName identifies this package's instrumentation scope.
const meterName = "rivaas.dev/restroute"

// OTelRecorder records dispatch outcomes to OpenTelemetry: a counter of
// dispatches tagged by method, route pattern, outcome, and status class,
// plus an event on the active span when one is recording.
type OTelRecorder struct {
	dispatches metric.Int64Counter
}

// OTelOption configures an OTelRecorder.
type OTelOption func(*otelConfig)

type otelConfig struct {
	provider metric.MeterProvider
}

// WithMeterProvider sets the meter provider. Defaults to the global
// provider registered with the otel package.
func WithMeterProvider(provider metric.MeterProvider) OTelOption {
	return func(c *otelConfig) {
		c.provider = provider
	}
}

// NewOTelRecorder creates a DispatchRecorder backed by OpenTelemetry
// metrics. It returns an error when instrument creation fails, so
// misconfigured observability is caught at startup rather than silently
// dropping measurements.
//
// Example:
//
//	rec, err := restroute.NewOTelRecorder()
//	if err != nil {
//	    log.Fatalf("observability setup failed: %v", err)
//	}
//	reg := restroute.MustNew(restroute.WithRecorder(rec))
func NewOTelRecorder(opts ...OTelOption) (*OTelRecorder, error) {
	cfg := otelConfig{provider: otel.GetMeterProvider()}
	for _, opt := range opts {
		opt(&cfg)
	}

	meter := cfg.provider.Meter(meterName)
	dispatches, err := meter.Int64Counter(
		"restroute.dispatch.total",
		metric.WithDescription("Dispatches resolved through the route table, by outcome."),
		metric.WithUnit("{dispatch}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating dispatch counter: %w", err)
	}

	return &OTelRecorder{dispatches: dispatches}, nil
}

// RecordDispatch implements DispatchRecorder.
func (r *OTelRecorder) RecordDispatch(ctx context.Context, method, pattern, outcome string, status int) {
	attrs := []attribute.KeyValue{
		attribute.String("http.request.method", method),
		attribute.String("http.route", pattern),
		attribute.String("restroute.outcome", outcome),
		attribute.Int("http.response.status_code", status),
	}

	r.dispatches.Add(ctx, 1, metric.WithAttributes(attrs...))

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.AddEvent("restroute.dispatch", trace.WithAttributes(attrs...))
	}
}
