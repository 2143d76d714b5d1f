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
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestOTelRecorder_RecordsDispatchCounter(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	rec, err := NewOTelRecorder(WithMeterProvider(provider))
	require.NoError(t, err)

	ctx := context.Background()
	rec.RecordDispatch(ctx, http.MethodGet, "/snippets/", OutcomeMatched, http.StatusOK)
	rec.RecordDispatch(ctx, http.MethodGet, "/snippets/", OutcomeMatched, http.StatusOK)
	rec.RecordDispatch(ctx, http.MethodPost, "/snippets/{id}/highlight/", OutcomeMethodNotAllowed, http.StatusMethodNotAllowed)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	scope := rm.ScopeMetrics[0]
	assert.Equal(t, meterName, scope.Scope.Name)
	require.Len(t, scope.Metrics, 1)
	assert.Equal(t, "restroute.dispatch.total", scope.Metrics[0].Name)

	sum, ok := scope.Metrics[0].Data.(metricdata.Sum[int64])
	require.True(t, ok, "dispatch counter must be an int64 sum")
	require.Len(t, sum.DataPoints, 2, "one data point per distinct attribute set")

	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	assert.Equal(t, int64(3), total)
}

func TestOTelRecorder_ThroughServeHTTP(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	rec, err := NewOTelRecorder(WithMeterProvider(provider))
	require.NoError(t, err)

	d := handlerDispatcher(t, WithRecorder(rec))
	doRequest(d, http.MethodGet, "/snippets/")
	doRequest(d, http.MethodGet, "/missing/")

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	require.Len(t, rm.ScopeMetrics[0].Metrics, 1)

	sum, ok := rm.ScopeMetrics[0].Metrics[0].Data.(metricdata.Sum[int64])
	require.True(t, ok)

	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	assert.Equal(t, int64(2), total)
}

func TestPrometheusRecorder_RecordsDispatchCounter(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	rec, err := NewPrometheusRecorder(registry)
	require.NoError(t, err)

	ctx := context.Background()
	rec.RecordDispatch(ctx, http.MethodGet, "/snippets/", OutcomeMatched, http.StatusOK)
	rec.RecordDispatch(ctx, http.MethodGet, "/snippets/", OutcomeMatched, http.StatusOK)
	rec.RecordDispatch(ctx, http.MethodGet, "/missing/", OutcomeNotFound, http.StatusNotFound)

	matched := rec.dispatches.WithLabelValues(http.MethodGet, "/snippets/", OutcomeMatched, "200")
	assert.Equal(t, float64(2), testutil.ToFloat64(matched))

	notFound := rec.dispatches.WithLabelValues(http.MethodGet, "/missing/", OutcomeNotFound, "404")
	assert.Equal(t, float64(1), testutil.ToFloat64(notFound))
}

func TestPrometheusRecorder_DuplicateRegistration(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()

	_, err := NewPrometheusRecorder(registry)
	require.NoError(t, err)

	// A second recorder on the same registerer collides. The failure must
	// surface at construction, not as silently dropped measurements.
	_, err = NewPrometheusRecorder(registry)
	assert.Error(t, err)
}

func TestDispatchRecorderFunc_Adapter(t *testing.T) {
	t.Parallel()

	var called bool
	rec := DispatchRecorderFunc(func(_ context.Context, method, pattern, outcome string, status int) {
		called = true
		assert.Equal(t, http.MethodGet, method)
		assert.Equal(t, "/x/", pattern)
		assert.Equal(t, OutcomeMatched, outcome)
		assert.Equal(t, http.StatusOK, status)
	})

	rec.RecordDispatch(context.Background(), http.MethodGet, "/x/", OutcomeMatched, http.StatusOK)
	assert.True(t, called)
}
