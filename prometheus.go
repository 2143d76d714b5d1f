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
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder records dispatch outcomes to a Prometheus counter
// vector, labeled by method, route pattern, outcome, and status code.
type PrometheusRecorder struct {
	dispatches *prometheus.CounterVec
}

// NewPrometheusRecorder creates a DispatchRecorder backed by Prometheus
// and registers its collector with the given registerer. Registration
// failures (for example a duplicate collector) are returned so they are
// caught at startup.
//
// Example:
//
//	rec, err := restroute.NewPrometheusRecorder(prometheus.DefaultRegisterer)
//	if err != nil {
//	    log.Fatalf("observability setup failed: %v", err)
//	}
//	reg := restroute.MustNew(restroute.WithRecorder(rec))
func NewPrometheusRecorder(registerer prometheus.Registerer) (*PrometheusRecorder, error) {
	dispatches := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "restroute",
			Name:      "dispatch_total",
			Help:      "Dispatches resolved through the route table, by outcome.",
		},
		[]string{"method", "route", "outcome", "status"},
	)

	if err := registerer.Register(dispatches); err != nil {
		return nil, fmt.Errorf("registering dispatch counter: %w", err)
	}

	return &PrometheusRecorder{dispatches: dispatches}, nil
}

// RecordDispatch implements DispatchRecorder.
func (r *PrometheusRecorder) RecordDispatch(_ context.Context, method, pattern, outcome string, status int) {
	r.dispatches.WithLabelValues(method, pattern, outcome, strconv.Itoa(status)).Inc()
}
