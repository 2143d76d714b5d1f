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
	"log/slog"
	"strings"
)

// WithRootPrefix mounts every registered resource (and the index route)
// under the given prefix. The prefix must start with "/"; the default is
// the bare root.
//
// Example:
//
//	reg := restroute.MustNew(restroute.WithRootPrefix("/api"))
//	reg.Register("snippets", set)
//	// compiles /api/, /api/snippets/, /api/snippets/{id}/, ...
func WithRootPrefix(prefix string) Option {
	return func(g *Registry) {
		trimmed := strings.TrimRight(prefix, "/")
		g.rootPrefix = trimmed
	}
}

// WithIndexName sets the canonical name of the synthetic index route.
// Defaults to "api-root".
func WithIndexName(name string) Option {
	return func(g *Registry) {
		g.indexName = name
	}
}

// WithoutIndex disables the synthetic root index route.
// This follows the design principle of using a "Without" prefix for
// disabling features that are enabled by default.
func WithoutIndex() Option {
	return func(g *Registry) {
		g.includeIndex = false
	}
}

// WithLogger sets the structured logger used for degraded-behavior
// warnings (for example, resources omitted from the index because their
// collection route cannot be reversed). Defaults to a no-op logger.
//
// Example:
//
//	reg := restroute.MustNew(restroute.WithLogger(slog.Default()))
func WithLogger(logger *slog.Logger) Option {
	return func(g *Registry) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithDiagnostics sets a diagnostic handler for the registry and the
// dispatcher compiled from it.
//
// Example with metrics:
//
//	handler := restroute.DiagnosticHandlerFunc(func(e restroute.DiagnosticEvent) {
//	    metrics.Increment("restroute.diagnostics", "kind", string(e.Kind))
//	})
//	reg := restroute.MustNew(restroute.WithDiagnostics(handler))
func WithDiagnostics(handler DiagnosticHandler) Option {
	return func(g *Registry) {
		g.diagnostics = handler
	}
}

// WithRecorder sets a DispatchRecorder that observes every dispatch made
// through the HTTP boundary adapter. See NewOTelRecorder and
// NewPrometheusRecorder for the provided implementations.
func WithRecorder(recorder DispatchRecorder) Option {
	return func(g *Registry) {
		g.recorder = recorder
	}
}

// WithNotFoundHandler sets a custom handler for requests that match no
// route, replacing the default plain-text 404 response.
//
// Example:
//
//	reg := restroute.MustNew(restroute.WithNotFoundHandler(
//	    func(w http.ResponseWriter, req *http.Request, _ restroute.Resolution) {
//	        http.Error(w, `{"detail":"not found"}`, http.StatusNotFound)
//	    },
//	))
func WithNotFoundHandler(h HandlerFunc) Option {
	return func(g *Registry) {
		g.notFound = h
	}
}
