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
	"encoding/json"
	"log/slog"
	"net/http"

	"rivaas.dev/restroute/action"
	"rivaas.dev/restroute/compiler"
)

// indexOperation is the name of the synthetic index route's operation.
const indexOperation = "index"

// newIndexRoute builds the synthetic root index route. It is inserted
// first in the table, at the configured root prefix, with a single GET
// operation that renders the resource index.
func newIndexRoute(rootPrefix, name string, d *Dispatcher) (*compiler.Route, error) {
	pattern := rootPrefix + "/"
	if rootPrefix == "" {
		pattern = "/"
	}

	op := action.Operation{
		Name:    indexOperation,
		Scope:   action.ScopeCollection,
		Methods: []string{http.MethodGet},
		Handler: HandlerFunc(d.serveIndex),
	}

	return compiler.NewRoute(pattern, name, action.ScopeCollection, []action.Operation{op})
}

// Index returns the discoverability mapping: each registered resource's
// basename to the absolute URL of its collection route, in registration
// order of first appearance.
//
// The mapping never mutates state and never fails as a whole. A resource
// whose collection route cannot be reversed (for example a write-only
// resource with no list operation) is omitted, and the omission is
// surfaced as a warning through the configured logger and diagnostics.
func (d *Dispatcher) Index() map[string]string {
	index := make(map[string]string, len(d.basenames))
	for _, basename := range d.basenames {
		url, err := d.Reverse(basename+"-list", "")
		if err != nil {
			d.logger.Warn("omitting resource from index: reverse lookup failed",
				slog.String("basename", basename),
				slog.Any("error", err),
			)
			d.emit(DiagIndexReverseFailed, "index omits unreversible resource", map[string]any{
				"basename": basename,
				"error":    err.Error(),
			})
			continue
		}
		index[basename] = url
	}
	return index
}

// serveIndex renders the index mapping as JSON. Bound as the handler of
// the synthetic index route.
func (d *Dispatcher) serveIndex(w http.ResponseWriter, req *http.Request, _ Resolution) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(d.Index()); err != nil {
		d.logger.Error("index encoding failed", slog.Any("error", err))
	}
}
