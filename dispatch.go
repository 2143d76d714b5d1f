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
	"fmt"
	"log/slog"

	"rivaas.dev/restroute/action"
	"rivaas.dev/restroute/compiler"
)

// Resolution is the result of a successful dispatch: the matched route,
// the operation bound to the request method, and the extracted member
// identifier (empty for collection-scope routes).
type Resolution struct {
	Route     *compiler.Route
	Operation action.Operation
	ID        string
}

// Dispatcher resolves (path, method) pairs against the compiled route
// table and reconstructs URLs from canonical route names.
//
// The Dispatcher exclusively owns its table for the lifetime of the
// serving process. The table is read-only, so Dispatch and Reverse are
// pure, non-blocking, and safe for unbounded concurrent use without
// locking. Rebuilding requires compiling a new registry; there is no
// incremental mutation.
type Dispatcher struct {
	table       *compiler.Table
	basenames   []string // registration order, drives the index mapping
	logger      *slog.Logger
	diagnostics DiagnosticHandler
	recorder    DispatchRecorder
	notFound    HandlerFunc
}

// Dispatch resolves a path and method to exactly one operation
// invocation.
//
// Routes are tested in table order and the first match wins; that makes
// registration order load-bearing, which is why the compiler's ordering
// guarantee matters. The no-trailing-slash form of a path matches the
// same route as the canonical form.
//
// An unmatched path returns a *NotFoundError. A matched path with an
// unbound method returns a *MethodNotAllowedError carrying exactly the
// route's bound methods. Both are expected outcomes for the serving
// layer to render, never process-fatal conditions.
func (d *Dispatcher) Dispatch(path, method string) (Resolution, error) {
	route, id, ok := d.table.Match(path)
	if !ok {
		return Resolution{}, &NotFoundError{Path: path}
	}

	op, bound := route.Operation(method)
	if !bound {
		return Resolution{}, &MethodNotAllowedError{
			Path:    path,
			Method:  method,
			Pattern: route.Pattern(),
			Allowed: route.Methods(),
		}
	}

	return Resolution{Route: route, Operation: op, ID: id}, nil
}

// Reverse reconstructs the canonical path for a named route. Member
// routes require a syntactically valid identifier (non-empty, no
// embedded slash); collection routes ignore it.
//
// An unknown name fails with ErrRouteNotFound. Unlike the index
// builder's tolerant use of reverse lookup, callers should treat this as
// a hard error: a missing name means a route was renamed or never
// compiled.
func (d *Dispatcher) Reverse(name, id string) (string, error) {
	route, ok := d.table.Lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrRouteNotFound, name)
	}
	return route.URL(id)
}

// Table returns the dispatcher's route table for direct inspection.
func (d *Dispatcher) Table() *compiler.Table {
	return d.table
}

// RouteInfo describes one compiled route for introspection.
type RouteInfo struct {
	Name    string
	Pattern string
	Scope   action.Scope
	Methods []string
}

// Routes returns the compiled routes in table order. Table order is the
// match order, so the slice doubles as documentation of precedence.
func (d *Dispatcher) Routes() []RouteInfo {
	routes := d.table.Routes()
	infos := make([]RouteInfo, len(routes))
	for i, r := range routes {
		infos[i] = RouteInfo{
			Name:    r.Name(),
			Pattern: r.Pattern(),
			Scope:   r.Scope(),
			Methods: r.Methods(),
		}
	}
	return infos
}

// emit sends a diagnostic event if a handler is configured.
func (d *Dispatcher) emit(kind DiagnosticKind, message string, fields map[string]any) {
	if d.diagnostics != nil {
		d.diagnostics.OnDiagnostic(DiagnosticEvent{
			Kind:    kind,
			Message: message,
			Fields:  fields,
		})
	}
}
