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
	"errors"
	"net/http"
	"strings"
)

// HandlerFunc is the concrete handler signature invoked by the HTTP
// boundary adapter. The Resolution carries the matched route, operation,
// and extracted member identifier.
//
// Handlers are bound to operations at declaration time:
//
//	set := action.NewSet(action.CapRead).
//	    Handle(action.List, restroute.HandlerFunc(listSnippets)).
//	    Extra("highlight", action.WithHandler(restroute.HandlerFunc(highlight)))
type HandlerFunc func(w http.ResponseWriter, req *http.Request, res Resolution)

// Dispatch outcome labels used by DispatchRecorder implementations.
const (
	OutcomeMatched          = "matched"
	OutcomeRedirect         = "redirect"
	OutcomeNotFound         = "not_found"
	OutcomeMethodNotAllowed = "method_not_allowed"
	OutcomeUnbound          = "unbound"
)

// unmatchedPattern is the sentinel route label recorded for requests that
// match no route. Recording the raw path instead would explode metric
// cardinality.
const unmatchedPattern = "_unmatched"

// responseWriter wraps http.ResponseWriter to capture status code and size.
// It also prevents "superfluous response.WriteHeader call" errors.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	size       int64
	written    bool
}

// WriteHeader captures the status code and prevents duplicate calls.
func (rw *responseWriter) WriteHeader(code int) {
	if !rw.written {
		rw.statusCode = code
		rw.ResponseWriter.WriteHeader(code)
		rw.written = true
	}
}

// Write captures the response size and marks as written.
func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.written = true
	}
	if rw.statusCode == 0 {
		rw.statusCode = http.StatusOK
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.size += int64(n)
	return n, err
}

// StatusCode returns the HTTP status code.
func (rw *responseWriter) StatusCode() int {
	if rw.statusCode == 0 {
		return http.StatusOK
	}
	return rw.statusCode
}

// Size returns the response size in bytes.
func (rw *responseWriter) Size() int64 {
	return rw.size
}

// ServeHTTP converts a transport request into a dispatch, invokes the
// bound handler, and renders routing errors:
//
//   - A matched request on the slash-less form of a canonical path is
//     answered with a 301 redirect to the canonical form (the
//     redirect-equivalent match, never a distinct route).
//   - An unmatched path is answered 404, via the configured not-found
//     handler when set.
//   - A matched path with an unbound method is answered 405 with the
//     Allow header set to exactly the route's bound methods.
//   - A matched operation without a bound handler is answered 501; the
//     dispatch contract is still usable directly via Dispatch for callers
//     that invoke operations themselves.
//
// Every branch is reported to the configured DispatchRecorder with the
// route pattern (not the raw path) and an outcome label.
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	rw := &responseWriter{ResponseWriter: w}
	path := req.URL.Path
	pattern := unmatchedPattern
	outcome := OutcomeNotFound

	res, err := d.Dispatch(path, req.Method)
	switch {
	case err == nil:
		pattern = res.Route.Pattern()
		outcome = d.invoke(rw, req, res)

	case errors.As(err, new(*MethodNotAllowedError)):
		var mna *MethodNotAllowedError
		errors.As(err, &mna)
		pattern = mna.Pattern
		outcome = OutcomeMethodNotAllowed
		rw.Header().Set("Allow", strings.Join(mna.Allowed, ", "))
		http.Error(rw, "405 method not allowed", http.StatusMethodNotAllowed)

	default:
		if d.notFound != nil {
			d.notFound(rw, req, Resolution{})
		} else {
			http.NotFound(rw, req)
		}
	}

	if d.recorder != nil {
		d.recorder.RecordDispatch(req.Context(), req.Method, pattern, outcome, rw.StatusCode())
	}
}

// invoke runs the matched operation's handler, redirecting first when the
// request used the slash-less form of the canonical path.
func (d *Dispatcher) invoke(w http.ResponseWriter, req *http.Request, res Resolution) string {
	if path := req.URL.Path; !strings.HasSuffix(path, "/") {
		if target, err := res.Route.URL(res.ID); err == nil {
			if q := req.URL.RawQuery; q != "" {
				target += "?" + q
			}
			d.emit(DiagSlashRedirect, "redirecting to canonical form", map[string]any{
				"path":   path,
				"target": target,
			})
			http.Redirect(w, req, target, http.StatusMovedPermanently)
			return OutcomeRedirect
		}
	}

	h, ok := res.Operation.Handler.(HandlerFunc)
	if !ok || h == nil {
		if raw, rawOK := res.Operation.Handler.(func(http.ResponseWriter, *http.Request, Resolution)); rawOK {
			h, ok = raw, true
		}
	}
	if !ok || h == nil {
		d.emit(DiagUnboundOperation, "matched operation has no handler", map[string]any{
			"route":     res.Route.Name(),
			"operation": res.Operation.Name,
		})
		http.Error(w, "501 not implemented", http.StatusNotImplemented)
		return OutcomeUnbound
	}

	h(w, req, res)
	return OutcomeMatched
}
