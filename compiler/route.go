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

package compiler

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"rivaas.dev/restroute/action"
)

var (
	// ErrMissingIdentifier indicates that a member-scope route was
	// reversed without a member identifier.
	ErrMissingIdentifier = errors.New("missing member identifier")

	// ErrInvalidIdentifier indicates a member identifier that is empty or
	// contains a path separator.
	ErrInvalidIdentifier = errors.New("invalid member identifier")
)

// idPlaceholder is the member-identifier segment in canonical patterns.
// It matches one or more characters excluding '/'.
const idPlaceholder = "{id}"

// MethodBinding pairs one HTTP method with the operation it invokes.
// Bindings are ordered by operation declaration order; each method binds
// to at most one operation per route.
type MethodBinding struct {
	Method    string
	Operation action.Operation
}

// Route is a compiled, immutable route table entry: a canonical URL
// pattern (always with a trailing slash), the ordered method-to-operation
// bindings, and a canonical name for reverse lookup.
//
// Routes are built once at compile time and never mutated afterwards, so
// they are safe to share across any number of goroutines without locking.
type Route struct {
	pattern  string
	name     string
	scope    action.Scope
	bindings []MethodBinding

	// Matching metadata, precomputed at construction.
	segments []string // literal segments; idPlaceholder marks the identifier
	idIndex  int      // segment index of the identifier, -1 when absent
}

// NewRoute compiles a route from its canonical pattern, name, scope, and
// the operations bound to it. The method map is built by inverting each
// operation's declared method set, in operation order; two operations
// claiming the same method fail with a *ConflictError.
//
// The pattern must start with "/"; the canonical form always ends with
// "/". At most one "{id}" placeholder is supported.
func NewRoute(pattern, name string, scope action.Scope, ops []action.Operation) (*Route, error) {
	if !strings.HasPrefix(pattern, "/") {
		return nil, fmt.Errorf("%w: pattern %q must start with /", ErrRouteConflict, pattern)
	}
	if !strings.HasSuffix(pattern, "/") {
		pattern += "/"
	}

	r := &Route{
		pattern: pattern,
		name:    name,
		scope:   scope,
		idIndex: -1,
	}

	trimmed := strings.Trim(pattern, "/")
	if trimmed != "" {
		r.segments = strings.Split(trimmed, "/")
	}
	for i, seg := range r.segments {
		if seg == idPlaceholder {
			if r.idIndex >= 0 {
				return nil, fmt.Errorf("%w: pattern %q has multiple identifier placeholders",
					ErrRouteConflict, pattern)
			}
			r.idIndex = i
		} else if seg == "" {
			return nil, fmt.Errorf("%w: pattern %q has an empty segment", ErrRouteConflict, pattern)
		}
	}

	for _, op := range ops {
		if len(op.Methods) == 0 {
			return nil, fmt.Errorf("%w: operation %q at %s declares no methods",
				action.ErrNoMethods, op.Name, pattern)
		}
		for _, method := range op.Methods {
			if prev, bound := r.operation(method); bound {
				return nil, &ConflictError{
					Pattern: pattern,
					Method:  method,
					First:   prev.Name,
					Second:  op.Name,
				}
			}
			r.bindings = append(r.bindings, MethodBinding{Method: method, Operation: op})
		}
	}

	return r, nil
}

// Pattern returns the canonical URL pattern, including the trailing slash.
func (r *Route) Pattern() string {
	return r.pattern
}

// Name returns the canonical route name used for reverse lookup.
func (r *Route) Name() string {
	return r.name
}

// Scope returns the route's target scope.
func (r *Route) Scope() action.Scope {
	return r.scope
}

// Bindings returns a copy of the ordered method-to-operation bindings.
func (r *Route) Bindings() []MethodBinding {
	out := make([]MethodBinding, len(r.bindings))
	copy(out, r.bindings)
	return out
}

// Methods returns the bound HTTP methods in binding order.
func (r *Route) Methods() []string {
	out := make([]string, len(r.bindings))
	for i, b := range r.bindings {
		out[i] = b.Method
	}
	return out
}

// Operation returns the operation bound to the given method.
func (r *Route) Operation(method string) (action.Operation, bool) {
	return r.operation(method)
}

func (r *Route) operation(method string) (action.Operation, bool) {
	for _, b := range r.bindings {
		if b.Method == method {
			return b.Operation, true
		}
	}
	return action.Operation{}, false
}

// match tests a path against the route. Static segments must be equal;
// the identifier segment, when present, accepts any non-empty value
// without an embedded slash. The no-trailing-slash form matches the same
// route (redirect-equivalent), never a distinct one.
//
// Exactly one leading slash and at most one trailing slash are consumed.
// Slash-variant aliases ("/snippets//", "//snippets/", "snippets/") leave
// an empty or unexpected segment behind and fail the match.
//
// Returns the extracted member identifier (empty for collection routes)
// and whether the path matched.
func (r *Route) match(path string) (string, bool) {
	if len(r.segments) == 0 {
		return "", path == "/"
	}

	rest, ok := strings.CutPrefix(path, "/")
	if !ok {
		return "", false
	}
	rest, _ = strings.CutSuffix(rest, "/")
	if rest == "" {
		return "", false
	}

	segs := strings.Split(rest, "/")
	if len(segs) != len(r.segments) {
		return "", false
	}

	id := ""
	for i, want := range r.segments {
		if i == r.idIndex {
			if segs[i] == "" {
				return "", false
			}
			id = segs[i]
			continue
		}
		if segs[i] != want {
			return "", false
		}
	}

	return id, true
}

// URL reconstructs the canonical path for this route. Member-scope
// routes require a syntactically valid identifier: non-empty, without an
// embedded slash. Collection-scope routes ignore the identifier.
func (r *Route) URL(id string) (string, error) {
	if r.idIndex < 0 {
		return r.pattern, nil
	}

	if id == "" {
		return "", fmt.Errorf("%w: route %q", ErrMissingIdentifier, r.name)
	}
	if strings.Contains(id, "/") {
		return "", fmt.Errorf("%w: %q", ErrInvalidIdentifier, id)
	}

	var buf strings.Builder
	for _, seg := range r.segments {
		buf.WriteByte('/')
		if seg == idPlaceholder {
			buf.WriteString(url.PathEscape(id))
		} else {
			buf.WriteString(seg)
		}
	}
	buf.WriteByte('/')

	return buf.String(), nil
}
