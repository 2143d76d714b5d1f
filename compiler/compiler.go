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
	"strings"

	"rivaas.dev/restroute/action"
)

var (
	// ErrRouteConflict indicates that two operations claim the same
	// (pattern, method) binding, or that two routes compile to the same
	// canonical name. Configuration-time; fatal.
	ErrRouteConflict = errors.New("route conflict")

	// ErrDuplicatePrefix indicates that two registrations use the same
	// URL prefix. Configuration-time; fatal.
	ErrDuplicatePrefix = errors.New("duplicate prefix")
)

// ConflictError reports a method binding claimed by two operations at the
// same pattern. It unwraps to ErrRouteConflict.
type ConflictError struct {
	Pattern string // canonical URL pattern
	Method  string // contested HTTP method
	First   string // operation that held the binding
	Second  string // operation that tried to claim it
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("route conflict at %s: method %s claimed by both %q and %q",
		e.Pattern, e.Method, e.First, e.Second)
}

func (e *ConflictError) Unwrap() error {
	return ErrRouteConflict
}

// Registration pairs a URL prefix with the ordered operations of one
// resource. Registrations are the compiler's whole input; the compiler
// never consults external state.
type Registration struct {
	// Prefix is the resource's URL prefix, without surrounding slashes.
	// It may contain interior slashes for nested prefixes.
	Prefix string

	// Basename is the stem for canonical route names
	// ("{basename}-list", "{basename}-detail", ...).
	Basename string

	// Operations is the ordered operation set, as produced by
	// action.Set.Describe.
	Operations []action.Operation
}

// Compile turns an ordered list of registrations into the ordered route
// list. It is pure and deterministic: identical input order always
// yields an identical output.
//
// For each registration, in order: the collection route at "/{prefix}/"
// (if any collection-scope standard operation is supported), the member
// route at "/{prefix}/{id}/", then one route per extra operation in
// declaration order, at "/{prefix}/{id}/{slug}/" for member scope or
// "/{prefix}/{slug}/" for collection scope.
//
// Compilation fails with an error wrapping ErrDuplicatePrefix or
// ErrRouteConflict on conflicting input. These are fatal configuration
// errors; a caller must not serve from a partially compiled result.
func Compile(regs []Registration) ([]*Route, error) {
	seen := make(map[string]struct{}, len(regs))
	var routes []*Route

	for _, reg := range regs {
		prefix := strings.Trim(reg.Prefix, "/")
		if prefix == "" {
			return nil, fmt.Errorf("%w: registration requires a non-empty prefix", ErrRouteConflict)
		}
		if _, dup := seen[prefix]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePrefix, prefix)
		}
		seen[prefix] = struct{}{}

		basename := reg.Basename
		if basename == "" {
			basename = prefix
		}

		compiled, err := compileResource(prefix, basename, reg.Operations)
		if err != nil {
			return nil, err
		}
		routes = append(routes, compiled...)
	}

	return routes, nil
}

// compileResource emits the routes of a single resource in canonical
// order: collection, member, then extras in declaration order.
func compileResource(prefix, basename string, ops []action.Operation) ([]*Route, error) {
	var (
		collection []action.Operation
		member     []action.Operation
		extras     []action.Operation
	)
	for _, op := range ops {
		switch {
		case !op.Standard():
			extras = append(extras, op)
		case op.Scope == action.ScopeCollection:
			collection = append(collection, op)
		default:
			member = append(member, op)
		}
	}

	var routes []*Route

	if len(collection) > 0 {
		r, err := NewRoute("/"+prefix+"/", basename+"-list", action.ScopeCollection, collection)
		if err != nil {
			return nil, err
		}
		routes = append(routes, r)
	}
	if len(member) > 0 {
		r, err := NewRoute("/"+prefix+"/{id}/", basename+"-detail", action.ScopeMember, member)
		if err != nil {
			return nil, err
		}
		routes = append(routes, r)
	}

	for _, ex := range extras {
		slug := ex.Slug
		if slug == "" {
			slug = action.Slugify(ex.Name)
		}
		if slug == "" || strings.Contains(slug, "/") {
			return nil, fmt.Errorf("%w: operation %q has invalid path segment %q",
				ErrRouteConflict, ex.Name, slug)
		}

		suffix := ex.ReverseName
		if suffix == "" {
			suffix = slug
		}

		pattern := "/" + prefix + "/" + slug + "/"
		if ex.Scope == action.ScopeMember {
			pattern = "/" + prefix + "/{id}/" + slug + "/"
		}

		r, err := NewRoute(pattern, basename+"-"+suffix, ex.Scope, []action.Operation{ex})
		if err != nil {
			return nil, err
		}
		routes = append(routes, r)
	}

	return routes, nil
}
