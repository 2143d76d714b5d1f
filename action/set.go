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

package action

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
)

var (
	// ErrConflictingOperation indicates that two declared operations
	// collide: either two extras share the same (scope, slug) pair, or an
	// extra reuses a standard operation name. This is a configuration-time
	// error and must prevent the server from starting.
	ErrConflictingOperation = errors.New("conflicting operation declaration")

	// ErrNoMethods indicates that an operation was declared with an empty
	// HTTP method set.
	ErrNoMethods = errors.New("operation requires at least one HTTP method")
)

// Set is the static catalog of operations a resource supports: standard
// CRUD operations synthesized from a capability flag set, plus explicitly
// declared extra operations.
//
// Sets use a builder pattern. Declaration errors are collected and
// surfaced by Describe, so a fluent chain never needs intermediate error
// checks:
//
//	set := action.NewSet(action.CapAll).
//	    Extra("highlight", action.WithHandler(highlight)).
//	    Extra("recent", action.WithScope(action.ScopeCollection))
//
// A Set is not safe for concurrent mutation; build it during
// configuration and hand it to a registry.
type Set struct {
	caps     Capability
	handlers map[string]Handler // standard operation name -> handler
	extras   []Operation
	err      error // first declaration error, reported by Describe
}

// NewSet creates a Set whose standard operations are derived from the
// capability flags. CapRead yields list and retrieve; CapWrite yields
// create, update, and partial_update; CapDelete yields destroy.
func NewSet(caps Capability) *Set {
	return &Set{caps: caps}
}

// ExtraOption configures a declared extra operation.
type ExtraOption func(*Operation)

// WithMethods sets the HTTP methods that invoke the extra operation.
// Defaults to GET when not specified. Method names are case-insensitive.
func WithMethods(methods ...string) ExtraOption {
	return func(op *Operation) {
		op.Methods = op.Methods[:0]
		for _, m := range methods {
			op.Methods = append(op.Methods, canonicalMethod(m))
		}
	}
}

// WithScope sets the target scope of the extra operation.
// Defaults to ScopeMember.
func WithScope(scope Scope) ExtraOption {
	return func(op *Operation) {
		op.Scope = scope
	}
}

// WithSlug overrides the URL path segment for the extra operation.
// Defaults to Slugify(name).
func WithSlug(slug string) ExtraOption {
	return func(op *Operation) {
		op.Slug = slug
	}
}

// WithReverseName overrides the suffix used to build the route's
// canonical name for reverse lookup. Defaults to the slug.
func WithReverseName(name string) ExtraOption {
	return func(op *Operation) {
		op.ReverseName = name
	}
}

// WithHandler binds a callable to the extra operation.
func WithHandler(h Handler) ExtraOption {
	return func(op *Operation) {
		op.Handler = h
	}
}

// Handle binds a callable to a standard operation (List, Retrieve, ...).
// Binding a handler for an operation the capability set does not include
// is a declaration error reported by Describe.
func (s *Set) Handle(name string, h Handler) *Set {
	if !slices.Contains(reservedNames, name) {
		s.fail(fmt.Errorf("%w: %q is not a standard operation; declare it with Extra", ErrConflictingOperation, name))
		return s
	}
	if !s.supports(name) {
		s.fail(fmt.Errorf("%w: capability set does not include %q", ErrConflictingOperation, name))
		return s
	}
	if s.handlers == nil {
		s.handlers = make(map[string]Handler)
	}
	s.handlers[name] = h
	return s
}

// Extra declares a named extra operation. Defaults: method set {GET},
// member scope, slug derived from the name.
//
// Declaring two extras with the same (scope, slug) pair, or reusing a
// standard operation name, fails with ErrConflictingOperation when the
// set is described — before any route is compiled.
func (s *Set) Extra(name string, opts ...ExtraOption) *Set {
	op := Operation{
		Name:    name,
		Scope:   ScopeMember,
		Methods: []string{http.MethodGet},
		Slug:    Slugify(name),
	}
	for _, opt := range opts {
		opt(&op)
	}

	if name == "" {
		s.fail(fmt.Errorf("%w: extra operation requires a name", ErrConflictingOperation))
		return s
	}
	if slices.Contains(reservedNames, name) {
		s.fail(fmt.Errorf("%w: %q is a standard operation name", ErrConflictingOperation, name))
		return s
	}
	if len(op.Methods) == 0 {
		s.fail(fmt.Errorf("%w: extra operation %q", ErrNoMethods, name))
		return s
	}
	for _, prev := range s.extras {
		if prev.Scope == op.Scope && prev.Slug == op.Slug {
			s.fail(fmt.Errorf("%w: %q and %q share %s path segment %q",
				ErrConflictingOperation, prev.Name, op.Name, op.Scope, op.Slug))
			return s
		}
	}

	s.extras = append(s.extras, op)
	return s
}

// fail records the first declaration error. Later declarations are still
// checked so chains remain usable, but only the first error is reported.
func (s *Set) fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

// supports reports whether the capability flags include the named
// standard operation.
func (s *Set) supports(name string) bool {
	switch name {
	case List, Retrieve:
		return s.caps.Has(CapRead)
	case Create, Update, PartialUpdate:
		return s.caps.Has(CapWrite)
	case Destroy:
		return s.caps.Has(CapDelete)
	default:
		return false
	}
}

// Capabilities returns the capability flag set the Set was built with.
func (s *Set) Capabilities() Capability {
	return s.caps
}

// Describe returns the ordered operations of the set: standard operations
// in canonical order (list, create, retrieve, update, partial_update,
// destroy), then extras in declaration order.
//
// Any declaration error collected by the builder is returned here, so
// registries surface conflicts at registration time rather than at
// request time.
func (s *Set) Describe() ([]Operation, error) {
	if s.err != nil {
		return nil, s.err
	}

	ops := make([]Operation, 0, len(reservedNames)+len(s.extras))
	add := func(name string, scope Scope, method string) {
		if !s.supports(name) {
			return
		}
		ops = append(ops, Operation{
			Name:    name,
			Scope:   scope,
			Methods: []string{method},
			Handler: s.handlers[name],
		})
	}

	add(List, ScopeCollection, http.MethodGet)
	add(Create, ScopeCollection, http.MethodPost)
	add(Retrieve, ScopeMember, http.MethodGet)
	add(Update, ScopeMember, http.MethodPut)
	add(PartialUpdate, ScopeMember, http.MethodPatch)
	add(Destroy, ScopeMember, http.MethodDelete)

	for _, ex := range s.extras {
		ops = append(ops, Operation{
			Name:        ex.Name,
			Scope:       ex.Scope,
			Methods:     slices.Clone(ex.Methods),
			Slug:        ex.Slug,
			ReverseName: ex.ReverseName,
			Handler:     ex.Handler,
		})
	}

	return ops, nil
}
