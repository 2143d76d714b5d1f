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
	"io"
	"log/slog"
	"strings"

	"rivaas.dev/restroute/action"
	"rivaas.dev/restroute/compiler"
)

// noopLogger is a singleton no-op logger used when no logger is configured.
var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// defaultIndexName is the canonical name of the synthetic root index route.
const defaultIndexName = "api-root"

// Registry collects resource registrations during the configuration
// phase and compiles them into an immutable Dispatcher.
//
// Registration is single-threaded by contract: it happens at process
// startup, before any request is served. All configuration errors
// (ErrConflictingOperation, ErrRouteConflict, ErrDuplicatePrefix) are
// reported by Register or Compile and must prevent the server from
// starting.
//
// Example:
//
//	reg := restroute.MustNew()
//	reg.Register("snippets", action.NewSet(action.CapAll).
//	    Extra("highlight"))
//	reg.Register("users", action.NewSet(action.CapRead))
//
//	d, err := reg.Compile()
//	if err != nil {
//	    log.Fatalf("route compilation failed: %v", err)
//	}
//	http.ListenAndServe(":8080", d)
type Registry struct {
	rootPrefix   string // "" for root, otherwise "/api" style (no trailing slash)
	indexName    string
	includeIndex bool
	logger       *slog.Logger
	diagnostics  DiagnosticHandler
	recorder     DispatchRecorder
	notFound     HandlerFunc

	registrations []compiler.Registration
	prefixes      map[string]struct{}
	compiled      bool
}

// Option defines functional options for registry configuration.
type Option func(*Registry)

// New creates a registry with optional configuration.
//
// Configuration is validated immediately rather than at request time.
// For a version that panics instead of returning an error, use MustNew.
//
// Example:
//
//	reg, err := restroute.New(restroute.WithRootPrefix("/api"))
//	if err != nil {
//	    log.Fatalf("invalid registry configuration: %v", err)
//	}
func New(opts ...Option) (*Registry, error) {
	g := &Registry{
		indexName:    defaultIndexName,
		includeIndex: true,
		logger:       noopLogger,
		prefixes:     make(map[string]struct{}),
	}

	for _, opt := range opts {
		opt(g)
	}

	if err := g.validate(); err != nil {
		return nil, fmt.Errorf("registry configuration validation failed: %w", err)
	}

	return g, nil
}

// MustNew creates a registry and panics if configuration is invalid.
// Convenient when configuration errors should fail the application
// immediately at startup.
func MustNew(opts ...Option) *Registry {
	g, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("restroute.MustNew: %v", err))
	}
	return g
}

// validate checks the registry configuration for common errors.
func (g *Registry) validate() error {
	if g.rootPrefix != "" && !strings.HasPrefix(g.rootPrefix, "/") {
		return fmt.Errorf("%w: %q", ErrInvalidRootPrefix, g.rootPrefix)
	}
	if g.includeIndex && g.indexName == "" {
		return ErrIndexNameEmpty
	}
	return nil
}

// RegisterOption configures a single registration.
type RegisterOption func(*compiler.Registration)

// WithBasename overrides the stem used for the resource's canonical
// route names. Defaults to the registration prefix.
//
// Example:
//
//	reg.Register("code-snippets", set, restroute.WithBasename("snippets"))
//	// routes are named snippets-list, snippets-detail, ...
func WithBasename(basename string) RegisterOption {
	return func(r *compiler.Registration) {
		r.Basename = basename
	}
}

// Register adds one resource under the given URL prefix. The prefix is
// relative to the registry's root prefix and unique across
// registrations; reusing one fails with ErrDuplicatePrefix.
//
// Declaration errors collected by the action set builder surface here,
// wrapped in ErrConflictingOperation, so conflicts are caught before the
// route table exists.
func (g *Registry) Register(prefix string, set *action.Set, opts ...RegisterOption) error {
	if g.compiled {
		return ErrAlreadyCompiled
	}

	trimmed := strings.Trim(prefix, "/")
	if trimmed == "" {
		return fmt.Errorf("%w: registration requires a non-empty prefix", ErrRouteConflict)
	}
	if _, dup := g.prefixes[trimmed]; dup {
		return fmt.Errorf("%w: %q", ErrDuplicatePrefix, trimmed)
	}

	ops, err := set.Describe()
	if err != nil {
		return fmt.Errorf("registering %q: %w", trimmed, err)
	}

	reg := compiler.Registration{
		Prefix:     trimmed,
		Basename:   trimmed,
		Operations: ops,
	}
	for _, opt := range opts {
		opt(&reg)
	}

	g.prefixes[trimmed] = struct{}{}
	g.registrations = append(g.registrations, reg)
	g.emit(DiagResourceRegistered, "resource registered", map[string]any{
		"prefix":       trimmed,
		"basename":     reg.Basename,
		"capabilities": set.Capabilities().String(),
		"operations":   len(ops),
	})

	return nil
}

// MustRegister is Register, panicking on error. Registration failures are
// configuration bugs and must never reach a serving process.
func (g *Registry) MustRegister(prefix string, set *action.Set, opts ...RegisterOption) {
	if err := g.Register(prefix, set, opts...); err != nil {
		panic(fmt.Sprintf("restroute.MustRegister: %v", err))
	}
}

// Compile derives the full route table from the registrations and
// returns the Dispatcher that owns it. The table is built exactly once;
// after Compile the registry rejects further registrations and any
// change in registrations requires a new registry.
//
// The synthetic index route is inserted first (unless disabled), so it
// wins matching for the root prefix itself and never shadows a resource.
func (g *Registry) Compile() (*Dispatcher, error) {
	if g.compiled {
		return nil, ErrAlreadyCompiled
	}

	// Qualify prefixes with the root prefix so compiled patterns and
	// reversed URLs are absolute.
	regs := make([]compiler.Registration, len(g.registrations))
	copy(regs, g.registrations)
	if g.rootPrefix != "" {
		for i := range regs {
			regs[i].Prefix = strings.Trim(g.rootPrefix, "/") + "/" + regs[i].Prefix
		}
	}

	routes, err := compiler.Compile(regs)
	if err != nil {
		return nil, err
	}

	d := &Dispatcher{
		logger:      g.logger,
		diagnostics: g.diagnostics,
		recorder:    g.recorder,
		notFound:    g.notFound,
		basenames:   make([]string, 0, len(g.registrations)),
	}
	for _, reg := range g.registrations {
		d.basenames = append(d.basenames, reg.Basename)
	}

	if g.includeIndex {
		indexRoute, err := newIndexRoute(g.rootPrefix, g.indexName, d)
		if err != nil {
			return nil, err
		}
		routes = append([]*compiler.Route{indexRoute}, routes...)
	}

	table, err := compiler.NewTable(routes)
	if err != nil {
		return nil, err
	}
	d.table = table

	g.compiled = true
	g.emit(DiagTableCompiled, "route table compiled", map[string]any{
		"routes":    table.Len(),
		"resources": len(g.registrations),
	})

	return d, nil
}

// MustCompile is Compile, panicking on error.
func (g *Registry) MustCompile() *Dispatcher {
	d, err := g.Compile()
	if err != nil {
		panic(fmt.Sprintf("restroute.MustCompile: %v", err))
	}
	return d
}

// emit sends a diagnostic event if a handler is configured.
func (g *Registry) emit(kind DiagnosticKind, message string, fields map[string]any) {
	if g.diagnostics != nil {
		g.diagnostics.OnDiagnostic(DiagnosticEvent{
			Kind:    kind,
			Message: message,
			Fields:  fields,
		})
	}
}
