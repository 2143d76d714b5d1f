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
	"net/http"
	"slices"
	"strings"
)

// Scope identifies whether an operation addresses the whole collection
// or one identified member of it.
type Scope uint8

const (
	// ScopeCollection targets the resource collection as a whole (e.g. list, create).
	ScopeCollection Scope = iota

	// ScopeMember targets a single identified member of the collection
	// (e.g. retrieve, update, destroy).
	ScopeMember
)

// String returns the scope name for diagnostics and error messages.
func (s Scope) String() string {
	switch s {
	case ScopeCollection:
		return "collection"
	case ScopeMember:
		return "member"
	default:
		return "unknown"
	}
}

// Capability is a flag set describing which standard CRUD operations a
// resource supports. Capabilities synthesize the standard operations so
// that read-only resources expose only List and Retrieve.
type Capability uint8

const (
	// CapRead enables the "list" and "retrieve" operations.
	CapRead Capability = 1 << iota

	// CapWrite enables the "create", "update", and "partial_update" operations.
	CapWrite

	// CapDelete enables the "destroy" operation.
	CapDelete

	// CapReadWrite combines CapRead and CapWrite.
	CapReadWrite = CapRead | CapWrite

	// CapAll enables every standard operation.
	CapAll = CapRead | CapWrite | CapDelete
)

// Has reports whether the capability set includes all flags in c2.
func (c Capability) Has(c2 Capability) bool {
	return c&c2 == c2
}

// String returns the enabled capability flags joined with "|", or "none"
// for an empty set. Used in diagnostics and error messages.
func (c Capability) String() string {
	if c == 0 {
		return "none"
	}
	parts := make([]string, 0, 3)
	if c.Has(CapRead) {
		parts = append(parts, "read")
	}
	if c.Has(CapWrite) {
		parts = append(parts, "write")
	}
	if c.Has(CapDelete) {
		parts = append(parts, "delete")
	}
	return strings.Join(parts, "|")
}

// Standard operation names. Extra operations must not reuse these.
const (
	List          = "list"
	Create        = "create"
	Retrieve      = "retrieve"
	Update        = "update"
	PartialUpdate = "partial_update"
	Destroy       = "destroy"
)

// reservedNames are the standard operation names, in canonical order.
var reservedNames = []string{List, Create, Retrieve, Update, PartialUpdate, Destroy}

// Handler is the callable bound to an operation.
//
// It is deliberately opaque in this package so operation declarations do
// not depend on transport types. The consuming layer defines the concrete
// signature and type-asserts at invocation time.
type Handler any

// Operation is one semantic action a resource supports, bound to one or
// more HTTP methods at a single scope.
//
// Operations are value types. Once a Set has been registered they are
// treated as immutable; the compiler copies them into the route table.
type Operation struct {
	// Name identifies the semantic action: one of the standard names
	// (List, Retrieve, ...) or a caller-defined extra operation name.
	Name string

	// Scope is the target scope: collection or member.
	Scope Scope

	// Methods is the non-empty, ordered set of HTTP methods that invoke
	// this operation. Each method may bind to at most one operation per
	// route; overlaps are rejected at compile time.
	Methods []string

	// Slug is the URL path segment for extra operations. Empty for
	// standard operations. Defaults to Slugify(Name).
	Slug string

	// ReverseName overrides the name suffix used for reverse lookup.
	// Empty means the slug is used.
	ReverseName string

	// Handler is the optional bound callable, invoked by the HTTP
	// boundary adapter. May be nil when dispatch results are consumed
	// directly.
	Handler Handler
}

// Allows reports whether the operation is bound to the given HTTP method.
func (op Operation) Allows(method string) bool {
	return slices.Contains(op.Methods, method)
}

// Standard reports whether the operation has a standard CRUD name.
func (op Operation) Standard() bool {
	return slices.Contains(reservedNames, op.Name)
}

// Slugify derives the default URL path segment from an operation name:
// lowercased, with underscores replaced by hyphens.
//
// Example: Slugify("set_password") returns "set-password".
func Slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), "_", "-")
}

// canonicalMethod uppercases a method name so declarations may use
// "get" or "GET" interchangeably.
func canonicalMethod(method string) string {
	switch strings.ToUpper(method) {
	case http.MethodGet:
		return http.MethodGet
	case http.MethodPost:
		return http.MethodPost
	case http.MethodPut:
		return http.MethodPut
	case http.MethodPatch:
		return http.MethodPatch
	case http.MethodDelete:
		return http.MethodDelete
	case http.MethodHead:
		return http.MethodHead
	case http.MethodOptions:
		return http.MethodOptions
	default:
		return strings.ToUpper(method)
	}
}
