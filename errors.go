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
	"fmt"
	"strings"

	"rivaas.dev/restroute/action"
	"rivaas.dev/restroute/compiler"
)

// Configuration-time errors. These are fatal: a registry that reports one
// must not be compiled into a serving dispatcher.
var (
	// ErrConflictingOperation indicates colliding operation declarations
	// within one resource. Re-exported from the action package.
	ErrConflictingOperation = action.ErrConflictingOperation

	// ErrRouteConflict indicates overlapping method bindings or duplicate
	// route names at compile time. Re-exported from the compiler package.
	ErrRouteConflict = compiler.ErrRouteConflict

	// ErrDuplicatePrefix indicates re-registration of a URL prefix that is
	// already in use. Re-exported from the compiler package.
	ErrDuplicatePrefix = compiler.ErrDuplicatePrefix

	// ErrAlreadyCompiled indicates a Register call after Compile. The
	// route table is immutable; changing registrations requires building
	// a new registry and recompiling.
	ErrAlreadyCompiled = errors.New("registry already compiled")

	// ErrInvalidRootPrefix indicates a root prefix that does not start
	// with a slash.
	ErrInvalidRootPrefix = errors.New("root prefix must start with /")

	// ErrIndexNameEmpty indicates an empty index route name.
	ErrIndexNameEmpty = errors.New("index route name must not be empty")
)

// Request-time errors. These are expected outcomes, not failures: the
// serving layer maps them to the appropriate response.
var (
	// ErrNotFound indicates that a path matched no route.
	ErrNotFound = errors.New("no matching route")

	// ErrMethodNotAllowed indicates that a path matched a route whose
	// method map does not include the requested method.
	ErrMethodNotAllowed = errors.New("method not allowed")

	// ErrRouteNotFound indicates a reverse lookup by an unknown route name.
	ErrRouteNotFound = errors.New("route not found")
)

// NotFoundError reports a dispatch path that matched no route in the
// table. It unwraps to ErrNotFound so callers can use errors.Is.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no route matches %q", e.Path)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// MethodNotAllowedError reports a dispatch whose path matched a route but
// whose method is not bound on it. Allowed carries exactly the route's
// bound methods so the boundary layer can populate an Allow header.
// It unwraps to ErrMethodNotAllowed.
type MethodNotAllowedError struct {
	Path    string
	Method  string
	Pattern string
	Allowed []string
}

func (e *MethodNotAllowedError) Error() string {
	return fmt.Sprintf("method %s not allowed for %q (allowed: %s)",
		e.Method, e.Path, strings.Join(e.Allowed, ", "))
}

func (e *MethodNotAllowedError) Unwrap() error {
	return ErrMethodNotAllowed
}
