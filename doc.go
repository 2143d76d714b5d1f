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

// Package restroute derives complete REST route tables from declarative
// resource descriptions.
//
// A resource declares its supported operations once - the standard CRUD
// set synthesized from capability flags, plus arbitrary named extra
// operations - and the registry mechanically compiles the full ordered
// table of (URL pattern, HTTP method) to operation bindings, including a
// discoverable root index route.
//
// # Key Properties
//
//   - Static, precompiled method-to-operation mapping per route: the
//     table is built once at startup and looked up at request time, with
//     no dynamic dispatch surface
//   - Deterministic compilation: identical registration order yields an
//     identical table, and match order follows table order
//   - Configuration errors (conflicting operations, route conflicts,
//     duplicate prefixes) fail at registration or compile time, never at
//     request time
//   - Request-time errors (NotFound, MethodNotAllowed) are structured
//     results for the serving layer, never process-fatal
//   - The compiled table is read-only and shared across goroutines
//     without locking
//
// # URL Pattern Shape
//
// Exactly four shapes are produced, all with a canonical trailing slash:
//
//	/{prefix}/                collection operations (list, create)
//	/{prefix}/{id}/           member operations (retrieve, update, ...)
//	/{prefix}/{id}/{slug}/    member-scope extra operations
//	/{prefix}/{slug}/         collection-scope extra operations
//
// The {id} placeholder matches one or more characters excluding "/".
// The slash-less form of any path matches the same route and is answered
// with a redirect to the canonical form.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "net/http"
//
//	    "rivaas.dev/restroute"
//	    "rivaas.dev/restroute/action"
//	)
//
//	func main() {
//	    reg := restroute.MustNew()
//
//	    reg.MustRegister("snippets", action.NewSet(action.CapAll).
//	        Handle(action.List, restroute.HandlerFunc(listSnippets)).
//	        Extra("highlight", action.WithHandler(restroute.HandlerFunc(highlight))))
//
//	    reg.MustRegister("users", action.NewSet(action.CapRead).
//	        Handle(action.List, restroute.HandlerFunc(listUsers)).
//	        Handle(action.Retrieve, restroute.HandlerFunc(getUser)))
//
//	    http.ListenAndServe(":8080", reg.MustCompile())
//	}
//
// # Dispatch Without HTTP
//
// The Dispatcher is transport-free: Dispatch and Reverse operate on
// (path, method) pairs and canonical names, so a custom serving layer can
// consume resolutions directly:
//
//	res, err := d.Dispatch("/snippets/42/highlight/", http.MethodGet)
//	// res.Operation.Name == "highlight", res.ID == "42"
//
//	url, err := d.Reverse("snippets-detail", "42")
//	// url == "/snippets/42/"
//
// # Observability
//
// Dispatch outcomes can be recorded to OpenTelemetry or Prometheus:
//
//	rec, _ := restroute.NewOTelRecorder()
//	reg := restroute.MustNew(
//	    restroute.WithRecorder(rec),
//	    restroute.WithLogger(slog.Default()),
//	)
package restroute
