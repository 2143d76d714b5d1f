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

// Package action models the operations a resource exposes.
//
// A resource declares its capabilities once and the package synthesizes
// the standard CRUD operations from them: CapRead yields list/retrieve,
// CapWrite yields create/update/partial_update, CapDelete yields destroy.
// Arbitrary named extra operations are appended through the Set builder,
// each carrying its HTTP method set, target scope (collection or member),
// and URL path segment.
//
// Declaration conflicts — two extras claiming the same (scope, slug)
// pair, or an extra reusing a standard name — are caught when the set is
// described, before any route exists.
//
//	set := action.NewSet(action.CapAll).
//	    Handle(action.List, listSnippets).
//	    Extra("highlight", action.WithHandler(highlightSnippet))
//
// Sets are consumed by a registry (see the restroute package), which
// hands their described operations to the route compiler.
package action
