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

// Package compiler turns resource registrations into an immutable,
// ordered route table.
//
// Compile is pure and deterministic: the same registrations in the same
// order always produce byte-identical route lists. Per registration it
// emits the collection route ("/{prefix}/"), the member route
// ("/{prefix}/{id}/"), then one route per extra operation in declaration
// order. Method bindings are built by inverting each operation's declared
// method set; overlapping claims fail compilation with a *ConflictError.
//
// Canonical patterns always carry a trailing slash. Matching accepts the
// slash-less form as the same route, never as a distinct one. The "{id}"
// placeholder matches one or more characters excluding "/"; no other
// pattern shape is produced.
//
// Tables are read-only after construction and safe for concurrent use
// without locking.
package compiler
