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

import "fmt"

// Table is the full ordered route table. It is built once and is strictly
// read-only thereafter: all lookups are lock-free and safe for unbounded
// concurrent use. Rebuilding requires discarding the table and compiling
// a new one; there is no incremental mutation.
type Table struct {
	routes []*Route
	byName map[string]*Route
}

// NewTable builds a table from routes in the given order. The order is
// load-bearing: Match tests routes in table order and the first match
// wins. Duplicate canonical names fail with an error wrapping
// ErrRouteConflict.
func NewTable(routes []*Route) (*Table, error) {
	t := &Table{
		routes: make([]*Route, len(routes)),
		byName: make(map[string]*Route, len(routes)),
	}
	copy(t.routes, routes)

	for _, r := range t.routes {
		if prev, dup := t.byName[r.name]; dup {
			return nil, fmt.Errorf("%w: name %q used by both %s and %s",
				ErrRouteConflict, r.name, prev.pattern, r.pattern)
		}
		t.byName[r.name] = r
	}

	return t, nil
}

// Len returns the number of routes in the table.
func (t *Table) Len() int {
	return len(t.routes)
}

// Routes returns a copy of the ordered route list.
func (t *Table) Routes() []*Route {
	out := make([]*Route, len(t.routes))
	copy(out, t.routes)
	return out
}

// Lookup returns the route with the given canonical name.
func (t *Table) Lookup(name string) (*Route, bool) {
	r, ok := t.byName[name]
	return r, ok
}

// Match resolves a path to the first route it matches, in table order,
// along with the extracted member identifier (empty for collection
// routes). A linear scan is intentional: tables in this domain hold tens
// of routes, not thousands, and scan order is the ordering contract.
func (t *Table) Match(path string) (*Route, string, bool) {
	for _, r := range t.routes {
		if id, ok := r.match(path); ok {
			return r, id, true
		}
	}
	return nil, "", false
}
