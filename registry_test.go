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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/restroute/action"
)

func TestNew_ValidatesConfiguration(t *testing.T) {
	_, err := New(WithRootPrefix("api"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRootPrefix)

	_, err = New(WithIndexName(""))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIndexNameEmpty)

	// An empty index name is fine when the index is disabled.
	_, err = New(WithIndexName(""), WithoutIndex())
	assert.NoError(t, err)
}

func TestMustNew_PanicsOnInvalidConfiguration(t *testing.T) {
	assert.Panics(t, func() {
		MustNew(WithRootPrefix("no-leading-slash"))
	})
}

func TestRegister_DuplicatePrefix(t *testing.T) {
	reg := MustNew()
	require.NoError(t, reg.Register("users", action.NewSet(action.CapRead)))

	err := reg.Register("users", action.NewSet(action.CapAll))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicatePrefix)

	// Normalization: "/users/" is the same prefix.
	err = reg.Register("/users/", action.NewSet(action.CapAll))
	assert.ErrorIs(t, err, ErrDuplicatePrefix)
}

func TestRegister_EmptyPrefix(t *testing.T) {
	reg := MustNew()
	err := reg.Register("/", action.NewSet(action.CapRead))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRouteConflict)
}

func TestRegister_SurfacesDeclarationConflicts(t *testing.T) {
	// The conflicting set fails at registration time, long before a
	// request could hit it.
	set := action.NewSet(action.CapRead).
		Extra("highlight").
		Extra("spotlight", action.WithSlug("highlight"))

	reg := MustNew()
	err := reg.Register("snippets", set)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflictingOperation)
}

func TestRegister_AfterCompileRejected(t *testing.T) {
	reg := MustNew()
	require.NoError(t, reg.Register("users", action.NewSet(action.CapRead)))

	_, err := reg.Compile()
	require.NoError(t, err)

	err = reg.Register("snippets", action.NewSet(action.CapRead))
	assert.ErrorIs(t, err, ErrAlreadyCompiled)

	_, err = reg.Compile()
	assert.ErrorIs(t, err, ErrAlreadyCompiled)
}

func TestCompile_TableShape(t *testing.T) {
	reg := MustNew()
	require.NoError(t, reg.Register("snippets", action.NewSet(action.CapAll).Extra("highlight")))
	require.NoError(t, reg.Register("users", action.NewSet(action.CapRead)))

	d, err := reg.Compile()
	require.NoError(t, err)

	var gotPatterns []string
	var gotNames []string
	for _, info := range d.Routes() {
		gotPatterns = append(gotPatterns, info.Pattern)
		gotNames = append(gotNames, info.Name)
	}

	// Index first, then each resource's routes contiguously in
	// registration order.
	assert.Equal(t, []string{
		"/",
		"/snippets/",
		"/snippets/{id}/",
		"/snippets/{id}/highlight/",
		"/users/",
		"/users/{id}/",
	}, gotPatterns)
	assert.Equal(t, []string{
		"api-root",
		"snippets-list",
		"snippets-detail",
		"snippets-highlight",
		"users-list",
		"users-detail",
	}, gotNames)
}

func TestCompile_RouteCountInvariant(t *testing.T) {
	reg := MustNew()
	require.NoError(t, reg.Register("snippets", action.NewSet(action.CapAll).Extra("highlight").Extra("raw")))
	require.NoError(t, reg.Register("users", action.NewSet(action.CapRead)))

	d, err := reg.Compile()
	require.NoError(t, err)

	// (2 + 2) + (2 + 0) resource routes, plus one index route.
	assert.Equal(t, 7, d.Table().Len())
}

func TestCompile_WithoutIndex(t *testing.T) {
	reg := MustNew(WithoutIndex())
	require.NoError(t, reg.Register("users", action.NewSet(action.CapRead)))

	d, err := reg.Compile()
	require.NoError(t, err)

	assert.Equal(t, 2, d.Table().Len())
	_, err = d.Dispatch("/", "GET")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCompile_WithRootPrefix(t *testing.T) {
	reg := MustNew(WithRootPrefix("/api"))
	require.NoError(t, reg.Register("snippets", action.NewSet(action.CapRead)))

	d, err := reg.Compile()
	require.NoError(t, err)

	infos := d.Routes()
	require.Len(t, infos, 3)
	assert.Equal(t, "/api/", infos[0].Pattern)
	assert.Equal(t, "/api/snippets/", infos[1].Pattern)
	assert.Equal(t, "/api/snippets/{id}/", infos[2].Pattern)

	url, err := d.Reverse("snippets-detail", "42")
	require.NoError(t, err)
	assert.Equal(t, "/api/snippets/42/", url)

	assert.Equal(t, map[string]string{"snippets": "/api/snippets/"}, d.Index())
}

func TestCompile_WithBasename(t *testing.T) {
	reg := MustNew()
	require.NoError(t, reg.Register("code-snippets", action.NewSet(action.CapRead),
		WithBasename("snippets")))

	d, err := reg.Compile()
	require.NoError(t, err)

	url, err := d.Reverse("snippets-list", "")
	require.NoError(t, err)
	assert.Equal(t, "/code-snippets/", url)
}

func TestCompile_EmitsDiagnostics(t *testing.T) {
	var events []DiagnosticEvent
	reg := MustNew(WithDiagnostics(DiagnosticHandlerFunc(func(e DiagnosticEvent) {
		events = append(events, e)
	})))

	require.NoError(t, reg.Register("users", action.NewSet(action.CapRead)))
	_, err := reg.Compile()
	require.NoError(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, DiagResourceRegistered, events[0].Kind)
	assert.Equal(t, "users", events[0].Fields["prefix"])
	assert.Equal(t, "read", events[0].Fields["capabilities"])
	assert.Equal(t, DiagTableCompiled, events[1].Kind)
	assert.Equal(t, 3, events[1].Fields["routes"])
}

func TestMustRegister_PanicsOnConflict(t *testing.T) {
	reg := MustNew()
	reg.MustRegister("users", action.NewSet(action.CapRead))

	assert.Panics(t, func() {
		reg.MustRegister("users", action.NewSet(action.CapRead))
	})
}

func TestIndexName_Override(t *testing.T) {
	reg := MustNew(WithIndexName("root"))
	require.NoError(t, reg.Register("users", action.NewSet(action.CapRead)))

	d, err := reg.Compile()
	require.NoError(t, err)

	url, err := d.Reverse("root", "")
	require.NoError(t, err)
	assert.Equal(t, "/", url)

	_, err = d.Reverse("api-root", "")
	assert.ErrorIs(t, err, ErrRouteNotFound)
}
