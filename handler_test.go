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
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/restroute/action"
)

// echoHandler writes the operation name and extracted identifier so
// tests can assert which operation was invoked.
func echoHandler(w http.ResponseWriter, _ *http.Request, res Resolution) {
	fmt.Fprintf(w, "%s:%s", res.Operation.Name, res.ID)
}

func handlerDispatcher(t *testing.T, opts ...Option) *Dispatcher {
	t.Helper()
	reg := MustNew(opts...)
	require.NoError(t, reg.Register("snippets", action.NewSet(action.CapAll).
		Handle(action.List, HandlerFunc(echoHandler)).
		Handle(action.Retrieve, HandlerFunc(echoHandler)).
		Extra("highlight", action.WithHandler(HandlerFunc(echoHandler)))))
	require.NoError(t, reg.Register("users", action.NewSet(action.CapRead).
		Handle(action.List, HandlerFunc(echoHandler))))

	d, err := reg.Compile()
	require.NoError(t, err)
	return d
}

func doRequest(d *Dispatcher, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	d.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestServeHTTP_InvokesBoundHandler(t *testing.T) {
	d := handlerDispatcher(t)

	rec := doRequest(d, http.MethodGet, "/snippets/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "list:", rec.Body.String())

	rec = doRequest(d, http.MethodGet, "/snippets/42/highlight/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "highlight:42", rec.Body.String())
}

func TestServeHTTP_SlashVariantAliasIs404(t *testing.T) {
	d := handlerDispatcher(t)

	// A doubled trailing slash ends in "/" so it would bypass the
	// canonical-form redirect; it must not reach the handler at all.
	rec := doRequest(d, http.MethodGet, "/snippets//")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(d, http.MethodGet, "//snippets/")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServeHTTP_TrailingSlashRedirect(t *testing.T) {
	d := handlerDispatcher(t)

	rec := doRequest(d, http.MethodGet, "/snippets/42")
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/snippets/42/", rec.Header().Get("Location"))
}

func TestServeHTTP_RedirectPreservesQuery(t *testing.T) {
	d := handlerDispatcher(t)

	rec := doRequest(d, http.MethodGet, "/snippets?page=2")
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/snippets/?page=2", rec.Header().Get("Location"))
}

func TestServeHTTP_MethodNotAllowed(t *testing.T) {
	d := handlerDispatcher(t)

	rec := doRequest(d, http.MethodPost, "/snippets/42/highlight/")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET", rec.Header().Get("Allow"),
		"Allow header carries exactly the route's bound methods")

	rec = doRequest(d, http.MethodOptions, "/snippets/42/")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET, PUT, PATCH, DELETE", rec.Header().Get("Allow"))
}

func TestServeHTTP_NotFound(t *testing.T) {
	d := handlerDispatcher(t)

	rec := doRequest(d, http.MethodGet, "/missing/")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServeHTTP_CustomNotFoundHandler(t *testing.T) {
	d := handlerDispatcher(t, WithNotFoundHandler(
		func(w http.ResponseWriter, _ *http.Request, _ Resolution) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"detail":"not found"}`)
		},
	))

	rec := doRequest(d, http.MethodGet, "/missing/")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"not found"}`, rec.Body.String())
}

func TestServeHTTP_UnboundOperation(t *testing.T) {
	d := handlerDispatcher(t)

	// Update has no bound handler in the fixture.
	rec := doRequest(d, http.MethodPut, "/snippets/42/")
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestServeHTTP_IndexRendersResourceMap(t *testing.T) {
	d := handlerDispatcher(t)

	rec := doRequest(d, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var index map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &index))
	assert.Equal(t, map[string]string{
		"snippets": "/snippets/",
		"users":    "/users/",
	}, index)
}

func TestServeHTTP_RecordsOutcomes(t *testing.T) {
	type record struct {
		method  string
		pattern string
		outcome string
		status  int
	}
	var records []record

	d := handlerDispatcher(t, WithRecorder(DispatchRecorderFunc(
		func(_ context.Context, method, pattern, outcome string, status int) {
			records = append(records, record{method, pattern, outcome, status})
		},
	)))

	doRequest(d, http.MethodGet, "/snippets/")               // matched
	doRequest(d, http.MethodGet, "/snippets/42")             // redirect
	doRequest(d, http.MethodGet, "/missing/")                // not found
	doRequest(d, http.MethodPost, "/snippets/42/highlight/") // method not allowed
	doRequest(d, http.MethodPut, "/snippets/42/")            // unbound

	require.Len(t, records, 5)
	assert.Equal(t, record{http.MethodGet, "/snippets/", OutcomeMatched, http.StatusOK}, records[0])
	assert.Equal(t, record{http.MethodGet, "/snippets/{id}/", OutcomeRedirect, http.StatusMovedPermanently}, records[1])
	assert.Equal(t, record{http.MethodGet, unmatchedPattern, OutcomeNotFound, http.StatusNotFound}, records[2])
	assert.Equal(t, record{http.MethodPost, "/snippets/{id}/highlight/", OutcomeMethodNotAllowed, http.StatusMethodNotAllowed}, records[3])
	assert.Equal(t, record{http.MethodPut, "/snippets/{id}/", OutcomeUnbound, http.StatusNotImplemented}, records[4])
}

func TestServeHTTP_AcceptsRawHandlerFunc(t *testing.T) {
	// Handlers declared as plain functions (not the named HandlerFunc
	// type) are accepted too.
	raw := func(w http.ResponseWriter, _ *http.Request, res Resolution) {
		fmt.Fprint(w, "raw:"+res.ID)
	}

	reg := MustNew(WithoutIndex())
	require.NoError(t, reg.Register("things", action.NewSet(action.CapRead).
		Handle(action.Retrieve, raw)))
	d, err := reg.Compile()
	require.NoError(t, err)

	rec := doRequest(d, http.MethodGet, "/things/9/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "raw:9", rec.Body.String())
}
