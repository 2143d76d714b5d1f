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

// DiagnosticEvent represents a registry or dispatch diagnostic.
// These are informational events that may indicate configuration issues
// or degraded behavior.
//
// Diagnostic events are optional - routing functions correctly whether
// they are collected or not. They provide visibility into edge cases for
// observability systems.
type DiagnosticEvent struct {
	Kind    DiagnosticKind
	Message string
	Fields  map[string]any // Structured context
}

// DiagnosticKind categorizes diagnostic events.
type DiagnosticKind string

const (
	// Configuration diagnostics
	DiagResourceRegistered DiagnosticKind = "resource_registered"
	DiagTableCompiled      DiagnosticKind = "route_table_compiled"

	// Dispatch diagnostics
	DiagIndexReverseFailed DiagnosticKind = "index_reverse_failed"
	DiagSlashRedirect      DiagnosticKind = "trailing_slash_redirect"
	DiagUnboundOperation   DiagnosticKind = "operation_without_handler"
)

// DiagnosticHandler receives diagnostic events from the registry and
// dispatcher. Implementations may log, emit metrics, trace events, or
// ignore them.
//
// This interface is optional - if not provided, diagnostics are silently
// dropped.
//
// Example with logging:
//
//	import "log/slog"
//
//	handler := restroute.DiagnosticHandlerFunc(func(e restroute.DiagnosticEvent) {
//	    slog.Warn(e.Message, "kind", e.Kind, "fields", e.Fields)
//	})
//	reg := restroute.MustNew(restroute.WithDiagnostics(handler))
type DiagnosticHandler interface {
	OnDiagnostic(DiagnosticEvent)
}

// DiagnosticHandlerFunc is a function adapter for DiagnosticHandler.
type DiagnosticHandlerFunc func(DiagnosticEvent)

func (f DiagnosticHandlerFunc) OnDiagnostic(e DiagnosticEvent) {
	f(e)
}
