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

import "context"

// DispatchRecorder observes dispatch outcomes at the HTTP boundary.
// Implementations typically record metrics keyed by route pattern and
// outcome; the pattern (not the raw path) keeps cardinality bounded.
//
// The recorder is optional - dispatch behaves identically whether one is
// configured or not.
//
// Outcome is one of the Outcome* labels: matched, redirect, not_found,
// method_not_allowed, unbound.
//
// Thread safety: RecordDispatch must be safe for concurrent use.
type DispatchRecorder interface {
	RecordDispatch(ctx context.Context, method, pattern, outcome string, status int)
}

// DispatchRecorderFunc is a function adapter for DispatchRecorder.
type DispatchRecorderFunc func(ctx context.Context, method, pattern, outcome string, status int)

func (f DispatchRecorderFunc) RecordDispatch(ctx context.Context, method, pattern, outcome string, status int) {
	f(ctx, method, pattern, outcome, status)
}
