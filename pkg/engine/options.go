/*
 * Copyright 2018 The Trickster Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package engine

import (
	"github.com/trickstercache/blueprint/pkg/observability/logging"
	"github.com/trickstercache/blueprint/pkg/observability/tracing"
)

// Option is a functional option for configuring an Engine
type Option func(*Engine)

// WithLogger sets the Logger the Engine reports to. A nil Logger is ignored.
func WithLogger(l logging.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithTracer sets the Tracer used to create one span per request
func WithTracer(t *tracing.Tracer) Option {
	return func(e *Engine) {
		e.tracer = t
	}
}

// WithConnectionsLimit caps the number of concurrently served connections.
// n <= 0 leaves connections unlimited.
func WithConnectionsLimit(n int) Option {
	return func(e *Engine) {
		e.connectionsLimit = n
	}
}

// WithMaxRequestBytes bounds how many bytes are read for a single request.
// n <= 0 uses request.DefaultMaxBytes.
func WithMaxRequestBytes(n int) Option {
	return func(e *Engine) {
		e.maxRequestBytes = n
	}
}
