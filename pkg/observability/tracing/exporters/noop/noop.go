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

// Package noop provides a Tracer that records nothing
package noop

import (
	"github.com/trickstercache/blueprint/pkg/observability/tracing"
	"github.com/trickstercache/blueprint/pkg/observability/tracing/options"

	"go.opentelemetry.io/otel/trace"
)

// New returns a new Noop Tracer
func New(opts *options.Options) (*tracing.Tracer, error) {
	if opts == nil {
		opts = options.New()
	}
	return &tracing.Tracer{
		Name:    opts.ServiceName,
		Tracer:  trace.NewNoopTracerProvider().Tracer(opts.ServiceName),
		Options: opts,
	}, nil
}
