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

// Package tracing provides distributed tracing services to the engine
package tracing

import (
	"context"
	"net/http"
	"sort"

	"github.com/trickstercache/blueprint/pkg/observability/tracing/options"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// ShutdownFunc defines a function used to Flush a Tracer
type ShutdownFunc func(context.Context) error

// Tracer is a Tracer object used by the engine
type Tracer struct {
	trace.Tracer
	Name         string
	ShutdownFunc ShutdownFunc
	Options      *options.Options
}

// Shutdown flushes and stops the Tracer's exporter, if it has one
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t == nil || t.ShutdownFunc == nil {
		return nil
	}
	return t.ShutdownFunc(ctx)
}

const serviceNameKey = "service.name"

// Tags represents a collection of Tags
type Tags map[string]string

// HTTPToCode translates an HTTP status code into an otel status code
func HTTPToCode(status int) codes.Code {
	switch {
	case status < http.StatusBadRequest:
		return codes.Ok
	default:
		return codes.Error
	}
}

// Merge merges t2, when not nil, into t
func (t Tags) Merge(t2 Tags) {
	if t2 == nil {
		return
	}
	for k, v := range t2 {
		t[k] = v
	}
}

// ToAttr returns the Tags map as an Attributes List, sorted by key
func (t Tags) ToAttr() []attribute.KeyValue {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	attr := make([]attribute.KeyValue, len(keys))
	for i, k := range keys {
		attr[i] = attribute.String(k, t[k])
	}
	return attr
}

// Sampler returns the sampler for the provided sample rate
func Sampler(rate float64) sdktrace.Sampler {
	switch {
	case rate <= 0:
		return sdktrace.NeverSample()
	case rate >= 1:
		return sdktrace.AlwaysSample()
	default:
		return sdktrace.TraceIDRatioBased(rate)
	}
}

// ResourceAttributes returns the service name and configured tags as
// resource attributes. A service.name tag does not override the service name.
func ResourceAttributes(opts *options.Options) []attribute.KeyValue {
	serviceName := options.DefaultTracerServiceName
	tags := make(Tags)
	if opts != nil {
		if opts.ServiceName != "" {
			serviceName = opts.ServiceName
		}
		tags.Merge(opts.Tags)
	}
	delete(tags, serviceNameKey)
	return append([]attribute.KeyValue{attribute.String(serviceNameKey, serviceName)},
		tags.ToAttr()...)
}
