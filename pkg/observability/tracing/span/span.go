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

// Package span creates and finishes the spans that wrap each request
package span

import (
	"context"
	"strings"

	"github.com/trickstercache/blueprint/pkg/observability/tracing"
	"github.com/trickstercache/blueprint/pkg/proxy/headers"
	"github.com/trickstercache/blueprint/pkg/proxy/request"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// RequestSpanName is the name of the span that wraps a single request
const RequestSpanName = "blueprint.serve"

var propagator = propagation.NewCompositeTextMapPropagator(
	propagation.TraceContext{}, propagation.Baggage{})

// headerCarrier adapts a parsed request's headers to a TextMapCarrier.
// Keys are lowercased since request headers keep the client's casing.
type headerCarrier map[string]string

func newHeaderCarrier(headers map[string]string) headerCarrier {
	hc := make(headerCarrier, len(headers))
	for k, v := range headers {
		hc[strings.ToLower(k)] = v
	}
	return hc
}

func (hc headerCarrier) Get(key string) string {
	return hc[strings.ToLower(key)]
}

func (hc headerCarrier) Set(key, value string) {
	hc[strings.ToLower(key)] = value
}

func (hc headerCarrier) Keys() []string {
	keys := make([]string, 0, len(hc))
	for k := range hc {
		keys = append(keys, k)
	}
	return keys
}

// PrepareRequest returns a context carrying a new request span. Trace context
// sent by the client in traceparent/baggage headers becomes the span's remote
// parent. A nil tracer or request yields the original context and a nil span.
func PrepareRequest(ctx context.Context, tr *tracing.Tracer,
	r *request.Request, remoteAddr string) (context.Context, trace.Span) {

	if ctx == nil {
		ctx = context.Background()
	}
	if tr == nil || tr.Tracer == nil || r == nil {
		return ctx, nil
	}

	ctx = propagator.Extract(ctx, newHeaderCarrier(r.Headers))

	attrs := []attribute.KeyValue{
		attribute.String("http.method", r.Method.String()),
		attribute.String("http.target", r.Path),
	}
	if remoteAddr != "" {
		attrs = append(attrs, attribute.String("net.peer.addr", remoteAddr))
	}
	if r.Method.HasBody() {
		attrs = append(attrs, attribute.Int("http.request_content_length", len(r.Body)))
	}
	if v := r.Header(headers.NameHost); v != "" {
		attrs = append(attrs, attribute.String("http.host", v))
	}
	if v := r.Header(headers.NameUserAgent); v != "" {
		attrs = append(attrs, attribute.String("http.user_agent", v))
	}

	return tr.Start(ctx, RequestSpanName,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(attrs...),
	)
}

// NewChildSpan returns the context with a new Span situated as the child of the previous span
func NewChildSpan(ctx context.Context, tr *tracing.Tracer,
	spanName string) (context.Context, trace.Span) {

	if ctx == nil {
		ctx = context.Background()
	}

	if tr == nil || tr.Tracer == nil {
		return ctx, nil
	}

	return tr.Start(ctx, spanName)
}

// Finish records the response status and route on the span and ends it.
// A nil span is ignored.
func Finish(span trace.Span, statusCode int, route string) {
	if span == nil {
		return
	}
	span.SetAttributes(
		attribute.Int("http.status_code", statusCode),
		attribute.String("http.route", route),
	)
	span.SetStatus(tracing.HTTPToCode(statusCode), "")
	span.End()
}

// Error records err on the span and marks it failed. A nil span is ignored.
func Error(span trace.Span, err error) {
	if span == nil || err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
