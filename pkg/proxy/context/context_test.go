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

package context

import (
	"context"
	"errors"
	"testing"

	"github.com/trickstercache/blueprint/pkg/observability/tracing"
	"github.com/trickstercache/blueprint/pkg/proxy/request"
	"github.com/trickstercache/blueprint/pkg/proxy/response"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestNew(t *testing.T) {
	r := &request.Request{Path: "/"}
	c := New(nil, r, "127.0.0.1:1234")
	if c.Context() == nil {
		t.Fatal("expected non-nil context")
	}
	if c.Request != r || c.RemoteAddr != "127.0.0.1:1234" {
		t.Error("unexpected context fields")
	}
	if c.Response.StatusCode != 200 || c.Response.Body != "" {
		t.Errorf("expected default response got %d %q", c.Response.StatusCode, c.Response.Body)
	}
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "v")
	if New(ctx, r, "").Context().Value(key{}) != "v" {
		t.Error("expected provided context")
	}
}

func TestSetters(t *testing.T) {
	c := New(context.Background(), &request.Request{}, "")
	c.Text(200, "Hello World")
	if c.Response.String() != "HTTP/1.1 200 OK\r\nContent-Type: text/plain; charset=utf-8\r\n"+
		"Content-Length: 11\r\n\r\nHello World" {
		t.Errorf("unexpected response %q", c.Response.String())
	}
	c.HTML(404, "<p>nope</p>")
	if c.Response.ContentType != response.ContentTypeHTML || c.Response.Status != "Not Found" {
		t.Error("expected html not found response")
	}
	c.JSON(200, map[string]int{"n": 1})
	if c.Response.ContentType != response.ContentTypeJSON || c.Response.Body != `{"n":1}` {
		t.Errorf("unexpected json response %q", c.Response.Body)
	}
}

func TestHandlerFunc(t *testing.T) {
	var h Handler = HandlerFunc(func(c *Context) { c.Text(201, "made") })
	c := New(context.Background(), &request.Request{}, "")
	h.Serve(c)
	if c.Response.StatusCode != 201 || c.Response.Status != "Created" {
		t.Errorf("unexpected response %d %s", c.Response.StatusCode, c.Response.Status)
	}
}

func TestStartSpanNoTracer(t *testing.T) {
	c := New(context.Background(), &request.Request{}, "")
	ctx := c.Context()
	end := c.StartSpan("noop")
	if c.Context() != ctx {
		t.Error("expected context to be unchanged without a tracer")
	}
	end(errors.New("ignored"))
}

func TestStartSpan(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	tr := &tracing.Tracer{Name: "test", Tracer: tp.Tracer("test")}

	ctx, parent := tr.Start(context.Background(), "request")
	c := New(ctx, &request.Request{}, "").WithTracer(tr)

	endOuter := c.StartSpan("outer")
	endInner := c.StartSpan("inner")
	endInner(errors.New("lookup failed"))
	endOuter(nil)
	if c.Context() != ctx {
		t.Error("expected the request context to be restored")
	}
	parent.End()

	ended := sr.Ended()
	if len(ended) != 3 {
		t.Fatalf("expected %d got %d", 3, len(ended))
	}
	inner, outer := ended[0], ended[1]
	if inner.Name() != "inner" || outer.Name() != "outer" {
		t.Fatalf("unexpected span order %s, %s", inner.Name(), outer.Name())
	}
	if inner.Parent().SpanID() != outer.SpanContext().SpanID() {
		t.Error("expected inner to be a child of outer")
	}
	if outer.Parent().SpanID() != parent.SpanContext().SpanID() {
		t.Error("expected outer to be a child of the request span")
	}
	if inner.Status().Code != codes.Error || outer.Status().Code == codes.Error {
		t.Error("expected only the inner span to record an error")
	}
}
