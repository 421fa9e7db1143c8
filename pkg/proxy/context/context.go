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

// Package context provides the per-request Context handed to route Handlers
package context

import (
	"context"
	"net/http"

	"github.com/trickstercache/blueprint/pkg/observability/tracing"
	"github.com/trickstercache/blueprint/pkg/observability/tracing/span"
	"github.com/trickstercache/blueprint/pkg/proxy/request"
	"github.com/trickstercache/blueprint/pkg/proxy/response"
)

// Context carries a parsed request and the response a Handler populates
type Context struct {
	Request  *request.Request
	Response *response.Response
	// RemoteAddr is the network address of the client
	RemoteAddr string

	ctx    context.Context
	tracer *tracing.Tracer
}

// New returns a Context for the request with the default Response
func New(ctx context.Context, r *request.Request, remoteAddr string) *Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Context{
		Request:    r,
		Response:   response.New(),
		RemoteAddr: remoteAddr,
		ctx:        ctx,
	}
}

// WithTracer sets the Tracer used by StartSpan and returns c
func (c *Context) WithTracer(tr *tracing.Tracer) *Context {
	c.tracer = tr
	return c
}

// StartSpan starts a span named name as a child of the current span and
// returns the func that ends it, recording err when it is not nil. Spans
// started before it ends are its children. Without a Tracer it does nothing.
func (c *Context) StartSpan(name string) (end func(err error)) {
	ctx, sp := span.NewChildSpan(c.ctx, c.tracer, name)
	if sp == nil {
		return func(error) {}
	}
	prev := c.ctx
	c.ctx = ctx
	return func(err error) {
		span.Error(sp, err)
		sp.End()
		c.ctx = prev
	}
}

// Context returns the context.Context of the connection serving the request
func (c *Context) Context() context.Context {
	return c.ctx
}

// Text sets a text/plain Response using the standard status text for code
func (c *Context) Text(code int, body string) {
	c.Response = response.Text(code, http.StatusText(code), body)
}

// HTML sets a text/html Response using the standard status text for code
func (c *Context) HTML(code int, body string) {
	c.Response = response.HTML(code, http.StatusText(code), body)
}

// JSON sets an application/json Response with v marshaled as the body
func (c *Context) JSON(code int, v any) {
	c.Response = response.JSON(code, http.StatusText(code), v)
}

// Handler responds to a request by mutating the Context's Response.
// Handlers are shared across connections and must be safe for concurrent use.
type Handler interface {
	Serve(*Context)
}

// HandlerFunc adapts an ordinary function to a Handler
type HandlerFunc func(*Context)

// Serve calls f(c)
func (f HandlerFunc) Serve(c *Context) {
	f(c)
}
