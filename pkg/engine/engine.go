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

// Package engine accepts TCP connections and dispatches each request to the
// handler registered for its method and path in a root Blueprint.
//
// Each accepted connection is served by its own goroutine, which reads one
// request, looks up and invokes the handler, writes the rendered response and
// closes the connection.
package engine

import (
	"context"
	goerrors "errors"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/trickstercache/blueprint/pkg/errors"
	"github.com/trickstercache/blueprint/pkg/observability/logging"
	"github.com/trickstercache/blueprint/pkg/observability/logging/logger"
	"github.com/trickstercache/blueprint/pkg/observability/metrics"
	"github.com/trickstercache/blueprint/pkg/observability/tracing"
	"github.com/trickstercache/blueprint/pkg/observability/tracing/span"
	bctx "github.com/trickstercache/blueprint/pkg/proxy/context"
	"github.com/trickstercache/blueprint/pkg/proxy/listener"
	"github.com/trickstercache/blueprint/pkg/proxy/methods"
	"github.com/trickstercache/blueprint/pkg/proxy/request"
	"github.com/trickstercache/blueprint/pkg/proxy/response"
	"github.com/trickstercache/blueprint/pkg/router/blueprint"

	"go.opentelemetry.io/otel/trace"
)

const (
	// RootName is the name of the Engine's root Blueprint
	RootName = "root"
	// RootPrefix is the prefix of the Engine's root Blueprint
	RootPrefix = "/"

	maxAcceptDelay = time.Second
)

// Engine owns the root Blueprint and serves connections against it
type Engine struct {
	address          string
	root             *blueprint.Blueprint
	logger           logging.Logger
	tracer           *tracing.Tracer
	connectionsLimit int
	maxRequestBytes  int

	mtx      sync.Mutex
	listener *listener.Listener
	closed   bool
	conns    sync.WaitGroup
}

// New returns an Engine that will bind to address when Run is called
func New(address string, opts ...Option) *Engine {
	e := &Engine{
		address: address,
		root:    blueprint.Must(RootName, RootPrefix),
		logger:  logger.Logger(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Root returns the Engine's root Blueprint
func (e *Engine) Root() *blueprint.Blueprint {
	return e.root
}

// Register registers the handler on the root Blueprint
func (e *Engine) Register(m methods.Method, path string, h bctx.Handler) error {
	return e.root.Handle(m, path, h)
}

// Get registers the handler for GET requests on the root Blueprint
func (e *Engine) Get(path string, h bctx.Handler) error {
	return e.root.Get(path, h)
}

// Post registers the handler for POST requests on the root Blueprint
func (e *Engine) Post(path string, h bctx.Handler) error {
	return e.root.Post(path, h)
}

// RegisterBlueprint absorbs the child's routes into the root Blueprint. See
// blueprint.RegisterBlueprint for the copy semantics.
func (e *Engine) RegisterBlueprint(child *blueprint.Blueprint) {
	e.root.RegisterBlueprint(child)
}

// Run binds the Engine's address and serves connections until Close is called
func (e *Engine) Run() error {
	l, err := listener.NewListener(e.address, e.connectionsLimit, e.logger)
	if err != nil {
		return fmt.Errorf("engine bind %s: %w", e.address, err)
	}
	return e.serve(l)
}

// Serve accepts connections on ln until Close is called. Serve always returns
// a non-nil error: errors.ErrServerClosed after Close, or the error that
// stopped the listener.
func (e *Engine) Serve(ln net.Listener) error {
	l, err := listener.Wrap(ln, e.connectionsLimit)
	if err != nil {
		return err
	}
	return e.serve(l)
}

func (e *Engine) serve(l *listener.Listener) error {
	e.mtx.Lock()
	if e.closed {
		e.mtx.Unlock()
		l.Close()
		return errors.ErrServerClosed
	}
	e.listener = l
	e.mtx.Unlock()

	e.logger.Info("server running", logging.Pairs{
		"address":          "http://" + l.Addr().String(),
		"routes":           e.root.Len(),
		"connectionsLimit": l.ConnectionsLimit(),
	})
	for _, r := range e.root.Routes() {
		e.logger.Debug("route registered", logging.Pairs{
			"method": r.Method.String(),
			"path":   r.Path,
		})
	}

	var delay time.Duration
	for {
		conn, err := l.Accept()
		if err != nil {
			if e.isClosed() {
				return errors.ErrServerClosed
			}
			if goerrors.Is(err, net.ErrClosed) {
				return err
			}
			if delay == 0 {
				delay = 5 * time.Millisecond
			} else {
				delay *= 2
			}
			if delay > maxAcceptDelay {
				delay = maxAcceptDelay
			}
			e.logger.Warn("accept failed", logging.Pairs{
				"detail": err.Error(),
				"retry":  delay.String(),
			})
			time.Sleep(delay)
			continue
		}
		delay = 0
		e.conns.Add(1)
		go func() {
			defer e.conns.Done()
			e.ServeConn(conn)
		}()
	}
}

func (e *Engine) isClosed() bool {
	e.mtx.Lock()
	defer e.mtx.Unlock()
	return e.closed
}

// Addr returns the address of the active listener, or nil if the Engine is
// not serving
func (e *Engine) Addr() net.Addr {
	e.mtx.Lock()
	defer e.mtx.Unlock()
	if e.listener == nil {
		return nil
	}
	return e.listener.Addr()
}

// Close stops the Engine's listener. Connections already accepted run to
// completion.
func (e *Engine) Close() error {
	e.mtx.Lock()
	defer e.mtx.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	if e.listener == nil {
		return nil
	}
	return e.listener.Close()
}

// Shutdown closes the Engine and waits for in-flight connections to finish
// or for ctx to be done, whichever happens first
func (e *Engine) Shutdown(ctx context.Context) error {
	err := e.Close()
	done := make(chan struct{})
	go func() {
		e.conns.Wait()
		close(done)
	}()
	select {
	case <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ServeConn serves a single request on conn and closes it
func (e *Engine) ServeConn(conn net.Conn) {
	defer conn.Close()
	start := time.Now()

	var remoteAddr string
	if a := conn.RemoteAddr(); a != nil {
		remoteAddr = a.String()
	}

	b, err := request.Read(conn, e.maxRequestBytes)
	if err != nil && !goerrors.Is(err, errors.ErrRequestTooLarge) {
		e.logger.Warn("connection read failed", logging.Pairs{
			"remoteAddr": remoteAddr,
			"detail":     err.Error(),
		})
		return
	}
	if err == nil && len(b) == 0 {
		return
	}

	var r *request.Request
	if err == nil {
		r, err = request.Parse(b)
	}
	if err != nil {
		e.logger.Debug("bad request", logging.Pairs{
			"remoteAddr": remoteAddr,
			"detail":     err.Error(),
		})
		e.respond(conn, response.BadRequest(), "invalid", metrics.UnmatchedPath,
			remoteAddr, start)
		return
	}

	ctx, sp := span.PrepareRequest(context.Background(), e.tracer, r, remoteAddr)
	resp, route := e.dispatch(ctx, r, remoteAddr, sp)
	e.respond(conn, resp, r.Method.String(), route, remoteAddr, start)
	span.Finish(sp, resp.StatusCode, route)
}

// dispatch looks up and invokes the handler for r. A handler panic is
// recovered and answered with a 500.
func (e *Engine) dispatch(ctx context.Context, r *request.Request,
	remoteAddr string, sp trace.Span) (resp *response.Response, route string) {

	h, ok := e.root.FindHandler(r.Method, r.Path)
	if !ok {
		return response.NotFound(), metrics.UnmatchedPath
	}
	route = r.Path

	defer func() {
		if v := recover(); v != nil {
			metrics.HandlerPanics.Inc()
			err := fmt.Errorf("handler panic: %v", v)
			span.Error(sp, err)
			e.logger.Error("handler panic recovered", logging.Pairs{
				"method":     r.Method.String(),
				"path":       r.Path,
				"remoteAddr": remoteAddr,
				"detail":     err.Error(),
			})
			resp = response.InternalServerError()
		}
	}()

	c := bctx.New(ctx, r, remoteAddr).WithTracer(e.tracer)
	h.Serve(c)
	if c.Response == nil {
		return response.New(), route
	}
	return c.Response, route
}

func (e *Engine) respond(conn net.Conn, resp *response.Response,
	method, route, remoteAddr string, start time.Time) {

	n, err := resp.WriteTo(conn)
	status := strconv.Itoa(resp.StatusCode)
	metrics.ObserveRequest(method, route, status,
		time.Since(start).Seconds(), int(n))
	if err != nil {
		e.logger.Warn("response write failed", logging.Pairs{
			"remoteAddr": remoteAddr,
			"detail":     err.Error(),
		})
		return
	}
	e.logger.Debug("request served", logging.Pairs{
		"method":     method,
		"route":      route,
		"status":     resp.StatusCode,
		"remoteAddr": remoteAddr,
		"elapsed":    time.Since(start).String(),
	})
}
