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

// Package errors provides the sentinel errors shared across blueprint packages
package errors

import "errors"

// ErrInvalidPrefix is an error for a Blueprint prefix that does not begin with '/'
var ErrInvalidPrefix = errors.New("blueprint prefix must start with '/'")

// ErrUnsupportedMethod is an error for an HTTP method outside of the supported set
var ErrUnsupportedMethod = errors.New("unsupported http method")

// ErrMalformedRequest is the parent of all request parsing errors
var ErrMalformedRequest = errors.New("malformed request")

// ErrEmptyRequest is an error for a request with no request line
var ErrEmptyRequest = errors.New("empty request")

// ErrMissingMethod is an error for a request line that has no method
var ErrMissingMethod = errors.New("no method in request")

// ErrMissingPath is an error for a request line that has no request target
var ErrMissingPath = errors.New("no path in request")

// ErrRequestTooLarge indicates the client sent more bytes than the engine will buffer
var ErrRequestTooLarge = errors.New("request exceeds maximum size")

// ErrNilListener indicates an error that the underlying net.Listener is nil
var ErrNilListener = errors.New("nil listener")

// ErrServerClosed is returned by the engine's Serve after Close has been called
var ErrServerClosed = errors.New("engine closed")

// ErrInvalidLogLevel is an error for a log level name that is not recognized
var ErrInvalidLogLevel = errors.New("invalid log level")

// ErrInvalidPort is an error for a listen port outside of 0-65535
var ErrInvalidPort = errors.New("invalid listen port")

// ErrInvalidTracingProvider is an error for an unknown tracing provider name
var ErrInvalidTracingProvider = errors.New("invalid tracing provider")

// ErrInvalidJaegerEndpointType is an error for a jaeger endpoint_type other
// than collector or agent
var ErrInvalidJaegerEndpointType = errors.New("invalid jaeger endpoint_type")

// ErrMissingCollectorURL is an error for a tracing provider that requires a collector
var ErrMissingCollectorURL = errors.New("tracing provider requires a collector_url")

// ErrNilHandler is an error for registering a route without a handler
var ErrNilHandler = errors.New("nil handler")
