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

// Package blueprint provides named, prefix-scoped route groups that can be
// composed into a parent Blueprint.
//
// Every route key is fully formed at registration time by joining the
// Blueprint's prefix with the registered path. Absorbing a child Blueprint
// with RegisterBlueprint copies the child's keys verbatim: the parent's prefix
// is applied only to routes the parent registers directly. To mount a child
// under a parent's prefix, construct the child with the full prefix.
package blueprint

import (
	"fmt"
	"strings"

	"github.com/trickstercache/blueprint/pkg/errors"
	"github.com/trickstercache/blueprint/pkg/proxy/context"
	"github.com/trickstercache/blueprint/pkg/proxy/methods"
	"github.com/trickstercache/blueprint/pkg/router/paths"
	"github.com/trickstercache/blueprint/pkg/router/route"
)

// Blueprint is a named group of routes sharing a path prefix
type Blueprint struct {
	name   string
	prefix string
	routes *route.Table
}

// New returns a new Blueprint. The prefix must begin with '/'.
func New(name, prefix string) (*Blueprint, error) {
	if !strings.HasPrefix(prefix, "/") {
		return nil, fmt.Errorf("%w: %q", errors.ErrInvalidPrefix, prefix)
	}
	return &Blueprint{
		name:   name,
		prefix: prefix,
		routes: route.NewTable(),
	}, nil
}

// Must is like New but panics if the prefix is invalid
func Must(name, prefix string) *Blueprint {
	b, err := New(name, prefix)
	if err != nil {
		panic(err)
	}
	return b
}

// Name returns the name of the Blueprint
func (b *Blueprint) Name() string {
	return b.name
}

// Prefix returns the path prefix of the Blueprint
func (b *Blueprint) Prefix() string {
	return b.prefix
}

// Handle registers the handler for the method at the prefix-joined path
func (b *Blueprint) Handle(m methods.Method, path string, h context.Handler) error {
	return b.routes.Register(m, paths.Join(b.prefix, path), h)
}

// HandleFunc registers the function for the method at the prefix-joined path
func (b *Blueprint) HandleFunc(m methods.Method, path string, f func(*context.Context)) error {
	if f == nil {
		return errors.ErrNilHandler
	}
	return b.Handle(m, path, context.HandlerFunc(f))
}

// Get registers the handler for GET requests to the prefix-joined path
func (b *Blueprint) Get(path string, h context.Handler) error {
	return b.Handle(methods.GET, path, h)
}

// Post registers the handler for POST requests to the prefix-joined path
func (b *Blueprint) Post(path string, h context.Handler) error {
	return b.Handle(methods.POST, path, h)
}

// Put registers the handler for PUT requests to the prefix-joined path
func (b *Blueprint) Put(path string, h context.Handler) error {
	return b.Handle(methods.PUT, path, h)
}

// Delete registers the handler for DELETE requests to the prefix-joined path
func (b *Blueprint) Delete(path string, h context.Handler) error {
	return b.Handle(methods.DELETE, path, h)
}

// Patch registers the handler for PATCH requests to the prefix-joined path
func (b *Blueprint) Patch(path string, h context.Handler) error {
	return b.Handle(methods.PATCH, path, h)
}

// Head registers the handler for HEAD requests to the prefix-joined path
func (b *Blueprint) Head(path string, h context.Handler) error {
	return b.Handle(methods.HEAD, path, h)
}

// Options registers the handler for OPTIONS requests to the prefix-joined path
func (b *Blueprint) Options(path string, h context.Handler) error {
	return b.Handle(methods.OPTIONS, path, h)
}

// RegisterBlueprint absorbs every route of child into b. Keys are copied
// verbatim and are not joined with b's prefix. After absorption the routes
// belong to b; later registrations on child are not reflected in b.
func (b *Blueprint) RegisterBlueprint(child *Blueprint) {
	if child == nil || child.routes == nil {
		return
	}
	// snapshot first so that absorbing b into itself can't deadlock
	for _, r := range child.routes.Routes() {
		b.routes.Register(r.Method, r.Path, r.Handler)
	}
}

// FindHandler returns the handler registered for exactly the method and the
// full request path
func (b *Blueprint) FindHandler(m methods.Method, path string) (context.Handler, bool) {
	return b.routes.Lookup(m, path)
}

// Routes returns a snapshot of the Blueprint's routes
func (b *Blueprint) Routes() route.Routes {
	return b.routes.Routes()
}

// Len returns the number of routes in the Blueprint
func (b *Blueprint) Len() int {
	return b.routes.Len()
}

func (b *Blueprint) String() string {
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "{name: %q, prefix: %q", b.name, b.prefix)
	for _, m := range methods.All() {
		p := b.routes.Paths(m)
		if len(p) == 0 {
			fmt.Fprintf(sb, ", %s: \"0 routes\"", m)
			continue
		}
		fmt.Fprintf(sb, ", %s: \"%d routes: %s\"", m, len(p), strings.Join(p, ", "))
	}
	sb.WriteString("}")
	return sb.String()
}
