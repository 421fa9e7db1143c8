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

// Package route provides the method-indexed Route Table
package route

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/trickstercache/blueprint/pkg/errors"
	"github.com/trickstercache/blueprint/pkg/proxy/context"
	"github.com/trickstercache/blueprint/pkg/proxy/methods"
)

// Route is a single (method, path) -> handler entry
type Route struct {
	Method  methods.Method
	Path    string
	Handler context.Handler
}

func (r *Route) String() string {
	return r.Method.String() + " " + r.Path
}

// Routes is a list of Routes
type Routes []*Route

// Lookup maps route keys to handlers
type Lookup map[string]context.Handler

// MethodLookup maps each method to its Lookup
type MethodLookup map[methods.Method]Lookup

// Table is a concurrency-safe Route Table. Every supported method has a
// bucket from construction, so lookups only miss on path.
type Table struct {
	mtx    sync.RWMutex
	routes MethodLookup
}

// NewTable returns a new, empty Table
func NewTable() *Table {
	t := &Table{routes: make(MethodLookup, len(methods.All()))}
	for _, m := range methods.All() {
		t.routes[m] = make(Lookup)
	}
	return t
}

// Register inserts or overwrites the handler for the method and key
func (t *Table) Register(m methods.Method, key string, h context.Handler) error {
	if !m.IsValid() {
		return fmt.Errorf("%w: %s", errors.ErrUnsupportedMethod, m)
	}
	if h == nil {
		return errors.ErrNilHandler
	}
	t.mtx.Lock()
	l, ok := t.routes[m]
	if !ok || l == nil {
		l = make(Lookup)
		t.routes[m] = l
	}
	l[key] = h
	t.mtx.Unlock()
	return nil
}

// Lookup returns the handler registered for exactly the method and key
func (t *Table) Lookup(m methods.Method, key string) (context.Handler, bool) {
	t.mtx.RLock()
	h, ok := t.routes[m][key]
	t.mtx.RUnlock()
	return h, ok
}

// Routes returns a snapshot of every registered route, ordered by method and
// then by path
func (t *Table) Routes() Routes {
	t.mtx.RLock()
	defer t.mtx.RUnlock()
	out := make(Routes, 0, t.len())
	for _, m := range methods.All() {
		l := t.routes[m]
		keys := maps.Keys(l)
		slices.Sort(keys)
		for _, k := range keys {
			out = append(out, &Route{Method: m, Path: k, Handler: l[k]})
		}
	}
	return out
}

// Paths returns the sorted route keys registered for the method
func (t *Table) Paths(m methods.Method) []string {
	t.mtx.RLock()
	keys := maps.Keys(t.routes[m])
	t.mtx.RUnlock()
	slices.Sort(keys)
	return keys
}

// Len returns the number of registered routes across all methods
func (t *Table) Len() int {
	t.mtx.RLock()
	defer t.mtx.RUnlock()
	return t.len()
}

func (t *Table) len() int {
	var n int
	for _, l := range t.routes {
		n += len(l)
	}
	return n
}

func (t *Table) String() string {
	sb := &strings.Builder{}
	for i, m := range methods.All() {
		if i > 0 {
			sb.WriteString(", ")
		}
		p := t.Paths(m)
		fmt.Fprintf(sb, "%s: %d routes", m, len(p))
		if len(p) > 0 {
			sb.WriteString(": " + strings.Join(p, ", "))
		}
	}
	return sb.String()
}
