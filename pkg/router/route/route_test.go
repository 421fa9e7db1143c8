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

package route

import (
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	berrors "github.com/trickstercache/blueprint/pkg/errors"
	"github.com/trickstercache/blueprint/pkg/proxy/context"
	"github.com/trickstercache/blueprint/pkg/proxy/methods"
)

type testHandler struct {
	name string
}

func (h *testHandler) Serve(c *context.Context) {
	c.Text(200, h.name)
}

func TestNewTableHasEveryBucket(t *testing.T) {
	tb := NewTable()
	for _, m := range methods.All() {
		l, ok := tb.routes[m]
		require.True(t, ok, m.String())
		require.NotNil(t, l)
	}
	require.Equal(t, 0, tb.Len())
}

func TestRegisterLookup(t *testing.T) {
	tb := NewTable()
	h := &testHandler{"x"}
	require.NoError(t, tb.Register(methods.GET, "/x", h))

	got, ok := tb.Lookup(methods.GET, "/x")
	require.True(t, ok)
	require.Same(t, h, got)

	_, ok = tb.Lookup(methods.POST, "/x")
	require.False(t, ok)
	_, ok = tb.Lookup(methods.GET, "/x/")
	require.False(t, ok)
	_, ok = tb.Lookup(methods.Method(0), "/x")
	require.False(t, ok)
}

func TestRegisterOverwrite(t *testing.T) {
	tb := NewTable()
	h1, h2 := &testHandler{"1"}, &testHandler{"2"}
	require.NoError(t, tb.Register(methods.GET, "/x", h1))
	require.NoError(t, tb.Register(methods.GET, "/x", h2))
	got, ok := tb.Lookup(methods.GET, "/x")
	require.True(t, ok)
	require.Same(t, h2, got)
	require.Equal(t, 1, tb.Len())
}

func TestRegisterShared(t *testing.T) {
	tb := NewTable()
	h := &testHandler{"shared"}
	require.NoError(t, tb.Register(methods.GET, "/a", h))
	require.NoError(t, tb.Register(methods.POST, "/b", h))
	a, _ := tb.Lookup(methods.GET, "/a")
	b, _ := tb.Lookup(methods.POST, "/b")
	require.Same(t, a, b)
}

func TestRegisterErrors(t *testing.T) {
	tb := NewTable()
	err := tb.Register(methods.Method(0), "/x", &testHandler{})
	require.True(t, errors.Is(err, berrors.ErrUnsupportedMethod))
	err = tb.Register(methods.GET|methods.POST, "/x", &testHandler{})
	require.True(t, errors.Is(err, berrors.ErrUnsupportedMethod))
	err = tb.Register(methods.GET, "/x", nil)
	require.Equal(t, berrors.ErrNilHandler, err)
	require.Equal(t, 0, tb.Len())
}

func TestMissingBucketIsEmpty(t *testing.T) {
	tb := NewTable()
	delete(tb.routes, methods.PATCH)
	_, ok := tb.Lookup(methods.PATCH, "/x")
	require.False(t, ok)
	require.Empty(t, tb.Paths(methods.PATCH))
	require.NoError(t, tb.Register(methods.PATCH, "/x", &testHandler{}))
	_, ok = tb.Lookup(methods.PATCH, "/x")
	require.True(t, ok)
}

func TestRoutes(t *testing.T) {
	tb := NewTable()
	h := &testHandler{}
	require.NoError(t, tb.Register(methods.POST, "/b", h))
	require.NoError(t, tb.Register(methods.GET, "/z", h))
	require.NoError(t, tb.Register(methods.GET, "/a", h))
	require.NoError(t, tb.Register(methods.OPTIONS, "/", h))

	rs := tb.Routes()
	names := make([]string, len(rs))
	for i, r := range rs {
		names[i] = r.String()
	}
	require.Equal(t, []string{"GET /a", "GET /z", "POST /b", "OPTIONS /"}, names)
	require.Equal(t, []string{"/a", "/z"}, tb.Paths(methods.GET))
}

func TestString(t *testing.T) {
	tb := NewTable()
	require.NoError(t, tb.Register(methods.GET, "/b", &testHandler{}))
	require.NoError(t, tb.Register(methods.GET, "/a", &testHandler{}))
	require.Equal(t, "GET: 2 routes: /a, /b, POST: 0 routes, PUT: 0 routes, "+
		"DELETE: 0 routes, PATCH: 0 routes, HEAD: 0 routes, OPTIONS: 0 routes", tb.String())
}

func TestConcurrentLookupsAfterRegistration(t *testing.T) {
	const routeCount = 200
	const workers = 32
	tb := NewTable()
	handlers := make([]*testHandler, routeCount)
	for i := range handlers {
		handlers[i] = &testHandler{strconv.Itoa(i)}
		require.NoError(t, tb.Register(methods.GET, "/r/"+strconv.Itoa(i), handlers[i]))
	}

	var wg sync.WaitGroup
	errs := make(chan string, workers*routeCount)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < routeCount; i++ {
				h, ok := tb.Lookup(methods.GET, "/r/"+strconv.Itoa(i))
				if !ok || h != context.Handler(handlers[i]) {
					errs <- strconv.Itoa(i)
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Errorf("lookup did not observe route %s", e)
	}
}

func TestConcurrentRegisterAndLookup(t *testing.T) {
	tb := NewTable()
	h1, h2 := &testHandler{"1"}, &testHandler{"2"}
	require.NoError(t, tb.Register(methods.GET, "/x", h1))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			if i%2 == 0 {
				tb.Register(methods.GET, "/x", h2)
			} else {
				tb.Register(methods.GET, "/x", h1)
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			h, ok := tb.Lookup(methods.GET, "/x")
			if !ok || (h != context.Handler(h1) && h != context.Handler(h2)) {
				t.Error("expected one of the registered handlers")
				return
			}
		}
	}()
	wg.Wait()
}
