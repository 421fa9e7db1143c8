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

package httpserver

import (
	"context"
	goerrors "errors"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/trickstercache/blueprint/pkg/config"
	"github.com/trickstercache/blueprint/pkg/engine"
	"github.com/trickstercache/blueprint/pkg/errors"
	bctx "github.com/trickstercache/blueprint/pkg/proxy/context"
	"github.com/trickstercache/blueprint/pkg/proxy/methods"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	conf := config.NewConfig()
	conf.Logging.LogLevel = "error"
	conf.Metrics.ListenPort = 0
	return conf
}

func pingRoutes(e *engine.Engine) error {
	return e.Register(methods.GET, "/ping", bctx.HandlerFunc(func(c *bctx.Context) {
		c.Text(200, "pong")
	}))
}

func TestNewNilConfig(t *testing.T) {
	s, err := New(nil, nil)
	require.NoError(t, err)
	require.NotNil(t, s.Engine())
	assert.NotNil(t, s.Logger())
	assert.Equal(t, 0, s.Engine().Root().Len())
	assert.Nil(t, s.MetricsAddr())
}

func TestNewInvalidConfig(t *testing.T) {
	conf := testConfig()
	conf.Frontend.ListenPort = 0
	_, err := New(conf, nil)
	assert.ErrorIs(t, err, errors.ErrInvalidPort)

	conf = testConfig()
	conf.Tracing.Provider = "carrier-pigeon"
	_, err = New(conf, nil)
	assert.ErrorIs(t, err, errors.ErrInvalidTracingProvider)
}

func TestNewRegisterError(t *testing.T) {
	expected := goerrors.New("bad route")
	_, err := New(testConfig(), func(*engine.Engine) error { return expected })
	assert.ErrorIs(t, err, expected)
}

func TestServeListener(t *testing.T) {
	s, err := New(testConfig(), pingRoutes)
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- s.ServeListener(ln) }()

	conn, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	_, err = conn.Write([]byte("GET /ping HTTP/1.1\r\nHost: localhost\r\n\r\n"))
	require.NoError(t, err)
	b, err := io.ReadAll(conn)
	require.NoError(t, err)
	conn.Close()
	assert.Equal(t, "HTTP/1.1 200 OK\r\n"+
		"Content-Type: text/plain; charset=utf-8\r\n"+
		"Content-Length: 4\r\n\r\npong", string(b))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("ServeListener did not return after Shutdown")
	}
}

func TestShutdownBeforeServe(t *testing.T) {
	s, err := New(testConfig(), nil)
	require.NoError(t, err)
	require.NoError(t, s.Shutdown(context.Background()))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	assert.NoError(t, s.ServeListener(ln))
}

func TestServeMetrics(t *testing.T) {
	s, err := New(testConfig(), nil)
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	require.NoError(t, s.serveMetrics(ln))
	require.NotNil(t, s.MetricsAddr())

	resp, err := http.Get("http://" + s.MetricsAddr().String() + MetricsPath)
	require.NoError(t, err)
	b, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(b), "blueprint_build_info")

	require.NoError(t, s.Shutdown(context.Background()))
}

func TestServeMetricsPprof(t *testing.T) {
	conf := testConfig()
	conf.Metrics.EnablePprof = true
	s, err := New(conf, nil)
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	require.NoError(t, s.serveMetrics(ln))

	resp, err := http.Get("http://" + ln.Addr().String() + "/debug/pprof/cmdline")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, s.Shutdown(context.Background()))
}

func TestMetricsBindFailure(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	conf := testConfig()
	conf.Metrics.ListenAddress = "127.0.0.1"
	conf.Metrics.ListenPort = busy.Addr().(*net.TCPAddr).Port

	s, err := New(conf, nil)
	require.NoError(t, err)
	err = s.Serve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "metrics bind")
	assert.Nil(t, s.MetricsAddr())
}
