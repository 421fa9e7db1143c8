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

package main

import (
	"bytes"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
		"testing"
	"time"

	"github.com/trickstercache/blueprint/pkg/appinfo"
	"github.com/trickstercache/blueprint/pkg/engine"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())
	return port
}

func exchange(t *testing.T, address, raw string) string {
	t.Helper()
	conn, err := net.DialTimeout("tcp", address, time.Second)
	require.NoError(t, err)
	defer conn.Close()
	_, err = conn.Write([]byte(raw))
	require.NoError(t, err)
	b, err := io.ReadAll(conn)
	require.NoError(t, err)
	return string(b)
}

func TestRunVersion(t *testing.T) {
	w := &bytes.Buffer{}
	assert.Equal(t, 0, run([]string{"-version"}, w, nil))
	assert.Equal(t, appinfo.String()+"\n", w.String())
}

func TestRunHelp(t *testing.T) {
	w := &bytes.Buffer{}
	assert.Equal(t, 0, run([]string{"-h"}, w, nil))
	assert.Contains(t, w.String(), "blueprint Usage:")
}

func TestRunBadFlag(t *testing.T) {
	w := &bytes.Buffer{}
	assert.Equal(t, 1, run([]string{"-no-such-flag"}, w, nil))
	assert.Contains(t, w.String(), "Could not load configuration")
	assert.Contains(t, w.String(), "blueprint Usage:")
}

func TestRunValidateConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blueprint.yaml")
	require.NoError(t, os.WriteFile(path,
		[]byte("frontend:\n  listen_port: 9090\n"), 0600))

	w := &bytes.Buffer{}
	assert.Equal(t, 0, run([]string{"-validate-config", "-config", path}, w, nil))
	assert.Contains(t, w.String(), "validation succeeded")

	require.NoError(t, os.WriteFile(path,
		[]byte("frontend:\n  listen_port: 70000\n"), 0600))
	w.Reset()
	assert.Equal(t, 1, run([]string{"-validate-config", "-config", path}, w, nil))
	assert.Contains(t, w.String(), "invalid listen port")
	assert.NotContains(t, w.String(), "Usage:")
}

func TestRunInvalidLogLevel(t *testing.T) {
	w := &bytes.Buffer{}
	assert.Equal(t, 1, run([]string{"-log-level", "verbose"}, w, nil))
}

func TestRunBindFailure(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()
	port := busy.Addr().(*net.TCPAddr).Port

	code := run([]string{"-log-level", "error",
		"-listen-port", strconv.Itoa(port),
		"-metrics-port", strconv.Itoa(freePort(t))}, io.Discard, nil)
	assert.Equal(t, 1, code)
}

func TestRunServe(t *testing.T) {
	port := freePort(t)
	metricsPort := freePort(t)
	address := net.JoinHostPort("127.0.0.1", strconv.Itoa(port))

	quit := make(chan struct{})
	done := make(chan int, 1)
	go func() {
		done <- run([]string{"-log-level", "error",
			"-listen-port", strconv.Itoa(port),
			"-metrics-port", strconv.Itoa(metricsPort)}, io.Discard, quit)
	}()

	require.Eventually(t, func() bool {
		conn, err := net.Dial("tcp", address)
		if err != nil {
			return false
		}
		conn.Close()
		return true
	}, 5*time.Second, 10*time.Millisecond)

	out := exchange(t, address, "GET / HTTP/1.1\r\n\r\n")
	assert.True(t, strings.HasPrefix(out, "HTTP/1.1 200 OK\r\n"))
	assert.True(t, strings.HasSuffix(out, "\r\n\r\nhello gua"))

	out = exchange(t, address, "GET /json HTTP/1.1\r\n\r\n")
	assert.Contains(t, out, "application/json")
	assert.True(t, strings.HasSuffix(out, `{"name":"bob","age":"18"}`))

	out = exchange(t, address, "GET /html HTTP/1.1\r\n\r\n")
	assert.True(t, strings.HasSuffix(out, "<h1>hello gua</h1>"))

	out = exchange(t, address, "POST /user/add?name=carol HTTP/1.1\r\n\r\n")
	assert.True(t, strings.HasPrefix(out, "HTTP/1.1 201 Created\r\n"))
	assert.True(t, strings.HasSuffix(out, `{"added":"carol"}`))

	out = exchange(t, address, "GET /user/add HTTP/1.1\r\n\r\n")
	assert.True(t, strings.HasPrefix(out, "HTTP/1.1 404 Not Found\r\n"))

	resp, err := http.Get("http://127.0.0.1:" + strconv.Itoa(metricsPort) + "/metrics")
	require.NoError(t, err)
	b, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(b), `blueprint_engine_requests_total`)

	close(quit)
	select {
	case code := <-done:
		assert.Equal(t, 0, code)
	case <-time.After(15 * time.Second):
		t.Fatal("run did not return after quit")
	}
}

func TestRegisterRoutes(t *testing.T) {
	e := engine.New("127.0.0.1:0")
	require.NoError(t, registerRoutes(e))
	assert.Equal(t, 5, e.Root().Len())

	out := &bytes.Buffer{}
	client, server := net.Pipe()
	go e.ServeConn(server)
	go func() {
		client.Write([]byte("POST /user/add HTTP/1.1\r\n\r\n"))
	}()
	io.Copy(out, client)
	assert.True(t, strings.HasPrefix(out.String(), "HTTP/1.1 400 Bad Request\r\n"))
	assert.True(t, strings.HasSuffix(out.String(), "missing name"))
}
