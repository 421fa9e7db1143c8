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

// Package listener provides the engine's net.Listener, which enforces the
// configured connection limit and reports connection metrics
package listener

import (
	"net"
	"sync"

	"github.com/trickstercache/blueprint/pkg/errors"
	"github.com/trickstercache/blueprint/pkg/observability/logging"
	"github.com/trickstercache/blueprint/pkg/observability/metrics"

	"golang.org/x/net/netutil"
)

// Listener is the engine's net.Listener implementation
type Listener struct {
	net.Listener
	connectionsLimit int
}

type observedConnection struct {
	net.Conn
	closeOnce sync.Once
}

// Close closes the underlying connection. Metrics are only updated on the
// first call.
func (o *observedConnection) Close() error {
	err := o.Conn.Close()
	o.closeOnce.Do(func() {
		metrics.EngineActiveConnections.Dec()
		metrics.EngineConnectionClosed.Inc()
	})
	return err
}

// Accept implements Listener.Accept
func (l *Listener) Accept() (net.Conn, error) {

	metrics.EngineConnectionRequested.Inc()

	c, err := l.Listener.Accept()
	if err != nil {
		metrics.EngineConnectionFailed.Inc()
		return c, err
	}

	metrics.EngineActiveConnections.Inc()
	metrics.EngineConnectionAccepted.Inc()

	return &observedConnection{Conn: c}, nil
}

// ConnectionsLimit returns the maximum concurrent connections, or 0 if unlimited
func (l *Listener) ConnectionsLimit() int {
	return l.connectionsLimit
}

// Wrap returns a Listener over ln that observes connections with prometheus
// metrics. When connectionsLimit > 0, ln is first wrapped with a
// netutil.LimitListener, which blocks in Accept until a slot frees up.
func Wrap(ln net.Listener, connectionsLimit int) (*Listener, error) {
	if ln == nil {
		return nil, errors.ErrNilListener
	}
	if connectionsLimit > 0 {
		ln = netutil.LimitListener(ln, connectionsLimit)
		metrics.EngineMaxConnections.Set(float64(connectionsLimit))
	} else {
		connectionsLimit = 0
		metrics.EngineMaxConnections.Set(0)
	}
	return &Listener{Listener: ln, connectionsLimit: connectionsLimit}, nil
}

// NewListener creates a new TCP listener bound to address that obeys the
// connections limit and monitors connections with prometheus metrics
func NewListener(address string, connectionsLimit int,
	logger logging.Logger) (*Listener, error) {

	ln, err := net.Listen("tcp", address)
	if err != nil {
		// so we can exit one level above, this usually means that the port is in use
		return nil, err
	}

	l, err := Wrap(ln, connectionsLimit)
	if err != nil {
		ln.Close()
		return nil, err
	}

	if logger != nil {
		logger.Debug("starting engine listener", logging.Pairs{
			"connectionsLimit": connectionsLimit,
			"address":          ln.Addr().String(),
		})
	}

	return l, nil
}
