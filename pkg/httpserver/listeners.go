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
	goerrors "errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/trickstercache/blueprint/pkg/observability/logging"
	"github.com/trickstercache/blueprint/pkg/observability/metrics"
	"github.com/trickstercache/blueprint/pkg/observability/pprof"
)

// MetricsPath is the path the prometheus handler is served on
const MetricsPath = "/metrics"

// startMetricsListener serves the prometheus handler on the configured
// metrics address. A metrics port of 0 disables the listener.
func (s *Server) startMetricsListener() error {
	if s.conf.Metrics == nil || s.conf.Metrics.ListenPort < 1 {
		return nil
	}
	address := s.conf.Metrics.Address()
	ln, err := net.Listen("tcp", address)
	if err != nil {
		// this usually means that the port is in use
		s.logger.Error("metrics listener startup failed",
			logging.Pairs{"address": address, "detail": err.Error()})
		return fmt.Errorf("metrics bind %s: %w", address, err)
	}
	return s.serveMetrics(ln)
}

func (s *Server) serveMetrics(ln net.Listener) error {
	mux := http.NewServeMux()
	mux.Handle(MetricsPath, metrics.Handler())
	if s.conf.Metrics != nil && s.conf.Metrics.EnablePprof {
		pprof.RegisterRoutes("metrics", mux, s.logger)
	}
	svr := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.mtx.Lock()
	s.metricsServer = svr
	s.metricsListener = ln
	s.mtx.Unlock()

	s.logger.Info("metrics listener starting",
		logging.Pairs{"address": ln.Addr().String(), "path": MetricsPath})

	go func() {
		err := svr.Serve(ln)
		if err != nil && !goerrors.Is(err, http.ErrServerClosed) {
			s.logger.Error("metrics listener stopping",
				logging.Pairs{"detail": err.Error()})
		}
	}()
	return nil
}

// MetricsAddr returns the address of the metrics listener, or nil if it is
// not running
func (s *Server) MetricsAddr() net.Addr {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.metricsListener == nil {
		return nil
	}
	return s.metricsListener.Addr()
}
