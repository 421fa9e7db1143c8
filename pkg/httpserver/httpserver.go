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

// Package httpserver assembles the engine, its observability stack and the
// metrics listener from a loaded configuration
package httpserver

import (
	"context"
	goerrors "errors"
	"net"
	"net/http"
	"os"
	goruntime "runtime"
	"sync"

	"github.com/trickstercache/blueprint/pkg/appinfo"
	"github.com/trickstercache/blueprint/pkg/config"
	"github.com/trickstercache/blueprint/pkg/engine"
	"github.com/trickstercache/blueprint/pkg/errors"
	"github.com/trickstercache/blueprint/pkg/observability/logging"
	"github.com/trickstercache/blueprint/pkg/observability/logging/logger"
	"github.com/trickstercache/blueprint/pkg/observability/metrics"
	"github.com/trickstercache/blueprint/pkg/observability/tracing"
	tr "github.com/trickstercache/blueprint/pkg/observability/tracing/registration"
)

// RegisterFunc registers an application's routes on the engine
type RegisterFunc func(*engine.Engine) error

// Server runs an Engine and the metrics listener described by a Config
type Server struct {
	conf   *config.Config
	logger logging.Logger
	tracer *tracing.Tracer
	engine *engine.Engine

	mtx             sync.Mutex
	metricsServer   *http.Server
	metricsListener net.Listener
}

// New validates conf, initializes the logger, tracer and build info metric,
// and returns a Server whose engine has the routes added by register
func New(conf *config.Config, register RegisterFunc) (*Server, error) {
	if conf == nil {
		conf = config.NewConfig()
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	appinfo.SetServer(conf.Main.ServerName)
	l := initLogger(conf)
	for _, w := range conf.LoaderWarnings {
		l.Warn(w, nil)
	}

	metrics.SetBuildInfo(appinfo.Version, appinfo.GitCommitID)

	t, err := tr.GetTracer(conf.Tracing, l, false)
	if err != nil {
		l.Error("tracing registration failed", logging.Pairs{"detail": err.Error()})
		return nil, err
	}

	e := engine.New(conf.Frontend.Address(),
		engine.WithLogger(l),
		engine.WithTracer(t),
		engine.WithConnectionsLimit(conf.Frontend.ConnectionsLimit),
		engine.WithMaxRequestBytes(conf.Frontend.MaxRequestBytes),
	)
	if register != nil {
		if err := register(e); err != nil {
			l.Error("route registration failed", logging.Pairs{"detail": err.Error()})
			t.Shutdown(context.Background())
			return nil, err
		}
	}

	return &Server{
		conf:   conf,
		logger: l,
		tracer: t,
		engine: e,
	}, nil
}

func initLogger(c *config.Config) logging.Logger {
	l := logging.New(c)
	logger.SetLogger(l)
	l.Info("application loaded from configuration",
		logging.Pairs{
			"name":      appinfo.Name,
			"version":   appinfo.Version,
			"goVersion": goruntime.Version(),
			"goArch":    goruntime.GOARCH,
			"goOS":      goruntime.GOOS,
			"commitID":  appinfo.GitCommitID,
			"buildTime": appinfo.BuildTime,
			"logLevel":  c.Logging.LogLevel,
			"config":    c.ConfigFilePath(),
			"server":    appinfo.Server,
			"pid":       os.Getpid(),
		},
	)
	return l
}

// Engine returns the Server's Engine
func (s *Server) Engine() *engine.Engine {
	return s.engine
}

// Logger returns the Server's Logger
func (s *Server) Logger() logging.Logger {
	return s.logger
}

// Serve starts the metrics listener, when configured, and runs the engine on
// the configured frontend address. It returns nil once Shutdown is called.
func (s *Server) Serve() error {
	if err := s.startMetricsListener(); err != nil {
		return err
	}
	return s.serveResult(s.engine.Run())
}

// ServeListener is like Serve but runs the engine on ln
func (s *Server) ServeListener(ln net.Listener) error {
	if err := s.startMetricsListener(); err != nil {
		return err
	}
	return s.serveResult(s.engine.Serve(ln))
}

func (s *Server) serveResult(err error) error {
	if err == nil || goerrors.Is(err, errors.ErrServerClosed) {
		return nil
	}
	s.logger.Error("engine listener stopping", logging.Pairs{"detail": err.Error()})
	return err
}

// Shutdown stops accepting connections, waits for in-flight requests until
// ctx is done, then stops the metrics listener and flushes the tracer
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.engine.Shutdown(ctx)
	s.mtx.Lock()
	svr := s.metricsServer
	s.mtx.Unlock()
	if svr != nil {
		if err2 := svr.Shutdown(ctx); err == nil {
			err = err2
		}
	}
	if err2 := s.tracer.Shutdown(ctx); err2 != nil {
		s.logger.Error("tracer shutdown failed",
			logging.Pairs{"detail": err2.Error()})
		if err == nil {
			err = err2
		}
	}
	s.logger.Info("shutdown complete", nil)
	return err
}
