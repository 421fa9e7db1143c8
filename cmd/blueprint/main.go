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

// Package main is the main package for the blueprint application
package main

import (
	"context"
	goerrors "errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/trickstercache/blueprint/pkg/appinfo"
	"github.com/trickstercache/blueprint/pkg/config"
	"github.com/trickstercache/blueprint/pkg/httpserver"
	"github.com/trickstercache/blueprint/pkg/httpserver/signal"
	"github.com/trickstercache/blueprint/pkg/observability/logging"
	"github.com/trickstercache/blueprint/pkg/observability/logging/logger"
)

var (
	applicationGitCommitID string
	applicationBuildTime   string
)

const (
	applicationName    = "blueprint"
	applicationVersion = "1.0.0"
)

// drainTimeout bounds how long in-flight requests may run after a
// shutdown signal
const drainTimeout = 10 * time.Second

func main() {
	appinfo.Set(applicationName, applicationVersion,
		applicationBuildTime, applicationGitCommitID)
	os.Exit(run(os.Args[1:], os.Stdout, nil))
}

// run loads the configuration from args and serves until a termination
// signal arrives or quit is closed. It returns the process exit code.
func run(args []string, w io.Writer, quit <-chan struct{}) int {
	conf, flags, err := config.Load(appinfo.Name, args)
	if err != nil {
		if goerrors.Is(err, flag.ErrHelp) {
			printUsage(w)
			return 0
		}
		fmt.Fprintf(w, "\nERROR: Could not load configuration: %s\n", err.Error())
		if flags != nil && flags.ValidateConfig {
			return 1
		}
		printUsage(w)
		return 1
	}
	if flags.PrintVersion {
		printVersion(w)
		return 0
	}
	if flags.ValidateConfig {
		for _, warning := range conf.LoaderWarnings {
			fmt.Fprintf(w, "WARNING: %s\n", warning)
		}
		fmt.Fprintln(w, "blueprint configuration validation succeeded.")
		return 0
	}

	s, err := httpserver.New(conf, registerRoutes)
	if err != nil {
		logger.Error("could not start server", logging.Pairs{"detail": err.Error()})
		return 1
	}
	defer s.Logger().Close()

	done := signal.StartShutdownMonitor(s.Shutdown, s.Logger(), drainTimeout, quit)
	if err := s.Serve(); err != nil {
		s.Shutdown(context.Background())
		s.Logger().Error("server exiting", logging.Pairs{"detail": err.Error()})
		return 1
	}
	if err := <-done; err != nil {
		s.Logger().Error("shutdown incomplete", logging.Pairs{"detail": err.Error()})
		return 1
	}
	return 0
}
