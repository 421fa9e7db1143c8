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

// Package signal watches for process termination signals and runs a
// shutdown function when one arrives
package signal

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/trickstercache/blueprint/pkg/observability/logging"
)

var terms = make(chan os.Signal, 1)

func init() {
	signal.Notify(terms, syscall.SIGINT, syscall.SIGTERM)
}

// ShutdownFunc stops the server, giving in-flight work until ctx is done
type ShutdownFunc func(context.Context) error

// StartShutdownMonitor runs f on the first SIGINT or SIGTERM, or when quit
// is closed. The returned channel receives f's result and is then closed.
func StartShutdownMonitor(f ShutdownFunc, logger logging.Logger,
	drainTimeout time.Duration, quit <-chan struct{}) <-chan error {

	done := make(chan error, 1)
	if f == nil {
		close(done)
		return done
	}
	go func() {
		defer close(done)
		select {
		case sig := <-terms:
			if logger != nil {
				logger.Warn("shutdown starting now",
					logging.Pairs{"signal": sig.String()})
			}
		case <-quit:
			if logger != nil {
				logger.Info("shutdown starting now", logging.Pairs{"source": "quit"})
			}
		}
		ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
		defer cancel()
		done <- f(ctx)
	}()
	return done
}
