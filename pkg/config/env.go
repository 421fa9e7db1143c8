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

package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	// Environment variables
	evListenAddress = "BP_LISTEN_ADDRESS"
	evListenPort    = "BP_LISTEN_PORT"
	evMetricsPort   = "BP_METRICS_PORT"
	evLogLevel      = "BP_LOG_LEVEL"
)

func (c *Config) loadEnvVars() {
	// Listen Address
	if x := os.Getenv(evListenAddress); x != "" {
		c.Frontend.ListenAddress = x
	}

	// Listen Port
	if x := os.Getenv(evListenPort); x != "" {
		if y, err := strconv.ParseInt(x, 10, 32); err == nil {
			c.Frontend.ListenPort = int(y)
		} else {
			c.LoaderWarnings = append(c.LoaderWarnings,
				fmt.Sprintf("ignoring %s=%q: not a number", evListenPort, x))
		}
	}

	// Metrics Port
	if x := os.Getenv(evMetricsPort); x != "" {
		if y, err := strconv.ParseInt(x, 10, 32); err == nil {
			c.Metrics.ListenPort = int(y)
		} else {
			c.LoaderWarnings = append(c.LoaderWarnings,
				fmt.Sprintf("ignoring %s=%q: not a number", evMetricsPort, x))
		}
	}

	// LogLevel
	if x := os.Getenv(evLogLevel); x != "" {
		c.Logging.LogLevel = x
	}
}
