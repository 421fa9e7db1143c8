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
	"fmt"
	"io"

	"github.com/trickstercache/blueprint/pkg/appinfo"
)

const usageText = `
blueprint Usage:

 Print Version Info:
 blueprint -version

 Validating a configuration file:
  blueprint -validate-config -config /path/to/file.yaml

 Using a configuration file:
  blueprint -config /path/to/file.yaml [-log-level debug|info|warn|error] [-listen-port 8080] [-metrics-port 8481]

 Using defaults with overrides:
  blueprint [-listen-address 0.0.0.0] [-listen-port 8080] [-instance-id 1]

------

blueprint listens on 127.0.0.1:8080 by default. Set in a config file, or override using
-listen-address and -listen-port, or the BP_LISTEN_ADDRESS and BP_LISTEN_PORT environment variables.

Default log level is info. Set in a config file, or override with -log-level or BP_LOG_LEVEL.

Prometheus metrics are served at /metrics on port 8481 by default. A metrics port of 0 in the
config file disables the metrics listener.
`

func printVersion(w io.Writer) {
	fmt.Fprintln(w, appinfo.String())
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w)
	printVersion(w)
	fmt.Fprint(w, usageText)
}
