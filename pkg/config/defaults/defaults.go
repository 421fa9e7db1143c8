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

package defaults

const (
	// DefaultConfigPath is the default location of the configuration file
	DefaultConfigPath = "/etc/blueprint/blueprint.yaml"

	// DefaultListenPort is the default port that the engine will listen on
	DefaultListenPort = 8080
	// DefaultListenAddress is the default address that the engine will listen on
	DefaultListenAddress = "127.0.0.1"
	// DefaultConnectionsLimit is the default maximum number of concurrent
	// connections; 0 means unlimited
	DefaultConnectionsLimit = 0
	// DefaultMaxRequestBytes is the default upper bound on a single request read
	DefaultMaxRequestBytes = 1 << 20
)
