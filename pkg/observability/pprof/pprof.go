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

// Package pprof registers the runtime profiling endpoints
package pprof

import (
	"net/http"
	"net/http/pprof"

	"github.com/trickstercache/blueprint/pkg/observability/logging"
)

// Prefix is the path the profiling endpoints are served under
const Prefix = "/debug/pprof/"

// RegisterRoutes registers the pprof debugging endpoints on mux
func RegisterRoutes(listenerName string, mux *http.ServeMux, logger logging.Logger) {
	if logger != nil {
		logger.Info("registering pprof /debug routes",
			logging.Pairs{"listenerName": listenerName})
	}
	mux.HandleFunc(Prefix, pprof.Index)
	mux.HandleFunc(Prefix+"cmdline", pprof.Cmdline)
	mux.HandleFunc(Prefix+"profile", pprof.Profile)
	mux.HandleFunc(Prefix+"symbol", pprof.Symbol)
	mux.HandleFunc(Prefix+"trace", pprof.Trace)
}
