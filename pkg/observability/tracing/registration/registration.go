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

// Package registration creates the configured tracer
package registration

import (
	"github.com/trickstercache/blueprint/pkg/observability/logging"
	"github.com/trickstercache/blueprint/pkg/observability/tracing"
	"github.com/trickstercache/blueprint/pkg/observability/tracing/exporters/jaeger"
	"github.com/trickstercache/blueprint/pkg/observability/tracing/exporters/noop"
	"github.com/trickstercache/blueprint/pkg/observability/tracing/exporters/stdout"
	"github.com/trickstercache/blueprint/pkg/observability/tracing/exporters/zipkin"
	"github.com/trickstercache/blueprint/pkg/observability/tracing/options"
)

// GetTracer returns a *Tracer based on the provided options. Nil options or
// the "none" provider yield a noop tracer.
func GetTracer(opts *options.Options, logger logging.Logger,
	isDryRun bool) (*tracing.Tracer, error) {

	if opts == nil {
		if logger != nil {
			logger.Info("nil tracing config, using noop tracer", nil)
		}
		return noop.New(opts)
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}

	logTracerRegistration := func() {
		if isDryRun || logger == nil {
			return
		}
		logger.Info("tracer registration",
			logging.Pairs{
				"provider":     opts.Provider,
				"serviceName":  opts.ServiceName,
				"collectorURL": opts.CollectorURL,
				"sampleRate":   opts.SampleRate,
			},
		)
	}

	switch opts.Provider {
	case options.ProviderStdout:
		logTracerRegistration()
		return stdout.New(opts)
	case options.ProviderZipkin:
		logTracerRegistration()
		return zipkin.New(opts)
	case options.ProviderJaeger:
		logTracerRegistration()
		return jaeger.New(opts)
	}

	return noop.New(opts)
}
