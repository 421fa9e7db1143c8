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

// Package jaeger provides a Jaeger Tracer
package jaeger

import (
	"net"

	"github.com/trickstercache/blueprint/pkg/observability/tracing"
	errs "github.com/trickstercache/blueprint/pkg/observability/tracing/errors"
	"github.com/trickstercache/blueprint/pkg/observability/tracing/options"

	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// New returns a new Jaeger Tracer based on the provided options
func New(opts *options.Options) (*tracing.Tracer, error) {

	if opts == nil {
		return nil, errs.ErrNoTracerOptions
	}

	eo, err := endpointOption(opts)
	if err != nil {
		return nil, err
	}

	exporter, err := jaeger.New(eo)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(tracing.Sampler(opts.SampleRate)),
		sdktrace.WithResource(resource.NewWithAttributes("",
			tracing.ResourceAttributes(opts)...)),
	)

	return &tracing.Tracer{
		Name:         opts.ServiceName,
		Tracer:       tp.Tracer(opts.ServiceName),
		ShutdownFunc: tp.Shutdown,
		Options:      opts,
	}, nil
}

func endpointOption(opts *options.Options) (jaeger.EndpointOption, error) {
	if opts.JaegerOptions != nil &&
		opts.JaegerOptions.EndpointType == options.JaegerEndpointAgent {
		host, port, err := net.SplitHostPort(opts.CollectorURL)
		if err != nil || host == "" || port == "" {
			return nil, errs.ErrInvalidEndpointURL
		}
		return jaeger.WithAgentEndpoint(jaeger.WithAgentHost(host),
			jaeger.WithAgentPort(port)), nil
	}
	// by default assume a "collector" config
	ceo := make([]jaeger.CollectorEndpointOption, 1, 3)
	ceo[0] = jaeger.WithEndpoint(opts.CollectorURL)
	if opts.CollectorUser != "" {
		ceo = append(ceo, jaeger.WithUsername(opts.CollectorUser))
	}
	if opts.CollectorPass != "" {
		ceo = append(ceo, jaeger.WithPassword(opts.CollectorPass))
	}
	return jaeger.WithCollectorEndpoint(ceo...), nil
}
