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

// Package stdout provides a Stdout Tracer
package stdout

import (
	"io"
	"os"

	"github.com/trickstercache/blueprint/pkg/observability/tracing"
	"github.com/trickstercache/blueprint/pkg/observability/tracing/options"

	stdout "go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// New returns a new Stdout Tracer
func New(opts *options.Options) (*tracing.Tracer, error) {
	return NewWithWriter(opts, os.Stdout)
}

// NewWithWriter returns a new Tracer that writes finished spans to w
func NewWithWriter(opts *options.Options, w io.Writer) (*tracing.Tracer, error) {

	if opts == nil {
		opts = &options.Options{
			SampleRate:  1,
			ServiceName: options.DefaultTracerServiceName,
			Provider:    options.ProviderStdout,
		}
	}

	o := []stdout.Option{stdout.WithWriter(w)}
	if opts.PrettyPrint {
		o = append(o, stdout.WithPrettyPrint())
	}

	// Create Basic Stdout Exporter
	exp, err := stdout.New(o...)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exp),
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
