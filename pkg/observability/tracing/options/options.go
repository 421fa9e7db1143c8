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

package options

import (
	"fmt"
	"strings"

	"github.com/trickstercache/blueprint/pkg/errors"
)

const (
	// ProviderNone disables tracing
	ProviderNone = "none"
	// ProviderStdout exports spans to stdout
	ProviderStdout = "stdout"
	// ProviderZipkin exports spans to a Zipkin collector
	ProviderZipkin = "zipkin"
	// ProviderJaeger exports spans to a Jaeger collector or agent
	ProviderJaeger = "jaeger"

	// JaegerEndpointCollector sends spans to a collector's HTTP endpoint
	JaegerEndpointCollector = "collector"
	// JaegerEndpointAgent sends spans to an agent over UDP; the collector_url
	// is then a host:port
	JaegerEndpointAgent = "agent"

	// DefaultTracerProvider is the default distributed tracer exporter implementation
	DefaultTracerProvider = ProviderNone
	// DefaultTracerServiceName is the default service name under which traces are registered
	DefaultTracerServiceName = "blueprint"
	// DefaultSampleRate is the default sampling rate
	DefaultSampleRate = 1
)

// Options is a Tracing Options collection
type Options struct {
	Provider     string  `yaml:"provider,omitempty"`
	ServiceName  string  `yaml:"service_name,omitempty"`
	CollectorURL string  `yaml:"collector_url,omitempty"`
	SampleRate   float64 `yaml:"sample_rate,omitempty"`
	// CollectorUser and CollectorPass authenticate to a jaeger collector
	CollectorUser string            `yaml:"collector_user,omitempty"`
	CollectorPass string            `yaml:"collector_pass,omitempty"`
	PrettyPrint   bool              `yaml:"pretty_print,omitempty"`
	Tags          map[string]string `yaml:"tags,omitempty"`

	JaegerOptions *JaegerOptions `yaml:"jaeger,omitempty"`
}

// JaegerOptions holds the jaeger-specific options
type JaegerOptions struct {
	// EndpointType is collector (default) or agent
	EndpointType string `yaml:"endpoint_type,omitempty"`
}

// New returns a new *Options with the default values
func New() *Options {
	return &Options{
		Provider:    DefaultTracerProvider,
		ServiceName: DefaultTracerServiceName,
		SampleRate:  DefaultSampleRate,
	}
}

// Clone returns an exact copy of a tracing config
func (o *Options) Clone() *Options {
	var tags map[string]string
	if o.Tags != nil {
		tags = make(map[string]string, len(o.Tags))
		for k, v := range o.Tags {
			tags[k] = v
		}
	}
	var jo *JaegerOptions
	if o.JaegerOptions != nil {
		jo = &JaegerOptions{EndpointType: o.JaegerOptions.EndpointType}
	}
	return &Options{
		Provider:      o.Provider,
		ServiceName:   o.ServiceName,
		CollectorURL:  o.CollectorURL,
		SampleRate:    o.SampleRate,
		CollectorUser: o.CollectorUser,
		CollectorPass: o.CollectorPass,
		PrettyPrint:   o.PrettyPrint,
		Tags:          tags,
		JaegerOptions: jo,
	}
}

// Validate normalizes the provider name and checks that the options
// are usable by the selected provider
func (o *Options) Validate() error {
	o.Provider = strings.ToLower(o.Provider)
	switch o.Provider {
	case "":
		o.Provider = ProviderNone
	case ProviderNone, ProviderStdout:
	case ProviderZipkin:
		if o.CollectorURL == "" {
			return fmt.Errorf("%w: %s", errors.ErrMissingCollectorURL, o.Provider)
		}
	case ProviderJaeger:
		if o.CollectorURL == "" {
			return fmt.Errorf("%w: %s", errors.ErrMissingCollectorURL, o.Provider)
		}
		if o.JaegerOptions == nil {
			o.JaegerOptions = &JaegerOptions{}
		}
		o.JaegerOptions.EndpointType = strings.ToLower(o.JaegerOptions.EndpointType)
		switch o.JaegerOptions.EndpointType {
		case "":
			o.JaegerOptions.EndpointType = JaegerEndpointCollector
		case JaegerEndpointCollector, JaegerEndpointAgent:
		default:
			return fmt.Errorf("%w: %q", errors.ErrInvalidJaegerEndpointType,
				o.JaegerOptions.EndpointType)
		}
	default:
		return fmt.Errorf("%w: %q", errors.ErrInvalidTracingProvider, o.Provider)
	}
	if o.SampleRate <= 0 || o.SampleRate > 1 {
		o.SampleRate = DefaultSampleRate
	}
	if o.ServiceName == "" {
		o.ServiceName = DefaultTracerServiceName
	}
	return nil
}
