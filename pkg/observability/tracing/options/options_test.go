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
	"errors"
	"testing"

	be "github.com/trickstercache/blueprint/pkg/errors"
)

func TestNew(t *testing.T) {
	o := New()
	o.CollectorURL = "http://zipkin:9411/api/v2/spans"
	o.Tags = map[string]string{"env": "test"}
	o2 := o.Clone()
	if o2.CollectorURL != o.CollectorURL {
		t.Error("clone failed")
	}
	o2.Tags["env"] = "prod"
	if o.Tags["env"] != "test" {
		t.Error("clone shares the tags map")
	}

	o.JaegerOptions = &JaegerOptions{EndpointType: JaegerEndpointAgent}
	o.CollectorUser = "user"
	o3 := o.Clone()
	if o3.CollectorUser != "user" || o3.JaegerOptions == o.JaegerOptions ||
		o3.JaegerOptions.EndpointType != JaegerEndpointAgent {
		t.Error("clone failed to copy jaeger options")
	}
}

func TestValidateJaegerDefaults(t *testing.T) {
	o := &Options{Provider: ProviderJaeger, CollectorURL: "http://127.0.0.1:14268/api/traces"}
	if err := o.Validate(); err != nil {
		t.Fatal(err)
	}
	if o.JaegerOptions == nil || o.JaegerOptions.EndpointType != JaegerEndpointCollector {
		t.Errorf("expected %s endpoint type", JaegerEndpointCollector)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		opts     *Options
		provider string
		err      error
	}{
		{"default", New(), ProviderNone, nil},
		{"empty provider", &Options{}, ProviderNone, nil},
		{"stdout upper", &Options{Provider: "STDOUT"}, ProviderStdout, nil},
		{"zipkin", &Options{Provider: ProviderZipkin,
			CollectorURL: "http://127.0.0.1:9411/api/v2/spans"}, ProviderZipkin, nil},
		{"zipkin no url", &Options{Provider: ProviderZipkin}, ProviderZipkin,
			be.ErrMissingCollectorURL},
		{"jaeger", &Options{Provider: "Jaeger",
			CollectorURL: "http://127.0.0.1:14268/api/traces"}, ProviderJaeger, nil},
		{"jaeger agent", &Options{Provider: ProviderJaeger, CollectorURL: "127.0.0.1:6831",
			JaegerOptions: &JaegerOptions{EndpointType: "AGENT"}}, ProviderJaeger, nil},
		{"jaeger no url", &Options{Provider: ProviderJaeger}, ProviderJaeger,
			be.ErrMissingCollectorURL},
		{"jaeger bad endpoint", &Options{Provider: ProviderJaeger, CollectorURL: "x",
			JaegerOptions: &JaegerOptions{EndpointType: "grpc"}}, ProviderJaeger,
			be.ErrInvalidJaegerEndpointType},
		{"unknown", &Options{Provider: "otlp"}, "otlp",
			be.ErrInvalidTracingProvider},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.opts.Validate()
			if !errors.Is(err, test.err) {
				t.Fatalf("expected %v got %v", test.err, err)
			}
			if test.opts.Provider != test.provider {
				t.Errorf("expected %s got %s", test.provider, test.opts.Provider)
			}
			if err == nil {
				if test.opts.SampleRate != DefaultSampleRate {
					t.Errorf("expected %d got %f", DefaultSampleRate, test.opts.SampleRate)
				}
				if test.opts.ServiceName != DefaultTracerServiceName {
					t.Errorf("expected %s got %s", DefaultTracerServiceName,
						test.opts.ServiceName)
				}
			}
		})
	}
}

func TestValidateKeepsSampleRate(t *testing.T) {
	o := &Options{Provider: ProviderStdout, SampleRate: 0.25}
	if err := o.Validate(); err != nil {
		t.Fatal(err)
	}
	if o.SampleRate != 0.25 {
		t.Errorf("expected 0.25 got %f", o.SampleRate)
	}
}
