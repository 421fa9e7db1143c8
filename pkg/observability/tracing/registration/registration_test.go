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

package registration

import (
	"context"
	"errors"
	"testing"

	be "github.com/trickstercache/blueprint/pkg/errors"
	"github.com/trickstercache/blueprint/pkg/observability/logging"
	"github.com/trickstercache/blueprint/pkg/observability/tracing/options"
)

func TestGetTracer(t *testing.T) {

	logger := logging.NoopLogger()

	// test nil config
	tr, err := GetTracer(nil, logger, false)
	if err != nil {
		t.Error(err)
	}
	if tr == nil || tr.Tracer == nil {
		t.Fatal("expected noop tracer")
	}

	tc := options.New()
	tr, err = GetTracer(tc, logger, false)
	if err != nil {
		t.Error(err)
	}
	if tr.ShutdownFunc != nil {
		t.Error("expected noop tracer without a shutdown func")
	}

	tc.Provider = "stdout"
	tr, err = GetTracer(tc, logger, false)
	if err != nil {
		t.Error(err)
	}
	if tr.ShutdownFunc == nil {
		t.Error("expected shutdown func for stdout tracer")
	} else if err := tr.Shutdown(context.Background()); err != nil {
		t.Error(err)
	}

	tc.Provider = "zipkin"
	tc.CollectorURL = ""
	_, err = GetTracer(tc, logger, true)
	if !errors.Is(err, be.ErrMissingCollectorURL) {
		t.Errorf("expected %v got %v", be.ErrMissingCollectorURL, err)
	}

	tc.CollectorURL = "http://127.0.0.1:9411/api/v2/spans"
	tr, err = GetTracer(tc, logger, true)
	if err != nil {
		t.Error(err)
	}
	if tr != nil {
		tr.Shutdown(context.Background())
	}

	tc.Provider = "jaeger"
	tc.CollectorURL = "http://127.0.0.1:14268/api/traces"
	tr, err = GetTracer(tc, logger, false)
	if err != nil {
		t.Fatal(err)
	}
	if tr.ShutdownFunc == nil {
		t.Error("expected shutdown func for jaeger tracer")
	} else if err := tr.Shutdown(context.Background()); err != nil {
		t.Error(err)
	}
	if tc.JaegerOptions == nil || tc.JaegerOptions.EndpointType != options.JaegerEndpointCollector {
		t.Error("expected the collector endpoint type by default")
	}

	tc.Provider = "otlp"
	_, err = GetTracer(tc, logger, true)
	if !errors.Is(err, be.ErrInvalidTracingProvider) {
		t.Errorf("expected %v got %v", be.ErrInvalidTracingProvider, err)
	}
}
