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

package zipkin

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	errs "github.com/trickstercache/blueprint/pkg/observability/tracing/errors"
	"github.com/trickstercache/blueprint/pkg/observability/tracing/options"
)

func TestNew(t *testing.T) {

	_, err := New(nil)
	if err != errs.ErrNoTracerOptions {
		t.Error("expected error for no tracer options")
	}

	opt := options.New()
	opt.Tags = map[string]string{"test": "test"}
	opt.CollectorURL = "http://1.2.3.4:8000"

	_, err = New(opt)
	if err != nil {
		t.Error(err)
	}

	opt.SampleRate = 0.5
	_, err = New(opt)
	if err != nil {
		t.Error(err)
	}

	opt.CollectorURL = "1.2.3.4:5"
	_, err = New(opt)
	if err == nil {
		t.Error("expected error for invalid collector URL")
	}

}

func TestNewServiceName(t *testing.T) {
	var posts atomic.Int32
	var body atomic.Value
	collector := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		body.Store(string(b))
		posts.Add(1)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer collector.Close()

	opt := options.New()
	opt.Provider = options.ProviderZipkin
	opt.ServiceName = ""
	opt.CollectorURL = collector.URL + "/api/v2/spans"
	opt.Tags = map[string]string{"env": "test", "service.name": "ignored"}
	if err := opt.Validate(); err != nil {
		t.Fatal(err)
	}

	tr, err := New(opt)
	if err != nil {
		t.Fatal(err)
	}
	if tr.Name != options.DefaultTracerServiceName {
		t.Errorf("expected %s got %s", options.DefaultTracerServiceName, tr.Name)
	}
	if tr.Options != opt || tr.Tracer == nil {
		t.Error("expected tracer bound to its options")
	}

	_, sp := tr.Start(context.Background(), "test")
	sp.End()
	if !sp.SpanContext().IsValid() {
		t.Error("expected a sampled span")
	}
	if err := tr.Shutdown(context.Background()); err != nil {
		t.Error(err)
	}
	if posts.Load() == 0 {
		t.Fatal("expected the span to be exported on shutdown")
	}
	exported, _ := body.Load().(string)
	if !strings.Contains(exported, `"serviceName":"blueprint"`) {
		t.Errorf("expected the default service name in %s", exported)
	}
}
