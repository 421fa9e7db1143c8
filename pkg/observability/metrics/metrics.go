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

// Package metrics implements prometheus metrics and exposes the metrics HTTP listener
package metrics

import (
	"net/http"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	metricNamespace = "blueprint"
	buildSubsystem  = "build"
	engineSubsystem = "engine"
)

// Default histogram buckets used by the engine
var (
	defaultBuckets = []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}
)

// UnmatchedPath is the path label value for requests that did not match a route
const UnmatchedPath = "unmatched"

// BuildInfo is a Gauge representing the binary build information of the running server instance
var BuildInfo *prometheus.GaugeVec

// RequestStatus is a Counter of requests that have been processed with their status
var RequestStatus *prometheus.CounterVec

// RequestDuration is a histogram that tracks the time it takes to process a request
var RequestDuration *prometheus.HistogramVec

// RequestWrittenBytes is a Counter of bytes written in responses
var RequestWrittenBytes *prometheus.CounterVec

// HandlerPanics is a Counter of route handlers that panicked
var HandlerPanics prometheus.Counter

// EngineMaxConnections is a Gauge representing the max number of active concurrent connections in the server
var EngineMaxConnections prometheus.Gauge

// EngineActiveConnections is a Gauge representing the number of active connections in the server
var EngineActiveConnections prometheus.Gauge

// EngineConnectionRequested is a counter representing the total number of connections requested by clients
var EngineConnectionRequested prometheus.Counter

// EngineConnectionAccepted is a counter representing the total number of connections accepted by the engine
var EngineConnectionAccepted prometheus.Counter

// EngineConnectionClosed is a counter representing the total number of connections closed by the engine
var EngineConnectionClosed prometheus.Counter

// EngineConnectionFailed is a counter for the total number of connections failed to connect for whatever reason
var EngineConnectionFailed prometheus.Counter

func init() {

	BuildInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Subsystem: buildSubsystem,
			Name:      "info",
			Help: "A metric with a constant '1' value labeled by version," +
				"revision, and goversion from which the server was built.",
		},
		[]string{"goversion", "revision", "version"},
	)

	RequestStatus = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: engineSubsystem,
			Name:      "requests_total",
			Help:      "Count of requests handled by the engine",
		},
		[]string{"method", "path", "http_status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricNamespace,
			Subsystem: engineSubsystem,
			Name:      "requests_duration_seconds",
			Help:      "Histogram of request durations handled by the engine",
			Buckets:   defaultBuckets,
		},
		[]string{"method", "path", "http_status"},
	)

	RequestWrittenBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: engineSubsystem,
			Name:      "written_bytes_total",
			Help:      "Count of bytes written in responses by the engine",
		},
		[]string{"method", "path", "http_status"},
	)

	HandlerPanics = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: engineSubsystem,
			Name:      "handler_panics_total",
			Help:      "Count of route handlers that panicked.",
		},
	)

	EngineMaxConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Subsystem: engineSubsystem,
			Name:      "max_connections",
			Help:      "Max number of active connections. 0 is unlimited.",
		},
	)

	EngineActiveConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Subsystem: engineSubsystem,
			Name:      "active_connections",
			Help:      "Number of active connections.",
		},
	)

	EngineConnectionRequested = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: engineSubsystem,
			Name:      "requested_connections_total",
			Help:      "Total number of connections requested by clients.",
		},
	)

	EngineConnectionAccepted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: engineSubsystem,
			Name:      "accepted_connections_total",
			Help:      "Total number of accepted connections.",
		},
	)

	EngineConnectionClosed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: engineSubsystem,
			Name:      "closed_connections_total",
			Help:      "Total number of closed connections.",
		},
	)

	EngineConnectionFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: engineSubsystem,
			Name:      "failed_connections_total",
			Help:      "Total number of failed connections.",
		},
	)

	// Register Metrics
	prometheus.MustRegister(BuildInfo)
	prometheus.MustRegister(RequestStatus)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(RequestWrittenBytes)
	prometheus.MustRegister(HandlerPanics)
	prometheus.MustRegister(EngineMaxConnections)
	prometheus.MustRegister(EngineActiveConnections)
	prometheus.MustRegister(EngineConnectionRequested)
	prometheus.MustRegister(EngineConnectionAccepted)
	prometheus.MustRegister(EngineConnectionClosed)
	prometheus.MustRegister(EngineConnectionFailed)
}

// SetBuildInfo sets the constant build info gauge for the running binary
func SetBuildInfo(version, revision string) {
	BuildInfo.WithLabelValues(runtime.Version(), revision, version).Set(1)
}

// ObserveRequest records the outcome of a single request
func ObserveRequest(method, path, httpStatus string, seconds float64, writtenBytes int) {
	RequestStatus.WithLabelValues(method, path, httpStatus).Inc()
	RequestDuration.WithLabelValues(method, path, httpStatus).Observe(seconds)
	RequestWrittenBytes.WithLabelValues(method, path, httpStatus).Add(float64(writtenBytes))
}

// Handler returns the http handler for the listener
func Handler() http.Handler {
	return promhttp.Handler()
}
