// Package metrics holds the prometheus collectors shared by the interceptors and the
// task API. They register on the default registry and are served by promhttp.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DispatchedLines counts call log lines written by the dispatcher, by severity
	DispatchedLines = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tasklogger_annotation_lines_total",
		Help: "Total number of call log lines dispatched, by severity",
	}, []string{"severity"})

	// InterceptedCalls counts interceptor outcomes; phase is request or response, outcome is logged or skipped
	InterceptedCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tasklogger_intercepted_calls_total",
		Help: "Total number of intercepted business calls, by phase and outcome",
	}, []string{"phase", "outcome"})

	// HttpRequestsTotal counts task API requests by status code and method
	HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tasklogger_http_requests_total",
		Help: "Total number of HTTP requests processed",
	}, []string{"status", "method"})

	// HttpRequestDuration observes task API latency in seconds by method
	HttpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tasklogger_http_request_duration_seconds",
		Help:    "Duration of HTTP requests to the task API",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})
)
