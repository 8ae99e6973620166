// cmd/api/metrics.go
// Prometheus collectors for request traffic and collection sizes.
package main

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aoideee/shelf/internal/data"
)

// appMetrics owns a private registry so tests can build several
// applications without duplicate registration panics.
type appMetrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// newAppMetrics registers the request collectors plus one gauge per
// collection reporting its current record count.
func newAppMetrics(models data.Models) *appMetrics {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shelf_http_requests_total",
			Help: "Total HTTP requests processed",
		},
		[]string{"method", "route", "status"},
	)

	latency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shelf_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	registry.MustRegister(requests, latency)
	registry.MustRegister(
		recordsGauge("books", models.Books.Len),
		recordsGauge("todos", models.Todos.Len),
	)

	return &appMetrics{
		registry: registry,
		requests: requests,
		latency:  latency,
	}
}

// recordsGauge reports the size of one collection at scrape time.
func recordsGauge(collection string, count func(context.Context) (int, error)) prometheus.GaugeFunc {
	return prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name:        "shelf_records",
			Help:        "Number of records held per collection",
			ConstLabels: prometheus.Labels{"collection": collection},
		},
		func() float64 {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			n, err := count(ctx)
			if err != nil {
				return -1
			}
			return float64(n)
		},
	)
}

// observe records one finished request against its route pattern.
func (m *appMetrics) observe(method, route string, status int, elapsed time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// handler serves the registry in the Prometheus exposition format.
func (m *appMetrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
