// Package metrics exposes Prometheus counters for HTTP traffic and
// document store calls.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records request and store metrics.
type Collector struct {
	requests     *prometheus.CounterVec
	latency      *prometheus.HistogramVec
	storeOps     *prometheus.CounterVec
	storeLatency *prometheus.HistogramVec
	sessions     prometheus.GaugeFunc
}

// NewCollector creates a Collector and registers it on reg. sessions, when
// non-nil, is sampled on every scrape.
func NewCollector(reg prometheus.Registerer, sessions func() int) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_http_requests_total",
			Help: "HTTP requests by method, route and status code",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "portal_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		storeOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_store_operations_total",
			Help: "Document store calls by operation, collection and outcome",
		}, []string{"op", "collection", "outcome"}),
		storeLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "portal_store_operation_duration_seconds",
			Help:    "Document store call latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"op", "collection"}),
	}
	reg.MustRegister(c.requests, c.latency, c.storeOps, c.storeLatency)

	if sessions != nil {
		c.sessions = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "portal_active_sessions",
			Help: "Logged-in operator sessions",
		}, func() float64 { return float64(sessions()) })
		reg.MustRegister(c.sessions)
	}
	return c
}

// RecordRequest records one served HTTP request. route is the matched
// route pattern, not the raw path.
func (c *Collector) RecordRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.latency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveStoreOp records one document store call.
func (c *Collector) ObserveStoreOp(op, collection string, err error, elapsed time.Duration) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	c.storeOps.WithLabelValues(op, collection, outcome).Inc()
	c.storeLatency.WithLabelValues(op, collection).Observe(elapsed.Seconds())
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
