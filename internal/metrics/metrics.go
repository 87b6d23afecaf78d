package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   prometheus.CounterVec
	HTTPRequestDuration prometheus.HistogramVec

	// Recommendation metrics
	RecommendationsServed  prometheus.CounterVec
	RecommendationDuration prometheus.HistogramVec
	CatalogSize            prometheus.GaugeVec

	// Cache metrics
	CacheHitsTotal   prometheus.CounterVec
	CacheMissesTotal prometheus.CounterVec

	// Upstream movies API metrics
	UpstreamRequestsTotal   prometheus.CounterVec
	UpstreamRequestDuration prometheus.HistogramVec

	// Error metrics
	ErrorsTotal prometheus.CounterVec
}

var (
	instance *Metrics
	once     sync.Once
)

// Initialize creates and registers all Prometheus metrics
func Initialize() *Metrics {
	once.Do(func() {
		instance = &Metrics{
			HTTPRequestsTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "http_requests_total",
					Help: "Total number of HTTP requests",
				},
				[]string{"method", "path", "status"},
			),
			HTTPRequestDuration: *promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "http_request_duration_seconds",
					Help:    "HTTP request latency in seconds",
					Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
				},
				[]string{"method", "path", "status"},
			),

			RecommendationsServed: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "recommendations_served_total",
					Help: "Total number of recommendation responses served, by engine mode",
				},
				[]string{"mode"},
			),
			RecommendationDuration: *promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "recommendation_duration_seconds",
					Help:    "Time spent computing one recommendation batch",
					Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
				},
				[]string{"mode"},
			),
			CatalogSize: *promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Name: "catalog_movies",
					Help: "Number of catalog movies seen by the last recommendation request",
				},
				[]string{"source"},
			),

			CacheHitsTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "cache_hits_total",
					Help: "Total number of cache hits",
				},
				[]string{"cache_name"},
			),
			CacheMissesTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "cache_misses_total",
					Help: "Total number of cache misses",
				},
				[]string{"cache_name"},
			),

			UpstreamRequestsTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "upstream_requests_total",
					Help: "Total number of requests proxied to the movies API",
				},
				[]string{"endpoint", "status"},
			),
			UpstreamRequestDuration: *promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "upstream_request_duration_seconds",
					Help:    "Movies API request latency in seconds",
					Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
				},
				[]string{"endpoint"},
			),

			ErrorsTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "errors_total",
					Help: "Total number of errors by type",
				},
				[]string{"type", "component"},
			),
		}
	})
	return instance
}

// Get returns the initialized metrics instance
func Get() *Metrics {
	if instance == nil {
		return Initialize()
	}
	return instance
}
