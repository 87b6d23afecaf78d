package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/flicknest/backend/internal/metrics"
)

// MetricsMiddleware collects HTTP metrics for Prometheus
func MetricsMiddleware() gin.HandlerFunc {
	m := metrics.Get()

	return func(c *gin.Context) {
		method := c.Request.Method
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		startTime := time.Now()
		c.Next()
		duration := time.Since(startTime).Seconds()

		// Numeric status code as string (e.g. "200", "503") so Grafana
		// queries like status=~"5.." match server errors.
		statusStr := strconv.Itoa(c.Writer.Status())

		m.HTTPRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, path, statusStr).Observe(duration)
	}
}

// RecordCacheHit records a hit on the named cache.
func RecordCacheHit(cacheName string) {
	metrics.Get().CacheHitsTotal.WithLabelValues(cacheName).Inc()
}

// RecordCacheMiss records a miss on the named cache.
func RecordCacheMiss(cacheName string) {
	metrics.Get().CacheMissesTotal.WithLabelValues(cacheName).Inc()
}

// RecordRecommendation records one served recommendation batch and its latency.
func RecordRecommendation(mode string, duration time.Duration) {
	m := metrics.Get()
	m.RecommendationsServed.WithLabelValues(mode).Inc()
	m.RecommendationDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

// RecordUpstreamRequest records a proxied movies API call.
func RecordUpstreamRequest(endpoint string, status int, duration time.Duration) {
	m := metrics.Get()
	m.UpstreamRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	m.UpstreamRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordError records an error by type and component.
func RecordError(errorType, component string) {
	metrics.Get().ErrorsTotal.WithLabelValues(errorType, component).Inc()
}
