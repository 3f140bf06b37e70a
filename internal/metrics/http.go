package metrics

import (
	"time"
)

// RecordHTTPRequest records HTTP request metrics
func (m *Metrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	m.safeExecute("RecordHTTPRequest", func() {
		status := categorizeStatus(statusCode)
		m.HTTPRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
	})
}

// RecordHTTPError counts an error response by its taxonomy code.
func (m *Metrics) RecordHTTPError(code string) {
	m.safeExecute("RecordHTTPError", func() {
		m.HTTPErrorsTotal.WithLabelValues(code).Inc()
	})
}

// IncrementRateLimited counts a request rejected by the rate limiter.
func (m *Metrics) IncrementRateLimited() {
	m.safeExecute("IncrementRateLimited", func() {
		m.RateLimitedTotal.Inc()
	})
}

// IncrementCacheHit counts a response served from the list cache.
func (m *Metrics) IncrementCacheHit() {
	m.safeExecute("IncrementCacheHit", func() {
		m.CacheHitsTotal.Inc()
	})
}

// categorizeStatus converts status code to category (2xx, 3xx, 4xx, 5xx)
func categorizeStatus(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500:
		return "5xx"
	default:
		return "unknown"
	}
}

// ShouldSkipEndpoint checks if endpoint should be excluded from metrics
func ShouldSkipEndpoint(path string) bool {
	return path == "/metrics" || path == "/health"
}
