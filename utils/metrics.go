package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database Metrics
	DBOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_operation_duration_seconds",
			Help:    "Duration of database operations",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation", "collection"},
	)

	// Document Metrics
	DocumentOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "document_operations_total",
			Help: "Total number of document operations",
		},
		[]string{"operation"}, // create, update, delete, list, search
	)

	// Cache Metrics
	CacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_requests_total",
			Help: "Total number of cache lookups by outcome",
		},
		[]string{"kind", "outcome"}, // list/doc/categories, hit/miss/error
	)

	// Authentication Metrics
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"status", "type"}, // success/failure, login/refresh/2fa
	)

	// Session Metrics
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_sessions_total",
			Help: "Total number of active sessions",
		},
	)

	// Error Metrics
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "errors_total",
			Help: "Total number of errors by type",
		},
		[]string{"type"}, // database, auth, validation, cache
	)
)

// TrackDBOperation tracks database operation duration
func TrackDBOperation(operation, collection string) *prometheus.Timer {
	return prometheus.NewTimer(DBOperationDuration.WithLabelValues(operation, collection))
}

// TrackDocumentOperation increments the document operation counter
func TrackDocumentOperation(operation string) {
	DocumentOperationsTotal.WithLabelValues(operation).Inc()
}

// TrackCacheRequest records a cache lookup outcome
func TrackCacheRequest(kind, outcome string) {
	CacheRequestsTotal.WithLabelValues(kind, outcome).Inc()
}

// TrackAuthAttempt records authentication attempts
func TrackAuthAttempt(status, authType string) {
	AuthAttempts.WithLabelValues(status, authType).Inc()
}

// UpdateActiveSessions sets the current number of active sessions
func UpdateActiveSessions(count float64) {
	ActiveSessions.Set(count)
}

// TrackError increments the error counter by type
func TrackError(errorType string) {
	ErrorsTotal.WithLabelValues(errorType).Inc()
}
