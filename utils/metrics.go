package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	ActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_requests",
			Help: "Current number of active HTTP requests",
		},
	)

	// Database Metrics
	DBOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_operation_duration_seconds",
			Help:    "Duration of database operations",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation", "collection"},
	)

	// Goal Metrics
	GoalOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "goal_operations_total",
			Help: "Total number of goal operations",
		},
		[]string{"operation"}, // create, update, delete, checkin, milestone
	)

	CoachRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coach_requests_total",
			Help: "Total number of coaching API calls",
		},
		[]string{"kind", "status"}, // encouragement/daily_focus, success/failure
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

	// Cache Metrics
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache lookups",
		},
		[]string{"cache", "result"}, // session/dashboard, hit/miss
	)

	// Error Metrics
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "errors_total",
			Help: "Total number of errors by type",
		},
		[]string{"type", "reason"},
	)

	// System Metrics
	CPUUsage = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "system_cpu_usage_percent",
			Help: "Current CPU usage as reported by the host",
		},
	)
)

// TrackDBOperation tracks database operation duration
func TrackDBOperation(operation, collection string) *prometheus.Timer {
	return prometheus.NewTimer(DBOperationDuration.WithLabelValues(operation, collection))
}

// TrackGoalOperation increments the goal operation counter
func TrackGoalOperation(operation string) {
	GoalOperationsTotal.WithLabelValues(operation).Inc()
}

// TrackCoachRequest records one coaching API round trip
func TrackCoachRequest(kind string, success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	CoachRequestsTotal.WithLabelValues(kind, status).Inc()
}

// TrackAuthAttempt records authentication attempts
func TrackAuthAttempt(status, authType string) {
	AuthAttempts.WithLabelValues(status, authType).Inc()
}

// UpdateActiveSessions sets the current number of active sessions
func UpdateActiveSessions(count float64) {
	ActiveSessions.Set(count)
}

// TrackCacheOperation records a cache hit or miss
func TrackCacheOperation(cache string, hit bool) {
	result := "hit"
	if !hit {
		result = "miss"
	}
	CacheOperationsTotal.WithLabelValues(cache, result).Inc()
}

// TrackError increments the error counter by type and reason
func TrackError(errorType, reason string) {
	ErrorsTotal.WithLabelValues(errorType, reason).Inc()
}
