package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counter metrics
var (
	// Permission decisions by outcome
	PermissionCheckCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_permission_checks_total",
			Help: "Total number of tool access checks by result",
		},
		[]string{"result"}, // "allow" or "deny"
	)

	// Permission resolution failures
	PermissionErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_permission_errors_total",
			Help: "Total number of permission resolution failures",
		},
		[]string{"type"},
	)

	// Helpdesk operation counter
	HelpdeskOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_helpdesk_operations_total",
			Help: "Total number of helpdesk operations",
		},
		[]string{"operation"}, // "route", "create_ticket", "profile", "mark_read", etc.
	)

	// Notification fan-out counter
	NotificationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_notifications_total",
			Help: "Total number of notification deliveries recorded",
		},
		[]string{"event"},
	)

	// HTTP request counter by endpoint and status
	HTTPRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_http_requests_total",
			Help: "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "method", "status"},
	)

	// Auth error counter
	AuthErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"type"},
	)
)

// Histogram metrics
var (
	// Request duration
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portal_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	// Database operation duration
	DBOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portal_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// External customer database query duration
	ExtDBQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portal_extdb_query_duration_seconds",
			Help:    "Duration of external customer database queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"query"},
	)
)

func init() {
	prometheus.MustRegister(PermissionCheckCounter)
	prometheus.MustRegister(PermissionErrorCounter)
	prometheus.MustRegister(HelpdeskOperationCounter)
	prometheus.MustRegister(NotificationCounter)
	prometheus.MustRegister(HTTPRequestCounter)
	prometheus.MustRegister(AuthErrorCounter)

	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(DBOperationDuration)
	prometheus.MustRegister(ExtDBQueryDuration)
}

// GetPrometheusHandler returns an HTTP handler for the Prometheus metrics
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}

// RecordPermissionCheck counts one access decision
func RecordPermissionCheck(allowed bool) {
	result := "deny"
	if allowed {
		result = "allow"
	}
	PermissionCheckCounter.With(prometheus.Labels{"result": result}).Inc()
}

// RecordPermissionError counts one resolution failure
func RecordPermissionError(errType string) {
	PermissionErrorCounter.With(prometheus.Labels{"type": errType}).Inc()
}

// RecordHelpdeskOperation counts one helpdesk operation
func RecordHelpdeskOperation(operation string) {
	HelpdeskOperationCounter.With(prometheus.Labels{"operation": operation}).Inc()
}

// RecordNotification counts one recorded delivery
func RecordNotification(event string) {
	NotificationCounter.With(prometheus.Labels{"event": event}).Inc()
}

// RecordAuthError counts one authentication failure
func RecordAuthError(errType string) {
	AuthErrorCounter.With(prometheus.Labels{"type": errType}).Inc()
}

// TrackDBOperation measures database operation durations
func TrackDBOperation(operation string) func(time.Time) {
	startTime := time.Now()
	return func(endTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DBOperationDuration.With(prometheus.Labels{
			"operation": operation,
		}).Observe(duration)
	}
}

// MetricsMiddleware creates a middleware function that captures metrics for each request
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(c.Response().Status)
			endpoint := c.Path()
			method := c.Request().Method

			RequestDuration.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Observe(duration)

			HTTPRequestCounter.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Inc()

			return err
		}
	}
}
