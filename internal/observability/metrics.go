package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "app_campaign_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"path", "method", "status"},
	)

	// CacheHits tracks cache hits/misses
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_campaign_cache_hits_total",
			Help: "Number of cache hits",
		},
		[]string{"operation"},
	)

	// BackendOperations tracks calls to the backend collaborator
	BackendOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_campaign_backend_operations_total",
			Help: "Number of backend query/RPC operations",
		},
		[]string{"operation", "status"},
	)

	// EligibilityChecks tracks eligibility check results by status
	EligibilityChecks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_campaign_eligibility_checks_total",
			Help: "Number of eligibility checks",
		},
		[]string{"status"},
	)

	// ApplicationSubmissions tracks application submissions
	ApplicationSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_campaign_application_submissions_total",
			Help: "Number of application submissions",
		},
		[]string{"status"},
	)

	// NotificationAttempts tracks notification delivery attempts
	NotificationAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_campaign_notification_attempts_total",
			Help: "Number of notification delivery attempts",
		},
		[]string{"status"},
	)

	// ActiveConnections tracks active connections
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_campaign_active_connections",
			Help: "Number of active connections",
		},
	)
)
