// Package metrics defines the Prometheus instruments exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Submission outcomes.
const (
	OutcomeStored   = "stored"
	OutcomeFallback = "fallback"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// Metrics bundles every instrument the API records.
type Metrics struct {
	RequestsTotal        *prometheus.CounterVec
	RequestDuration      *prometheus.HistogramVec
	SubmissionsTotal     *prometheus.CounterVec
	FallbackTotal        *prometheus.CounterVec
	NotificationFailures *prometheus.CounterVec
	RateLimitedTotal     prometheus.Counter
	FallbackBookings     prometheus.Gauge
}

// New registers the instruments with reg. Pass prometheus.DefaultRegisterer
// in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "lumina_http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		}, []string{"method", "route", "status"}),

		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lumina_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),

		SubmissionsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "lumina_submissions_total",
			Help: "Booking and contact submissions by outcome",
		}, []string{"kind", "outcome"}),

		FallbackTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "lumina_fallback_total",
			Help: "Operations served by the in-memory fallback store",
		}, []string{"operation"}),

		NotificationFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "lumina_notification_failures_total",
			Help: "Failed studio notifications by kind",
		}, []string{"kind"}),

		RateLimitedTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "lumina_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		}),

		FallbackBookings: f.NewGauge(prometheus.GaugeOpts{
			Name: "lumina_fallback_bookings",
			Help: "Bookings currently held only in the in-memory fallback store",
		}),
	}
}

// NewNop returns instruments registered with a private registry, for
// callers that do not export metrics.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}
