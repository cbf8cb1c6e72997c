// Package metrics holds the Prometheus collectors for wizard sessions and submissions.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_wizard_submissions_total",
			Help: "Submit attempts by mode and outcome",
		},
		[]string{"mode", "outcome"},
	)

	SubmitDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "resume_wizard_submit_duration_seconds",
			Help:    "Time from submit trigger to outcome, including the backend call",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"mode"},
	)

	ViolationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_wizard_violations_total",
			Help: "Violations reported to users by source and step",
		},
		[]string{"source", "step"},
	)

	NavigationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_wizard_navigations_total",
			Help: "Step navigation actions",
		},
		[]string{"action"},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "resume_wizard_active_sessions",
			Help: "Wizard sessions currently held in memory",
		},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_wizard_http_requests_total",
			Help: "HTTP requests served by route pattern and status code",
		},
		[]string{"method", "route", "status"},
	)
)

// ObserveSubmit records one finished submit attempt.
func ObserveSubmit(mode, outcome string, elapsed time.Duration) {
	SubmissionsTotal.WithLabelValues(mode, outcome).Inc()
	SubmitDuration.WithLabelValues(mode).Observe(elapsed.Seconds())
}

// ObserveViolation counts a violation surfaced to the user. Unknown steps are labelled "general".
func ObserveViolation(source string, step int) {
	label := "general"
	if step >= 0 {
		label = strconv.Itoa(step)
	}
	ViolationsTotal.WithLabelValues(source, label).Inc()
}

// ObserveNavigation counts a next/previous/jump action.
func ObserveNavigation(action string) {
	NavigationsTotal.WithLabelValues(action).Inc()
}

// ObserveHTTP counts a served request.
func ObserveHTTP(method, route string, status int) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}
