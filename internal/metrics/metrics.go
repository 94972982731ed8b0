// Package metrics provides Prometheus metrics for the fabric intake service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values.
const (
	OutcomeSuccess  = "success"
	OutcomeInvalid  = "invalid"
	OutcomeFault    = "fault"
	OutcomeRejected = "rejected"
	OutcomeNoQRCode = "no_qr_code"
	OutcomeBlocked  = "blocked"
)

var (
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fabric_submissions_total",
			Help: "Total number of fabric form submissions by outcome",
		},
		[]string{"outcome"},
	)

	MutationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fabric_mutation_duration_seconds",
			Help:    "Duration of insertFabricDetails mutation calls",
			Buckets: prometheus.DefBuckets,
		},
	)

	PrintsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fabric_qr_prints_total",
			Help: "Total number of QR print requests by outcome",
		},
		[]string{"outcome"},
	)

	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fabric_form_sessions_active",
			Help: "Number of open fabric form sessions",
		},
	)

	JournalErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fabric_journal_errors_total",
			Help: "Total number of failed submission journal writes",
		},
		[]string{"sink"},
	)
)
