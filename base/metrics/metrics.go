package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Submission outcomes.
const (
	OutcomeSuccess    = "success"
	OutcomeValidation = "validation_error"
	OutcomeService    = "service_error"
	OutcomeHistory    = "history_error"
	OutcomeConcurrent = "concurrent"
)

var (
	// Submissions counts submit attempts by outcome.
	Submissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shawty",
			Name:      "submissions_total",
			Help:      "Number of submit attempts by outcome.",
		},
		[]string{"outcome"},
	)

	// ShortenLatency observes remote shortening call latency in seconds.
	ShortenLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "shawty",
			Name:      "shorten_duration_seconds",
			Help:      "Latency of calls to the shortening service.",
			Buckets:   prometheus.DefBuckets,
		},
	)

	// HistorySize reports the number of entries currently held in history.
	HistorySize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "shawty",
			Name:      "history_entries",
			Help:      "Number of entries in the history cache.",
		},
	)
)

// Register registers every collector with reg.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{Submissions, ShortenLatency, HistorySize} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
