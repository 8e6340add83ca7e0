// Package metrics exposes Prometheus collectors for the load pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Load outcomes.
const (
	OutcomeOK                = "ok"
	OutcomeNoData            = "no_data"
	OutcomeInvalidSchema     = "invalid_schema"
	OutcomeSourceUnavailable = "source_unavailable"
)

var (
	loadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rundash",
		Name:      "loads_total",
		Help:      "Activity loads by outcome.",
	}, []string{"outcome"})

	recordsLoaded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "rundash",
		Name:      "records_loaded_total",
		Help:      "Cleaned activity records returned by successful loads.",
	})

	loadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "rundash",
		Name:      "load_duration_seconds",
		Help:      "Time spent fetching and cleaning activities.",
		Buckets:   prometheus.DefBuckets,
	})

	exportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rundash",
		Name:      "exports_total",
		Help:      "Activity exports by format.",
	}, []string{"format"})
)

// ObserveLoad records the outcome of one load.
func ObserveLoad(outcome string, records int, seconds float64) {
	loadsTotal.WithLabelValues(outcome).Inc()
	loadDuration.Observe(seconds)
	if outcome == OutcomeOK {
		recordsLoaded.Add(float64(records))
	}
}

// IncExport counts one export in the given format.
func IncExport(format string) {
	exportsTotal.WithLabelValues(format).Inc()
}
