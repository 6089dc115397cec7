// Package metrics exposes the service's Prometheus instruments.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "salescrm"

var (
	// ConversionsTotal counts conversion attempts by outcome:
	// converted, rejected (precondition), failed (transaction error).
	ConversionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "conversions_total",
		Help:      "Lead to opportunity conversion attempts by outcome.",
	}, []string{"outcome"})

	SnapshotRefreshes = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "snapshot_refreshes_total",
		Help:      "Full snapshot loads from the store.",
	})

	ReportBuildSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "report_build_seconds",
		Help:      "Time spent building one dashboard report.",
		Buckets:   prometheus.DefBuckets,
	})
)
