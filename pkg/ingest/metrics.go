package ingest

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the counters and histograms the orchestrator reports per
// transfer: rows ingested, rows quarantined, bytes materialized, and
// transfer duration. One Metrics is meant to be shared process-wide and
// registered once.
type Metrics struct {
	RowsIngested      prometheus.Counter
	RowsQuarantined   prometheus.Counter
	BytesMaterialized prometheus.Counter
	TransferDuration  prometheus.Histogram
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// NewMetrics builds and registers a fresh Metrics against reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RowsIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rowcore_rows_ingested_total",
			Help: "Rows successfully encoded into partitions.",
		}),
		RowsQuarantined: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rowcore_rows_quarantined_total",
			Help: "Rows that failed their normal-case type check.",
		}),
		BytesMaterialized: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rowcore_bytes_materialized_total",
			Help: "Bytes written across all finalized partitions.",
		}),
		TransferDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "rowcore_transfer_duration_seconds",
			Help:    "Wall-clock duration of a Parallelize call.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	if reg != nil {
		reg.MustRegister(m.RowsIngested, m.RowsQuarantined, m.BytesMaterialized, m.TransferDuration)
	}
	return m
}

// DefaultMetrics returns a process-wide Metrics registered against the
// default Prometheus registry, built lazily on first use.
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		defaultMetrics = NewMetrics(prometheus.DefaultRegisterer)
	})
	return defaultMetrics
}
