// Package metrics counts what a load run did and writes the result as a
// Prometheus textfile for node_exporter's textfile collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vvka-141/pgstar/pkg/pgstar"
)

const namespace = "pgstar"

const (
	lookupMatched = "matched"
	lookupMissed  = "missed"
)

// RunMetrics is registered on a private registry, so several runs in one
// process never collide.
type RunMetrics struct {
	registry       *prometheus.Registry
	filesProcessed *prometheus.CounterVec
	rowsWritten    *prometheus.CounterVec
	lookups        *prometheus.CounterVec
	lastRun        prometheus.Gauge
	lastSuccess    prometheus.Gauge
}

func New() *RunMetrics {
	m := &RunMetrics{
		registry: prometheus.NewRegistry(),
		filesProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_processed_total",
			Help:      "Data files committed, by category.",
		}, []string{"category"}),
		rowsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_written_total",
			Help:      "Rows inserted or updated, by table.",
		}, []string{"table"}),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "songplay_lookups_total",
			Help:      "Songplay song/artist lookups, by result.",
		}, []string{"result"}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished.",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_success",
			Help:      "1 if the last run loaded every file, 0 otherwise.",
		}),
	}

	m.registry.MustRegister(m.filesProcessed, m.rowsWritten, m.lookups, m.lastRun, m.lastSuccess)

	// Expose every series from the start, even when a run writes nothing.
	for _, result := range []string{lookupMatched, lookupMissed} {
		m.lookups.WithLabelValues(result)
	}
	return m
}

// ObserveFile records one committed file. Lookups are counted from the
// committed batch, so a rolled back file leaves no trace.
func (m *RunMetrics) ObserveFile(category string, batch *pgstar.Batch, counts pgstar.RowCounts) {
	m.filesProcessed.WithLabelValues(category).Inc()
	m.rowsWritten.WithLabelValues("songs").Add(float64(counts.Songs))
	m.rowsWritten.WithLabelValues("artists").Add(float64(counts.Artists))
	m.rowsWritten.WithLabelValues("time").Add(float64(counts.Times))
	m.rowsWritten.WithLabelValues("users").Add(float64(counts.Users))
	m.rowsWritten.WithLabelValues("songplays").Add(float64(counts.Songplays))

	matched, missed := batch.Lookups()
	m.lookups.WithLabelValues(lookupMatched).Add(float64(matched))
	m.lookups.WithLabelValues(lookupMissed).Add(float64(missed))
}

// Finish stamps the run end time and outcome.
func (m *RunMetrics) Finish(at time.Time, err error) {
	m.lastRun.Set(float64(at.Unix()))
	if err == nil {
		m.lastSuccess.Set(1)
	} else {
		m.lastSuccess.Set(0)
	}
}

func (m *RunMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteFile writes all series to path atomically.
func (m *RunMetrics) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics to %s: %w", path, err)
	}
	return nil
}
