// Package metrics exports the outcome of a batch run as Prometheus metrics
// in the node_exporter textfile format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RunMetrics is scoped to one run; it owns its registry so nothing leaks into
// the default one.
type RunMetrics struct {
	registry *prometheus.Registry

	rows     *prometheus.GaugeVec
	warnings *prometheus.GaugeVec
	tables   *prometheus.GaugeVec

	duration    prometheus.Gauge
	lastSuccess prometheus.Gauge
}

func NewRunMetrics(namespace string) *RunMetrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &RunMetrics{
		registry: reg,
		rows: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rows",
			Help:      "Rows handled by the last run, per step and outcome.",
		}, []string{"step", "outcome"}),
		warnings: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "warnings",
			Help:      "Warnings raised by the last run, per step.",
		}, []string{"step"}),
		tables: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "table_rows",
			Help:      "Rows stored for the tenant after the last run, per table.",
		}, []string{"table"}),
		duration: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "duration_seconds",
			Help:      "Wall time of the last run.",
		}),
		lastSuccess: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time the last successful run finished.",
		}),
	}
}

func (m *RunMetrics) ObserveStep(step string, created, updated, skipped, warnings int) {
	m.rows.WithLabelValues(step, "created").Set(float64(created))
	m.rows.WithLabelValues(step, "updated").Set(float64(updated))
	m.rows.WithLabelValues(step, "skipped").Set(float64(skipped))
	m.warnings.WithLabelValues(step).Set(float64(warnings))
}

func (m *RunMetrics) ObserveTable(table string, rows int64) {
	m.tables.WithLabelValues(table).Set(float64(rows))
}

func (m *RunMetrics) ObserveRun(elapsed time.Duration, finishedAt time.Time) {
	m.duration.Set(elapsed.Seconds())
	m.lastSuccess.Set(float64(finishedAt.Unix()))
}

// WriteTextfile atomically replaces path with the current values.
func (m *RunMetrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
