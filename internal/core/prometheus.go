package core

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetricsRecorder exports per-table generation metrics through a
// prometheus registry for deployments that scrape the generator host.
type PrometheusMetricsRecorder struct {
	rows      *prometheus.CounterVec
	results   *prometheus.CounterVec
	durations *prometheus.HistogramVec
}

// NewPrometheusMetricsRecorder constructs and registers the collectors. A nil
// registerer falls back to the default registry.
func NewPrometheusMetricsRecorder(reg prometheus.Registerer) (*PrometheusMetricsRecorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	r := &PrometheusMetricsRecorder{
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "plantforge_rows_generated_total",
			Help: "Rows generated per table.",
		}, []string{"table"}),
		results: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "plantforge_table_results_total",
			Help: "Table generation outcomes per table and status.",
		}, []string{"table", "status"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "plantforge_table_duration_seconds",
			Help:    "Wall-clock duration of table generation.",
			Buckets: prometheus.DefBuckets,
		}, []string{"table"}),
	}
	for _, c := range []prometheus.Collector{r.rows, r.results, r.durations} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// ObserveTable implements MetricsRecorder.
func (r *PrometheusMetricsRecorder) ObserveTable(_ context.Context, table string, rows int, success bool, duration time.Duration) {
	if table == "" {
		return
	}
	status := "error"
	if success {
		status = "success"
	}
	r.rows.WithLabelValues(table).Add(float64(rows))
	r.results.WithLabelValues(table, status).Inc()
	r.durations.WithLabelValues(table).Observe(duration.Seconds())
}
