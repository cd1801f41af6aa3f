package core

import (
	"context"
	"expvar"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// MetricsRecorder receives one observation per generated table.
type MetricsRecorder interface {
	ObserveTable(ctx context.Context, table string, rows int, success bool, duration time.Duration)
}

// NopMetricsRecorder discards all observations.
type NopMetricsRecorder struct{}

// ObserveTable implements MetricsRecorder.
func (NopMetricsRecorder) ObserveTable(context.Context, string, int, bool, time.Duration) {}

var expvarSeq uint64

// ExpvarMetricsRecorder publishes per-table row and timing counters via
// expvar for deployments that prefer process-local metrics without external
// dependencies.
type ExpvarMetricsRecorder struct {
	name      string
	mu        sync.Mutex
	rows      map[string]int64
	durations map[string]float64
	results   map[string]map[string]int64
}

// ExpvarMetricsSnapshot captures a read-only view of the recorded metrics.
type ExpvarMetricsSnapshot struct {
	Rows        map[string]int64            `json:"rows_total"`
	DurationsMS map[string]float64          `json:"durations_ms_total"`
	Results     map[string]map[string]int64 `json:"results_total"`
	RecordedAt  time.Time                   `json:"recorded_at"`
}

// NewExpvarMetricsRecorder constructs an expvar-backed recorder published
// under the supplied name. When name is empty a unique one is generated.
func NewExpvarMetricsRecorder(name string) *ExpvarMetricsRecorder {
	if name == "" {
		id := atomic.AddUint64(&expvarSeq, 1)
		name = fmt.Sprintf("plantforge_generation_metrics_%d", id)
	}
	rec := &ExpvarMetricsRecorder{
		name:      name,
		rows:      make(map[string]int64),
		durations: make(map[string]float64),
		results:   make(map[string]map[string]int64),
	}
	expvar.Publish(name, expvar.Func(func() any {
		return rec.Snapshot()
	}))
	return rec
}

// Name returns the expvar export name associated with the recorder.
func (r *ExpvarMetricsRecorder) Name() string { return r.name }

// Snapshot returns an immutable copy of the aggregated metrics.
func (r *ExpvarMetricsRecorder) Snapshot() ExpvarMetricsSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := make(map[string]int64, len(r.rows))
	for table, n := range r.rows {
		rows[table] = n
	}
	durations := make(map[string]float64, len(r.durations))
	for table, total := range r.durations {
		durations[table] = total
	}
	results := make(map[string]map[string]int64, len(r.results))
	for table, statusCounts := range r.results {
		cpy := make(map[string]int64, len(statusCounts))
		for status, count := range statusCounts {
			cpy[status] = count
		}
		results[table] = cpy
	}
	return ExpvarMetricsSnapshot{
		Rows:        rows,
		DurationsMS: durations,
		Results:     results,
		RecordedAt:  time.Now().UTC(),
	}
}

// ObserveTable records one table generation outcome.
func (r *ExpvarMetricsRecorder) ObserveTable(_ context.Context, table string, rows int, success bool, duration time.Duration) {
	if table == "" {
		return
	}
	status := "error"
	if success {
		status = "success"
	}
	ms := float64(duration) / float64(time.Millisecond)

	r.mu.Lock()
	r.rows[table] += int64(rows)
	r.durations[table] += ms
	if _, ok := r.results[table]; !ok {
		r.results[table] = make(map[string]int64, 2)
	}
	r.results[table][status]++
	r.mu.Unlock()
}
