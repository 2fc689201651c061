// Package metrics exposes Prometheus instrumentation for the batch
// scheduler: jobs processed/skipped, batch and per-job solve duration, and
// live queue depth. Registered against prometheus.DefaultRegisterer and
// served over /metrics by promhttp.Handler() in internal/api.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	jobsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pde_pricer_jobs_total",
			Help: "Pricing jobs completed, labeled by outcome (ok|skipped).",
		},
		[]string{"outcome"},
	)

	jobDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pde_pricer_job_solve_seconds",
			Help:    "Per-job solve duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
	)

	batchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pde_pricer_batch_duration_seconds",
			Help:    "run_batch wall-clock duration in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		},
	)

	batchSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pde_pricer_batch_size",
			Help:    "Number of jobs drained per batch.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
	)

	queueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "pde_pricer_queue_depth",
			Help: "Pending jobs in the job queue since the last drain.",
		},
	)
)

func init() {
	prometheus.MustRegister(jobsTotal, jobDuration, batchDuration, batchSize, queueDepth)
}

// Prometheus implements queue.Recorder against the package-level collectors
// registered above.
type Prometheus struct{}

// ObserveJob records one job's solve duration and outcome.
func (Prometheus) ObserveJob(duration time.Duration, ok bool) {
	jobDuration.Observe(duration.Seconds())
	outcome := "ok"
	if !ok {
		outcome = "skipped"
	}
	jobsTotal.WithLabelValues(outcome).Inc()
}

// ObserveBatch records a completed run_batch call.
func (Prometheus) ObserveBatch(duration time.Duration, total, succeeded, skipped int) {
	batchDuration.Observe(duration.Seconds())
	batchSize.Observe(float64(total))
}

// SetQueueDepth updates the live queue-depth gauge.
func (Prometheus) SetQueueDepth(depth int) {
	queueDepth.Set(float64(depth))
}
