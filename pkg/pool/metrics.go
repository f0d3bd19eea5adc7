package pool

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds Prometheus metrics for pool monitoring. Statistics are always
// tracked atomically regardless; Prometheus export is opt-in via WithMetrics.
type Metrics struct {
	submitted   prometheus.Counter
	executed    prometheus.Counter
	failed      prometheus.Counter
	queueDepth  prometheus.Gauge
	jobDuration *prometheus.HistogramVec
}

// WithMetrics registers pool metrics with reg under the given namespace and
// wires them into the pool. Metric names are <namespace>_jobs_submitted_total,
// <namespace>_jobs_executed_total, <namespace>_jobs_failed_total,
// <namespace>_queue_depth and <namespace>_job_duration_seconds.
func WithMetrics(reg prometheus.Registerer, namespace string) Option {
	return func(c *Config) {
		m := newMetrics(namespace)
		reg.MustRegister(m.submitted, m.executed, m.failed, m.queueDepth, m.jobDuration)
		c.metrics = m
	}
}

func newMetrics(namespace string) *Metrics {
	return &Metrics{
		submitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_submitted_total",
			Help:      "Total jobs submitted to the pool",
		}),
		executed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_executed_total",
			Help:      "Total jobs executed to completion",
		}),
		failed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_failed_total",
			Help:      "Total jobs that faulted and cost their worker",
		}),
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "queue_depth",
			Help:      "Current job queue depth",
		}),
		jobDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "job_duration_seconds",
			Help:      "Time spent executing jobs",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		}, []string{"status"}),
	}
}
