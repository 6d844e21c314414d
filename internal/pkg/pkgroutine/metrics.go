package pkgroutine

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeSuccess = "success"
	outcomeError   = "error"
	outcomePanic   = "panic"
)

// Metrics exposes pool activity to Prometheus. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	submitted prometheus.Counter
	rejected  prometheus.Counter
	completed *prometheus.CounterVec
	duration  prometheus.Histogram
	workers   prometheus.Gauge
	queued    prometheus.Gauge
}

// NewMetrics creates the pool collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		submitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gomdc",
			Subsystem: "pool",
			Name:      "tasks_submitted_total",
			Help:      "Tasks admitted by the worker pool",
		}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gomdc",
			Subsystem: "pool",
			Name:      "tasks_rejected_total",
			Help:      "Tasks refused by the worker pool",
		}),
		completed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gomdc",
			Subsystem: "pool",
			Name:      "tasks_completed_total",
			Help:      "Tasks finished by the worker pool, by outcome",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gomdc",
			Subsystem: "pool",
			Name:      "task_duration_seconds",
			Help:      "Task execution time",
			Buckets:   prometheus.DefBuckets,
		}),
		workers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gomdc",
			Subsystem: "pool",
			Name:      "workers_active",
			Help:      "Live worker goroutines",
		}),
		queued: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gomdc",
			Subsystem: "pool",
			Name:      "queue_depth",
			Help:      "Tasks waiting in the pool queue",
		}),
	}

	reg.MustRegister(m.submitted, m.rejected, m.completed, m.duration, m.workers, m.queued)

	return m
}

func (m *Metrics) taskSubmitted() {
	if m == nil {
		return
	}
	m.submitted.Inc()
}

func (m *Metrics) taskRejected() {
	if m == nil {
		return
	}
	m.rejected.Inc()
}

func (m *Metrics) taskFinished(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.completed.WithLabelValues(outcome).Inc()
	m.duration.Observe(elapsed.Seconds())
}

func (m *Metrics) setWorkers(n int) {
	if m == nil {
		return
	}
	m.workers.Set(float64(n))
}

func (m *Metrics) setQueued(n int) {
	if m == nil {
		return
	}
	m.queued.Set(float64(n))
}
