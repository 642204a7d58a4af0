package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Expiry sweep metrics
	SweepRuns             prometheus.Counter
	SweepFailures         prometheus.Counter
	SweepDuration         prometheus.Histogram
	ShiftsExpired         prometheus.Counter
	TasksMarkedUnfinished prometheus.Counter

	// Task workflow metrics
	TaskTransitions        *prometheus.CounterVec
	TaskTransitionRejected *prometheus.CounterVec

	// Database metrics
	DatabaseConnections prometheus.Gauge
}

// NewMetrics creates and registers all application metrics
func NewMetrics(namespace, subsystem string) *Metrics {
	return &Metrics{
		SweepRuns: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "sweep_runs_total",
			Help:      "Total number of expiry sweep executions",
		}),
		SweepFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "sweep_failures_total",
			Help:      "Total number of failed expiry sweep executions",
		}),
		SweepDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "sweep_duration_seconds",
			Help:      "Time spent running the expiry sweep",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}),
		ShiftsExpired: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "shifts_expired_total",
			Help:      "Total number of shift assignments forced to Expired",
		}),
		TasksMarkedUnfinished: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tasks_marked_unfinished_total",
			Help:      "Total number of tasks forced to Unfinished by the sweep",
		}),
		TaskTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "task_transitions_total",
			Help:      "Task status transitions by target status",
		}, []string{"status"}),
		TaskTransitionRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "task_transitions_rejected_total",
			Help:      "Rejected task status transitions by reason",
		}, []string{"reason"}),
		DatabaseConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "database_connections",
			Help:      "Current number of open database connections",
		}),
	}
}
