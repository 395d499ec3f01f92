package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	orchestratorTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "providerd",
		Subsystem: "orchestrator",
		Name:      "transitions_total",
		Help:      "Resource state transitions by target state.",
	}, []string{"state"})
	orchestratorHookTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "providerd",
		Subsystem: "orchestrator",
		Name:      "hook_calls_total",
		Help:      "Provider hook invocations.",
	}, []string{"hook", "status"})
	orchestratorHookDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "providerd",
		Subsystem: "orchestrator",
		Name:      "hook_duration_seconds",
		Help:      "Duration of provider hook invocations.",
		Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"hook", "status"})
	orchestratorPollTasks = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "providerd",
		Subsystem: "orchestrator",
		Name:      "poll_tasks",
		Help:      "Number of live deployment poll tasks.",
	})
)

// Orchestrator tracks metrics for the resource orchestrator.
type Orchestrator struct{}

// NewOrchestrator constructs an Orchestrator metrics collector.
func NewOrchestrator() *Orchestrator {
	return &Orchestrator{}
}

// ObserveTransition records a resource entering state.
func (m Orchestrator) ObserveTransition(state string) {
	orchestratorTransitionsTotal.WithLabelValues(state).Inc()
}

// ObserveHook records a provider hook call.
func (m Orchestrator) ObserveHook(hook string, err error, started time.Time) {
	s := status(err)
	orchestratorHookTotal.WithLabelValues(hook, s).Inc()
	orchestratorHookDuration.WithLabelValues(hook, s).Observe(time.Since(started).Seconds())
}

// SetPollTasks publishes the number of live poll tasks.
func (m Orchestrator) SetPollTasks(n int) {
	orchestratorPollTasks.Set(float64(n))
}
