package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	scannerStepTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "providerd",
		Subsystem: "scanner",
		Name:      "step_total",
		Help:      "Count of scanner steps by result.",
	}, []string{"result"})
	scannerStepDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "providerd",
		Subsystem: "scanner",
		Name:      "step_duration_seconds",
		Help:      "Duration of a scanner step.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"result"})
	scannerEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "providerd",
		Subsystem: "scanner",
		Name:      "events_total",
		Help:      "Lifecycle events dispatched by kind and outcome.",
	}, []string{"kind", "outcome"})
	scannerCursor = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "providerd",
		Subsystem: "scanner",
		Name:      "cursor_height",
		Help:      "Next block height the scanner will process.",
	})
)

// Step results.
const (
	StepProcessed = "processed"
	StepWaiting   = "waiting"
	StepFailed    = "failed"
)

// Scanner tracks metrics for the chain scanner.
type Scanner struct{}

// NewScanner constructs a Scanner metrics collector.
func NewScanner() *Scanner {
	return &Scanner{}
}

// ObserveStep records the outcome of a single scanner step.
func (m Scanner) ObserveStep(result string, started time.Time) {
	scannerStepTotal.WithLabelValues(result).Inc()
	scannerStepDuration.WithLabelValues(result).Observe(time.Since(started).Seconds())
}

// ObserveEvent records a dispatched lifecycle event.
func (m Scanner) ObserveEvent(kind, outcome string) {
	scannerEventsTotal.WithLabelValues(kind, outcome).Inc()
}

// SetCursor publishes the scanner cursor.
func (m Scanner) SetCursor(height uint64) {
	scannerCursor.Set(float64(height))
}
