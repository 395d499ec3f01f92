package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sweeperTickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "providerd",
		Subsystem: "sweeper",
		Name:      "tick_duration_seconds",
		Help:      "Duration of a balance sweep.",
		Buckets:   prometheus.DefBuckets,
	})
	sweeperClosesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "providerd",
		Subsystem: "sweeper",
		Name:      "close_requests_total",
		Help:      "Close requests for exhausted agreements.",
	}, []string{"status"})
)

// Sweeper tracks metrics for the balance sweeper.
type Sweeper struct{}

// NewSweeper constructs a Sweeper metrics collector.
func NewSweeper() *Sweeper {
	return &Sweeper{}
}

// ObserveTick records the duration of one sweep.
func (m Sweeper) ObserveTick(started time.Time) {
	sweeperTickDuration.Observe(time.Since(started).Seconds())
}

// ObserveClose records a close request outcome.
func (m Sweeper) ObserveClose(err error) {
	sweeperClosesTotal.WithLabelValues(status(err)).Inc()
}
