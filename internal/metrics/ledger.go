package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ledgerOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "providerd",
		Subsystem: "ledger",
		Name:      "operations_total",
		Help:      "Count of ledger operations.",
	}, []string{"operation", "driver", "status"})
	ledgerOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "providerd",
		Subsystem: "ledger",
		Name:      "operation_duration_seconds",
		Help:      "Duration of ledger operations.",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"operation", "driver", "status"})
	ledgerDetailCacheTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "providerd",
		Subsystem: "ledger",
		Name:      "detail_cache_lookups_total",
		Help:      "Detail document cache lookups by result.",
	}, []string{"driver", "result"})
)

// Ledger tracks metrics for ledger operations.
type Ledger struct {
	driver string
}

// NewLedger creates a Ledger metrics collector for the given SQL driver.
func NewLedger(driver string) *Ledger {
	if driver == "" {
		driver = "unknown"
	}
	return &Ledger{driver: driver}
}

// Observe records duration and status of a ledger operation.
func (m Ledger) Observe(operation string, err error, started time.Time) {
	s := status(err)
	ledgerOperationsTotal.WithLabelValues(operation, m.driver, s).Inc()
	ledgerOperationDuration.WithLabelValues(operation, m.driver, s).Observe(time.Since(started).Seconds())
}

// ObserveCache records detail document cache hits and misses.
func (m Ledger) ObserveCache(hits, misses int) {
	ledgerDetailCacheTotal.WithLabelValues(m.driver, "hit").Add(float64(hits))
	ledgerDetailCacheTotal.WithLabelValues(m.driver, "miss").Add(float64(misses))
}
