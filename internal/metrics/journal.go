package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	journalFlushTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "providerd",
		Subsystem: "journal",
		Name:      "flush_total",
		Help:      "Count of journal batch flushes.",
	}, []string{"status"})
	journalFlushDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "providerd",
		Subsystem: "journal",
		Name:      "flush_duration_seconds",
		Help:      "Duration of journal batch flushes.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})
	journalRowsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "providerd",
		Subsystem: "journal",
		Name:      "rows_total",
		Help:      "Journal rows by result.",
	}, []string{"result"})
)

// Journal tracks metrics for the event journal.
type Journal struct{}

// NewJournal constructs a Journal metrics collector.
func NewJournal() *Journal {
	return &Journal{}
}

// ObserveFlush records a batch flush and the number of rows it carried.
func (m Journal) ObserveFlush(err error, rows int, started time.Time) {
	s := status(err)
	journalFlushTotal.WithLabelValues(s).Inc()
	journalFlushDuration.WithLabelValues(s).Observe(time.Since(started).Seconds())
	result := "written"
	if err != nil {
		result = "failed"
	}
	journalRowsTotal.WithLabelValues(result).Add(float64(rows))
}

// ObserveDropped counts a row rejected because the buffer was full.
func (m Journal) ObserveDropped() {
	journalRowsTotal.WithLabelValues("dropped").Inc()
}
