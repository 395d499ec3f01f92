package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	routerRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "providerd",
		Subsystem: "router",
		Name:      "requests_total",
		Help:      "Pipe requests by method, path and response code.",
	}, []string{"method", "path", "code"})
	routerRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "providerd",
		Subsystem: "router",
		Name:      "request_duration_seconds",
		Help:      "Duration of pipe request handling.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path"})
)

// Router tracks metrics for pipe request routing.
type Router struct{}

// NewRouter constructs a Router metrics collector.
func NewRouter() *Router {
	return &Router{}
}

// Observe records a handled pipe request.
func (m Router) Observe(method, path string, code int, started time.Time) {
	routerRequestsTotal.WithLabelValues(method, path, strconv.Itoa(code)).Inc()
	routerRequestDuration.WithLabelValues(method, path).Observe(time.Since(started).Seconds())
}
