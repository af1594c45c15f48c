package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector is a Prometheus-backed Sink.
type Collector struct {
	apiCalls      *prometheus.CounterVec
	apiDuration   *prometheus.HistogramVec
	sessionEvents *prometheus.CounterVec
}

var _ Sink = (*Collector)(nil)

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		apiCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "deptdash_api_calls_total",
			Help: "Calls to the department service by operation, result and HTTP status.",
		}, []string{"operation", "result", "status", "error_class"}),
		apiDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "deptdash_api_call_duration_seconds",
			Help:    "Latency of calls to the department service.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation", "result"}),
		sessionEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "deptdash_session_events_total",
			Help: "Session lifecycle events (login, logout, invalidated, token_missing).",
		}, []string{"event"}),
	}

	reg.MustRegister(c.apiCalls, c.apiDuration, c.sessionEvents)
	return c
}

// Count implements Sink. Unknown metric names are ignored.
func (c *Collector) Count(name string, value int64, tags map[string]string) {
	switch name {
	case MetricAPICall:
		c.apiCalls.WithLabelValues(
			tags["operation"], tags["result"], tags["status"], tags["error_class"],
		).Add(float64(value))
	case MetricSessionEvent:
		c.sessionEvents.WithLabelValues(tags["event"]).Add(float64(value))
	}
}

// Timing implements Sink. Unknown metric names are ignored.
func (c *Collector) Timing(name string, value time.Duration, tags map[string]string) {
	if name != MetricAPIDuration {
		return
	}
	c.apiDuration.WithLabelValues(tags["operation"], tags["result"]).Observe(value.Seconds())
}

// Handler returns the HTTP handler for Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
