// Package metrics holds the prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	matchesCreated  prometheus.Counter
	matchScores     prometheus.Histogram
	statusChanges   *prometheus.CounterVec
}

// New registers the collectors on a private registry, so tests can build as
// many instances as they like.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "skillsverse",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "skillsverse",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		matchesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "skillsverse",
			Name:      "matches_created_total",
			Help:      "Matches created through the API.",
		}),
		matchScores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "skillsverse",
			Name:      "match_score",
			Help:      "Distribution of assigned match scores.",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		}),
		statusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "skillsverse",
			Name:      "match_status_changes_total",
			Help:      "Match status updates by target status.",
		}, []string{"status"}),
	}

	m.registry.MustRegister(
		prometheus.NewGoCollector(),
		m.requests,
		m.requestDuration,
		m.matchesCreated,
		m.matchScores,
		m.statusChanges,
	)
	return m
}

// Middleware records request counts and latency keyed by the route pattern.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}

func (m *Metrics) ObserveMatch(score int) {
	if m == nil {
		return
	}
	m.matchesCreated.Inc()
	m.matchScores.Observe(float64(score))
}

func (m *Metrics) ObserveStatusChange(status string) {
	if m == nil {
		return
	}
	m.statusChanges.WithLabelValues(status).Inc()
}
