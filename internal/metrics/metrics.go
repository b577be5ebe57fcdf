// Package metrics exposes Prometheus counters for the portfolio server.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	projectSelections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_project_selections_total",
			Help: "Project tiles selected in the showcase grid",
		},
		[]string{"project"},
	)

	contactSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_contact_submissions_total",
			Help: "Contact form submissions by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portfolio_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

func ProjectSelected(projectID string) {
	projectSelections.WithLabelValues(projectID).Inc()
}

func ContactSubmitted(provider, outcome string) {
	contactSubmissions.WithLabelValues(provider, outcome).Inc()
}

// Middleware observes request latency, labelled by the matched route so
// unknown paths do not create new series.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		requestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// Handler serves the default registry.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
