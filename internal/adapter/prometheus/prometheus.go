package prometheus

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sm8ta/station_control_console/internal/core/ports"
)

const appName = "station_control_console"

type PrometheusAdapter struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	submissionsTotal    *prometheus.CounterVec
	countryFetchTotal   *prometheus.CounterVec
}

// NewPrometheusAdapter registers the console metrics on reg.
func NewPrometheusAdapter(reg prometheus.Registerer) *PrometheusAdapter {
	adapter := &PrometheusAdapter{
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "method", "status", "app_name"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "api_request_duration_seconds",
				Help:    "Duration API requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method", "status", "app_name"},
		),
		submissionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: ports.MetricSubmissions,
				Help: "Employee form submissions by outcome",
			},
			[]string{"outcome", "app_name"},
		),
		countryFetchTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: ports.MetricCountryFetch,
				Help: "Country list lookups by source",
			},
			[]string{"source", "app_name"},
		),
	}

	reg.MustRegister(
		adapter.httpRequestsTotal,
		adapter.httpRequestDuration,
		adapter.submissionsTotal,
		adapter.countryFetchTotal,
	)

	adapter.httpRequestsTotal.WithLabelValues("/health", "GET", "200", appName).Add(0)
	return adapter
}

func (p *PrometheusAdapter) IncrementCounter(name string, labels map[string]string) {
	switch name {
	case ports.MetricSubmissions:
		p.submissionsTotal.WithLabelValues(labels["outcome"], appName).Inc()
	case ports.MetricCountryFetch:
		p.countryFetchTotal.WithLabelValues(labels["source"], appName).Inc()
	default:
		p.httpRequestsTotal.WithLabelValues(
			labels["path"],
			labels["method"],
			labels["status"],
			appName,
		).Inc()
	}
}

func (p *PrometheusAdapter) RecordDuration(name string, duration time.Duration, labels map[string]string) {
	p.httpRequestDuration.WithLabelValues(
		labels["path"],
		labels["method"],
		labels["status"],
		appName,
	).Observe(duration.Seconds())
}

func (p *PrometheusAdapter) RecordMetrics(c *gin.Context, start time.Time) {
	status := fmt.Sprintf("%d", c.Writer.Status())
	path := c.FullPath()
	if path == "" {
		path = c.Request.URL.Path
	}
	labels := map[string]string{
		"path":   path,
		"method": c.Request.Method,
		"status": status,
	}

	p.IncrementCounter("http_requests_total", labels)
	p.RecordDuration("api_request_duration_seconds", time.Since(start), labels)
}

var _ ports.MetricsPort = (*PrometheusAdapter)(nil)
