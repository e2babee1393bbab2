package ports

import (
	"time"

	"github.com/gin-gonic/gin"
)

const (
	MetricSubmissions  = "employee_submissions_total"
	MetricCountryFetch = "country_fetch_total"
)

type MetricsPort interface {
	IncrementCounter(name string, labels map[string]string)
	RecordDuration(name string, duration time.Duration, labels map[string]string)
	RecordMetrics(c *gin.Context, start time.Time)
}
