package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// SubmissionCounter outcome: graded | duplicate | not_found | invalid | failed
	SubmissionCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grading_submissions_total",
			Help: "Submissions processed by the grading engine",
		},
		[]string{"kind", "outcome"},
	)

	// DescriptiveVerdicts 区分 "判为错误" 与 "判分服务不可用"
	DescriptiveVerdicts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grading_descriptive_verdicts_total",
			Help: "Verdicts returned by the descriptive grading strategy",
		},
		[]string{"strategy", "verdict"},
	)

	OracleLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "grading_oracle_request_duration_seconds",
			Help:    "Latency of outbound grading oracle calls",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20},
		},
	)
)

var initOnce sync.Once

func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(SubmissionCounter)
		prometheus.MustRegister(DescriptiveVerdicts)
		prometheus.MustRegister(OracleLatency)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
