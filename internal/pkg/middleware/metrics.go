package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsBuilder 按 method/路由/状态码 统计请求量和耗时，
// 指标走 governor 的 /metrics 暴露
type MetricsBuilder struct {
	summaryVec *prometheus.SummaryVec
	counterVec *prometheus.CounterVec
}

func NewMetricsBuilder() *MetricsBuilder {
	summaryVec := promauto.NewSummaryVec(
		prometheus.SummaryOpts{
			Namespace: "jobgenie",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Objectives: map[float64]float64{
				0.5:  0.05,
				0.9:  0.01,
				0.99: 0.001,
			},
		},
		[]string{"method", "path", "status"},
	)

	counterVec := promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jobgenie",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	return &MetricsBuilder{
		summaryVec: summaryVec,
		counterVec: counterVec,
	}
}

func (b *MetricsBuilder) Build() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		method := ctx.Request.Method
		// 用路由模板而不是真实 path，避免 /api/jobs/:id 的基数爆掉
		path := ctx.FullPath()
		if path == "" {
			path = ctx.Request.URL.Path
		}
		status := strconv.Itoa(ctx.Writer.Status())

		b.summaryVec.WithLabelValues(method, path, status).
			Observe(time.Since(start).Seconds())
		b.counterVec.WithLabelValues(method, path, status).Inc()
	}
}
