package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"idea-feed/metrics"
)

// RequestMetrics 는 진입부터 응답까지 걸린 시간을 route 템플릿 단위로 기록한다.
func RequestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, status).Inc()
		metrics.HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
