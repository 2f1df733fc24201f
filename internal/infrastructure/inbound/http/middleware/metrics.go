package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	ports "kaizen-board/internal/domain/ports/output"
)

// Metrics records request counts and latency labelled by route template.
func Metrics(metrics ports.MetricsProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		metrics.IncrementHTTPRequests(c.Request.Method, path, status)
		metrics.RecordHTTPRequestDuration(c.Request.Method, path, status, time.Since(start))
	}
}
