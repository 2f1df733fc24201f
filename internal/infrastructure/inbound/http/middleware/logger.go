package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	ports "kaizen-board/internal/domain/ports/output"
)

func Logger(log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		attrs := []any{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.String("request_id", RequestIDFromContext(c.Request.Context())),
		}

		switch {
		case c.Writer.Status() >= 500:
			log.Error("HTTP request failed", attrs...)
		case c.Writer.Status() >= 400:
			log.Warn("HTTP request rejected", attrs...)
		default:
			log.Info("HTTP request", attrs...)
		}
	}
}
