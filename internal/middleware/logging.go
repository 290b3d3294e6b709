// internal/middleware/logging.go
package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/podworks/pod-backend/internal/metrics"
)

// RequestLogger logs every request through logrus and records the HTTP
// metrics. Health and metrics probes are skipped to keep the logs readable.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		if path == "/health" || path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		duration := time.Since(start)

		status := c.Writer.Status()
		statusLabel := strconv.Itoa(status)

		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, statusLabel).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, path, statusLabel).Observe(duration.Seconds())

		entry := logrus.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   status,
			"duration": duration.Milliseconds(),
			"ip":       c.ClientIP(),
		})

		switch {
		case status >= 500:
			entry.Error("Request failed")
		case status >= 400:
			entry.Warn("Request rejected")
		default:
			entry.Info("Request processed")
		}
	}
}
