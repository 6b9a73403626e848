package middleware

import (
	"time"

	"seopilot/internal/logger"

	"github.com/gin-gonic/gin"
)

// Logger emits one access line per request through the service logger,
// leveled by status. Health and metrics probes poll constantly and are
// not logged.
func Logger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if path == "/health" || path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		elapsed := time.Since(start).Round(time.Millisecond)
		switch {
		case status >= 500:
			log.Error("%s %s %d %s %s", c.Request.Method, path, status, elapsed, c.ClientIP())
		case status >= 400:
			log.Warn("%s %s %d %s %s", c.Request.Method, path, status, elapsed, c.ClientIP())
		default:
			log.Info("%s %s %d %s %s", c.Request.Method, path, status, elapsed, c.ClientIP())
		}
	}
}
