package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hackmate/hackmate/pkg/metrics"
)

// Metrics counts every request by method, route and status
func Metrics(m *metrics.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		m.HTTPRequests.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
	}
}
