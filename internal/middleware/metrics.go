package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/carebridge/carebridge-api/internal/service"
)

// Metrics records per-request counters and latency. The route template is
// used as the path label so /shifts/:id does not explode cardinality.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
