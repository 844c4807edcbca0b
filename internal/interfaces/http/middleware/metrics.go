package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"vendor-onboarding.backend/pkg/metrics"
)

// MetricsMiddleware records request latency by route template, so ids in
// paths do not blow up label cardinality.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		metrics.ObserveHTTP(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
