package middleware

import (
	"github.com/gin-gonic/gin"

	"library-catalog/internal/shared/metrics"
)

// Metrics counts requests by route template, never by raw path
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		m.ObserveHTTP(c.Request.Method, c.FullPath(), c.Writer.Status())
	}
}
