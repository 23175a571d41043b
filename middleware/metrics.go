package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/montasssar/EcommerceSnazzyWear/awsx"
)

// MetricsMiddleware records request count, latency, and error counts to
// CloudWatch. A nil or disabled client makes this a no-op.
func MetricsMiddleware(metrics *awsx.MetricsClient, serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metrics == nil || !metrics.IsEnabled() {
			c.Next()
			return
		}

		start := time.Now()
		path := c.FullPath()
		method := c.Request.Method

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		dimensions := map[string]string{
			"Service": serviceName,
			"Method":  method,
			"Path":    path,
			"Status":  statusCodeToRange(statusCode),
		}

		// Recorded off the request path so a slow metrics endpoint never
		// delays the response.
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			_ = metrics.RecordCount(ctx, awsx.MetricHTTPRequests, dimensions)
			_ = metrics.RecordLatency(ctx, awsx.MetricHTTPLatency, duration, dimensions)
			if statusCode >= 400 {
				_ = metrics.RecordCount(ctx, awsx.MetricHTTPErrors, dimensions)
			}
		}()
	}
}

func statusCodeToRange(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return "2xx"
	case statusCode >= 300 && statusCode < 400:
		return "3xx"
	case statusCode >= 400 && statusCode < 500:
		return "4xx"
	case statusCode >= 500:
		return "5xx"
	default:
		return "unknown"
	}
}
