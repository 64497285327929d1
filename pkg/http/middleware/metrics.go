package middleware

import (
	"strconv"
	"time"

	"github.com/earthcare/network/pkg/metrics"
	"github.com/gofiber/fiber/v2"
)

// MetricsMiddleware 采集 HTTP 请求指标
func MetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		// fiber resolves the matched route after Next
		path := c.Route().Path
		method := c.Method()
		status := strconv.Itoa(c.Response().StatusCode())

		metrics.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
		metrics.HTTPRequestDurationSeconds.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

		return err
	}
}
