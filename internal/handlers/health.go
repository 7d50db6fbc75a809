package handlers

import (
	"cardfolio/internal/services/portfolio"

	"github.com/gofiber/fiber/v2"
)

// HealthCheck reports liveness plus per-operation counters since start.
func HealthCheck(metrics *portfolio.CountingMetricsCollector) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body := fiber.Map{
			"status":  "ok",
			"version": "1.0.0",
		}
		if metrics != nil {
			body["operations"] = metrics.Snapshot()
		}
		return c.JSON(body)
	}
}
