package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"recipeapp.com/internal/metrics"
)

// Metrics records request count and latency per route pattern. Errors from
// the chain are rendered here so the recorded status is the one sent.
func Metrics(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		if err := c.Next(); err != nil {
			if herr := c.App().Config().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		m.ObserveRequest(c.Method(), c.Route().Path, c.Response().StatusCode(), time.Since(start))
		return nil
	}
}
