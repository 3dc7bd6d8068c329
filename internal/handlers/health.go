// Package handlers contains the HTTP route handlers for the scoring API. Each exported
// function is a handler factory: it takes its dependencies and returns a fiber.Handler,
// so nothing is read from package-level state.
package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthCheck returns the handler for GET /health. It answers {"status":"ok"} while
// ready returns nil and 503 otherwise. ready may be nil when there is nothing to check,
// e.g. when running on the in-memory store.
func HealthCheck(ready func(ctx context.Context) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ready == nil {
			return c.JSON(fiber.Map{"status": "ok"})
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := ready(ctx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unavailable",
				"error":  "database unreachable",
			})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}
