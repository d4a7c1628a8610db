package handlers

import (
	"local-notes/app"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Health reports whether the note store is open
func Health(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body := fiber.Map{
			"status":    "ok",
			"database":  "open",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		}
		if !a.Store.IsOpen() {
			body["status"] = "unavailable"
			body["database"] = "closed"
			return c.Status(fiber.StatusServiceUnavailable).JSON(body)
		}
		return success(c, body)
	}
}
