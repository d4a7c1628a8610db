package handlers

import (
	"errors"
	"local-notes/database"
	"local-notes/middleware"
	"local-notes/services"
	"local-notes/validator"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func success(c *fiber.Ctx, data fiber.Map) error {
	return c.JSON(data)
}

func created(c *fiber.Ctx, data fiber.Map) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": message})
}

func validationError(c *fiber.Ctx, err error) error {
	var details validator.ValidationErrors
	if errors.As(err, &details) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": details,
		})
	}
	return badRequest(c, "Validation failed")
}

// storeError maps service and store failures onto HTTP statuses
func storeError(c *fiber.Ctx, message string, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNoteNotFound):
		return notFound(c, "Note not found")
	case errors.Is(err, services.ErrEmptyNote):
		return badRequest(c, "Please fill in both title and content")
	case errors.Is(err, database.ErrFormat):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message, "details": err.Error()})
	case errors.Is(err, database.ErrTimeout):
		status = fiber.StatusGatewayTimeout
	case errors.Is(err, database.ErrNotInitialized), errors.Is(err, database.ErrBlocked):
		status = fiber.StatusServiceUnavailable
	}

	slog.Error("store error",
		"request_id", middleware.GetRequestID(c),
		"method", c.Method(),
		"path", c.Path(),
		"message", message,
		"error", err,
	)

	return c.Status(status).JSON(fiber.Map{"error": message})
}

func noteID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
