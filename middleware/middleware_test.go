package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructuredLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	app := fiber.New()
	app.Use(StructuredLogger(logger), Security())

	var seenID string
	app.Get("/ok", func(c *fiber.Ctx) error {
		seenID = GetRequestID(c)
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNotFound)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	requestID := resp.Header.Get("X-Request-ID")
	_, err = uuid.Parse(requestID)
	assert.NoError(t, err)
	assert.Equal(t, requestID, seenID)
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Contains(t, buf.String(), "request completed")

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, buf.String(), "client error")
}

func TestStructuredLogger_NoteIDAndHealth(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	app := fiber.New()
	app.Use(StructuredLogger(logger))
	app.Get(HealthPath, func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Get("/api/notes/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	_, err := app.Test(httptest.NewRequest(http.MethodGet, HealthPath, nil), -1)
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "health check")

	_, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/notes/12", nil), -1)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "note_id=12")
}
