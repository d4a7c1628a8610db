package setup

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"local-notes/config"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Port:             "0",
		Env:              "test",
		LogLevel:         "warn",
		DBPath:           filepath.Join(t.TempDir(), "data", "notes.db"),
		SchemaVersion:    1,
		OpenTimeout:      10 * time.Second,
		OpTimeout:        5 * time.Second,
		BusyTimeout:      time.Second,
		AutoSaveInterval: 0,
		CORSOrigins:      "*",
	}
}

func TestServer_Routes(t *testing.T) {
	cfg := testConfig(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := InitStore(context.Background(), cfg, logger)
	require.NoError(t, err)

	application := InitApp(store, cfg, logger)
	t.Cleanup(func() { Shutdown(application, logger) })

	server := NewServer(application, cfg)

	send := func(method, target, body string) *http.Response {
		var reader io.Reader
		if body != "" {
			reader = bytes.NewBufferString(body)
		}
		req := httptest.NewRequest(method, target, reader)
		if body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		resp, err := server.Test(req, -1)
		require.NoError(t, err)
		return resp
	}

	resp := send(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	resp = send(http.MethodPost, "/api/notes", `{"title":"Hello","content":"world"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = send(http.MethodGet, "/api/notes/count", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var count map[string]int
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&count))
	assert.Equal(t, 1, count["count"])

	resp = send(http.MethodGet, "/api/editor", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = send(http.MethodGet, "/api/missing", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var failure map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&failure))
	assert.NotEmpty(t, failure["request_id"])
}

func TestInitStore_UnknownSchemaVersion(t *testing.T) {
	cfg := testConfig(t)
	cfg.SchemaVersion = 99

	_, err := InitStore(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
}

func TestBulkLimiter(t *testing.T) {
	cfg := testConfig(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := InitStore(context.Background(), cfg, logger)
	require.NoError(t, err)
	application := InitApp(store, cfg, logger)
	t.Cleanup(func() { Shutdown(application, logger) })

	server := NewServer(application, cfg)

	var last int
	for i := 0; i < 11; i++ {
		resp, err := server.Test(httptest.NewRequest(http.MethodGet, "/api/export", nil), -1)
		require.NoError(t, err)
		last = resp.StatusCode
	}
	assert.Equal(t, http.StatusTooManyRequests, last)

	resp, err := server.Test(httptest.NewRequest(http.MethodGet, "/api/notes", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "the bulk budget is separate from the global one")
}
