package handlers_test

import (
	"context"
	"local-notes/handlers"
	"local-notes/services"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func editorRoutes(fiberApp *fiber.App, h func(string) fiber.Handler) {
	fiberApp.Get("/api/editor", h("get"))
	fiberApp.Post("/api/editor/new", h("new"))
	fiberApp.Post("/api/editor/open/:id", h("open"))
	fiberApp.Put("/api/editor", h("change"))
	fiberApp.Post("/api/editor/autosave", h("autosave"))
	fiberApp.Post("/api/editor/save", h("save"))
	fiberApp.Post("/api/editor/close", h("close"))
}

func TestEditorFlow(t *testing.T) {
	application := setupTestDB(t)

	fiberApp := setupTestApp()
	editorRoutes(fiberApp, func(name string) fiber.Handler {
		switch name {
		case "get":
			return handlers.GetEditor(application)
		case "new":
			return handlers.NewEditorNote(application)
		case "open":
			return handlers.OpenEditorNote(application)
		case "change":
			return handlers.ChangeEditor(application)
		case "autosave":
			return handlers.AutoSaveEditor(application)
		case "save":
			return handlers.SaveEditor(application)
		default:
			return handlers.CloseEditor(application)
		}
	})

	editorState := func(body map[string]interface{}) map[string]interface{} {
		return body["editor"].(map[string]interface{})
	}

	status, body := doJSON(t, fiberApp, http.MethodPost, "/api/editor/new", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, string(services.StatusReady), editorState(body)["status"])

	status, body = doJSON(t, fiberApp, http.MethodPut, "/api/editor",
		map[string]interface{}{"title": "  Plan ", "content": "step one"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Plan", editorState(body)["title"])
	assert.Equal(t, true, editorState(body)["unsaved"])

	status, body = doJSON(t, fiberApp, http.MethodPost, "/api/editor/autosave", nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, editorState(body)["editing_id"])
	assert.Equal(t, string(services.StatusSaved), editorState(body)["status"])

	// clearing the title on an existing note auto-saves with the default title
	doJSON(t, fiberApp, http.MethodPut, "/api/editor", map[string]interface{}{"title": "", "content": "step two"})
	status, _ = doJSON(t, fiberApp, http.MethodPost, "/api/editor/autosave", nil)
	require.Equal(t, http.StatusOK, status)

	note, err := application.NoteService.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Untitled Note", note.Title)
	assert.Equal(t, "step two", note.Content)

	// an explicit save requires both fields
	status, body = doJSON(t, fiberApp, http.MethodPost, "/api/editor/save", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["error"], "title and content")

	doJSON(t, fiberApp, http.MethodPut, "/api/editor", map[string]interface{}{"title": "Plan", "content": "done"})
	status, body = doJSON(t, fiberApp, http.MethodPost, "/api/editor/save", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "done", body["note"].(map[string]interface{})["content"])
	assert.Nil(t, editorState(body)["editing_id"])

	count, err := application.NoteService.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	status, body = doJSON(t, fiberApp, http.MethodPost, "/api/editor/open/1", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Plan", editorState(body)["title"])

	status, _ = doJSON(t, fiberApp, http.MethodPost, "/api/editor/open/7", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, body = doJSON(t, fiberApp, http.MethodPost, "/api/editor/close", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "", editorState(body)["title"])

	status, body = doJSON(t, fiberApp, http.MethodGet, "/api/editor", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, editorState(body)["auto_saving"])
}
