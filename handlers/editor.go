package handlers

import (
	"local-notes/app"
	"local-notes/models"

	"github.com/gofiber/fiber/v2"
)

// GetEditor returns the editor session state
func GetEditor(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return success(c, fiber.Map{"editor": a.Editor.State()})
	}
}

// NewEditorNote starts editing a blank note
func NewEditorNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		a.Editor.New()
		return success(c, fiber.Map{"editor": a.Editor.State()})
	}
}

// OpenEditorNote loads an existing note into the editor
func OpenEditorNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := noteID(c)
		if !ok {
			return badRequest(c, "invalid note id")
		}

		note, err := a.Editor.Open(c.UserContext(), id)
		if err != nil {
			return storeError(c, "Failed to load note for editing", err)
		}

		return success(c, fiber.Map{"note": note, "editor": a.Editor.State()})
	}
}

// ChangeEditor records the current editor input
func ChangeEditor(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.EditorChangeRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		return success(c, fiber.Map{"editor": a.Editor.Change(req.Title, req.Content)})
	}
}

// AutoSaveEditor flushes pending edits now instead of waiting for the ticker
func AutoSaveEditor(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.Editor.AutoSave(c.UserContext()); err != nil {
			return storeError(c, "Auto-save failed", err)
		}
		return success(c, fiber.Map{"editor": a.Editor.State()})
	}
}

// SaveEditor saves the editor content and closes the session
func SaveEditor(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		note, err := a.Editor.Save(c.UserContext())
		if err != nil {
			return storeError(c, "Failed to save note", err)
		}
		return success(c, fiber.Map{"note": note, "editor": a.Editor.State()})
	}
}

// CloseEditor discards the editing target
func CloseEditor(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		a.Editor.Close()
		return success(c, fiber.Map{"editor": a.Editor.State()})
	}
}
