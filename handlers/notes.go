package handlers

import (
	"local-notes/app"
	"local-notes/models"

	"github.com/gofiber/fiber/v2"
)

// ListNotes returns every note, or the ones matching ?q=
func ListNotes(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var (
			notes []models.Note
			err   error
		)
		if query := c.Query("q"); query != "" {
			notes, err = a.NoteService.Search(c.UserContext(), query)
		} else {
			notes, err = a.NoteService.List(c.UserContext())
		}
		if err != nil {
			return storeError(c, "Failed to load notes", err)
		}

		return success(c, fiber.Map{"notes": notes})
	}
}

// CountNotes returns the number of stored notes
func CountNotes(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		count, err := a.NoteService.Count(c.UserContext())
		if err != nil {
			return storeError(c, "Failed to count notes", err)
		}
		return success(c, fiber.Map{"count": count})
	}
}

// GetNote retrieves a note by id
func GetNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := noteID(c)
		if !ok {
			return badRequest(c, "invalid note id")
		}

		note, err := a.NoteService.Get(c.UserContext(), id)
		if err != nil {
			return storeError(c, "Failed to load note", err)
		}

		return success(c, fiber.Map{"note": note})
	}
}

// CreateNote saves a new note
func CreateNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateNoteRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		note, err := a.NoteService.Create(c.UserContext(), req.Title, req.Content, req.Color)
		if err != nil {
			return storeError(c, "Failed to save note", err)
		}

		return created(c, fiber.Map{"note": note})
	}
}

// UpdateNote overwrites title and content of an existing note
func UpdateNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := noteID(c)
		if !ok {
			return badRequest(c, "invalid note id")
		}

		var req models.UpdateNoteRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		note, err := a.NoteService.Update(c.UserContext(), id, req.Title, req.Content)
		if err != nil {
			return storeError(c, "Failed to save note", err)
		}

		return success(c, fiber.Map{"note": note})
	}
}

// DeleteNote removes a note
func DeleteNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := noteID(c)
		if !ok {
			return badRequest(c, "invalid note id")
		}

		if err := a.NoteService.Delete(c.UserContext(), id); err != nil {
			return storeError(c, "Failed to delete note", err)
		}

		return success(c, fiber.Map{"message": "Note deleted successfully"})
	}
}

// ClearNotes removes every note
func ClearNotes(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.NoteService.Clear(c.UserContext()); err != nil {
			return storeError(c, "Failed to clear notes", err)
		}

		return success(c, fiber.Map{"message": "All notes deleted"})
	}
}
