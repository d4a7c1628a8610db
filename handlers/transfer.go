package handlers

import (
	"fmt"
	"local-notes/app"
	"time"

	"github.com/gofiber/fiber/v2"
)

// ExportNotes downloads every note as a JSON file
func ExportNotes(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data, err := a.NoteService.Export(c.UserContext())
		if err != nil {
			return storeError(c, "Failed to export notes", err)
		}

		c.Attachment(fmt.Sprintf("notes-export-%s.json", time.Now().Format("2006-01-02")))
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.Send(data)
	}
}

// ImportNotes adds the notes of a JSON array body as new notes
func ImportNotes(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		count, err := a.NoteService.Import(c.UserContext(), c.Body())
		if err != nil {
			if count > 0 {
				a.Logger.Warn("import stopped early", "imported", count, "error", err)
			}
			return storeError(c, fmt.Sprintf("Import failed after %d notes", count), err)
		}

		return success(c, fiber.Map{"imported": count})
	}
}
