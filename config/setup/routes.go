package setup

import (
	"local-notes/app"
	"local-notes/handlers"
	"local-notes/middleware"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(fiberApp *fiber.App, application *app.App) {
	fiberApp.Get(middleware.HealthPath, handlers.Health(application))

	api := fiberApp.Group("/api")

	api.Get("/notes", handlers.ListNotes(application))
	api.Get("/notes/count", handlers.CountNotes(application))
	api.Get("/notes/:id", handlers.GetNote(application))
	api.Post("/notes", handlers.CreateNote(application))
	api.Put("/notes/:id", handlers.UpdateNote(application))
	api.Delete("/notes/:id", handlers.DeleteNote(application))
	api.Delete("/notes", BulkLimiter(), handlers.ClearNotes(application))

	api.Get("/export", BulkLimiter(), handlers.ExportNotes(application))
	api.Post("/import", BulkLimiter(), handlers.ImportNotes(application))

	editor := api.Group("/editor")
	editor.Get("/", handlers.GetEditor(application))
	editor.Put("/", handlers.ChangeEditor(application))
	editor.Post("/new", handlers.NewEditorNote(application))
	editor.Post("/open/:id", handlers.OpenEditorNote(application))
	editor.Post("/autosave", handlers.AutoSaveEditor(application))
	editor.Post("/save", handlers.SaveEditor(application))
	editor.Post("/close", handlers.CloseEditor(application))
}
