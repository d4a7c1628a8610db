package app

import (
	"local-notes/database"
	"local-notes/services"
	"local-notes/validator"
	"log/slog"
)

// App holds all application dependencies
// This struct is the central point for dependency injection
type App struct {
	Store       *database.NoteStore
	NoteService *services.NoteService
	Editor      *services.EditorSession
	Validator   *validator.Validator
	Logger      *slog.Logger
}

// New creates a new App instance with all dependencies
func New(store *database.NoteStore, noteService *services.NoteService, editor *services.EditorSession, logger *slog.Logger) *App {
	return &App{
		Store:       store,
		NoteService: noteService,
		Editor:      editor,
		Validator:   validator.New(),
		Logger:      logger,
	}
}
