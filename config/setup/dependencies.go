package setup

import (
	"context"
	"local-notes/app"
	"local-notes/config"
	"local-notes/database"
	"local-notes/services"
	"log/slog"
)

// InitStore opens the note store and migrates it to the configured schema version
func InitStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*database.NoteStore, error) {
	store := database.NewNoteStore(database.Options{
		Path:          cfg.DBPath,
		SchemaVersion: cfg.SchemaVersion,
		OpenTimeout:   cfg.OpenTimeout,
		OpTimeout:     cfg.OpTimeout,
		BusyTimeout:   cfg.BusyTimeout,
		Logger:        logger,
	})

	if err := store.Open(ctx); err != nil {
		return nil, err
	}

	logger.Info("database initialized", "path", cfg.DBPath, "schema_version", cfg.SchemaVersion)
	return store, nil
}

// InitApp initializes the application with all dependencies
func InitApp(store *database.NoteStore, cfg *config.Config, logger *slog.Logger) *app.App {
	noteService := services.NewNoteService(store, services.RandomColor)
	editor := services.NewEditorSession(noteService, cfg.AutoSaveInterval, logger)

	application := app.New(store, noteService, editor, logger)
	logger.Debug("application initialized with dependency injection")

	return application
}

// Shutdown stops the editor session and closes the store
func Shutdown(application *app.App, logger *slog.Logger) {
	logger.Info("shutting down services...")

	if application.Editor != nil {
		application.Editor.Close()
		logger.Info("editor session closed")
	}

	if application.Store != nil {
		if err := application.Store.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
			return
		}
		logger.Info("database closed")
	}
}
