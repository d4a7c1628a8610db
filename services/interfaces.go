package services

import (
	"context"
	"local-notes/models"
)

// NoteStore defines the persistence operations the services need.
// Production uses database.NoteStore.
type NoteStore interface {
	All(ctx context.Context) ([]models.Note, error)
	Get(ctx context.Context, id int64) (*models.Note, error)
	Save(ctx context.Context, note *models.Note) (int64, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
	Search(ctx context.Context, query string) ([]models.Note, error)
	Export(ctx context.Context) ([]byte, error)
	ExportYAML(ctx context.Context) ([]byte, error)
	Import(ctx context.Context, data []byte) (int, error)
	Clear(ctx context.Context) error
}

// ColorPicker chooses the label for a newly created note
type ColorPicker func() models.Color
