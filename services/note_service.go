package services

import (
	"context"
	"local-notes/models"
	"math/rand/v2"
)

// RandomColor picks one of the note labels uniformly
func RandomColor() models.Color {
	return models.Colors[rand.IntN(len(models.Colors))]
}

// NoteService handles business logic for notes
type NoteService struct {
	store     NoteStore
	pickColor ColorPicker
}

// NewNoteService creates a new note service. A nil picker means RandomColor.
func NewNoteService(store NoteStore, pickColor ColorPicker) *NoteService {
	if pickColor == nil {
		pickColor = RandomColor
	}
	return &NoteService{
		store:     store,
		pickColor: pickColor,
	}
}

// Get retrieves a note by id
func (ns *NoteService) Get(ctx context.Context, id int64) (*models.Note, error) {
	note, err := ns.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}
	return note, nil
}

// Create saves a new note. An empty color is chosen by the color picker.
func (ns *NoteService) Create(ctx context.Context, title, content string, color models.Color) (*models.Note, error) {
	if color == "" {
		color = ns.pickColor()
	}

	note := &models.Note{
		Title:   title,
		Content: content,
		Color:   color,
	}
	if _, err := ns.store.Save(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// Update overwrites title and content of an existing note, keeping its color
func (ns *NoteService) Update(ctx context.Context, id int64, title, content string) (*models.Note, error) {
	existing, err := ns.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	note := *existing
	note.Title = title
	note.Content = content
	if _, err := ns.store.Save(ctx, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// List retrieves all notes, most recently updated first
func (ns *NoteService) List(ctx context.Context) ([]models.Note, error) {
	return ns.store.All(ctx)
}

// Search finds notes whose title or content contains query
func (ns *NoteService) Search(ctx context.Context, query string) ([]models.Note, error) {
	return ns.store.Search(ctx, query)
}

// Delete removes a note
func (ns *NoteService) Delete(ctx context.Context, id int64) error {
	return ns.store.Delete(ctx, id)
}

func (ns *NoteService) Count(ctx context.Context) (int, error) {
	return ns.store.Count(ctx)
}

func (ns *NoteService) Export(ctx context.Context) ([]byte, error) {
	return ns.store.Export(ctx)
}

func (ns *NoteService) ExportYAML(ctx context.Context) ([]byte, error) {
	return ns.store.ExportYAML(ctx)
}

func (ns *NoteService) Import(ctx context.Context, data []byte) (int, error) {
	return ns.store.Import(ctx, data)
}

// Clear removes every note
func (ns *NoteService) Clear(ctx context.Context) error {
	return ns.store.Clear(ctx)
}
