package database

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"local-notes/models"

	"gopkg.in/yaml.v3"
)

// Export renders every note, most recently updated first, as indented JSON
func (s *NoteStore) Export(ctx context.Context) ([]byte, error) {
	notes, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(notes, "", "  ")
	if err != nil {
		return nil, opError("export notes", ErrStore, err)
	}
	return data, nil
}

// ExportYAML renders the same list as Export in YAML
func (s *NoteStore) ExportYAML(ctx context.Context) ([]byte, error) {
	notes, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(notes); err != nil {
		return nil, opError("export notes", ErrStore, err)
	}
	if err := enc.Close(); err != nil {
		return nil, opError("export notes", ErrStore, err)
	}
	return buf.Bytes(), nil
}

// Import saves every note of a JSON array as a new record and returns how
// many were saved. Ids in the input are dropped and each note is stamped
// with fresh created_at/updated_at values. The whole input is decoded
// before anything is written; a failing save stops the import, keeping the
// notes saved before it.
func (s *NoteStore) Import(ctx context.Context, data []byte) (int, error) {
	if !s.IsOpen() {
		return 0, opError("import notes", ErrNotInitialized, nil)
	}

	notes, err := decodeImport(data)
	if err != nil {
		return 0, opError("import notes", ErrFormat, err)
	}

	imported := 0
	for i := range notes {
		note := notes[i]
		if _, err := s.Save(ctx, &note); err != nil {
			return imported, fmt.Errorf("import stopped after %d notes: %w", imported, err)
		}
		imported++
	}

	s.opts.Logger.Info("notes imported", "count", imported)
	return imported, nil
}

func decodeImport(data []byte) ([]models.Note, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("expected array of notes")
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("malformed JSON: %w", err)
	}

	notes := make([]models.Note, 0, len(raw))
	for i, elem := range raw {
		elem = bytes.TrimSpace(elem)
		if len(elem) == 0 || elem[0] != '{' {
			return nil, fmt.Errorf("element %d is not a note object", i)
		}
		var in importedNote
		if err := json.Unmarshal(elem, &in); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		if !in.Color.Valid() {
			return nil, fmt.Errorf("element %d: unknown color %q", i, in.Color)
		}
		notes = append(notes, models.Note{Title: in.Title, Content: in.Content, Color: in.Color})
	}
	return notes, nil
}

// importedNote holds the fields Import keeps. id and the timestamps are
// replaced on save, so whatever the input carries for them is ignored.
type importedNote struct {
	Title   string       `json:"title"`
	Content string       `json:"content"`
	Color   models.Color `json:"color"`
}
