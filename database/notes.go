package database

import (
	"context"
	"database/sql"
	"fmt"
	"local-notes/models"
	"strings"
	"time"
)

// timeLayout is fixed width so that text order equals time order
const timeLayout = "2006-01-02T15:04:05.000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		// rows written by other tools may carry any RFC 3339 value
		return time.Parse(time.RFC3339Nano, s)
	}
	return t, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (models.Note, error) {
	var note models.Note
	var color, createdAt, updatedAt string
	if err := row.Scan(&note.ID, &note.Title, &note.Content, &color, &createdAt, &updatedAt); err != nil {
		return note, err
	}
	note.Color = models.Color(color)

	var err error
	if note.CreatedAt, err = parseTime(createdAt); err != nil {
		return note, fmt.Errorf("note %d: bad created_at: %w", note.ID, err)
	}
	if note.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return note, fmt.Errorf("note %d: bad updated_at: %w", note.ID, err)
	}
	return note, nil
}

// All returns every note, most recently updated first
func (s *NoteStore) All(ctx context.Context) ([]models.Note, error) {
	notes := make([]models.Note, 0)
	err := s.run(ctx, "get all notes", func(ctx context.Context, db *DB) error {
		rows, err := db.QueryContext(ctx, `
			SELECT id, title, content, color, created_at, updated_at
			FROM notes
			ORDER BY updated_at DESC, id DESC
		`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			note, err := scanNote(rows)
			if err != nil {
				return err
			}
			notes = append(notes, note)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// Get returns the note with the given id, or nil when there is none
func (s *NoteStore) Get(ctx context.Context, id int64) (*models.Note, error) {
	var found *models.Note
	err := s.run(ctx, "get note", func(ctx context.Context, db *DB) error {
		note, err := scanNote(db.QueryRowContext(ctx, `
			SELECT id, title, content, color, created_at, updated_at
			FROM notes
			WHERE id = ?
		`, id))
		if err == sql.ErrNoRows {
			return nil
		}
		if err != nil {
			return err
		}
		found = &note
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// Save creates the note when its ID is zero and overwrites it otherwise.
// The stored created_at of an existing note is never changed; a note put
// under a new id keeps the caller's created_at unless it is zero or later
// than now. On success
// note receives its id and timestamps.
func (s *NoteStore) Save(ctx context.Context, note *models.Note) (int64, error) {
	if note == nil {
		return 0, opError("save note", ErrStore, fmt.Errorf("nil note"))
	}

	stamped := *note
	now := s.now()
	if stamped.ID == 0 || stamped.CreatedAt.IsZero() || stamped.CreatedAt.After(now) {
		stamped.CreatedAt = now
	}
	stamped.UpdatedAt = now

	err := s.run(ctx, "save note", func(ctx context.Context, db *DB) error {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback()

		if stamped.ID == 0 {
			res, err := tx.ExecContext(ctx, `
				INSERT INTO notes (title, content, color, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?)
			`, stamped.Title, stamped.Content, string(stamped.Color),
				formatTime(stamped.CreatedAt), formatTime(stamped.UpdatedAt))
			if err != nil {
				return err
			}
			if stamped.ID, err = res.LastInsertId(); err != nil {
				return err
			}
		} else {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO notes (id, title, content, color, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?)
				ON CONFLICT(id) DO UPDATE SET
					title = excluded.title,
					content = excluded.content,
					color = excluded.color,
					updated_at = excluded.updated_at
			`, stamped.ID, stamped.Title, stamped.Content, string(stamped.Color),
				formatTime(stamped.CreatedAt), formatTime(stamped.UpdatedAt)); err != nil {
				return err
			}

			var createdAt string
			if err := tx.QueryRowContext(ctx,
				`SELECT created_at FROM notes WHERE id = ?`, stamped.ID,
			).Scan(&createdAt); err != nil {
				return err
			}
			if stamped.CreatedAt, err = parseTime(createdAt); err != nil {
				return err
			}
		}

		return tx.Commit()
	})
	if err != nil {
		return 0, err
	}

	*note = stamped
	return stamped.ID, nil
}

// Delete removes the note. Deleting a missing id is not an error.
func (s *NoteStore) Delete(ctx context.Context, id int64) error {
	return s.run(ctx, "delete note", func(ctx context.Context, db *DB) error {
		_, err := db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
		return err
	})
}

// Count returns the number of stored notes
func (s *NoteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.run(ctx, "count notes", func(ctx context.Context, db *DB) error {
		return db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notes`).Scan(&count)
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Search returns notes whose title or content contains query, ignoring case.
// It scans the full list; collections are expected to stay small.
func (s *NoteStore) Search(ctx context.Context, query string) ([]models.Note, error) {
	notes, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	matches := make([]models.Note, 0, len(notes))
	for _, note := range notes {
		if strings.Contains(strings.ToLower(note.Title), q) ||
			strings.Contains(strings.ToLower(note.Content), q) {
			matches = append(matches, note)
		}
	}
	return matches, nil
}

// Clear deletes every note. Ids already handed out are not reused.
func (s *NoteStore) Clear(ctx context.Context) error {
	return s.run(ctx, "clear notes", func(ctx context.Context, db *DB) error {
		_, err := db.ExecContext(ctx, `DELETE FROM notes`)
		return err
	})
}
