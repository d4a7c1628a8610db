package database

import (
	"context"
	"encoding/json"
	"errors"
	"local-notes/models"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type noteTuple struct {
	Title   string
	Content string
	Color   models.Color
}

func tuples(notes []models.Note) []noteTuple {
	out := make([]noteTuple, 0, len(notes))
	for _, n := range notes {
		out = append(out, noteTuple{n.Title, n.Content, n.Color})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out
}

func TestNoteStore_Export(t *testing.T) {
	store, clock := setupTestStore(t, nil)
	ctx := context.Background()

	_, err := store.Save(ctx, &models.Note{Title: "A", Content: "alpha", Color: models.ColorYellow})
	require.NoError(t, err)
	clock.Advance(time.Second)
	_, err = store.Save(ctx, &models.Note{Title: "B", Content: "beta"})
	require.NoError(t, err)

	data, err := store.Export(ctx)
	require.NoError(t, err)

	// pretty printed, newest first
	assert.True(t, strings.HasPrefix(string(data), "[\n  {\n"))

	var exported []map[string]any
	require.NoError(t, json.Unmarshal(data, &exported))
	require.Len(t, exported, 2)
	assert.Equal(t, "B", exported[0]["title"])
	assert.Equal(t, "A", exported[1]["title"])
	assert.Equal(t, "yellow", exported[1]["color"])
	assert.Equal(t, float64(1), exported[1]["id"])
	assert.Equal(t, "2025-10-18T09:00:00Z", exported[1]["created_at"])
	for _, key := range []string{"id", "title", "content", "created_at", "updated_at"} {
		assert.Contains(t, exported[0], key)
	}
}

func TestNoteStore_ExportEmpty(t *testing.T) {
	store, _ := setupTestStore(t, nil)

	data, err := store.Export(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestNoteStore_ExportYAML(t *testing.T) {
	store, _ := setupTestStore(t, nil)
	ctx := context.Background()

	_, err := store.Save(ctx, &models.Note{Title: "A", Content: "alpha", Color: models.ColorGreen})
	require.NoError(t, err)

	data, err := store.ExportYAML(ctx)
	require.NoError(t, err)

	var exported []models.Note
	require.NoError(t, yaml.Unmarshal(data, &exported))
	require.Len(t, exported, 1)
	assert.Equal(t, "A", exported[0].Title)
	assert.Equal(t, models.ColorGreen, exported[0].Color)
	assert.Contains(t, string(data), "title: A")
}

func TestNoteStore_ExportImportRoundTrip(t *testing.T) {
	source, clock := setupTestStore(t, nil)
	ctx := context.Background()

	for _, n := range []*models.Note{
		{Title: "A", Content: "alpha", Color: models.ColorYellow},
		{Title: "B", Content: "beta", Color: models.ColorPink},
		{Title: "C", Content: "gamma"},
	} {
		_, err := source.Save(ctx, n)
		require.NoError(t, err)
		clock.Advance(time.Second)
	}

	data, err := source.Export(ctx)
	require.NoError(t, err)

	target, targetClock := setupTestStore(t, nil)
	targetClock.Advance(24 * time.Hour)

	count, err := target.Import(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	original, err := source.All(ctx)
	require.NoError(t, err)
	imported, err := target.All(ctx)
	require.NoError(t, err)

	assert.Equal(t, tuples(original), tuples(imported))

	// imported notes get fresh timestamps
	for _, n := range imported {
		assert.True(t, n.CreatedAt.Equal(targetClock.Now()))
		assert.True(t, n.UpdatedAt.Equal(targetClock.Now()))
	}
}

func TestNoteStore_Import(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name          string
		input         string
		expectedCount int
		expectedError error
	}{
		{
			name:          "Ids are stripped",
			input:         `[{"id": 42, "title": "A", "content": "alpha"}, {"id": 43, "title": "B", "content": "beta"}]`,
			expectedCount: 2,
		},
		{
			name:          "Empty array",
			input:         `[]`,
			expectedCount: 0,
		},
		{
			name:          "Top level object",
			input:         `{"title": "A"}`,
			expectedError: ErrFormat,
		},
		{
			name:          "Malformed JSON",
			input:         `[{"title": "A"`,
			expectedError: ErrFormat,
		},
		{
			name:          "Element is not an object",
			input:         `[{"title": "A", "content": "alpha"}, 7]`,
			expectedError: ErrFormat,
		},
		{
			name:          "Field of the wrong type",
			input:         `[{"title": 12}]`,
			expectedError: ErrFormat,
		},
		{
			name:          "Empty input",
			input:         ``,
			expectedError: ErrFormat,
		},
		{
			name:          "Unknown color",
			input:         `[{"title": "A", "content": "alpha"}, {"title": "B", "content": "beta", "color": "purple"}]`,
			expectedError: ErrFormat,
		},
		{
			name:          "Known and missing colors",
			input:         `[{"title": "A", "content": "alpha", "color": "pink"}, {"title": "B", "content": "beta"}]`,
			expectedCount: 2,
		},
		{
			name:          "Non numeric id is ignored",
			input:         `[{"id": "abc", "title": "A", "content": "alpha"}]`,
			expectedCount: 1,
		},
		{
			name:          "Unparseable timestamps are ignored",
			input:         `[{"title": "A", "content": "alpha", "created_at": "", "updated_at": "2024-01-01 10:00:00"}]`,
			expectedCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _ := setupTestStore(t, nil)

			count, err := store.Import(ctx, []byte(tt.input))
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Equal(t, 0, count)

				// nothing is written when the input is rejected
				stored, err := store.Count(ctx)
				require.NoError(t, err)
				assert.Equal(t, 0, stored)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedCount, count)

			all, err := store.All(ctx)
			require.NoError(t, err)
			assert.Len(t, all, tt.expectedCount)
			for _, n := range all {
				assert.NotEqual(t, int64(42), n.ID)
				assert.NotEqual(t, int64(43), n.ID)
			}
		})
	}
}

func TestNoteStore_ImportNeverOverwrites(t *testing.T) {
	store, _ := setupTestStore(t, nil)
	ctx := context.Background()

	id, err := store.Save(ctx, noteWith("Keep", "me"))
	require.NoError(t, err)

	input := `[{"id": ` + jsonInt(id) + `, "title": "Imported", "content": "copy"}]`
	count, err := store.Import(ctx, []byte(input))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	kept, err := store.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, kept)
	assert.Equal(t, "Keep", kept.Title)

	total, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

func jsonInt(v int64) string {
	data, _ := json.Marshal(v)
	return string(data)
}

func TestNoteStore_ImportKeepsNotesSavedBeforeFailure(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "notes.db")
	clock := newFakeClock()

	// the store goes away while the third note is being saved
	var (
		store *NoteStore
		saves int
	)
	store, _ = setupTestStore(t, func(opts *Options) {
		opts.Path = path
		opts.Now = func() time.Time {
			saves++
			if saves == 3 {
				store.Close()
			}
			return clock.Now()
		}
	})

	input := `[
		{"title": "A", "content": "alpha"},
		{"title": "B", "content": "beta"},
		{"title": "C", "content": "gamma"},
		{"title": "D", "content": "delta"}
	]`
	count, err := store.Import(ctx, []byte(input))
	require.Error(t, err)
	assert.Equal(t, 2, count)
	assert.True(t, errors.Is(err, ErrNotInitialized))
	assert.Contains(t, err.Error(), "import stopped after 2 notes")

	reopened := NewNoteStore(Options{Path: path, Logger: testLogger()})
	require.NoError(t, reopened.Open(ctx))
	defer reopened.Close()

	notes, err := reopened.All(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []noteTuple{{Title: "A", Content: "alpha"}, {Title: "B", Content: "beta"}}, tuples(notes))
}
