package services

import (
	"context"
	"local-notes/models"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// DefaultAutoSaveInterval matches how often the editor flushes pending edits
const DefaultAutoSaveInterval = 10 * time.Second

// SaveStatus describes the editor's persistence state
type SaveStatus string

const (
	StatusReady   SaveStatus = "ready"
	StatusUnsaved SaveStatus = "unsaved"
	StatusSaving  SaveStatus = "saving"
	StatusSaved   SaveStatus = "saved"
)

// EditorState is a snapshot of an editor session
type EditorState struct {
	EditingID  int64      `json:"editing_id,omitempty"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Unsaved    bool       `json:"unsaved"`
	Status     SaveStatus `json:"status"`
	AutoSaving bool       `json:"auto_saving"`
}

// EditorSession owns the state of one note editor: which note is being
// edited, what was last persisted, and the auto-save ticker.
// See autosave.go for the background loop.
type EditorSession struct {
	notes    *NoteService
	logger   *slog.Logger
	interval time.Duration

	// saveMu serializes saves; mu guards the fields below
	saveMu sync.Mutex
	mu     sync.Mutex

	// generation changes whenever the session is retargeted, so a save
	// that finishes after New, Open or Close does not touch the new state
	generation       uint64
	editingID        int64
	title            string
	content          string
	lastSavedTitle   string
	lastSavedContent string
	unsaved          bool
	status           SaveStatus

	running  bool
	stopChan chan struct{}
	done     chan struct{}
}

// NewEditorSession creates an idle session. interval <= 0 disables auto-save.
func NewEditorSession(notes *NoteService, interval time.Duration, logger *slog.Logger) *EditorSession {
	if logger == nil {
		logger = slog.Default()
	}
	return &EditorSession{
		notes:    notes,
		logger:   logger,
		interval: interval,
		status:   StatusReady,
	}
}

// New starts editing a blank note
func (es *EditorSession) New() {
	es.mu.Lock()
	defer es.mu.Unlock()

	es.generation++
	es.editingID = 0
	es.title, es.content = "", ""
	es.lastSavedTitle, es.lastSavedContent = "", ""
	es.unsaved = false
	es.status = StatusReady
	es.startAutoSave()
}

// Open loads an existing note into the editor
func (es *EditorSession) Open(ctx context.Context, id int64) (*models.Note, error) {
	note, err := es.notes.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	es.mu.Lock()
	defer es.mu.Unlock()

	es.generation++
	es.editingID = note.ID
	es.title, es.content = note.Title, note.Content
	es.lastSavedTitle, es.lastSavedContent = note.Title, note.Content
	es.unsaved = false
	es.status = StatusSaved
	es.startAutoSave()
	return note, nil
}

// Change records the current editor input
func (es *EditorSession) Change(title, content string) EditorState {
	es.mu.Lock()
	defer es.mu.Unlock()

	es.title = strings.TrimSpace(title)
	es.content = strings.TrimSpace(content)
	es.refreshStatus()
	return es.snapshot()
}

// AutoSave persists pending edits. It does nothing when there are no
// changes, when both fields are empty, or when a new note lacks either
// field. A missing title on an existing note becomes DefaultTitle.
func (es *EditorSession) AutoSave(ctx context.Context) error {
	es.saveMu.Lock()
	defer es.saveMu.Unlock()

	es.mu.Lock()
	generation, id := es.generation, es.editingID
	title, content := es.title, es.content
	if !es.unsaved || (title == "" && content == "") || (id == 0 && (title == "" || content == "")) {
		es.mu.Unlock()
		return nil
	}
	es.status = StatusSaving
	es.mu.Unlock()

	saveTitle := title
	if saveTitle == "" {
		saveTitle = models.DefaultTitle
	}

	note, err := es.persist(ctx, id, saveTitle, content)

	es.mu.Lock()
	defer es.mu.Unlock()

	if es.generation != generation {
		return err
	}
	if err != nil {
		es.status = StatusUnsaved
		es.logger.Warn("auto-save failed", "note_id", id, "error", err)
		return err
	}

	es.editingID = note.ID
	es.lastSavedTitle, es.lastSavedContent = title, content
	es.refreshStatus()
	es.logger.Debug("note auto-saved", "note_id", note.ID)
	return nil
}

// Save persists the editor content and closes the session on success.
// Both title and content are required.
func (es *EditorSession) Save(ctx context.Context) (*models.Note, error) {
	note, err := es.save(ctx)
	if err != nil {
		return nil, err
	}
	es.Close()
	return note, nil
}

func (es *EditorSession) save(ctx context.Context) (*models.Note, error) {
	es.saveMu.Lock()
	defer es.saveMu.Unlock()

	es.mu.Lock()
	id, title, content := es.editingID, es.title, es.content
	es.mu.Unlock()

	if title == "" || content == "" {
		return nil, ErrEmptyNote
	}

	note, err := es.persist(ctx, id, title, content)
	if err != nil {
		es.mu.Lock()
		es.status = StatusUnsaved
		es.mu.Unlock()
		return nil, err
	}
	return note, nil
}

func (es *EditorSession) persist(ctx context.Context, id int64, title, content string) (*models.Note, error) {
	if id == 0 {
		return es.notes.Create(ctx, title, content, "")
	}
	return es.notes.Update(ctx, id, title, content)
}

// Close discards the editing target and stops auto-save
func (es *EditorSession) Close() {
	es.mu.Lock()
	es.generation++
	es.editingID = 0
	es.title, es.content = "", ""
	es.lastSavedTitle, es.lastSavedContent = "", ""
	es.unsaved = false
	es.status = StatusSaved
	done := es.stopAutoSave()
	es.mu.Unlock()

	// wait outside the lock, the loop may be finishing a save
	if done != nil {
		<-done
	}
}

// State returns a snapshot of the session
func (es *EditorSession) State() EditorState {
	es.mu.Lock()
	defer es.mu.Unlock()
	return es.snapshot()
}

func (es *EditorSession) refreshStatus() {
	es.unsaved = es.title != es.lastSavedTitle || es.content != es.lastSavedContent
	if es.unsaved {
		es.status = StatusUnsaved
	} else {
		es.status = StatusSaved
	}
}

func (es *EditorSession) snapshot() EditorState {
	return EditorState{
		EditingID:  es.editingID,
		Title:      es.title,
		Content:    es.content,
		Unsaved:    es.unsaved,
		Status:     es.status,
		AutoSaving: es.running,
	}
}
