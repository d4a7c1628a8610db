package database

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

const (
	DefaultOpenTimeout = 10 * time.Second
	DefaultOpTimeout   = 5 * time.Second
	DefaultBusyTimeout = 2 * time.Second

	opOpen = "open"
)

// Options configures a NoteStore
type Options struct {
	// Path of the SQLite file; it plays the role of the store name
	Path          string
	SchemaVersion uint
	OpenTimeout   time.Duration
	OpTimeout     time.Duration
	BusyTimeout   time.Duration
	Logger        *slog.Logger
	// Observer receives every store-level failure after Open succeeds.
	// Defaults to logging the error.
	Observer func(op string, err error)
	// Now is the clock used to stamp created_at and updated_at
	Now func() time.Time
}

// NoteStore owns the connection to the local notes database. Each call
// runs one statement or transaction under its own deadline.
type NoteStore struct {
	opts Options

	mu sync.RWMutex
	db *DB
}

// NewNoteStore creates a store; nothing is opened until Open is called
func NewNoteStore(opts Options) *NoteStore {
	if opts.SchemaVersion == 0 {
		opts.SchemaVersion = LatestSchemaVersion
	}
	if opts.OpenTimeout <= 0 {
		opts.OpenTimeout = DefaultOpenTimeout
	}
	if opts.OpTimeout <= 0 {
		opts.OpTimeout = DefaultOpTimeout
	}
	if opts.BusyTimeout <= 0 {
		opts.BusyTimeout = DefaultBusyTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &NoteStore{opts: opts}
}

// Open connects to the database and brings the schema to the configured version
func (s *NoteStore) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.opts.OpenTimeout)
	defer cancel()

	type result struct {
		db  *DB
		err error
	}
	done := make(chan result, 1)

	// migrate has no context support, so the open races the deadline
	go func() {
		db, err := New(ctx, s.opts.Path, s.opts.BusyTimeout)
		if err == nil {
			if err = db.Migrate(s.opts.SchemaVersion); err != nil {
				db.Close()
				db = nil
			}
		}
		done <- result{db: db, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return classify(ctx, opOpen, res.err)
		}
		s.db = res.db
	case <-ctx.Done():
		// Close whatever the abandoned open produces so it cannot leak
		go func() {
			if res := <-done; res.db != nil {
				res.db.Close()
			}
		}()
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return opError(opOpen, ErrTimeout, ctx.Err())
		}
		return opError(opOpen, ErrStore, ctx.Err())
	}

	s.opts.Logger.Info("database opened",
		"path", s.opts.Path,
		"schema_version", s.opts.SchemaVersion,
	)
	return nil
}

// Close releases the connection. Later calls fail with ErrNotInitialized.
func (s *NoteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	if err != nil {
		return opError("close", ErrStore, err)
	}
	s.opts.Logger.Info("database closed", "path", s.opts.Path)
	return nil
}

// IsOpen reports whether Open succeeded and Close has not been called since
func (s *NoteStore) IsOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db != nil
}

// run executes fn against the open database under the per-call timeout.
// A fired timeout cancels the in-flight statement through ctx.
func (s *NoteStore) run(ctx context.Context, op string, fn func(ctx context.Context, db *DB) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return opError(op, ErrNotInitialized, nil)
	}

	ctx, cancel := context.WithTimeout(ctx, s.opts.OpTimeout)
	defer cancel()

	if err := fn(ctx, s.db); err != nil {
		err = classify(ctx, op, err)
		s.observe(op, err)
		return err
	}
	return nil
}

func (s *NoteStore) observe(op string, err error) {
	if s.opts.Observer != nil {
		s.opts.Observer(op, err)
		return
	}
	s.opts.Logger.Error("database error", "op", op, "error", err)
}

func (s *NoteStore) now() time.Time {
	return s.opts.Now().UTC().Truncate(time.Millisecond)
}
