package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// Error kinds returned by NoteStore. Match them with errors.Is.
var (
	ErrNotInitialized = errors.New("database not initialized, call Open first")
	ErrTimeout        = errors.New("operation timed out")
	ErrBlocked        = errors.New("database blocked by another connection")
	ErrStore          = errors.New("store failure")
	ErrFormat         = errors.New("invalid import format")
)

// OpError records the failed operation, its kind and the underlying cause
type OpError struct {
	Op   string
	Kind error
	Err  error
}

func (e *OpError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *OpError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func opError(op string, kind, err error) error {
	return &OpError{Op: op, Kind: kind, Err: err}
}

// classify maps a raw failure to one of the store error kinds
func classify(ctx context.Context, op string, err error) error {
	var opErr *OpError
	if errors.As(err, &opErr) {
		return err
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return opError(op, ErrTimeout, err)
	}
	// only a lock held during open is reported as blocked; once open,
	// a busy statement is an ordinary store failure
	if op == opOpen && isBusy(err) {
		return opError(op, ErrBlocked, err)
	}
	return opError(op, ErrStore, err)
}

// isBusy checks if SQLite refused a lock because another connection holds it
func isBusy(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
	}
	// migrate wraps driver errors without exposing them to errors.As
	msg := err.Error()
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked")
}
