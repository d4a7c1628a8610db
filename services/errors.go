package services

import "errors"

// Common service-level errors
var (
	// Note errors
	ErrNoteNotFound = errors.New("note not found")
	ErrEmptyNote    = errors.New("title and content are required")
)
