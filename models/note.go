package models

import "time"

// Color labels a note card. The zero value means no label was assigned.
type Color string

const (
	ColorYellow Color = "yellow"
	ColorGreen  Color = "green"
	ColorPink   Color = "pink"
)

// Colors lists the labels a note may carry, in display order
var Colors = []Color{ColorYellow, ColorGreen, ColorPink}

// Valid reports whether c is unset or one of the known labels
func (c Color) Valid() bool {
	if c == "" {
		return true
	}
	for _, known := range Colors {
		if c == known {
			return true
		}
	}
	return false
}

// DefaultTitle is used when an auto-saved note has content but no title
const DefaultTitle = "Untitled Note"

type Note struct {
	ID        int64     `json:"id,omitempty" yaml:"id,omitempty"`
	Title     string    `json:"title" yaml:"title"`
	Content   string    `json:"content" yaml:"content"`
	Color     Color     `json:"color,omitempty" yaml:"color,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

type CreateNoteRequest struct {
	Title   string `json:"title" validate:"required,notblank,max=200"`
	Content string `json:"content" validate:"required,notblank,max=100000"`
	Color   Color  `json:"color" validate:"omitempty,notecolor"`
}

type UpdateNoteRequest struct {
	Title   string `json:"title" validate:"required,notblank,max=200"`
	Content string `json:"content" validate:"required,notblank,max=100000"`
}

type EditorChangeRequest struct {
	Title   string `json:"title" validate:"max=200"`
	Content string `json:"content" validate:"max=100000"`
}
