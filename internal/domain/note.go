package domain

import (
	"errors"
	"time"
)

// Note validation errors
var (
	ErrNoteIDEmpty     = errors.New("note ID cannot be empty")
	ErrInvalidProgress = errors.New("note progress must be between 0 and 100")
)

// QAPair is a question/answer pair produced by the upstream extractor.
type QAPair struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// Note is a read-only record of the note catalog. The core only reads ID,
// the extracted Flashcards and Connections.
type Note struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Path        string   `json:"path"`
	Category    string   `json:"category,omitempty"`
	Subcategory string   `json:"subcategory,omitempty"`
	Content     string   `json:"content"`
	Tags        []string `json:"tags,omitempty"`
	Connections []string `json:"connections,omitempty"`
	Progress    int      `json:"progress"`
	Flashcards  []QAPair `json:"flashcards,omitempty"`
}

// Validate checks the note's identity and progress range.
func (n *Note) Validate() error {
	if n.ID == "" {
		return ErrNoteIDEmpty
	}
	if n.Progress < 0 || n.Progress > 100 {
		return ErrInvalidProgress
	}
	return nil
}

// NoteProgress is how far the reader has got through a note. It is kept by
// the journal; the vault's frontmatter progress is only the starting value.
type NoteProgress struct {
	Progress   int       `json:"progress"`
	LastViewed time.Time `json:"last_viewed"`
}
