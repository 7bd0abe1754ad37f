package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Scheduling defaults for a newly extracted card.
const (
	// DefaultEaseFactor is the ease factor assigned to new cards.
	DefaultEaseFactor = 2.5

	// MinEaseFactor is the floor the ease factor can never drop below.
	MinEaseFactor = 1.3
)

// Flashcard validation errors
var (
	ErrCardIDEmpty       = errors.New("flashcard ID cannot be empty")
	ErrCardNoteIDEmpty   = errors.New("flashcard note ID cannot be empty")
	ErrCardQuestionEmpty = errors.New("flashcard question cannot be empty")
	ErrCardAnswerEmpty   = errors.New("flashcard answer cannot be empty")
	ErrInvalidEaseFactor = errors.New("ease factor must be at least 1.3")
	ErrInvalidInterval   = errors.New("interval must be greater than or equal to 0")
	ErrInvalidRepetition = errors.New("repetitions must be greater than or equal to 0")
)

// Flashcard is a question/answer pair extracted from a note together with its
// spaced repetition state. Only the review scheduler mutates the scheduling
// fields; cards are never deleted.
type Flashcard struct {
	ID          uuid.UUID  `json:"id"`
	NoteID      string     `json:"note_id"`
	Question    string     `json:"question"`
	Answer      string     `json:"answer"`
	EaseFactor  float64    `json:"ease_factor"`
	Interval    int        `json:"interval"`    // Days until the next review
	Repetitions int        `json:"repetitions"` // Consecutive successful recalls
	NextReview  time.Time  `json:"next_review"`
	LastReview  *time.Time `json:"last_review,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// NewFlashcard creates a card that is due immediately at now.
// Question and answer are trimmed before validation.
func NewFlashcard(noteID, question, answer string, now time.Time) (*Flashcard, error) {
	card := &Flashcard{
		ID:          uuid.New(),
		NoteID:      noteID,
		Question:    strings.TrimSpace(question),
		Answer:      strings.TrimSpace(answer),
		EaseFactor:  DefaultEaseFactor,
		Interval:    0,
		Repetitions: 0,
		NextReview:  now,
		CreatedAt:   now,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks the card's identity and scheduling invariants.
func (c *Flashcard) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}
	if c.NoteID == "" {
		return ErrCardNoteIDEmpty
	}
	if c.Question == "" {
		return ErrCardQuestionEmpty
	}
	if c.Answer == "" {
		return ErrCardAnswerEmpty
	}
	if c.EaseFactor < MinEaseFactor {
		return ErrInvalidEaseFactor
	}
	if c.Interval < 0 {
		return ErrInvalidInterval
	}
	if c.Repetitions < 0 {
		return ErrInvalidRepetition
	}
	return nil
}

// Clone returns a deep copy of the card.
func (c *Flashcard) Clone() *Flashcard {
	cp := *c
	if c.LastReview != nil {
		lr := *c.LastReview
		cp.LastReview = &lr
	}
	return &cp
}

// IsDue reports whether the card should be reviewed at now.
func (c *Flashcard) IsDue(now time.Time) bool {
	return !c.NextReview.After(now)
}
