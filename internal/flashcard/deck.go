// Package flashcard owns the flashcard collection. Cards are added from
// extracted question/answer pairs, deduplicated per note, and rescheduled
// only through the review scheduler.
package flashcard

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/degen-journal/internal/domain"
	"github.com/phrazzld/degen-journal/internal/domain/srs"
)

// Deck errors
var (
	ErrCardNotFound = fmt.Errorf("%w: flashcard", domain.ErrNotFound)
	ErrInvalidCard  = fmt.Errorf("%w: flashcard", domain.ErrValidation)
)

type dedupeKey struct {
	noteID   string
	question string
}

// Deck holds every flashcard. It is not safe for concurrent use.
type Deck struct {
	srs   srs.Service
	cards map[uuid.UUID]*domain.Flashcard
	keys  map[dedupeKey]uuid.UUID
	order []uuid.UUID
}

// NewDeck returns an empty deck grading with the given scheduler.
func NewDeck(scheduler srs.Service) *Deck {
	if scheduler == nil {
		scheduler = srs.NewDefaultService()
	}
	return &Deck{
		srs:   scheduler,
		cards: make(map[uuid.UUID]*domain.Flashcard),
		keys:  make(map[dedupeKey]uuid.UUID),
	}
}

// FromCards restores a deck from persisted cards, keeping their order.
func FromCards(scheduler srs.Service, cards []*domain.Flashcard) (*Deck, error) {
	d := NewDeck(scheduler)
	for _, c := range cards {
		if c == nil {
			continue
		}
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidCard, c.ID, err)
		}
		key := keyOf(c.NoteID, c.Question)
		if _, dup := d.keys[key]; dup {
			return nil, fmt.Errorf("%w: duplicate question %q for note %s", ErrInvalidCard, c.Question, c.NoteID)
		}
		if _, dup := d.cards[c.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %s", ErrInvalidCard, c.ID)
		}
		d.insert(c.Clone())
	}
	return d, nil
}

func keyOf(noteID, question string) dedupeKey {
	return dedupeKey{noteID: noteID, question: strings.TrimSpace(question)}
}

func (d *Deck) insert(c *domain.Flashcard) {
	d.cards[c.ID] = c
	d.keys[keyOf(c.NoteID, c.Question)] = c.ID
	d.order = append(d.order, c.ID)
}

// Add creates a card for the pair unless the note already has a card with
// the same question, in which case the existing card is returned and
// created is false.
func (d *Deck) Add(noteID, question, answer string, now time.Time) (card *domain.Flashcard, created bool, err error) {
	if id, ok := d.keys[keyOf(noteID, question)]; ok {
		return d.cards[id].Clone(), false, nil
	}

	c, err := domain.NewFlashcard(noteID, question, answer, now)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrInvalidCard, err)
	}
	d.insert(c)
	return c.Clone(), true, nil
}

// Review grades the card and stores the rescheduled copy.
func (d *Deck) Review(id uuid.UUID, quality int, now time.Time) (*domain.Flashcard, error) {
	c, ok := d.cards[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCardNotFound, id)
	}

	next, err := d.srs.Grade(c, quality, now)
	if err != nil {
		return nil, err
	}

	d.cards[id] = next
	return next.Clone(), nil
}

// IsPass reports whether quality counts as a successful recall.
func (d *Deck) IsPass(quality int) bool {
	return d.srs.IsPass(quality)
}

// Get returns a copy of the card.
func (d *Deck) Get(id uuid.UUID) (*domain.Flashcard, error) {
	c, ok := d.cards[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCardNotFound, id)
	}
	return c.Clone(), nil
}

// Due returns the cards due at now, soonest first.
func (d *Deck) Due(now time.Time) []*domain.Flashcard {
	var out []*domain.Flashcard
	for _, id := range d.order {
		if c := d.cards[id]; d.srs.IsDue(c, now) {
			out = append(out, c.Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].NextReview.Before(out[j].NextReview)
	})
	return out
}

// ByNote returns the note's cards in insertion order.
func (d *Deck) ByNote(noteID string) []*domain.Flashcard {
	var out []*domain.Flashcard
	for _, id := range d.order {
		if c := d.cards[id]; c.NoteID == noteID {
			out = append(out, c.Clone())
		}
	}
	return out
}

// All returns every card in insertion order.
func (d *Deck) All() []*domain.Flashcard {
	out := make([]*domain.Flashcard, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.cards[id].Clone())
	}
	return out
}

// Len returns the number of cards.
func (d *Deck) Len() int {
	return len(d.order)
}
