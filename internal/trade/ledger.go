// Package trade implements the trade journal: opening and closing
// positions, annotating them and aggregating statistics.
package trade

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/phrazzld/degen-journal/internal/domain"
)

// Trade ledger errors
var (
	ErrTradeNotFound      = fmt.Errorf("%w: trade", domain.ErrNotFound)
	ErrTradeAlreadyClosed = fmt.Errorf("%w: trade already closed", domain.ErrInvalidState)
	ErrInvalidInput       = fmt.Errorf("%w: trade input", domain.ErrValidation)
)

// Ledger holds every trade keyed by id. It is not safe for concurrent use.
type Ledger struct {
	trades   map[uuid.UUID]*domain.Trade
	validate *validator.Validate
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		trades:   make(map[uuid.UUID]*domain.Trade),
		validate: validator.New(),
	}
}

// FromTrades restores a ledger from persisted trades.
func FromTrades(trades []*domain.Trade) (*Ledger, error) {
	l := NewLedger()
	for _, t := range trades {
		if t == nil {
			continue
		}
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("%w: trade %s: %w", domain.ErrValidation, t.ID, err)
		}
		if _, dup := l.trades[t.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate trade %s", domain.ErrValidation, t.ID)
		}
		l.trades[t.ID] = t.Clone()
	}
	return l, nil
}

// Add opens a new trade. Only the token and chain are required; prices are
// accepted as long as they are numbers.
func (l *Ledger) Add(in domain.TradeInput, now time.Time) (*domain.Trade, error) {
	in.Token = strings.TrimSpace(in.Token)
	if err := l.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	t, err := domain.NewTrade(in, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	l.trades[t.ID] = t
	return t.Clone(), nil
}

// Close freezes the trade at sellPrice. A closed trade can never be closed
// again, so its P&L is never recomputed.
func (l *Ledger) Close(id uuid.UUID, sellPrice float64, now time.Time) (*domain.Trade, error) {
	t, ok := l.trades[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTradeNotFound, id)
	}
	if t.IsClosed() {
		return nil, fmt.Errorf("%w: %s", ErrTradeAlreadyClosed, id)
	}

	next := t.Clone()
	if err := next.Close(sellPrice, now); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	l.trades[id] = next
	return next.Clone(), nil
}

// Annotation holds the non-financial fields that may change after a trade
// is opened. Nil fields are left untouched.
type Annotation struct {
	Notes          *string         `json:"notes,omitempty"`
	Emotion        *domain.Emotion `json:"emotion,omitempty" validate:"omitempty,oneof=confident fomo fear neutral"`
	RelatedNoteIDs []string        `json:"related_note_ids,omitempty"`
}

// Annotate updates notes, emotion and related notes on any trade, open or
// closed. Prices and P&L are never touched.
func (l *Ledger) Annotate(id uuid.UUID, a Annotation) (*domain.Trade, error) {
	t, ok := l.trades[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTradeNotFound, id)
	}
	if err := l.validate.Struct(a); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	next := t.Clone()
	if a.Notes != nil {
		next.Notes = *a.Notes
	}
	if a.Emotion != nil {
		next.Emotion = *a.Emotion
	}
	if a.RelatedNoteIDs != nil {
		next.RelatedNoteIDs = append([]string(nil), a.RelatedNoteIDs...)
	}

	l.trades[id] = next
	return next.Clone(), nil
}

// Get returns a copy of the trade with the given id.
func (l *Ledger) Get(id uuid.UUID) (*domain.Trade, error) {
	t, ok := l.trades[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTradeNotFound, id)
	}
	return t.Clone(), nil
}

// List returns copies of all trades ordered by open time, oldest first.
func (l *Ledger) List() []*domain.Trade {
	out := make([]*domain.Trade, 0, len(l.trades))
	for _, t := range l.trades {
		out = append(out, t.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OpenedAt.Equal(out[j].OpenedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].OpenedAt.Before(out[j].OpenedAt)
	})
	return out
}

// Count returns the number of trades, open or closed.
func (l *Ledger) Count() int {
	return len(l.trades)
}
