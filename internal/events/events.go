package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the journal.
const (
	TypeStreakUpdated       = "streak.updated"
	TypeNoteRead            = "note.read"
	TypeNoteProgress        = "note.progress"
	TypeXPGranted           = "xp.granted"
	TypeSkillStarted        = "skill.started"
	TypeSkillCompleted      = "skill.completed"
	TypeSkillUnlocked       = "skill.unlocked"
	TypeAchievementUnlocked = "achievement.unlocked"
	TypeCardAdded           = "card.added"
	TypeCardReviewed        = "card.reviewed"
	TypeTradeOpened         = "trade.opened"
	TypeTradeClosed         = "trade.closed"
	TypeTradeAnnotated      = "trade.annotated"
)

// Event records one state change in the journal.
type Event struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the Type* constants
	Type string `json:"type"`

	// Payload contains the event-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// Version is the journal state version the event was produced at.
	// Handlers that persist state use it to drop stale work.
	Version uint64 `json:"version"`

	// CreatedAt is the journal clock time of the change
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *Event) UnmarshalPayload(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// NewEvent creates an event with the specified type and payload.
func NewEvent(eventType string, payload any, version uint64, at time.Time) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		Version:   version,
		CreatedAt: at,
	}, nil
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *Event) error
}

// HandlerFunc adapts a function to EventHandler.
type HandlerFunc func(ctx context.Context, event *Event) error

// HandleEvent implements EventHandler.
func (f HandlerFunc) HandleEvent(ctx context.Context, event *Event) error {
	return f(ctx, event)
}

// EventEmitter defines an interface for components that can emit events.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *Event) error
}
