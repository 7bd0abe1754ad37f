package journal

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/phrazzld/degen-journal/internal/catalog"
	"github.com/phrazzld/degen-journal/internal/clock"
	"github.com/phrazzld/degen-journal/internal/domain"
	"github.com/phrazzld/degen-journal/internal/domain/srs"
	"github.com/phrazzld/degen-journal/internal/events"
	"github.com/phrazzld/degen-journal/internal/flashcard"
	"github.com/phrazzld/degen-journal/internal/platform/logger"
	"github.com/phrazzld/degen-journal/internal/progress"
	"github.com/phrazzld/degen-journal/internal/skilltree"
	"github.com/phrazzld/degen-journal/internal/trade"
)

// Rewards sets the XP granted for learning activity. Skill and achievement
// rewards come from the catalog.
type Rewards struct {
	NoteRead   int
	ReviewPass int
	ReviewFail int
}

// DefaultRewards returns the standard rewards: 10 XP for a first read, 5
// for a passed review and 2 for a failed one.
func DefaultRewards() Rewards {
	return Rewards{NoteRead: progress.NoteReadBonus, ReviewPass: 5, ReviewFail: 2}
}

// Journal holds every store and serialises commands against them.
type Journal struct {
	mu      sync.Mutex
	version uint64
	// loaded is the version whose state matches the store last restored from.
	loaded uint64

	catalog *catalog.Catalog
	ledger  *progress.Ledger
	skills  []domain.SkillNode
	deck    *flashcard.Deck
	trades  *trade.Ledger
	notes   map[string]domain.NoteProgress

	clock     clock.Clock
	scheduler srs.Service
	rewards   Rewards
	emitter   events.EventEmitter
	logger    *slog.Logger
}

// Option configures a Journal.
type Option func(*Journal)

// WithEmitter sends events to e after every command.
func WithEmitter(e events.EventEmitter) Option {
	return func(j *Journal) { j.emitter = e }
}

// WithRewards overrides DefaultRewards.
func WithRewards(r Rewards) Option {
	return func(j *Journal) { j.rewards = r }
}

// WithScheduler grades cards with s instead of the default SM-2 service.
func WithScheduler(s srs.Service) Option {
	return func(j *Journal) { j.scheduler = s }
}

// New creates an empty journal over cat. The catalog is validated.
func New(cat *catalog.Catalog, clk clock.Clock, log *slog.Logger, opts ...Option) (*Journal, error) {
	if cat == nil {
		return nil, errors.New("catalog cannot be nil")
	}
	if clk == nil {
		return nil, errors.New("clock cannot be nil")
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}

	j := &Journal{
		catalog:   cat,
		ledger:    progress.NewLedger(),
		trades:    trade.NewLedger(),
		notes:     make(map[string]domain.NoteProgress),
		clock:     clk,
		scheduler: srs.NewDefaultService(),
		rewards:   DefaultRewards(),
		logger:    log.With(slog.String("component", "journal")),
	}
	for _, opt := range opts {
		opt(j)
	}
	j.deck = flashcard.NewDeck(j.scheduler)
	j.skills = skilltree.Reconcile(cat.SkillsCopy(), nil)
	return j, nil
}

// Version returns the number of state changes applied so far.
func (j *Journal) Version() uint64 {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.version
}

// txn collects what one command changed.
type txn struct {
	now           time.Time
	startXP       int
	events        []pendingEvent
	unlocked      []string
	skillsChanged []string
}

type pendingEvent struct {
	eventType string
	payload   any
}

func (tx *txn) emit(eventType string, payload any) {
	tx.events = append(tx.events, pendingEvent{eventType: eventType, payload: payload})
}

// Outcome summarises the effect of a command, cascades included.
type Outcome struct {
	Changed              bool     `json:"changed"`
	XPGained             int      `json:"xp_gained"`
	AchievementsUnlocked []string `json:"achievements_unlocked,omitempty"`
	SkillsChanged        []string `json:"skills_changed,omitempty"`
	Version              uint64   `json:"version"`
}

// run executes fn under the lock, settles derived state, bumps the version
// when anything changed and emits the collected events once unlocked.
func (j *Journal) run(ctx context.Context, command string, fn func(tx *txn) error) (Outcome, error) {
	log := logger.FromContextOrDefault(ctx, j.logger)

	j.mu.Lock()
	tx := &txn{now: j.clock.Now(), startXP: j.ledger.XP()}
	if err := fn(tx); err != nil {
		j.mu.Unlock()
		log.Debug("command rejected", slog.String("command", command), slog.String("error", err.Error()))
		return Outcome{}, err
	}

	j.settle(tx)

	out := Outcome{
		Changed:              len(tx.events) > 0,
		XPGained:             j.ledger.XP() - tx.startXP,
		AchievementsUnlocked: tx.unlocked,
		SkillsChanged:        tx.skillsChanged,
	}
	if out.Changed {
		j.version++
	}
	out.Version = j.version
	j.mu.Unlock()

	if out.Changed {
		log.Debug("command applied",
			slog.String("command", command),
			slog.Int("xp_gained", out.XPGained),
			slog.Int("events", len(tx.events)),
			slog.Uint64("version", out.Version))
	}
	j.publish(ctx, tx, out.Version)
	return out, nil
}

func (j *Journal) publish(ctx context.Context, tx *txn, version uint64) {
	if j.emitter == nil {
		return
	}
	log := logger.FromContextOrDefault(ctx, j.logger)
	for _, pe := range tx.events {
		ev, err := events.NewEvent(pe.eventType, pe.payload, version, tx.now)
		if err != nil {
			log.Error("failed to build event", slog.String("event_type", pe.eventType), slog.String("error", err.Error()))
			continue
		}
		if err := j.emitter.EmitEvent(ctx, ev); err != nil {
			log.Error("event handler failed",
				slog.String("event_type", pe.eventType),
				slog.String("error", err.Error()))
		}
	}
}
