package journal

import (
	"context"
	"log/slog"
	"sync"

	"github.com/phrazzld/degen-journal/internal/events"
	"github.com/phrazzld/degen-journal/internal/store"
)

// Persister saves the journal after every change. Saves are serialised and
// versioned: an event whose version is already covered by a save is
// dropped, so an older snapshot never overwrites a newer one.
type Persister struct {
	mu      sync.Mutex
	journal *Journal
	store   store.SnapshotStore
	saved   uint64
	logger  *slog.Logger
}

var _ events.EventHandler = (*Persister)(nil)

// NewPersister creates a persister writing j to st. It assumes st holds the
// state j was last restored from, so anything applied since, including
// derived state settled by Restore, is written by the next save.
func NewPersister(j *Journal, st store.SnapshotStore, logger *slog.Logger) *Persister {
	if logger == nil {
		logger = slog.Default()
	}
	return &Persister{
		journal: j,
		store:   st,
		saved:   j.loadedVersion(),
		logger:  logger.With(slog.String("component", "persister")),
	}
}

// HandleEvent implements events.EventHandler.
func (p *Persister) HandleEvent(ctx context.Context, event *events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if event.Version <= p.saved {
		return nil
	}
	return p.saveLocked(ctx)
}

// Flush saves the current state if it is newer than the last save.
func (p *Persister) Flush(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.saveLocked(ctx)
}

// Saved returns the last version written.
func (p *Persister) Saved() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.saved
}

func (p *Persister) saveLocked(ctx context.Context) error {
	snap, version := p.journal.Export()
	if version <= p.saved {
		return nil
	}

	parts, err := snap.Encode()
	if err != nil {
		return err
	}
	if err := store.SaveAll(ctx, p.store, parts); err != nil {
		p.logger.Error("failed to save journal", slog.Uint64("version", version), slog.String("error", err.Error()))
		return err
	}

	p.saved = version
	p.logger.Debug("journal saved", slog.Uint64("version", version))
	return nil
}
