package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/phrazzld/degen-journal/internal/domain"
	"github.com/phrazzld/degen-journal/internal/flashcard"
	"github.com/phrazzld/degen-journal/internal/platform/logger"
	"github.com/phrazzld/degen-journal/internal/progress"
	"github.com/phrazzld/degen-journal/internal/store"
	"github.com/phrazzld/degen-journal/internal/trade"
)

// Snapshot is the full journal state, one part per store.
type Snapshot struct {
	Progress   domain.ProgressSnapshot        `json:"progress"`
	Skills     []domain.SkillNode             `json:"skills"`
	Flashcards []*domain.Flashcard            `json:"flashcards"`
	Trades     []*domain.Trade                `json:"trades"`
	Notes      map[string]domain.NoteProgress `json:"notes"`
}

// Export returns a deep copy of the state and the version it was taken at.
func (j *Journal) Export() (Snapshot, uint64) {
	j.mu.Lock()
	defer j.mu.Unlock()

	skills := make([]domain.SkillNode, len(j.skills))
	for i, s := range j.skills {
		skills[i] = s.Clone()
	}
	return Snapshot{
		Progress:   j.ledger.Snapshot(),
		Skills:     skills,
		Flashcards: j.deck.All(),
		Trades:     j.trades.List(),
		Notes:      maps.Clone(j.notes),
	}, j.version
}

// Encode serialises each part under its snapshot name.
func (s Snapshot) Encode() (map[string][]byte, error) {
	parts := map[string]any{
		store.SnapshotProgress:   s.Progress,
		store.SnapshotSkills:     s.Skills,
		store.SnapshotFlashcards: s.Flashcards,
		store.SnapshotTrades:     s.Trades,
		store.SnapshotNotes:      s.Notes,
	}

	out := make(map[string][]byte, len(parts))
	for name, v := range parts {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode %s snapshot: %w", name, err)
		}
		out[name] = data
	}
	return out, nil
}

// Restore replaces the journal state with what st holds. Parts that were
// never saved keep their initial state. Persisted skill statuses are laid
// over the catalog by id, so catalog edits take effect and unknown ids are
// dropped. Derived state is settled afterwards without emitting events; if
// settling changed anything the version is bumped past the loaded one so a
// Persister created afterwards writes it back.
func (j *Journal) Restore(ctx context.Context, st store.SnapshotStore) error {
	log := logger.FromContextOrDefault(ctx, j.logger)

	var (
		snap   = domain.NewProgressSnapshot()
		skills []domain.SkillNode
		cards  []*domain.Flashcard
		trades []*domain.Trade
		notes  map[string]domain.NoteProgress
	)

	load := func(name string, v any) (bool, error) {
		data, err := st.Load(ctx, name)
		if errors.Is(err, store.ErrSnapshotNotFound) {
			log.Info("no saved snapshot, starting fresh", slog.String("snapshot", name))
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("load %s snapshot: %w", name, err)
		}
		if err := json.Unmarshal(data, v); err != nil {
			return false, fmt.Errorf("%w: decode %s snapshot: %w", domain.ErrValidation, name, err)
		}
		return true, nil
	}

	if _, err := load(store.SnapshotProgress, &snap); err != nil {
		return err
	}
	haveSkills, err := load(store.SnapshotSkills, &skills)
	if err != nil {
		return err
	}
	if _, err := load(store.SnapshotFlashcards, &cards); err != nil {
		return err
	}
	if _, err := load(store.SnapshotTrades, &trades); err != nil {
		return err
	}
	if _, err := load(store.SnapshotNotes, &notes); err != nil {
		return err
	}
	for id, np := range notes {
		if id == "" || np.Progress < 0 || np.Progress > 100 {
			return fmt.Errorf("%w: restore notes: %w: %q", domain.ErrValidation, domain.ErrInvalidProgress, id)
		}
	}
	if notes == nil {
		notes = make(map[string]domain.NoteProgress)
	}

	ledger, err := progress.FromSnapshot(snap)
	if err != nil {
		return fmt.Errorf("restore progress: %w", err)
	}
	deck, err := flashcard.FromCards(j.scheduler, cards)
	if err != nil {
		return fmt.Errorf("restore flashcards: %w", err)
	}
	tradeLedger, err := trade.FromTrades(trades)
	if err != nil {
		return fmt.Errorf("restore trades: %w", err)
	}

	tree := j.catalog.SkillsCopy()
	if haveSkills {
		tree = overlayStatuses(tree, skills, snap.CompletedSkills)
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	j.ledger = ledger
	j.deck = deck
	j.trades = tradeLedger
	j.notes = notes
	j.skills = tree

	tx := &txn{now: j.clock.Now(), startXP: ledger.XP()}
	j.settle(tx)
	j.loaded = j.version
	if len(tx.events) > 0 {
		j.version++
		log.Info("restore settled derived state",
			slog.Int("xp_gained", j.ledger.XP()-tx.startXP),
			slog.Any("achievements_unlocked", tx.unlocked),
			slog.Any("skills_changed", tx.skillsChanged))
	}

	log.Info("journal restored",
		slog.Int("xp", j.ledger.XP()),
		slog.Int("flashcards", j.deck.Len()),
		slog.Int("trades", j.trades.Count()),
		slog.Uint64("version", j.version))
	return nil
}

// loadedVersion returns the version whose state the store holds as of the
// last Restore.
func (j *Journal) loadedVersion() uint64 {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.loaded
}

// overlayStatuses applies saved statuses to the catalog tree. A completed
// status only sticks when the ledger recorded the completion, so the reward
// and the skill_complete counter stay in step with the tree.
func overlayStatuses(tree, saved []domain.SkillNode, completed []string) []domain.SkillNode {
	status := make(map[string]domain.SkillStatus, len(saved))
	for _, s := range saved {
		if !domain.IsValidSkillStatus(s.Status) {
			continue
		}
		if s.Status == domain.SkillStatusCompleted && !slices.Contains(completed, s.ID) {
			continue
		}
		status[s.ID] = s.Status
	}
	for i := range tree {
		if st, ok := status[tree[i].ID]; ok {
			tree[i].Status = st
		}
	}
	return tree
}
