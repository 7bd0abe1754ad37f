package journal

import (
	"maps"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/degen-journal/internal/achievement"
	"github.com/phrazzld/degen-journal/internal/domain"
	"github.com/phrazzld/degen-journal/internal/progress"
	"github.com/phrazzld/degen-journal/internal/skilltree"
	"github.com/phrazzld/degen-journal/internal/trade"
)

// ProgressView is the ledger state together with the derived level.
type ProgressView struct {
	domain.ProgressSnapshot
	Level progress.Level `json:"level"`
}

// Progress returns the current progress and level.
func (j *Journal) Progress() ProgressView {
	j.mu.Lock()
	defer j.mu.Unlock()
	return ProgressView{
		ProgressSnapshot: j.ledger.Snapshot(),
		Level:            j.ledger.Level(j.catalog.Levels),
	}
}

// Skills returns a copy of the skill tree.
func (j *Journal) Skills() []domain.SkillNode {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]domain.SkillNode, len(j.skills))
	for i, s := range j.skills {
		out[i] = s.Clone()
	}
	return out
}

// Skill returns one node of the skill tree.
func (j *Journal) Skill(id string) (domain.SkillNode, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return skilltree.Find(j.skills, id)
}

// Achievements reports progress towards every achievement in catalog order.
func (j *Journal) Achievements() []achievement.Progress {
	j.mu.Lock()
	defer j.mu.Unlock()
	snap := j.ledger.Snapshot()
	counters := achievement.CountersFrom(snap, j.trades.Count())
	return achievement.ProgressAll(j.catalog.Achievements, counters, snap.UnlockedAchievements)
}

// DueCards returns the cards due now, soonest first.
func (j *Journal) DueCards() []*domain.Flashcard {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.deck.Due(j.clock.Now())
}

// DueCount returns how many cards are due at t.
func (j *Journal) DueCount(t time.Time) int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.deck.Due(t))
}

// CardsByNote returns the cards extracted from a note.
func (j *Journal) CardsByNote(noteID string) []*domain.Flashcard {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.deck.ByNote(noteID)
}

// Card returns one flashcard.
func (j *Journal) Card(id uuid.UUID) (*domain.Flashcard, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.deck.Get(id)
}

// Trades lists every trade, oldest first.
func (j *Journal) Trades() []*domain.Trade {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.trades.List()
}

// Trade returns one trade.
func (j *Journal) Trade(id uuid.UUID) (*domain.Trade, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.trades.Get(id)
}

// TradeStats aggregates the trade ledger.
func (j *Journal) TradeStats() trade.Stats {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.trades.Stats()
}

// Levels returns the level thresholds the journal ranks against.
func (j *Journal) Levels() []domain.LevelThreshold {
	return append([]domain.LevelThreshold(nil), j.catalog.Levels...)
}

// NoteProgress returns the tracked progress of a note, if any was recorded.
func (j *Journal) NoteProgress(noteID string) (domain.NoteProgress, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	np, ok := j.notes[noteID]
	return np, ok
}

// NotesProgress returns a copy of every tracked note progress by note id.
func (j *Journal) NotesProgress() map[string]domain.NoteProgress {
	j.mu.Lock()
	defer j.mu.Unlock()
	return maps.Clone(j.notes)
}
