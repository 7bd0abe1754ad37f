// Package achievement evaluates achievement conditions against live
// progress counters. Evaluation is a pure read; unlocking and the XP grant
// that follows belong to the caller, which re-runs Evaluate until it
// returns nothing new.
package achievement

import (
	"fmt"
	"slices"

	"github.com/phrazzld/degen-journal/internal/domain"
)

// Counters are the live metrics achievement conditions compare against.
type Counters struct {
	NotesRead       int `json:"notes_read"`
	Streak          int `json:"streak"`
	Trades          int `json:"trades"`
	XP              int `json:"xp"`
	SkillsCompleted int `json:"skills_completed"`
}

// CountersFrom builds counters from a progress snapshot and the number of
// trades in the journal. Open and closed trades both count.
func CountersFrom(p domain.ProgressSnapshot, trades int) Counters {
	return Counters{
		NotesRead:       len(p.NotesRead),
		Streak:          p.Streak,
		Trades:          trades,
		XP:              p.XP,
		SkillsCompleted: len(p.CompletedSkills),
	}
}

// Value returns the counter a metric reads.
func (c Counters) Value(m domain.MetricKind) int {
	switch m {
	case domain.MetricNotesRead:
		return c.NotesRead
	case domain.MetricStreak:
		return c.Streak
	case domain.MetricTrades:
		return c.Trades
	case domain.MetricXP:
		return c.XP
	case domain.MetricSkillComplete:
		return c.SkillsCompleted
	default:
		return 0
	}
}

// Evaluate returns, in catalog order, the ids of achievements whose
// condition is met and that are not in unlocked.
func Evaluate(catalog []domain.Achievement, c Counters, unlocked []string) []string {
	var ids []string
	for _, a := range catalog {
		if slices.Contains(unlocked, a.ID) {
			continue
		}
		if c.Value(a.Condition.Metric) >= a.Condition.Target {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

// Progress is an achievement's state for display.
type Progress struct {
	domain.Achievement
	Current  int     `json:"current"`
	Target   int     `json:"target"`
	Percent  float64 `json:"percent"`
	Unlocked bool    `json:"unlocked"`
}

// ProgressOf reports how far the counters are towards a.
func ProgressOf(a domain.Achievement, c Counters, unlocked bool) Progress {
	current := c.Value(a.Condition.Metric)
	p := Progress{
		Achievement: a,
		Current:     current,
		Target:      a.Condition.Target,
		Unlocked:    unlocked,
	}
	if a.Condition.Target > 0 {
		p.Percent = min(float64(current)/float64(a.Condition.Target)*100, 100)
	}
	if unlocked {
		p.Percent = 100
	}
	return p
}

// ProgressAll reports progress for every achievement in catalog order.
func ProgressAll(catalog []domain.Achievement, c Counters, unlocked []string) []Progress {
	out := make([]Progress, 0, len(catalog))
	for _, a := range catalog {
		out = append(out, ProgressOf(a, c, slices.Contains(unlocked, a.ID)))
	}
	return out
}

// Find returns the catalog entry with the given id.
func Find(catalog []domain.Achievement, id string) (domain.Achievement, error) {
	for _, a := range catalog {
		if a.ID == id {
			return a, nil
		}
	}
	return domain.Achievement{}, fmt.Errorf("%w: achievement %s", domain.ErrNotFound, id)
}

// Validate checks every entry and rejects duplicate ids.
func Validate(catalog []domain.Achievement) error {
	seen := make(map[string]struct{}, len(catalog))
	for i := range catalog {
		a := &catalog[i]
		if err := a.Validate(); err != nil {
			return fmt.Errorf("%w: achievement %q: %w", domain.ErrValidation, a.ID, err)
		}
		if _, dup := seen[a.ID]; dup {
			return fmt.Errorf("%w: duplicate achievement id %q", domain.ErrValidation, a.ID)
		}
		seen[a.ID] = struct{}{}
	}
	return nil
}
