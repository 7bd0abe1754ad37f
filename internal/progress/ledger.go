package progress

import (
	"errors"
	"fmt"
	"slices"

	"github.com/phrazzld/degen-journal/internal/domain"
)

// NoteReadBonus is the XP granted the first time a note is read.
const NoteReadBonus = 10

// ErrNegativeXP is returned when an XP grant would decrease the total.
var ErrNegativeXP = fmt.Errorf("%w: xp amount cannot be negative", domain.ErrValidation)

// Ledger owns a progress snapshot. It is not safe for concurrent use; the
// journal serialises access.
type Ledger struct {
	state domain.ProgressSnapshot
}

// NewLedger returns a ledger with no progress.
func NewLedger() *Ledger {
	return &Ledger{state: domain.NewProgressSnapshot()}
}

// FromSnapshot restores a ledger from persisted state.
func FromSnapshot(s domain.ProgressSnapshot) (*Ledger, error) {
	if err := validateSnapshot(s); err != nil {
		return nil, err
	}
	l := &Ledger{state: s.Clone()}
	return l, nil
}

// Snapshot returns a deep copy of the ledger's state.
func (l *Ledger) Snapshot() domain.ProgressSnapshot {
	return l.state.Clone()
}

// XP returns the current experience total.
func (l *Ledger) XP() int {
	return l.state.XP
}

// Streak returns the current streak in days.
func (l *Ledger) Streak() int {
	return l.state.Streak
}

// AddXP increments the total. There is no upper bound.
func (l *Ledger) AddXP(amount int) error {
	if amount < 0 {
		return ErrNegativeXP
	}
	l.state.XP += amount
	return nil
}

// MarkNoteRead records noteID as read and grants bonus XP. It reports
// whether anything changed; a note already read is a no-op.
func (l *Ledger) MarkNoteRead(noteID string, bonus int) bool {
	if l.HasReadNote(noteID) {
		return false
	}
	l.state.NotesRead = append(l.state.NotesRead, noteID)
	l.state.XP += max(bonus, 0)
	return true
}

// CompleteSkill records skillID as completed and grants its reward once.
func (l *Ledger) CompleteSkill(skillID string, reward int) bool {
	if l.HasCompletedSkill(skillID) {
		return false
	}
	l.state.CompletedSkills = append(l.state.CompletedSkills, skillID)
	l.state.XP += max(reward, 0)
	return true
}

// UnlockAchievement records achievementID as unlocked and grants its reward once.
func (l *Ledger) UnlockAchievement(achievementID string, reward int) bool {
	if l.HasUnlocked(achievementID) {
		return false
	}
	l.state.UnlockedAchievements = append(l.state.UnlockedAchievements, achievementID)
	l.state.XP += max(reward, 0)
	return true
}

// UpdateStreak registers activity on today. A second call on the same day
// is a no-op. Activity on the day after the last active day extends the
// streak; any other gap restarts it at 1. Days are compared as calendar
// dates, never as elapsed hours.
func (l *Ledger) UpdateStreak(today domain.Day) (bool, error) {
	if today.IsZero() {
		return false, fmt.Errorf("%w: today is required", domain.ErrValidation)
	}
	if l.state.LastActiveDate == today {
		return false, nil
	}

	yesterday, err := today.Previous()
	if err != nil {
		return false, err
	}

	if l.state.LastActiveDate == yesterday {
		l.state.Streak++
	} else {
		l.state.Streak = 1
	}
	l.state.LastActiveDate = today
	return true, nil
}

// HasReadNote reports whether noteID is in the read set.
func (l *Ledger) HasReadNote(noteID string) bool {
	return slices.Contains(l.state.NotesRead, noteID)
}

// HasCompletedSkill reports whether skillID is in the completed set.
func (l *Ledger) HasCompletedSkill(skillID string) bool {
	return slices.Contains(l.state.CompletedSkills, skillID)
}

// HasUnlocked reports whether achievementID is in the unlocked set.
func (l *Ledger) HasUnlocked(achievementID string) bool {
	return slices.Contains(l.state.UnlockedAchievements, achievementID)
}

var errDuplicateID = errors.New("duplicate id in set")

func validateSnapshot(s domain.ProgressSnapshot) error {
	if s.XP < 0 {
		return fmt.Errorf("%w: xp cannot be negative", domain.ErrValidation)
	}
	if s.Streak < 0 {
		return fmt.Errorf("%w: streak cannot be negative", domain.ErrValidation)
	}
	if !s.LastActiveDate.IsZero() {
		if _, err := domain.ParseDay(string(s.LastActiveDate)); err != nil {
			return err
		}
	}
	for name, set := range map[string][]string{
		"notes_read":            s.NotesRead,
		"completed_skills":      s.CompletedSkills,
		"unlocked_achievements": s.UnlockedAchievements,
	} {
		seen := make(map[string]struct{}, len(set))
		for _, id := range set {
			if _, dup := seen[id]; dup {
				return fmt.Errorf("%w: %w: %s contains %q twice", domain.ErrValidation, errDuplicateID, name, id)
			}
			seen[id] = struct{}{}
		}
	}
	return nil
}
