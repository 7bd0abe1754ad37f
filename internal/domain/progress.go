package domain

// ProgressSnapshot is the persisted state of the progress ledger. The id sets
// are append-only and keep insertion order.
type ProgressSnapshot struct {
	XP                   int      `json:"xp"`
	Streak               int      `json:"streak"`
	LastActiveDate       Day      `json:"last_active_date,omitempty"`
	NotesRead            []string `json:"notes_read"`
	CompletedSkills      []string `json:"completed_skills"`
	UnlockedAchievements []string `json:"unlocked_achievements"`
}

// NewProgressSnapshot returns an empty snapshot with non-nil sets.
func NewProgressSnapshot() ProgressSnapshot {
	return ProgressSnapshot{
		NotesRead:            []string{},
		CompletedSkills:      []string{},
		UnlockedAchievements: []string{},
	}
}

// Clone returns a deep copy of the snapshot.
func (p ProgressSnapshot) Clone() ProgressSnapshot {
	p.NotesRead = append([]string{}, p.NotesRead...)
	p.CompletedSkills = append([]string{}, p.CompletedSkills...)
	p.UnlockedAchievements = append([]string{}, p.UnlockedAchievements...)
	return p
}

// LevelThreshold is one XP bracket [MinXP, MaxXP). A MaxXP of Unbounded marks
// the top bracket.
type LevelThreshold struct {
	Level int    `json:"level" yaml:"level"`
	Title string `json:"title" yaml:"title"`
	MinXP int    `json:"min_xp" yaml:"min_xp"`
	MaxXP int    `json:"max_xp" yaml:"max_xp"`
}

// Unbounded is the MaxXP of the top level bracket.
const Unbounded = -1

// IsUnbounded reports whether the bracket has no upper limit.
func (l LevelThreshold) IsUnbounded() bool {
	return l.MaxXP == Unbounded
}

// Contains reports whether xp falls inside [MinXP, MaxXP).
func (l LevelThreshold) Contains(xp int) bool {
	if xp < l.MinXP {
		return false
	}
	return l.IsUnbounded() || xp < l.MaxXP
}
