package domain

import "errors"

// MetricKind names the live counter an achievement condition compares against.
type MetricKind string

// Supported achievement metrics.
const (
	MetricNotesRead     MetricKind = "notes_read"
	MetricStreak        MetricKind = "streak"
	MetricTrades        MetricKind = "trades"
	MetricXP            MetricKind = "xp"
	MetricSkillComplete MetricKind = "skill_complete"
)

// Achievement validation errors
var (
	ErrAchievementIDEmpty = errors.New("achievement ID cannot be empty")
	ErrInvalidMetric      = errors.New("invalid achievement metric")
	ErrInvalidTarget      = errors.New("achievement target must be positive")
)

// Condition is the threshold an achievement unlocks at.
type Condition struct {
	Metric MetricKind `json:"metric" yaml:"metric"`
	Target int        `json:"target" yaml:"target"`
}

// Achievement is a catalog entry granting XPReward exactly once on unlock.
type Achievement struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description,omitempty" yaml:"description"`
	Icon        string    `json:"icon,omitempty" yaml:"icon"`
	Condition   Condition `json:"condition" yaml:"condition"`
	XPReward    int       `json:"xp_reward" yaml:"xp_reward"`
}

// Validate checks the achievement's identity, condition and reward.
func (a *Achievement) Validate() error {
	if a.ID == "" {
		return ErrAchievementIDEmpty
	}
	if !IsValidMetric(a.Condition.Metric) {
		return ErrInvalidMetric
	}
	if a.Condition.Target <= 0 {
		return ErrInvalidTarget
	}
	if a.XPReward < 0 {
		return ErrNegativeReward
	}
	return nil
}

// IsValidMetric checks if the given metric is a supported MetricKind.
func IsValidMetric(m MetricKind) bool {
	switch m {
	case MetricNotesRead, MetricStreak, MetricTrades, MetricXP, MetricSkillComplete:
		return true
	default:
		return false
	}
}
