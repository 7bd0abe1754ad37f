package domain

import "errors"

// SkillStatus represents where a skill node sits in the learning path.
type SkillStatus string

// Possible skill status values. Completed is terminal.
const (
	SkillStatusLocked     SkillStatus = "locked"
	SkillStatusAvailable  SkillStatus = "available"
	SkillStatusInProgress SkillStatus = "in_progress"
	SkillStatusCompleted  SkillStatus = "completed"
)

// Skill validation errors
var (
	ErrSkillIDEmpty       = errors.New("skill ID cannot be empty")
	ErrInvalidSkillStatus = errors.New("invalid skill status")
	ErrNegativeReward     = errors.New("xp reward cannot be negative")
)

// SkillNode is one node of the skill tree. Prerequisites reference other
// nodes by id and must form a DAG.
type SkillNode struct {
	ID            string      `json:"id" yaml:"id"`
	Title         string      `json:"title" yaml:"title"`
	Description   string      `json:"description,omitempty" yaml:"description"`
	Category      string      `json:"category,omitempty" yaml:"category"`
	NoteIDs       []string    `json:"note_ids,omitempty" yaml:"note_ids"`
	Prerequisites []string    `json:"prerequisites,omitempty" yaml:"prerequisites"`
	Status        SkillStatus `json:"status" yaml:"status"`
	XPReward      int         `json:"xp_reward" yaml:"xp_reward"`
}

// Validate checks the node's identity, status and reward.
func (s *SkillNode) Validate() error {
	if s.ID == "" {
		return ErrSkillIDEmpty
	}
	if !IsValidSkillStatus(s.Status) {
		return ErrInvalidSkillStatus
	}
	if s.XPReward < 0 {
		return ErrNegativeReward
	}
	return nil
}

// Clone returns a deep copy of the node.
func (s SkillNode) Clone() SkillNode {
	s.NoteIDs = append([]string(nil), s.NoteIDs...)
	s.Prerequisites = append([]string(nil), s.Prerequisites...)
	return s
}

// IsValidSkillStatus checks if the given status is a valid SkillStatus.
func IsValidSkillStatus(status SkillStatus) bool {
	switch status {
	case SkillStatusLocked, SkillStatusAvailable, SkillStatusInProgress, SkillStatusCompleted:
		return true
	default:
		return false
	}
}
