// Package skilltree derives skill node status from the set of completed
// skills. The prerequisite graph is expected to be acyclic; CheckAcyclic
// verifies that for a catalog but Reconcile never checks it.
package skilltree

import (
	"errors"
	"fmt"

	"github.com/phrazzld/degen-journal/internal/domain"
)

var (
	// ErrCyclicPrerequisites is returned when prerequisites form a cycle.
	ErrCyclicPrerequisites = fmt.Errorf("%w: cyclic skill prerequisites", domain.ErrValidation)

	// ErrUnknownPrerequisite is returned when a prerequisite names no node.
	ErrUnknownPrerequisite = fmt.Errorf("%w: unknown skill prerequisite", domain.ErrValidation)

	// ErrDuplicateSkill is returned when two nodes share an id.
	ErrDuplicateSkill = fmt.Errorf("%w: duplicate skill id", domain.ErrValidation)

	// ErrSkillNotFound is returned when a skill id is not in the tree.
	ErrSkillNotFound = fmt.Errorf("%w: skill", domain.ErrNotFound)

	// ErrSkillNotStartable is returned when starting a locked or completed skill.
	ErrSkillNotStartable = fmt.Errorf("%w: skill cannot be started", domain.ErrInvalidState)
)

// Reconcile returns a copy of skills with statuses updated against the
// completed set. Each node is decided only from its own status and the
// completed ids, so the result does not depend on node order and
// re-running it on its own output changes nothing.
func Reconcile(skills []domain.SkillNode, completed []string) []domain.SkillNode {
	done := make(map[string]struct{}, len(completed))
	for _, id := range completed {
		done[id] = struct{}{}
	}

	out := make([]domain.SkillNode, len(skills))
	for i, s := range skills {
		out[i] = reconcileNode(s.Clone(), done)
	}
	return out
}

func reconcileNode(s domain.SkillNode, done map[string]struct{}) domain.SkillNode {
	if s.Status == domain.SkillStatusCompleted {
		return s
	}
	if _, ok := done[s.ID]; ok {
		s.Status = domain.SkillStatusCompleted
		return s
	}
	if s.Status != domain.SkillStatusLocked {
		return s
	}
	for _, pre := range s.Prerequisites {
		if _, ok := done[pre]; !ok {
			return s
		}
	}
	s.Status = domain.SkillStatusAvailable
	return s
}

// Changed lists the ids whose status differs between before and after,
// matched by position. Both slices are expected to come from Reconcile.
func Changed(before, after []domain.SkillNode) []string {
	var ids []string
	for i := range after {
		if i >= len(before) || before[i].Status != after[i].Status {
			ids = append(ids, after[i].ID)
		}
	}
	return ids
}

// Start moves an available skill to in_progress. Starting a skill that is
// already in progress is a no-op.
func Start(skills []domain.SkillNode, id string) ([]domain.SkillNode, bool, error) {
	idx := indexOf(skills, id)
	if idx < 0 {
		return nil, false, fmt.Errorf("%w: %s", ErrSkillNotFound, id)
	}

	switch skills[idx].Status {
	case domain.SkillStatusInProgress:
		return skills, false, nil
	case domain.SkillStatusAvailable:
	default:
		return nil, false, fmt.Errorf("%w: %s is %s", ErrSkillNotStartable, id, skills[idx].Status)
	}

	out := make([]domain.SkillNode, len(skills))
	for i, s := range skills {
		out[i] = s.Clone()
	}
	out[idx].Status = domain.SkillStatusInProgress
	return out, true, nil
}

// Find returns the node with the given id.
func Find(skills []domain.SkillNode, id string) (domain.SkillNode, error) {
	idx := indexOf(skills, id)
	if idx < 0 {
		return domain.SkillNode{}, fmt.Errorf("%w: %s", ErrSkillNotFound, id)
	}
	return skills[idx].Clone(), nil
}

func indexOf(skills []domain.SkillNode, id string) int {
	for i, s := range skills {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// CheckAcyclic verifies that ids are unique, every prerequisite names a
// node, and the prerequisite graph has no cycle. The error for a cycle
// names one node on it.
func CheckAcyclic(skills []domain.SkillNode) error {
	byID := make(map[string]domain.SkillNode, len(skills))
	for _, s := range skills {
		if _, dup := byID[s.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateSkill, s.ID)
		}
		byID[s.ID] = s
	}
	for _, s := range skills {
		for _, pre := range s.Prerequisites {
			if _, ok := byID[pre]; !ok {
				return fmt.Errorf("%w: %s requires %s", ErrUnknownPrerequisite, s.ID, pre)
			}
		}
	}

	const (
		unvisited = iota
		visiting
		visited
	)
	state := make(map[string]int, len(skills))

	var visit func(id string) error
	visit = func(id string) error {
		switch state[id] {
		case visiting:
			return fmt.Errorf("%w: %s", ErrCyclicPrerequisites, id)
		case visited:
			return nil
		}
		state[id] = visiting
		for _, pre := range byID[id].Prerequisites {
			if err := visit(pre); err != nil {
				return err
			}
		}
		state[id] = visited
		return nil
	}

	for _, s := range skills {
		if err := visit(s.ID); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks every node and the graph shape.
func Validate(skills []domain.SkillNode) error {
	for i := range skills {
		if err := skills[i].Validate(); err != nil {
			return errors.Join(domain.ErrValidation, fmt.Errorf("skill %q: %w", skills[i].ID, err))
		}
	}
	return CheckAcyclic(skills)
}
