package store

import (
	"context"
	"fmt"
	"regexp"
	"slices"
)

// Snapshot names, one per journal component.
const (
	SnapshotProgress   = "progress"
	SnapshotSkills     = "skills"
	SnapshotFlashcards = "flashcards"
	SnapshotTrades     = "trades"
	SnapshotNotes      = "notes"
)

// SnapshotNames lists every snapshot the journal persists.
var SnapshotNames = []string{SnapshotProgress, SnapshotSkills, SnapshotFlashcards, SnapshotTrades, SnapshotNotes}

// SnapshotStore persists opaque snapshots by name.
type SnapshotStore interface {
	// Load returns the last saved snapshot, or ErrSnapshotNotFound if none
	// has been saved.
	Load(ctx context.Context, name string) ([]byte, error)

	// Save replaces the snapshot stored under name.
	Save(ctx context.Context, name string, data []byte) error
}

// BatchSaver is implemented by stores that can save several snapshots as
// one unit, so a crash never leaves a mix of old and new state.
type BatchSaver interface {
	SaveAll(ctx context.Context, snapshots map[string][]byte) error
}

var validName = regexp.MustCompile(`^[a-z][a-z0-9_-]{0,63}$`)

// ValidateName rejects names that are not safe as file names or keys.
func ValidateName(name string) error {
	if !validName.MatchString(name) {
		return NewStoreError(name, "validate", fmt.Sprintf("invalid snapshot name %q", name), ErrInvalidEntity)
	}
	return nil
}

// SaveAll saves every snapshot through s, using one batch when s supports it.
func SaveAll(ctx context.Context, s SnapshotStore, snapshots map[string][]byte) error {
	if b, ok := s.(BatchSaver); ok {
		return b.SaveAll(ctx, snapshots)
	}
	for _, name := range OrderedNames(snapshots) {
		if err := s.Save(ctx, name, snapshots[name]); err != nil {
			return err
		}
	}
	return nil
}

// OrderedNames returns the keys of snapshots with the journal's own names
// first, in SnapshotNames order, followed by any others sorted.
func OrderedNames(snapshots map[string][]byte) []string {
	names := make([]string, 0, len(snapshots))
	for _, n := range SnapshotNames {
		if _, ok := snapshots[n]; ok {
			names = append(names, n)
		}
	}

	var extra []string
	for n := range snapshots {
		if !slices.Contains(SnapshotNames, n) {
			extra = append(extra, n)
		}
	}
	slices.Sort(extra)
	return append(names, extra...)
}
