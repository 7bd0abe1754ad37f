package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"generic error", errors.New("some error"), false},
		{"ErrNotFound", ErrNotFound, true},
		{"ErrSnapshotNotFound", ErrSnapshotNotFound, true},
		{"wrapped in StoreError", NewStoreError("trades", "load", "missing", ErrSnapshotNotFound), true},
		{"wrapped with fmt", fmt.Errorf("restore: %w", ErrSnapshotNotFound), true},
		{"invalid entity", ErrInvalidEntity, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, IsNotFoundError(tt.err))
		})
	}
}

func TestStoreError(t *testing.T) {
	t.Parallel()

	base := errors.New("disk full")
	err := NewStoreError("progress", "save", "write failed", base)
	assert.Equal(t, "save operation on progress failed: write failed: disk full", err.Error())
	assert.ErrorIs(t, err, base)

	var se *StoreError
	assert.True(t, errors.As(fmt.Errorf("outer: %w", err), &se))
	assert.Equal(t, "progress", se.Entity)

	bare := NewStoreError("skills", "load", "no snapshot saved", nil)
	assert.Equal(t, "load operation on skills failed: no snapshot saved", bare.Error())
}
