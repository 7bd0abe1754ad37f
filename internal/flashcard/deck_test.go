package flashcard

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/degen-journal/internal/domain"
	"github.com/phrazzld/degen-journal/internal/domain/srs"
)

var now = time.Date(2024, 4, 2, 8, 30, 0, 0, time.UTC)

func TestAdd_Dedupes(t *testing.T) {
	t.Parallel()

	d := NewDeck(nil)
	first, created, err := d.Add("solana-basics", "What is a PDA?", "Program derived address", now)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, domain.DefaultEaseFactor, first.EaseFactor)
	assert.True(t, first.IsDue(now))

	again, created, err := d.Add("solana-basics", "  What is a PDA?  ", "different answer", now.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, "Program derived address", again.Answer)

	_, created, err = d.Add("evm-basics", "What is a PDA?", "not on evm", now)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 2, d.Len())
}

func TestAdd_Invalid(t *testing.T) {
	t.Parallel()

	d := NewDeck(nil)
	_, _, err := d.Add("", "q", "a", now)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, _, err = d.Add("n", "   ", "a", now)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, d.Len())
}

func TestReview(t *testing.T) {
	t.Parallel()

	d := NewDeck(srs.NewDefaultService())
	c, _, err := d.Add("n", "q", "a", now)
	require.NoError(t, err)

	got, err := d.Review(c.ID, 5, now)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Repetitions)
	assert.Equal(t, 1, got.Interval)
	assert.InDelta(t, 2.6, got.EaseFactor, 1e-9)
	assert.Equal(t, now.AddDate(0, 0, 1), got.NextReview)

	stored, err := d.Get(c.ID)
	require.NoError(t, err)
	assert.Equal(t, got, stored)

	_, err = d.Review(c.ID, 9, now)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = d.Review(uuid.New(), 3, now)
	assert.ErrorIs(t, err, ErrCardNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDue_SortedByNextReview(t *testing.T) {
	t.Parallel()

	d := NewDeck(nil)
	a, _, _ := d.Add("n", "a", "a", now.Add(2*time.Hour))
	b, _, _ := d.Add("n", "b", "b", now)
	c, _, _ := d.Add("n", "c", "c", now)
	_, err := d.Review(c.ID, 4, now)
	require.NoError(t, err)

	due := d.Due(now.Add(3 * time.Hour))
	require.Len(t, due, 2)
	assert.Equal(t, b.ID, due[0].ID)
	assert.Equal(t, a.ID, due[1].ID)

	assert.Len(t, d.Due(now.AddDate(0, 0, 2)), 3)
}

func TestByNoteAndAll(t *testing.T) {
	t.Parallel()

	d := NewDeck(nil)
	_, _, _ = d.Add("x", "1", "a", now)
	_, _, _ = d.Add("y", "2", "a", now)
	_, _, _ = d.Add("x", "3", "a", now)

	byX := d.ByNote("x")
	require.Len(t, byX, 2)
	assert.Equal(t, "1", byX[0].Question)
	assert.Equal(t, "3", byX[1].Question)
	assert.Empty(t, d.ByNote("z"))
	assert.Len(t, d.All(), 3)
}

func TestFromCards(t *testing.T) {
	t.Parallel()

	src := NewDeck(nil)
	_, _, _ = src.Add("x", "1", "a", now)
	_, _, _ = src.Add("x", "2", "a", now)

	restored, err := FromCards(nil, src.All())
	require.NoError(t, err)
	assert.Equal(t, src.All(), restored.All())

	_, created, err := restored.Add("x", "1", "a", now)
	require.NoError(t, err)
	assert.False(t, created)

	dup := src.All()
	dup[1].Question = dup[0].Question
	_, err = FromCards(nil, dup)
	assert.ErrorIs(t, err, domain.ErrValidation)

	bad := src.All()
	bad[0].EaseFactor = 1.0
	_, err = FromCards(nil, bad)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
