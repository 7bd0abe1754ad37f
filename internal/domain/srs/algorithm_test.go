package srs

import (
	"math/rand"
	"testing"
	"time"

	"github.com/phrazzld/degen-journal/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateNewEaseFactor(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()

	testCases := []struct {
		name     string
		current  float64
		quality  int
		expected float64
	}{
		{name: "perfect recall adds 0.1", current: 2.5, quality: 5, expected: 2.6},
		{name: "hesitant recall keeps factor", current: 2.5, quality: 4, expected: 2.5},
		{name: "difficult recall subtracts 0.14", current: 2.5, quality: 3, expected: 2.36},
		{name: "familiar miss subtracts 0.32", current: 2.5, quality: 2, expected: 2.18},
		{name: "miss subtracts 0.54", current: 2.5, quality: 1, expected: 1.96},
		{name: "blackout subtracts 0.8", current: 2.7, quality: 0, expected: 1.9},
		{name: "floor is enforced", current: 1.4, quality: 0, expected: 1.3},
		{name: "no ceiling", current: 3.5, quality: 5, expected: 3.6},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			newEF := calculateNewEaseFactor(tc.current, tc.quality, params)
			assert.InDelta(t, tc.expected, newEF, 1e-9)
		})
	}
}

func TestCalculateNewInterval(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()

	testCases := []struct {
		name             string
		current          int
		repetitions      int
		ef               float64
		quality          int
		expectedInterval int
		expectedReps     int
	}{
		{name: "first success", current: 0, repetitions: 0, ef: 2.5, quality: 4, expectedInterval: 1, expectedReps: 1},
		{name: "second success", current: 1, repetitions: 1, ef: 2.5, quality: 3, expectedInterval: 6, expectedReps: 2},
		{name: "third success multiplies", current: 6, repetitions: 2, ef: 2.5, quality: 5, expectedInterval: 15, expectedReps: 3},
		{name: "rounds half up", current: 5, repetitions: 3, ef: 2.5, quality: 5, expectedInterval: 13, expectedReps: 4},
		{name: "rounds down below half", current: 6, repetitions: 2, ef: 2.36, quality: 3, expectedInterval: 14, expectedReps: 3},
		{name: "failure resets", current: 40, repetitions: 6, ef: 2.8, quality: 2, expectedInterval: 1, expectedReps: 0},
		{name: "blackout resets", current: 6, repetitions: 2, ef: 1.3, quality: 0, expectedInterval: 1, expectedReps: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			interval, reps := calculateNewInterval(tc.current, tc.repetitions, tc.ef, tc.quality, params)
			assert.Equal(t, tc.expectedInterval, interval)
			assert.Equal(t, tc.expectedReps, reps)
		})
	}
}

func TestCalculateNextReviewDate(t *testing.T) {
	t.Parallel() // Enable parallel execution
	now := time.Date(2024, 1, 31, 22, 15, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 2, 1, 22, 15, 0, 0, time.UTC), calculateNextReviewDate(1, now))
	assert.Equal(t, time.Date(2024, 2, 6, 22, 15, 0, 0, time.UTC), calculateNextReviewDate(6, now))
}

func TestCalculateNextCardDoesNotMutateInput(t *testing.T) {
	t.Parallel() // Enable parallel execution
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	card, err := domain.NewFlashcard("note", "q", "a", now)
	require.NoError(t, err)
	original := *card

	next := calculateNextCard(card, 5, now, NewDefaultParams())

	assert.Equal(t, original, *card)
	assert.Equal(t, card.ID, next.ID)
	require.NotNil(t, next.LastReview)
	assert.Equal(t, now, *next.LastReview)
}

// TestPassingGradesGrowMonotonically checks the growth law over random
// histories: every pass increases repetitions by one, never shrinks the
// interval, and the ease factor never drops below the floor.
func TestPassingGradesGrowMonotonically(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()
	rng := rand.New(rand.NewSource(42))
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for run := 0; run < 200; run++ {
		card, err := domain.NewFlashcard("note", "q", "a", now)
		require.NoError(t, err)

		for step := 0; step < 15; step++ {
			quality := rng.Intn(6)
			next := calculateNextCard(card, quality, now, params)

			if quality >= params.PassThreshold {
				assert.Equal(t, card.Repetitions+1, next.Repetitions)
				assert.GreaterOrEqual(t, next.Interval, card.Interval)
			} else {
				assert.Zero(t, next.Repetitions)
				assert.Equal(t, 1, next.Interval)
			}
			assert.GreaterOrEqual(t, next.EaseFactor, params.MinEaseFactor)

			card = next
			now = next.NextReview
		}
	}
}
