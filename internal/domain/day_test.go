package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayOf(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+8", 8*60*60)
	// 2024-03-09 20:30 UTC is already March 10th in UTC+8
	instant := time.Date(2024, 3, 9, 20, 30, 0, 0, time.UTC)

	assert.Equal(t, Day("2024-03-09"), DayOf(instant))
	assert.Equal(t, Day("2024-03-10"), DayOf(instant.In(loc)))
}

func TestDayPrevious(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		day      Day
		expected Day
	}{
		{name: "mid month", day: "2024-05-15", expected: "2024-05-14"},
		{name: "month boundary", day: "2024-03-01", expected: "2024-02-29"},
		{name: "year boundary", day: "2025-01-01", expected: "2024-12-31"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			prev, err := tc.day.Previous()
			require.NoError(t, err)
			assert.Equal(t, tc.expected, prev)
		})
	}

	_, err := Day("yesterday").Previous()
	assert.ErrorIs(t, err, ErrValidation)
}

func TestParseDay(t *testing.T) {
	t.Parallel()

	d, err := ParseDay("2024-07-04")
	require.NoError(t, err)
	assert.Equal(t, Day("2024-07-04"), d)
	assert.False(t, d.IsZero())

	_, err = ParseDay("07/04/2024")
	assert.ErrorIs(t, err, ErrValidation)
	assert.True(t, Day("").IsZero())
}
