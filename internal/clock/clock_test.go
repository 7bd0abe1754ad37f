package clock

import (
	"testing"
	"time"

	"github.com/phrazzld/degen-journal/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestSystemClockUsesLocation(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC-5", -5*60*60)
	assert.Equal(t, loc, System(loc).Now().Location())
	assert.Equal(t, time.UTC, System(nil).Now().Location())
}

func TestFixedClock(t *testing.T) {
	t.Parallel()

	instant := time.Date(2024, 8, 1, 23, 59, 0, 0, time.UTC)
	c := Fixed(instant)

	assert.Equal(t, instant, c.Now())
	assert.Equal(t, domain.Day("2024-08-01"), Today(c))
}

func TestManualClock(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 3, 30, 22, 0, 0, 0, time.UTC)
	c := NewManual(start)

	c.Advance(3 * time.Hour)
	assert.Equal(t, domain.Day("2024-03-31"), Today(c))

	c.AdvanceDays(2)
	assert.Equal(t, domain.Day("2024-04-02"), Today(c))

	c.Set(start)
	assert.Equal(t, start, c.Now())
}
