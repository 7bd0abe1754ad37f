// Package clock supplies the current time and calendar-day boundaries to the
// journal. Everything time dependent goes through a Clock so tests can pin or
// advance time.
package clock

import (
	"sync"
	"time"

	"github.com/phrazzld/degen-journal/internal/domain"
)

// Clock returns the current time. Implementations must return times in the
// location whose calendar days the journal counts streaks in.
type Clock interface {
	Now() time.Time
}

// Today returns the calendar day of c.Now().
func Today(c Clock) domain.Day {
	return domain.DayOf(c.Now())
}

// systemClock reads the wall clock in a fixed location.
type systemClock struct {
	loc *time.Location
}

// System returns a wall clock reporting times in loc. A nil loc means UTC.
func System(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return systemClock{loc: loc}
}

func (c systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Fixed is a clock frozen at a single instant.
type Fixed time.Time

// Now implements Clock.
func (f Fixed) Now() time.Time {
	return time.Time(f)
}

// Manual is a clock that only moves when told to. It is safe for concurrent use.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

// NewManual returns a Manual clock starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now implements Clock.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward by d.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// AdvanceDays moves the clock forward by n calendar days, keeping the wall
// clock time of day.
func (m *Manual) AdvanceDays(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.AddDate(0, 0, n)
}

// Set moves the clock to t.
func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}
