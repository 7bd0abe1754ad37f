package domain

import (
	"fmt"
	"time"
)

// DayLayout is the textual form of a Day.
const DayLayout = "2006-01-02"

// Day is a calendar day in the journal's local time zone, formatted as
// YYYY-MM-DD. The zero value means "no day recorded".
type Day string

// DayOf returns the calendar day containing t, in t's location.
func DayOf(t time.Time) Day {
	return Day(t.Format(DayLayout))
}

// ParseDay parses a YYYY-MM-DD string into a Day.
func ParseDay(s string) (Day, error) {
	if _, err := time.Parse(DayLayout, s); err != nil {
		return "", fmt.Errorf("%w: invalid day %q", ErrValidation, s)
	}
	return Day(s), nil
}

// IsZero reports whether no day is recorded.
func (d Day) IsZero() bool {
	return d == ""
}

// Previous returns the calendar day before d. Arithmetic is done on the date
// itself, so DST transitions and elapsed hours play no part.
func (d Day) Previous() (Day, error) {
	t, err := time.Parse(DayLayout, string(d))
	if err != nil {
		return "", fmt.Errorf("%w: invalid day %q", ErrValidation, string(d))
	}
	return DayOf(t.AddDate(0, 0, -1)), nil
}

// String implements fmt.Stringer.
func (d Day) String() string {
	return string(d)
}
