package calendar

import (
	"fmt"
	"time"
)

// DateLayout is the canonical format for all persisted calendar dates.
const DateLayout = "2006-01-02"

// DefaultTimezone is the gym's operational timezone. All "today" and "now"
// values come from this zone, never from the client.
const DefaultTimezone = "Asia/Manila"

// Clock supplies the current date and time in the operational timezone.
type Clock interface {
	Now() time.Time
	Today() time.Time
}

type clock struct {
	loc *time.Location
}

// NewClock creates a clock pinned to the given timezone.
func NewClock(loc *time.Location) Clock {
	return &clock{loc: loc}
}

func (c *clock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c *clock) Today() time.Time {
	return Midnight(c.Now())
}

type fixedClock struct {
	now time.Time
}

// Fixed returns a clock frozen at the given instant, for tests.
func Fixed(now time.Time) Clock {
	return &fixedClock{now: now}
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

func (c *fixedClock) Today() time.Time {
	return Midnight(c.now)
}

// Midnight truncates a time to its calendar date.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Parse parses a YYYY-MM-DD date string.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD", s)
	}
	return t, nil
}

// Format formats a time as YYYY-MM-DD.
func Format(t time.Time) string {
	return t.Format(DateLayout)
}

// AddMonths adds n calendar months. When the source day-of-month does not
// exist in the target month (Jan 31 + 1 month), the result clamps to the
// last valid day of that month instead of rolling into the next one, so
// repeated month-end renewals never drift.
func AddMonths(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	day := t.Day()
	if last := daysInMonth(first.Year(), first.Month()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, t.Location())
}

// DaysUntil returns the whole-day distance from today to target. Negative
// values mean the target date has already passed.
func DaysUntil(target, today time.Time) int {
	a := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return int(a.Sub(b).Hours() / 24)
}

func daysInMonth(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
