package calendar

import (
	"fmt"
	"regexp"
	"time"
)

// DateLayout is the calendar-day format used by every stored date (YYYY-MM-DD).
const DateLayout = "2006-01-02"

var datePrefixRegex = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})`)

type Clock interface {
	Now() time.Time
}

// SystemClock reports the wall clock in the given location (local time if nil).
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// FixedClock is used in tests and tools.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time {
	return c.T
}

func Today(clock Clock) string {
	return Format(clock.Now())
}

func Format(t time.Time) string {
	return t.Format(DateLayout)
}

// Parse reads a YYYY-MM-DD date as a civil day at noon UTC, so day arithmetic
// never crosses a DST edge.
func Parse(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", date)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC), nil
}

// AddDays shifts a YYYY-MM-DD date by n calendar days (negative n goes back).
func AddDays(date string, n int) (string, error) {
	t, err := Parse(date)
	if err != nil {
		return "", err
	}
	return Format(t.AddDate(0, 0, n)), nil
}

// DatePart extracts the leading YYYY-MM-DD of a stored date value, which may
// also be a full timestamp. Values without a date prefix are returned as-is.
func DatePart(s string) string {
	if m := datePrefixRegex.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return s
}

func IsValid(date string) bool {
	_, err := Parse(date)
	return err == nil
}
