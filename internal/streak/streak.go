package streak

import (
	"context"
	"fmt"

	"github.com/2beens/fitxp/internal/calendar"
	"github.com/2beens/fitxp/internal/telemetry/tracing"
)

// DefaultWindow is how many of the user's most recent food entries are
// looked at when building the set of logged days.
const DefaultWindow = 500

// EntryDateSource lists the dates of a user's most recent food entries.
type EntryDateSource interface {
	EntryDates(ctx context.Context, userID string, limit int) ([]string, error)
}

type Calculator struct {
	source EntryDateSource
	window int
}

func NewCalculator(source EntryDateSource, window int) *Calculator {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Calculator{
		source: source,
		window: window,
	}
}

// ComputeStreak counts consecutive calendar days with at least one food entry,
// walking back from asOf (inclusive) until the first day without one.
func (c *Calculator) ComputeStreak(ctx context.Context, userID, asOf string) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "streak.compute")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	day := calendar.DatePart(asOf)
	if !calendar.IsValid(day) {
		return 0, fmt.Errorf("compute streak: invalid date %q", asOf)
	}

	dates, err := c.source.EntryDates(ctx, userID, c.window)
	if err != nil {
		return 0, fmt.Errorf("list entry dates: %w", err)
	}

	logged := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		if ymd := calendar.DatePart(d); ymd != "" {
			logged[ymd] = struct{}{}
		}
	}

	return Count(logged, day)
}

// Count walks back from day while every visited day is in logged.
func Count(logged map[string]struct{}, day string) (int, error) {
	streak := 0
	for {
		if _, ok := logged[day]; !ok {
			return streak, nil
		}
		streak++

		prev, err := calendar.AddDays(day, -1)
		if err != nil {
			return 0, err
		}
		day = prev
	}
}
