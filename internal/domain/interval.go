package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/pawdesk/PD-ReservationService/pkg/types"
)

var (
	// ErrMalformedDate is returned for a date that does not parse as YYYY-MM-DD.
	ErrMalformedDate = errors.New("domain: malformed date, expected YYYY-MM-DD")

	// ErrMalformedTime is returned for a start time that does not parse as HH:MM.
	ErrMalformedTime = errors.New("domain: malformed time, expected HH:MM")

	// ErrMalformedEnd is returned for an end datetime that does not parse as
	// YYYY-MM-DD HH:MM.
	ErrMalformedEnd = errors.New("domain: malformed end datetime, expected YYYY-MM-DD HH:MM")

	// ErrInvertedInterval is returned when the end instant is not strictly
	// after the start instant.
	ErrInvertedInterval = errors.New("domain: end must be strictly after start")
)

// Interval is the [Start, End) range a reservation occupies.
// End is nil for categories without a real end time; EffectiveEnd supplies
// the default span used for conflict comparisons.
type Interval struct {
	Start time.Time
	End   *time.Time
}

// ParseInterval normalizes raw date/time inputs into an Interval.
// It is the single parsing path for both create and update so conflict
// comparisons are never skewed by inconsistent formatting.
// Instants are naive local timestamps, matching how they are stored.
func ParseInterval(date, startTime string, endAt *string) (Interval, error) {
	day, err := time.ParseInLocation(DateFormat, date, time.Local)
	if err != nil {
		return Interval{}, fmt.Errorf("%w: %q", ErrMalformedDate, date)
	}
	ts, err := types.NewTimeStringFromString(startTime)
	if err != nil {
		return Interval{}, fmt.Errorf("%w: %q", ErrMalformedTime, startTime)
	}
	start, err := ts.At(day, time.Local)
	if err != nil {
		return Interval{}, fmt.Errorf("%w: %q", ErrMalformedTime, startTime)
	}

	iv := Interval{Start: start}
	if endAt != nil {
		end, err := time.ParseInLocation(DateTimeFormat, *endAt, time.Local)
		if err != nil {
			return Interval{}, fmt.Errorf("%w: %q", ErrMalformedEnd, *endAt)
		}
		if !end.After(start) {
			return Interval{}, fmt.Errorf("%w: start=%s end=%s",
				ErrInvertedInterval, start.Format(DateTimeFormat), end.Format(DateTimeFormat))
		}
		iv.End = &end
	}
	return iv, nil
}

// EffectiveEnd returns the explicit end when present, otherwise the default
// stay span after the start. Reservations without an end time must still
// occupy a non-zero-width interval for conflict purposes.
func (i Interval) EffectiveEnd() time.Time {
	if i.End != nil {
		return *i.End
	}
	return i.Start.Add(DefaultStayHours * time.Hour)
}

// Overlaps reports whether two effective intervals intersect.
// Strict inequalities: intervals that merely touch at an endpoint do not
// conflict, so checkout and the next check-in may share the same instant.
func (i Interval) Overlaps(other Interval) bool {
	return other.EffectiveEnd().After(i.Start) && other.Start.Before(i.EffectiveEnd())
}
