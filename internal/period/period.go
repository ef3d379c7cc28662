package period

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownPeriod is returned when Resolve is called with a name outside
// the recognized period list. Callers are expected to only forward names
// from model.Periods, so hitting this is an integration bug.
var ErrUnknownPeriod = errors.New("unknown period")

// Range is a resolved calendar interval in local time. Both bounds are
// inclusive when used against the store, and End is the last whole second
// of the interval to match the store's second-granularity datetime format.
type Range struct {
	Start time.Time
	End   time.Time
}

// Resolve maps a named period to the calendar interval containing now.
// It is a pure function of its arguments: the same (name, now, weekStart)
// always yields the same range. weekStart picks the first day of the
// "This week" interval; config defaults it to Monday.
func Resolve(name string, now time.Time, weekStart time.Weekday) (Range, error) {
	switch name {
	case "Today":
		start := startOfDay(now)
		return Range{Start: start, End: endOfDay(start)}, nil
	case "This week":
		start := startOfDay(now)
		for start.Weekday() != weekStart {
			start = start.AddDate(0, 0, -1)
		}
		return Range{Start: start, End: endOfDay(start.AddDate(0, 0, 6))}, nil
	case "This month":
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return Range{Start: start, End: start.AddDate(0, 1, 0).Add(-time.Second)}, nil
	default:
		return Range{}, fmt.Errorf("%w: %q", ErrUnknownPeriod, name)
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(start time.Time) time.Time {
	return start.AddDate(0, 0, 1).Add(-time.Second)
}
