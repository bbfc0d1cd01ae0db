package quota

import (
	"errors"
	"time"
)

var ErrInvalidPeriod = errors.New("period start must be before period end")

// Period is the validity window of an allocation. Allocations are replaced,
// never extended, so the window is immutable once created.
type Period struct {
	start time.Time
	end   time.Time
}

func NewPeriod(start, end time.Time) (Period, error) {
	if !start.Before(end) {
		return Period{}, ErrInvalidPeriod
	}
	return Period{start: start, end: end}, nil
}

// CurrentMonth returns the calendar-month period containing now, from the
// first day at 00:00:00 to the last day at 23:59:59 in loc.
func CurrentMonth(now time.Time, loc *time.Location) Period {
	local := now.In(loc)
	start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return Period{start: start, end: end}
}

func (p Period) Start() time.Time { return p.start }
func (p Period) End() time.Time   { return p.end }

func (p Period) ExpiredAt(now time.Time) bool {
	return p.end.Before(now)
}

// ExpiringSoonAt reports whether less than warn remains until the period end.
func (p Period) ExpiringSoonAt(now time.Time, warn time.Duration) bool {
	return p.end.Sub(now) <= warn
}
