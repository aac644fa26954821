package query

import "time"

// ============================================================================
// TEMPORAL UNITS — Ordered bucketing ladder
// ============================================================================
// minute → hour → day → week → month → quarter → year. Drill zooming walks
// the ladder; breakouts and temporal filters carry one of these.
// ============================================================================

// Unit is a time-bucketing granularity.
type Unit string

const (
	Minute  Unit = "minute"
	Hour    Unit = "hour"
	Day     Unit = "day"
	Week    Unit = "week"
	Month   Unit = "month"
	Quarter Unit = "quarter"
	Year    Unit = "year"
)

// Units is the bucketing ladder, finest first.
var Units = []Unit{Minute, Hour, Day, Week, Month, Quarter, Year}

func (u Unit) index() int {
	for i, v := range Units {
		if v == u {
			return i
		}
	}
	return -1
}

// Valid reports whether u is a known unit.
func (u Unit) Valid() bool {
	return u.index() >= 0
}

// Coarser returns the next-coarser unit on the ladder. ok is false at the
// top (year) and for unknown units.
func (u Unit) Coarser() (Unit, bool) {
	i := u.index()
	if i < 0 || i == len(Units)-1 {
		return u, false
	}
	return Units[i+1], true
}

// Truncate snaps t down to the start of its bucket. Weeks start on Sunday.
func (u Unit) Truncate(t time.Time) time.Time {
	y, mo, d := t.Date()
	loc := t.Location()
	switch u {
	case Minute:
		return time.Date(y, mo, d, t.Hour(), t.Minute(), 0, 0, loc)
	case Hour:
		return time.Date(y, mo, d, t.Hour(), 0, 0, 0, loc)
	case Day:
		return time.Date(y, mo, d, 0, 0, 0, 0, loc)
	case Week:
		day := time.Date(y, mo, d, 0, 0, 0, 0, loc)
		return day.AddDate(0, 0, -int(day.Weekday()))
	case Month:
		return time.Date(y, mo, 1, 0, 0, 0, 0, loc)
	case Quarter:
		qm := time.Month((int(mo)-1)/3*3 + 1)
		return time.Date(y, qm, 1, 0, 0, 0, 0, loc)
	case Year:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
	}
	return t
}

// Step moves t by n buckets. Calendar units use calendar arithmetic, so
// stepping a month from Jan 31 lands inside March per time.AddDate rules;
// callers step from truncated bucket starts, where this never bites.
func (u Unit) Step(t time.Time, n int) time.Time {
	switch u {
	case Minute:
		return t.Add(time.Duration(n) * time.Minute)
	case Hour:
		return t.Add(time.Duration(n) * time.Hour)
	case Day:
		return t.AddDate(0, 0, n)
	case Week:
		return t.AddDate(0, 0, 7*n)
	case Month:
		return t.AddDate(0, n, 0)
	case Quarter:
		return t.AddDate(0, 3*n, 0)
	case Year:
		return t.AddDate(n, 0, 0)
	}
	return t
}

// Next returns the start of the bucket following the one holding t.
func (u Unit) Next(t time.Time) time.Time {
	return u.Step(u.Truncate(t), 1)
}

// Ceil snaps t up to a bucket boundary: t itself when already aligned,
// otherwise the start of the next bucket.
func (u Unit) Ceil(t time.Time) time.Time {
	if start := u.Truncate(t); start.Equal(t) {
		return t
	}
	return u.Next(t)
}

// Count returns how many u-buckets the inclusive range [start, end]
// touches. Zero when end precedes start.
func (u Unit) Count(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	n := 0
	for t := u.Truncate(start); !t.After(end); t = u.Step(t, 1) {
		n++
	}
	return n
}
