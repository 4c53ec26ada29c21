package domain

import "time"

// DateRange is an inclusive [Start, End] interval used to scope analytics
// aggregation. All bucketing happens on UTC calendar days.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// LastDays builds a range covering the given number of days up to end,
// widened to whole days: start at 00:00:00 UTC, end at 23:59:59.999 UTC.
func LastDays(days int, end time.Time) DateRange {
	end = end.UTC()
	start := end.AddDate(0, 0, -days)
	return DateRange{
		Start: time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC),
		End:   time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 999000000, time.UTC),
	}
}

// Contains reports whether t falls inside the range, inclusive on both ends.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Previous returns the window of equal length immediately preceding r,
// used for period-over-period trend comparison.
func (r DateRange) Previous() DateRange {
	span := r.End.Sub(r.Start)
	return DateRange{
		Start: r.Start.Add(-span - time.Nanosecond),
		End:   r.Start.Add(-time.Nanosecond),
	}
}
