package services

import (
	"fmt"
	"time"
)

// Period is a token from the closed set of named relative time ranges
type Period string

const (
	Period7Days   Period = "7d"
	Period30Days  Period = "30d"
	Period3Months Period = "3m"
	Period6Months Period = "6m"
	Period1Year   Period = "1y"
	PeriodAllTime Period = "all"
)

// ParsePeriod validates a period token
func ParsePeriod(token string) (Period, error) {
	switch Period(token) {
	case Period7Days, Period30Days, Period3Months, Period6Months, Period1Year, PeriodAllTime:
		return Period(token), nil
	default:
		return "", fmt.Errorf("unknown period token: %q", token)
	}
}

// Granularity is the calendar unit used to group events along the time axis
type Granularity int

const (
	GranularityDay Granularity = iota
	GranularityMonth
	GranularityYear
)

// String method for Granularity enum
func (g Granularity) String() string {
	switch g {
	case GranularityDay:
		return "day"
	case GranularityMonth:
		return "month"
	case GranularityYear:
		return "year"
	default:
		return "unknown"
	}
}

// Window is a half-open time interval [Start, End)
type Window struct {
	Start time.Time
	End   time.Time
}

// Duration returns the window length
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Contains reports whether t falls inside the window
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// AllTimeFloor is the fixed historical start of the all-time period.
// All calendar arithmetic in this package is UTC.
var AllTimeFloor = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// allTimeYearGranularitySpan is the span beyond which the all-time period
// switches from month to year buckets.
const allTimeYearGranularitySpan = 2 * 365 * 24 * time.Hour

// ResolvedPeriod is the output of ResolvePeriod: the current analysis window,
// the equal-length immediately preceding comparison window, and the bucket
// granularity the Aggregator should use.
type ResolvedPeriod struct {
	Period      Period
	Current     Window
	Previous    Window
	Granularity Granularity
}

// ResolvePeriod maps a period token and a reference instant to the current
// window [start, now) and the mirrored previous window [start-d, start).
// The two windows are contiguous, non-overlapping and of equal duration.
//
// For the all-time period the previous window mirrors a very large duration
// backward; it lies mostly before any real data and only guarantees a
// defined zero-activity comparison, not a meaningful trend signal.
func ResolvePeriod(period Period, now time.Time) (ResolvedPeriod, error) {
	now = now.UTC()

	var start time.Time
	var granularity Granularity

	switch period {
	case Period7Days:
		start = now.AddDate(0, 0, -7)
		granularity = GranularityDay
	case Period30Days:
		start = now.AddDate(0, 0, -30)
		granularity = GranularityDay
	case Period3Months:
		start = now.AddDate(0, -3, 0)
		granularity = GranularityDay
	case Period6Months:
		start = now.AddDate(0, -6, 0)
		granularity = GranularityDay
	case Period1Year:
		start = now.AddDate(-1, 0, 0)
		granularity = GranularityMonth
	case PeriodAllTime:
		start = AllTimeFloor
		if now.Before(start) {
			start = now
		}
		if now.Sub(start) > allTimeYearGranularitySpan {
			granularity = GranularityYear
		} else {
			granularity = GranularityMonth
		}
	default:
		return ResolvedPeriod{}, fmt.Errorf("unknown period token: %q", period)
	}

	duration := now.Sub(start)
	return ResolvedPeriod{
		Period:      period,
		Current:     Window{Start: start, End: now},
		Previous:    Window{Start: start.Add(-duration), End: start},
		Granularity: granularity,
	}, nil
}
