package analytics

import (
	"strings"
	"time"
)

// Period selects both the analytics window and the trend granularity
type Period string

// Recognized period keys
const (
	PeriodMonth       Period = "1 month"
	PeriodThreeMonths Period = "3 months"
	PeriodYTD         Period = "YTD"
	PeriodYear        Period = "1 year"
	PeriodFiveYears   Period = "5 years"
	PeriodAllTime     Period = "All Time"

	// DefaultPeriod is used for anything unrecognized
	DefaultPeriod = PeriodMonth
)

// Periods lists the recognized keys in selector order
var Periods = [...]Period{PeriodMonth, PeriodThreeMonths, PeriodYTD, PeriodYear, PeriodFiveYears, PeriodAllTime}

// ParsePeriod maps a raw selector to a Period, falling back to DefaultPeriod
// matching is exact; "1 Month" is not a recognized key
func ParsePeriod(s string) Period {
	p := Period(s)
	if p.Valid() {
		return p
	}
	return DefaultPeriod
}

// Valid reports whether p is one of the recognized keys
func (p Period) Valid() bool {
	for _, k := range Periods {
		if p == k {
			return true
		}
	}
	return false
}

// Slug renders the period for file names, e.g. "1 month" -> "1_month"
func (p Period) Slug() string {
	return strings.ToLower(strings.Join(strings.Fields(string(ParsePeriod(string(p)))), "_"))
}

// Cutoff returns the inclusive lower bound for p relative to today
// ok is false for All Time, which has no bound
func Cutoff(p Period, today time.Time) (cutoff time.Time, ok bool) {
	t := Date(today)
	switch ParsePeriod(string(p)) {
	case PeriodThreeMonths:
		return t.AddDate(0, -3, 0), true
	case PeriodYTD:
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC), true
	case PeriodYear:
		return t.AddDate(-1, 0, 0), true
	case PeriodFiveYears:
		return t.AddDate(-5, 0, 0), true
	case PeriodAllTime:
		return time.Time{}, false
	default:
		return t.AddDate(0, -1, 0), true
	}
}

// FilterByPeriod returns the cases recorded between the period cutoff and today, both inclusive
// cases dated after today belong to no period, All Time included
// the result is a new slice; input order is kept but callers should not rely on it
func FilterByPeriod(cases []Case, p Period, today time.Time) []Case {
	out := make([]Case, 0, len(cases))
	t := Date(today)
	cutoff, bounded := Cutoff(p, today)
	for _, c := range cases {
		d := Date(c.DateRecorded)
		if d.After(t) || (bounded && d.Before(cutoff)) {
			continue
		}
		out = append(out, c)
	}
	return out
}
