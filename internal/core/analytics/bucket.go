package analytics

import (
	"strconv"
	"time"
)

const (
	monthWindowDays = 30
	weekBuckets     = 12
	weekWindowDays  = 90
	yearWindowDays  = 365
	yearBuckets     = 5
)

// BucketLabels returns the trend bucket labels for p, oldest first
// cases only matter for All Time, where the earliest year opens the range
func BucketLabels(p Period, today time.Time, cases []Case) []string {
	t := Date(today)
	switch ParsePeriod(string(p)) {
	case PeriodThreeMonths:
		out := make([]string, 0, weekBuckets)
		for w := weekBuckets; w >= 1; w-- {
			out = append(out, weekLabel(w))
		}
		return out
	case PeriodYTD:
		return monthLabels(t.Month())
	case PeriodYear:
		return monthLabels(time.December)
	case PeriodFiveYears:
		return yearLabels(t.Year()-yearBuckets+1, t.Year())
	case PeriodAllTime:
		return yearLabels(earliestYear(cases, t.Year()), t.Year())
	default:
		out := make([]string, 0, monthWindowDays)
		for i := monthWindowDays - 1; i >= 0; i-- {
			out = append(out, strconv.Itoa(t.AddDate(0, 0, -i).Day()))
		}
		return out
	}
}

// AssignBucket returns the label c falls into for p
// ok is false when the case is outside the period's own bucket window or dated after today
func AssignBucket(c Case, p Period, today time.Time) (label string, ok bool) {
	t := Date(today)
	d := Date(c.DateRecorded)
	if d.After(t) {
		return "", false
	}
	switch ParsePeriod(string(p)) {
	case PeriodThreeMonths:
		ago := daysBetween(d, t)
		if ago > weekWindowDays {
			return "", false
		}
		w := (ago + 6) / 7
		if w < 1 || w > weekBuckets {
			return "", false
		}
		return weekLabel(w), true
	case PeriodYTD:
		if d.Year() != t.Year() {
			return "", false
		}
		return monthLabel(d.Month()), true
	case PeriodYear:
		// rolling window, not calendar year; see DESIGN.md
		if daysBetween(d, t) > yearWindowDays {
			return "", false
		}
		return monthLabel(d.Month()), true
	case PeriodFiveYears:
		if d.Year() <= t.Year()-yearBuckets {
			return "", false
		}
		return strconv.Itoa(d.Year()), true
	case PeriodAllTime:
		return strconv.Itoa(d.Year()), true
	default:
		if d.Year() != t.Year() || d.Month() != t.Month() {
			return "", false
		}
		// only days that have a slot in the trailing window
		if daysBetween(d, t) >= monthWindowDays {
			return "", false
		}
		return strconv.Itoa(d.Day()), true
	}
}

// Partition splits cases into one slice per label of BucketLabels, in label order
// a case lands in at most one bucket; repeated labels resolve to the most recent slot
func Partition(cases []Case, p Period, today time.Time) (labels []string, buckets [][]Case) {
	labels = BucketLabels(p, today, cases)
	buckets = make([][]Case, len(labels))

	slot := make(map[string]int, len(labels))
	for i, l := range labels {
		slot[l] = i
	}

	for _, c := range cases {
		l, ok := AssignBucket(c, p, today)
		if !ok {
			continue
		}
		if i, ok := slot[l]; ok {
			buckets[i] = append(buckets[i], c)
		}
	}
	return labels, buckets
}

func weekLabel(w int) string { return "W" + strconv.Itoa(w) }

func monthLabel(m time.Month) string { return m.String()[:3] }

func monthLabels(through time.Month) []string {
	out := make([]string, 0, int(through))
	for m := time.January; m <= through; m++ {
		out = append(out, monthLabel(m))
	}
	return out
}

func yearLabels(from, to int) []string {
	out := make([]string, 0, to-from+1)
	for y := from; y <= to; y++ {
		out = append(out, strconv.Itoa(y))
	}
	return out
}

// earliestYear is the smallest case year, capped at current
func earliestYear(cases []Case, current int) int {
	y := current
	for _, c := range cases {
		if cy := Date(c.DateRecorded).Year(); cy < y {
			y = cy
		}
	}
	return y
}
