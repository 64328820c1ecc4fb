// Package analytics derives quality-control statistics from inspected lab cases
//
// Every function in this package is pure: it reads the case slice it is handed, never mutates it,
// performs no I/O and keeps no state between calls
package analytics

import "time"

// Metric names one of the five clinical scores recorded per case
type Metric string

// Metrics recorded for every case
const (
	MetricMargins   Metric = "margins"
	MetricContacts  Metric = "contacts"
	MetricOcclusion Metric = "occlusion"
	MetricColor     Metric = "color"
	MetricContour   Metric = "contour"
)

// Metrics is the fixed display and iteration order of the metrics
var Metrics = [...]Metric{MetricMargins, MetricContacts, MetricOcclusion, MetricColor, MetricContour}

// Score values
const (
	ScoreReturned   = 0 // case returned to lab
	ScoreAdjusted   = 1 // significant adjustment needed
	ScoreAcceptable = 2 // no or slight adjustment needed

	MaxScore = ScoreAcceptable
)

// ByMetric holds one value per metric
type ByMetric[T any] struct {
	Margins   T `json:"margins"`
	Contacts  T `json:"contacts"`
	Occlusion T `json:"occlusion"`
	Color     T `json:"color"`
	Contour   T `json:"contour"`
}

// Get returns the value for m; unknown metrics yield the zero value
func (b ByMetric[T]) Get(m Metric) T {
	switch m {
	case MetricMargins:
		return b.Margins
	case MetricContacts:
		return b.Contacts
	case MetricOcclusion:
		return b.Occlusion
	case MetricColor:
		return b.Color
	case MetricContour:
		return b.Contour
	}
	var zero T
	return zero
}

// Set stores v for m; unknown metrics are ignored
func (b *ByMetric[T]) Set(m Metric, v T) {
	switch m {
	case MetricMargins:
		b.Margins = v
	case MetricContacts:
		b.Contacts = v
	case MetricOcclusion:
		b.Occlusion = v
	case MetricColor:
		b.Color = v
	case MetricContour:
		b.Contour = v
	}
}

// Scores are the five 0..2 scores of a case
type Scores = ByMetric[int]

// Case is one inspection record
// DateRecorded carries calendar-date semantics and is the only temporal key used here
type Case struct {
	ID           string    `json:"id"`
	DateRecorded time.Time `json:"dateRecorded"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Scores       Scores    `json:"scores"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Successful reports whether every metric scored at least 1
func (c Case) Successful() bool {
	for _, m := range Metrics {
		if c.Scores.Get(m) < ScoreAdjusted {
			return false
		}
	}
	return true
}

// HasFailure reports whether any metric scored exactly 0
func (c Case) HasFailure() bool {
	for _, m := range Metrics {
		if c.Scores.Get(m) == ScoreReturned {
			return true
		}
	}
	return false
}

// Date truncates t to its calendar date at UTC midnight, keeping t's own year, month and day
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween returns whole days from a to b, both taken as calendar dates
func daysBetween(a, b time.Time) int {
	return int(Date(b).Sub(Date(a)).Hours() / 24)
}
