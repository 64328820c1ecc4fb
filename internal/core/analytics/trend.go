package analytics

import "time"

// MetricTrendPoint is one bucket of the metric trend series
// Count distinguishes an empty bucket from one where every score was 0
type MetricTrendPoint struct {
	Label     string  `json:"label"`
	Overall   float64 `json:"overall"`
	Margins   float64 `json:"margins"`
	Contacts  float64 `json:"contacts"`
	Occlusion float64 `json:"occlusion"`
	Color     float64 `json:"color"`
	Contour   float64 `json:"contour"`
	Count     int     `json:"count"`
}

// SuccessRatePoint is one bucket of the success rate series
type SuccessRatePoint struct {
	Label string  `json:"label"`
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// MetricTrends aggregates each bucket of p independently
// cases is the full list, not the period-filtered one
func MetricTrends(cases []Case, p Period, today time.Time) []MetricTrendPoint {
	labels, buckets := Partition(cases, p, today)
	out := make([]MetricTrendPoint, len(labels))
	for i, l := range labels {
		s := Aggregate(buckets[i])
		out[i] = MetricTrendPoint{
			Label:     l,
			Overall:   s.OverallScore,
			Margins:   s.MetricAverages.Margins,
			Contacts:  s.MetricAverages.Contacts,
			Occlusion: s.MetricAverages.Occlusion,
			Color:     s.MetricAverages.Color,
			Contour:   s.MetricAverages.Contour,
			Count:     s.TotalCases,
		}
	}
	return out
}

// SuccessRateTrend reports the revision success rate per bucket of p
func SuccessRateTrend(cases []Case, p Period, today time.Time) []SuccessRatePoint {
	labels, buckets := Partition(cases, p, today)
	out := make([]SuccessRatePoint, len(labels))
	for i, l := range labels {
		out[i] = SuccessRatePoint{
			Label: l,
			Rate:  RevisionSuccessRate(buckets[i]),
			Count: len(buckets[i]),
		}
	}
	return out
}
