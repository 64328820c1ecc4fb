package analytics

import "time"

// DistributionRow is the score histogram of one metric
type DistributionRow struct {
	Metric Metric `json:"metric"`
	Score0 int    `json:"score0"`
	Score1 int    `json:"score1"`
	Score2 int    `json:"score2"`
	Total  int    `json:"total"`
}

// Distribution flattens s.ScoreDistribution into one row per metric, in metric order
func Distribution(s Summary) []DistributionRow {
	out := make([]DistributionRow, 0, len(Metrics))
	for _, m := range Metrics {
		r := DistributionRow{
			Metric: m,
			Score0: s.ScoreDistribution[ScoreReturned].Get(m),
			Score1: s.ScoreDistribution[ScoreAdjusted].Get(m),
			Score2: s.ScoreDistribution[ScoreAcceptable].Get(m),
		}
		r.Total = r.Score0 + r.Score1 + r.Score2
		out = append(out, r)
	}
	return out
}

// Snapshot is everything the presentation layer needs for one period
type Snapshot struct {
	Period           Period             `json:"period"`
	GeneratedOn      time.Time          `json:"generatedOn"`
	Summary          Summary            `json:"summary"`
	MetricTrends     []MetricTrendPoint `json:"metricTrends"`
	SuccessRateTrend []SuccessRatePoint `json:"successRateTrend"`
	Distribution     []DistributionRow  `json:"distribution"`
}

// Compose builds a Snapshot for p
// the summary is computed over the period-filtered set, trends over the full list
func Compose(cases []Case, p Period, today time.Time) Snapshot {
	p = ParsePeriod(string(p))
	sum := Aggregate(FilterByPeriod(cases, p, today))
	return Snapshot{
		Period:           p,
		GeneratedOn:      Date(today),
		Summary:          sum,
		MetricTrends:     MetricTrends(cases, p, today),
		SuccessRateTrend: SuccessRateTrend(cases, p, today),
		Distribution:     Distribution(sum),
	}
}
