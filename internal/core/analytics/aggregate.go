package analytics

// Summary is the aggregate view over an arbitrary set of cases
type Summary struct {
	TotalCases          int               `json:"totalCases"`
	OverallScore        float64           `json:"overallScore"`
	MetricAverages      ByMetric[float64] `json:"metricAverages"`
	SuccessRate         float64           `json:"successRate"`
	ReturnRate          float64           `json:"returnRate"`
	RevisionSuccessRate float64           `json:"revisionSuccessRate"`
	ReturnBreakdown     ByMetric[int]     `json:"returnBreakdown"`
	// ScoreDistribution is indexed by score value 0, 1, 2
	ScoreDistribution [MaxScore + 1]ByMetric[int] `json:"scoreDistribution"`
}

// Aggregate computes the summary statistics for cases
// empty input yields an all-zero summary, never NaN
func Aggregate(cases []Case) Summary {
	var (
		s        = Summary{TotalCases: len(cases)}
		sums     ByMetric[int]
		returned int
		revised  int
	)

	for _, c := range cases {
		if c.HasFailure() {
			returned++
		}
		if c.Successful() {
			revised++
		}
		for _, m := range Metrics {
			v := c.Scores.Get(m)
			sums.Set(m, sums.Get(m)+v)
			if v >= 0 && v <= MaxScore {
				d := &s.ScoreDistribution[v]
				d.Set(m, d.Get(m)+1)
			}
		}
	}

	overall := make([]float64, 0, len(Metrics))
	for _, m := range Metrics {
		avg := ratio(sums.Get(m), s.TotalCases)
		s.MetricAverages.Set(m, avg)
		s.ReturnBreakdown.Set(m, s.ScoreDistribution[ScoreReturned].Get(m))
		overall = append(overall, avg)
	}
	s.OverallScore = mean(overall)

	if s.TotalCases > 0 {
		s.ReturnRate = percent(returned, s.TotalCases)
		s.SuccessRate = 100 - s.ReturnRate
		s.RevisionSuccessRate = percent(revised, s.TotalCases)
	}
	return s
}

// RevisionSuccessRate is the share of cases, in percent, with all scores at least 1
func RevisionSuccessRate(cases []Case) float64 {
	n := 0
	for _, c := range cases {
		if c.Successful() {
			n++
		}
	}
	return percent(n, len(cases))
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

func percent(num, den int) float64 { return ratio(num, den) * 100 }

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
