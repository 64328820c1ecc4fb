package report

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"labqc/internal/core/analytics"
)

// WriteCSV renders s as sectioned CSV, one blank record between sections
// numbers are written unrounded except the key rates, which match the PDF
func WriteCSV(w io.Writer, s analytics.Snapshot) error {
	cw := csv.NewWriter(w)
	sum := s.Summary
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

	title, _, _ := header(s)
	rows := [][]string{
		{title},
		{"Period", string(s.Period)},
		{"Generated on", s.GeneratedOn.Format(time.DateOnly)},
		nil,
		{"Key Metrics"},
		{"Metric", "Value"},
		{"Overall Score", fixed(sum.OverallScore)},
		{"Total Cases", strconv.Itoa(sum.TotalCases)},
		{"Success Rate", fixed(sum.SuccessRate)},
		{"Return Rate", fixed(sum.ReturnRate)},
		{"Revision Success Rate", fixed(sum.RevisionSuccessRate)},
		nil,
		{"Metric Averages"},
		{"Metric", "Average"},
	}
	for _, m := range analytics.Metrics {
		rows = append(rows, []string{metricName(m), f(sum.MetricAverages.Get(m))})
	}

	rows = append(rows, nil, []string{"Return Breakdown"}, []string{"Metric", "Returns"})
	for _, m := range analytics.Metrics {
		rows = append(rows, []string{metricName(m), strconv.Itoa(sum.ReturnBreakdown.Get(m))})
	}

	rows = append(rows, nil, []string{"Score Distribution"}, []string{"Metric", "Score 0", "Score 1", "Score 2", "Total"})
	for _, r := range s.Distribution {
		rows = append(rows, []string{
			metricName(r.Metric),
			strconv.Itoa(r.Score0), strconv.Itoa(r.Score1), strconv.Itoa(r.Score2), strconv.Itoa(r.Total),
		})
	}

	head := []string{"Label", "Count", "Overall"}
	for _, m := range analytics.Metrics {
		head = append(head, metricName(m))
	}
	rows = append(rows, nil, []string{"Metric Trends"}, head)
	for _, p := range s.MetricTrends {
		rows = append(rows, []string{
			p.Label, strconv.Itoa(p.Count), f(p.Overall),
			f(p.Margins), f(p.Contacts), f(p.Occlusion), f(p.Color), f(p.Contour),
		})
	}

	rows = append(rows, nil, []string{"Success Rate Trend"}, []string{"Label", "Count", "Rate"})
	for _, p := range s.SuccessRateTrend {
		rows = append(rows, []string{p.Label, strconv.Itoa(p.Count), f(p.Rate)})
	}

	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}
