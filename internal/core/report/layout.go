package report

import (
	"fmt"
	"time"

	"labqc/internal/core/analytics"
)

// line is one row of body text; sub lines sit under a heading line
type line struct {
	text string
	sub  bool
}

type section struct {
	title string
	lines []line
}

// header returns the title block lines
func header(s analytics.Snapshot) (title, period, generated string) {
	return "Analytics Report",
		"Period: " + string(s.Period),
		"Generated on: " + s.GeneratedOn.Format(time.DateOnly)
}

// layout is the printable body shared by the document renderers
func layout(s analytics.Snapshot) []section {
	sum := s.Summary

	key := section{title: "Key Metrics", lines: []line{
		{text: "Overall Score: " + fixed(sum.OverallScore) + "/2"},
		{text: fmt.Sprintf("Total Cases: %d", sum.TotalCases)},
		{text: "Success Rate: " + pct(sum.SuccessRate)},
		{text: "Return Rate: " + pct(sum.ReturnRate)},
		{text: "Revision Success Rate: " + pct(sum.RevisionSuccessRate)},
	}}

	avgs := section{title: "Metric Averages"}
	rets := section{title: "Return Breakdown"}
	for _, m := range analytics.Metrics {
		name := metricName(m)
		avgs.lines = append(avgs.lines, line{text: fmt.Sprintf("%s Average: %s/2", name, fixed(sum.MetricAverages.Get(m)))})
		rets.lines = append(rets.lines, line{text: fmt.Sprintf("%s: %s", name, plural(sum.ReturnBreakdown.Get(m), "return"))})
	}

	dist := section{title: "Score Distribution"}
	for _, r := range s.Distribution {
		dist.lines = append(dist.lines,
			line{text: metricName(r.Metric) + ":"},
			line{text: fmt.Sprintf("Score 0: %d (%s)", r.Score0, pct(share(r.Score0, r.Total))), sub: true},
			line{text: fmt.Sprintf("Score 1: %d (%s)", r.Score1, pct(share(r.Score1, r.Total))), sub: true},
			line{text: fmt.Sprintf("Score 2: %d (%s)", r.Score2, pct(share(r.Score2, r.Total))), sub: true},
		)
	}

	return []section{key, avgs, rets, dist}
}
