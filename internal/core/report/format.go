// Package report renders an analytics snapshot as a downloadable document
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"labqc/internal/core/analytics"
)

// Format is a report output format
type Format string

// Supported formats
const (
	FormatPDF Format = "pdf"
	FormatCSV Format = "csv"
)

// ParseFormat accepts pdf or csv in any case; empty defaults to pdf
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(FormatPDF):
		return FormatPDF, true
	case string(FormatCSV):
		return FormatCSV, true
	}
	return "", false
}

// ContentType is the media type served for f
func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv; charset=utf-8"
	}
	return "application/pdf"
}

// FileName names a report, e.g. analytics_report_1_month_2026-10-14.pdf
func FileName(p analytics.Period, on time.Time, f Format) string {
	return fmt.Sprintf("analytics_report_%s_%s.%s", p.Slug(), on.Format(time.DateOnly), f)
}

// fixed renders v with one decimal, rounding half away from zero
func fixed(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(1)
}

func pct(v float64) string { return fixed(v) + "%" }

// share of n in total as a percent; 0 when total is 0
func share(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return decimal.NewFromInt(int64(n)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(total))).
		InexactFloat64()
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// metricName title cases a metric key; casers are stateful so one is made per call
func metricName(m analytics.Metric) string {
	return cases.Title(language.English).String(string(m))
}
