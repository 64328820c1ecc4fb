// Package domain holds DTOs for analytics http and service contracts
package domain

import "labqc/internal/core/analytics"

// PeriodInput selects the reporting window; unknown or empty values mean "1 month"
type PeriodInput struct {
	Period string `json:"period,omitempty" validate:"omitempty,max=32" example:"3 months"`
}

// ReportInput selects the window and file format of a report
type ReportInput struct {
	Period string `json:"period,omitempty" example:"1 year"`
	Format string `json:"format,omitempty" example:"pdf"`
}

// SummaryOutput is the headline statistics of a period
type SummaryOutput struct {
	Period analytics.Period `json:"period"`
	analytics.Summary
}

// TrendsOutput carries both time series of a period
type TrendsOutput struct {
	Period      analytics.Period             `json:"period"`
	Metrics     []analytics.MetricTrendPoint `json:"metrics"`
	SuccessRate []analytics.SuccessRatePoint `json:"successRate"`
}

// DistributionOutput is the per metric score histogram of a period
type DistributionOutput struct {
	Period analytics.Period            `json:"period"`
	Rows   []analytics.DistributionRow `json:"rows"`
}

// Report is a rendered export file
type Report struct {
	FileName    string
	ContentType string
	Body        []byte
}
