package domain

import (
	"context"

	"labqc/internal/core/analytics"
)

// ServicePort is consumed by handlers
type ServicePort interface {
	Summary(ctx context.Context, in PeriodInput) (SummaryOutput, error)
	Trends(ctx context.Context, in PeriodInput) (TrendsOutput, error)
	Distribution(ctx context.Context, in PeriodInput) (DistributionOutput, error)
	Overview(ctx context.Context, in PeriodInput) (analytics.Snapshot, error)
	Report(ctx context.Context, in ReportInput) (Report, error)
}
