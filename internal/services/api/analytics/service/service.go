// Package service computes analytics views over the full case list
package service

import (
	"bytes"
	"context"
	"time"

	"labqc/internal/core/analytics"
	"labqc/internal/core/report"
	perr "labqc/internal/platform/errors"
	"labqc/internal/platform/logger"
	"labqc/internal/services/api/analytics/domain"
	casesdom "labqc/internal/services/api/cases/domain"

	"github.com/prometheus/client_golang/prometheus"
)

// Service defines the service contract for analytics
type Service interface{ domain.ServicePort }

// Options configures a Svc
type Options struct {
	// Location decides which calendar date counts as today, UTC when nil
	Location *time.Location
	// Now overrides the wall clock
	Now func() time.Time
	// Registerer receives the computation metrics, nil skips registration
	Registerer prometheus.Registerer
}

// Svc implements the Service interface
type Svc struct {
	cases   casesdom.CaseLister
	loc     *time.Location
	now     func() time.Time
	metrics *computeMetrics
}

// New creates a new analytics service
func New(cases casesdom.CaseLister, opt Options) *Svc {
	if cases == nil {
		panic("analytics.Service requires a non nil CaseLister")
	}
	s := &Svc{
		cases:   cases,
		loc:     opt.Location,
		now:     opt.Now,
		metrics: newComputeMetrics(opt.Registerer),
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// today is the current calendar date in the configured location
func (s *Svc) today() time.Time { return analytics.Date(s.now().In(s.loc)) }

// load reads every case once per computation
func (s *Svc) load(ctx context.Context) ([]analytics.Case, error) {
	cases, err := s.cases.ListAll(ctx)
	if err != nil {
		return nil, perr.WithOp(err, "analytics.load")
	}
	return cases, nil
}

func (s *Svc) observe(op string, p analytics.Period, start time.Time) {
	s.metrics.computations.WithLabelValues(op, p.Slug()).Inc()
	s.metrics.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// Summary aggregates the cases inside the period
func (s *Svc) Summary(ctx context.Context, in domain.PeriodInput) (domain.SummaryOutput, error) {
	start := time.Now()
	p := analytics.ParsePeriod(in.Period)
	cases, err := s.load(ctx)
	if err != nil {
		return domain.SummaryOutput{}, err
	}
	out := domain.SummaryOutput{
		Period:  p,
		Summary: analytics.Aggregate(analytics.FilterByPeriod(cases, p, s.today())),
	}
	s.observe("summary", p, start)
	return out, nil
}

// Trends buckets the full case list into the period's labels
func (s *Svc) Trends(ctx context.Context, in domain.PeriodInput) (domain.TrendsOutput, error) {
	start := time.Now()
	p := analytics.ParsePeriod(in.Period)
	cases, err := s.load(ctx)
	if err != nil {
		return domain.TrendsOutput{}, err
	}
	today := s.today()
	out := domain.TrendsOutput{
		Period:      p,
		Metrics:     analytics.MetricTrends(cases, p, today),
		SuccessRate: analytics.SuccessRateTrend(cases, p, today),
	}
	s.observe("trends", p, start)
	return out, nil
}

// Distribution returns the score histogram of the cases inside the period
func (s *Svc) Distribution(ctx context.Context, in domain.PeriodInput) (domain.DistributionOutput, error) {
	start := time.Now()
	p := analytics.ParsePeriod(in.Period)
	cases, err := s.load(ctx)
	if err != nil {
		return domain.DistributionOutput{}, err
	}
	sum := analytics.Aggregate(analytics.FilterByPeriod(cases, p, s.today()))
	out := domain.DistributionOutput{Period: p, Rows: analytics.Distribution(sum)}
	s.observe("distribution", p, start)
	return out, nil
}

// Overview composes every view of the period into one snapshot
func (s *Svc) Overview(ctx context.Context, in domain.PeriodInput) (analytics.Snapshot, error) {
	start := time.Now()
	p := analytics.ParsePeriod(in.Period)
	cases, err := s.load(ctx)
	if err != nil {
		return analytics.Snapshot{}, err
	}
	snap := analytics.Compose(cases, p, s.today())
	s.observe("overview", p, start)
	return snap, nil
}

// Report renders the period snapshot as a csv or pdf file
func (s *Svc) Report(ctx context.Context, in domain.ReportInput) (domain.Report, error) {
	start := time.Now()
	f, ok := report.ParseFormat(in.Format)
	if !ok {
		return domain.Report{}, perr.WithField(
			perr.Validationf("format must be one of pdf, csv"), "format")
	}
	p := analytics.ParsePeriod(in.Period)
	cases, err := s.load(ctx)
	if err != nil {
		return domain.Report{}, err
	}
	snap := analytics.Compose(cases, p, s.today())

	var buf bytes.Buffer
	switch f {
	case report.FormatCSV:
		err = report.WriteCSV(&buf, snap)
	default:
		err = report.WritePDF(&buf, snap)
	}
	if err != nil {
		logger.C(ctx).Error().Err(err).Str("format", string(f)).Msg("analytics: report render failed")
		return domain.Report{}, perr.Wrap(err, perr.ErrorCodeUnknown, "report render failed")
	}

	s.observe("report_"+string(f), p, start)
	return domain.Report{
		FileName:    report.FileName(p, snap.GeneratedOn, f),
		ContentType: f.ContentType(),
		Body:        buf.Bytes(),
	}, nil
}
