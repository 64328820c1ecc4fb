// Package http provides http transport for analytics
package http

import (
	stdhttp "net/http"

	"labqc/internal/modkit/httpkit"
	"labqc/internal/services/api/analytics/domain"
	svc "labqc/internal/services/api/analytics/service"
)

// Register mounts analytics endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.PeriodInput](r, "/summary", h.summary)
	httpkit.PostJSON[domain.PeriodInput](r, "/trends", h.trends)
	httpkit.PostJSON[domain.PeriodInput](r, "/distribution", h.distribution)
	httpkit.PostJSON[domain.PeriodInput](r, "/overview", h.overview)
	r.Get("/report", httpkit.Download(h.report))
}

type handlers struct{ svc svc.Service }

// @Summary Headline statistics for a period
// @Tags Analytics
// @Accept json
// @Produce json
// @Param payload body domain.PeriodInput true "Period"
// @Success 200 {object} domain.SummaryOutput "ok"
// @Router /analytics/summary [post]
func (h *handlers) summary(r *stdhttp.Request, in domain.PeriodInput) (any, error) {
	return h.svc.Summary(r.Context(), in)
}

// @Summary Metric and success rate trends for a period
// @Tags Analytics
// @Accept json
// @Produce json
// @Param payload body domain.PeriodInput true "Period"
// @Success 200 {object} domain.TrendsOutput "ok"
// @Router /analytics/trends [post]
func (h *handlers) trends(r *stdhttp.Request, in domain.PeriodInput) (any, error) {
	return h.svc.Trends(r.Context(), in)
}

// @Summary Score distribution for a period
// @Tags Analytics
// @Accept json
// @Produce json
// @Param payload body domain.PeriodInput true "Period"
// @Success 200 {object} domain.DistributionOutput "ok"
// @Router /analytics/distribution [post]
func (h *handlers) distribution(r *stdhttp.Request, in domain.PeriodInput) (any, error) {
	return h.svc.Distribution(r.Context(), in)
}

// @Summary Full dashboard snapshot for a period
// @Tags Analytics
// @Accept json
// @Produce json
// @Param payload body domain.PeriodInput true "Period"
// @Success 200 {object} analytics.Snapshot "ok"
// @Router /analytics/overview [post]
func (h *handlers) overview(r *stdhttp.Request, in domain.PeriodInput) (any, error) {
	return h.svc.Overview(r.Context(), in)
}

// @Summary Download a report
// @Tags Analytics
// @Produce application/pdf
// @Produce text/csv
// @Param period query string false "period key, defaults to 1 month"
// @Param format query string false "pdf or csv, defaults to pdf"
// @Success 200 {file} file "report"
// @Router /analytics/report [get]
func (h *handlers) report(r *stdhttp.Request) (httpkit.File, error) {
	rep, err := h.svc.Report(r.Context(), domain.ReportInput{
		Period: httpkit.Query(r, "period"),
		Format: httpkit.Query(r, "format"),
	})
	if err != nil {
		return httpkit.File{}, err
	}
	return httpkit.File{Name: rep.FileName, ContentType: rep.ContentType, Body: rep.Body}, nil
}
