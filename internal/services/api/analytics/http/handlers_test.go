package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labqc/internal/core/analytics"
	perr "labqc/internal/platform/errors"
	phttp "labqc/internal/platform/net/http"
	"labqc/internal/services/api/analytics/domain"
)

type fakeSvc struct {
	lastPeriod string
	lastReport domain.ReportInput
}

func (f *fakeSvc) Summary(_ context.Context, in domain.PeriodInput) (domain.SummaryOutput, error) {
	f.lastPeriod = in.Period
	return domain.SummaryOutput{Period: analytics.ParsePeriod(in.Period), Summary: analytics.Summary{TotalCases: 4}}, nil
}

func (f *fakeSvc) Trends(_ context.Context, in domain.PeriodInput) (domain.TrendsOutput, error) {
	f.lastPeriod = in.Period
	return domain.TrendsOutput{Period: analytics.ParsePeriod(in.Period)}, nil
}

func (f *fakeSvc) Distribution(_ context.Context, in domain.PeriodInput) (domain.DistributionOutput, error) {
	f.lastPeriod = in.Period
	return domain.DistributionOutput{Period: analytics.ParsePeriod(in.Period)}, nil
}

func (f *fakeSvc) Overview(_ context.Context, in domain.PeriodInput) (analytics.Snapshot, error) {
	f.lastPeriod = in.Period
	return analytics.Snapshot{Period: analytics.ParsePeriod(in.Period)}, nil
}

func (f *fakeSvc) Report(_ context.Context, in domain.ReportInput) (domain.Report, error) {
	f.lastReport = in
	if in.Format == "xlsx" {
		return domain.Report{}, perr.New(perr.ErrorCodeValidation, "format must be one of pdf, csv")
	}
	return domain.Report{FileName: "analytics_report_ytd_2026-10-14.csv", ContentType: "text/csv; charset=utf-8", Body: []byte("Analytics Report\n")}, nil
}

func newServer(f *fakeSvc) *chi.Mux {
	m := chi.NewRouter()
	Register(phttp.AdaptChi(m), f)
	return m
}

func TestPostEndpoints(t *testing.T) {
	for _, path := range []string{"/summary", "/trends", "/distribution", "/overview"} {
		path := path
		t.Run(path, func(t *testing.T) {
			f := &fakeSvc{}
			rec := httptest.NewRecorder()
			newServer(f).ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodPost, path, strings.NewReader(`{"period":"3 months"}`)))

			require.Equal(t, stdhttp.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, "3 months", f.lastPeriod)

			var env struct {
				Data struct {
					Period string `json:"period"`
				} `json:"data"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
			assert.Equal(t, "3 months", env.Data.Period)
		})
	}
}

func TestSummary_FlattensFields(t *testing.T) {
	rec := httptest.NewRecorder()
	newServer(&fakeSvc{}).ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodPost, "/summary", strings.NewReader(`{}`)))

	require.Equal(t, stdhttp.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"totalCases":4`)
	assert.Contains(t, rec.Body.String(), `"period":"1 month"`)
}

func TestPost_RejectsUnknownField(t *testing.T) {
	rec := httptest.NewRecorder()
	newServer(&fakeSvc{}).ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodPost, "/summary", strings.NewReader(`{"window":"1 year"}`)))
	assert.Equal(t, stdhttp.StatusBadRequest, rec.Code)
}

func TestReport_Download(t *testing.T) {
	f := &fakeSvc{}
	q := url.Values{"period": {"YTD"}, "format": {"csv"}}
	rec := httptest.NewRecorder()
	newServer(f).ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/report?"+q.Encode(), nil))

	require.Equal(t, stdhttp.StatusOK, rec.Code)
	assert.Equal(t, domain.ReportInput{Period: "YTD", Format: "csv"}, f.lastReport)
	assert.Equal(t, "attachment; filename=analytics_report_ytd_2026-10-14.csv", rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "Analytics Report\n", rec.Body.String())
}

func TestReport_BadFormatIsJSONError(t *testing.T) {
	rec := httptest.NewRecorder()
	newServer(&fakeSvc{}).ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/report?format=xlsx", nil))

	assert.Equal(t, stdhttp.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
}
