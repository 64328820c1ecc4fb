package http_test

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"labqc/internal/platform/config"
	perr "labqc/internal/platform/errors"
	lumnet "labqc/internal/platform/net"
	phttp "labqc/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scoreBody struct {
	FirstName string `json:"firstName" validate:"required"`
	Margins   *int   `json:"margins" validate:"required,score"`
}

type summary struct {
	TotalCases  int     `json:"totalCases"`
	SuccessRate float64 `json:"successRate"`
}

func serve(t *testing.T, mount func(phttp.Router), method, path, body string) (*httptest.ResponseRecorder, phttp.Envelope) {
	t.Helper()
	m := chi.NewRouter()
	mount(phttp.AdaptChi(m))

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req = req.WithContext(lumnet.WithRequest(req.Context(), "req-42"))
	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, req)

	var env phttp.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func TestEnvelope_AnalyticsPayload(t *testing.T) {
	rec, env := serve(t, func(r phttp.Router) {
		r.Get("/analytics/summary", phttp.NoBody(func(*stdhttp.Request) (any, error) {
			return summary{TotalCases: 12, SuccessRate: 83.33}, nil
		}))
	}, stdhttp.MethodGet, "/analytics/summary", "")

	assert.Equal(t, stdhttp.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, 200, env.StatusCode)
	assert.Equal(t, "OK", env.Status)
	assert.Equal(t, "req-42", env.RequestID)
	assert.Empty(t, env.Error)
	assert.Equal(t, map[string]any{"totalCases": 12.0, "successRate": 83.33}, env.Data)
}

func TestEnvelope_CaseValidationError(t *testing.T) {
	var reached bool
	rec, env := serve(t, func(r phttp.Router) {
		r.Post("/cases", phttp.JSONHandler(func(*stdhttp.Request, scoreBody) (any, error) {
			reached = true
			return nil, nil
		}))
	}, stdhttp.MethodPost, "/cases", `{"firstName":"Maria","margins":5}`)

	assert.False(t, reached)
	assert.Equal(t, stdhttp.StatusBadRequest, rec.Code)
	assert.Equal(t, perr.ErrorCodeValidation, env.Code)
	assert.Equal(t, "margins must be between 0 and 2", env.Error)
	assert.Equal(t, "margins", env.Field)
	assert.Equal(t, "req-42", env.RequestID)
	assert.Nil(t, env.Data)
}

func TestJSONHandler_CreatedCase(t *testing.T) {
	var got scoreBody
	rec, env := serve(t, func(r phttp.Router) {
		r.Post("/cases", phttp.JSONHandler(func(_ *stdhttp.Request, in scoreBody) (any, error) {
			got = in
			return phttp.Created(map[string]string{"id": "c-1"}), nil
		}))
	}, stdhttp.MethodPost, "/cases", `{"firstName":"Maria","margins":0}`)

	assert.Equal(t, stdhttp.StatusCreated, rec.Code)
	assert.Equal(t, "Created", env.Status)
	assert.Equal(t, "Maria", got.FirstName)
	assert.Equal(t, map[string]any{"id": "c-1"}, env.Data)
}

func TestNoBody_ServiceErrorAndPathParam(t *testing.T) {
	rec, env := serve(t, func(r phttp.Router) {
		r.Route("/cases", func(rr phttp.Router) {
			rr.Delete("/{id}", phttp.NoBody(func(req *stdhttp.Request) (any, error) {
				return nil, perr.NotFoundf("case %s not found", phttp.URLParam(req, "id"))
			}))
		})
	}, stdhttp.MethodDelete, "/cases/c-9", "")

	assert.Equal(t, stdhttp.StatusNotFound, rec.Code)
	assert.Equal(t, perr.ErrorCodeNotFound, env.Code)
	assert.Equal(t, "case c-9 not found", env.Error)
}

func TestList_CarriesPageBlock(t *testing.T) {
	_, env := serve(t, func(r phttp.Router) {
		r.Get("/cases", phttp.Handle(func(*stdhttp.Request) phttp.Response {
			return phttp.List([]string{"c-1", "c-2"}, 12, 2, 2)
		}))
	}, stdhttp.MethodGet, "/cases", "")

	data := env.Data.(map[string]any)
	assert.Equal(t, []any{"c-1", "c-2"}, data["items"])
	assert.Equal(t, map[string]any{"total": 12.0, "page": 2.0, "page_size": 2.0}, data["page"])
}

func TestUseAndHandle(t *testing.T) {
	m := chi.NewRouter()
	r := phttp.AdaptChi(m)
	r.Use(func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
			w.Header().Set("X-Labqc", "1")
			next.ServeHTTP(w, req)
		})
	})
	r.Handle("/metrics", stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
		_, _ = w.Write([]byte("labqc_cases_total 3"))
	}))
	r.Put("/cases/x", phttp.NoBody(func(*stdhttp.Request) (any, error) { return "ok", nil }))

	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/metrics", nil))
	assert.Equal(t, "1", rec.Header().Get("X-Labqc"))
	assert.Equal(t, "labqc_cases_total 3", rec.Body.String())

	rec = httptest.NewRecorder()
	m.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodPut, "/cases/x", nil))
	assert.Equal(t, stdhttp.StatusOK, rec.Code)
}

func TestMountProfiler(t *testing.T) {
	on := phttp.NewServer(config.New())
	phttp.MountProfiler(on.Router(), "/debug", true)
	rec := httptest.NewRecorder()
	on.Handler().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/debug/pprof/cmdline", nil))
	assert.Equal(t, stdhttp.StatusOK, rec.Code)

	off := phttp.NewServer(config.New())
	phttp.MountProfiler(off.Router(), "/debug", false)
	rec = httptest.NewRecorder()
	off.Handler().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/debug/pprof/cmdline", nil))
	assert.Equal(t, stdhttp.StatusNotFound, rec.Code)
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	t.Setenv("API_PORT", "127.0.0.1:0")
	srv := phttp.NewServer(config.New())
	assert.Equal(t, "127.0.0.1:0", srv.Addr())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(phttp.ShutdownTimeout + time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_DefaultPort(t *testing.T) {
	assert.Equal(t, ":4000", phttp.NewServer(config.New()).Addr())
}

func TestWriteError_StoreFailureHidesOp(t *testing.T) {
	rec, env := serve(t, func(r phttp.Router) {
		r.Get("/cases", phttp.NoBody(func(*stdhttp.Request) (any, error) {
			return nil, perr.WithOp(perr.New(perr.ErrorCodeDB, "list cases failed"), "cases.list_cases")
		}))
	}, stdhttp.MethodGet, "/cases", "")

	assert.Equal(t, stdhttp.StatusInternalServerError, rec.Code)
	assert.Equal(t, perr.ErrorCodeDB, env.Code)
	assert.Equal(t, "list cases failed", env.Error)
	assert.NotContains(t, rec.Body.String(), "cases.list_cases", "the op is logged, not sent")
}
