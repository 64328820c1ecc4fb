package http

import (
	"context"
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	phttp "labqc/internal/platform/net/http"
	"labqc/internal/platform/store"
)

var errDown = errors.New("connection refused")

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

// db answers SELECT 1 or fails every statement
type db struct{ err error }

func (d db) Exec(context.Context, string, ...any) (store.CommandTag, error) { return nil, d.err }
func (d db) Query(context.Context, string, ...any) (store.Rows, error)      { return nil, d.err }
func (d db) QueryRow(context.Context, string, ...any) store.Row             { return row(d) }

type row struct{ err error }

func (r row) Scan(dst ...any) error {
	if r.err != nil {
		return r.err
	}
	*dst[0].(*int) = 1
	return nil
}

func serve(t *testing.T, d Deps, path string, out any) int {
	t.Helper()
	m := chi.NewRouter()
	Register(phttp.AdaptChi(m), d)

	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, path, nil))
	env := struct {
		Data any `json:"data"`
	}{Data: out}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code
}

func TestReady(t *testing.T) {
	tests := []struct {
		name   string
		deps   Deps
		status int
		want   string
	}{
		{"all ok", Deps{PG: db{}, KV: pinger{}}, 200, "ok"},
		{"cache not configured", Deps{PG: db{}}, 200, "ok"},
		{"cache down", Deps{PG: db{}, KV: pinger{errDown}}, 200, "degraded"},
		{"pg down", Deps{PG: db{errDown}, KV: pinger{}}, 503, "fail"},
		{"pg missing", Deps{KV: pinger{}}, 503, "fail"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got Readiness
			assert.Equal(t, tc.status, serve(t, tc.deps, "/ready", &got))
			assert.Equal(t, tc.want, got.Status)
			require.Len(t, got.Checks, 2)
			assert.Equal(t, "pg", got.Checks[0].Name)
		})
	}
}

func TestReady_ReportsTheFailure(t *testing.T) {
	var got Readiness
	serve(t, Deps{PG: db{}, KV: pinger{errDown}}, "/ready", &got)
	assert.Equal(t, Check{Name: "redis", Status: "fail", Error: "connection refused"}, got.Checks[1])
}

func TestHealth_ReportsUptime(t *testing.T) {
	start := time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)
	d := Deps{StartedAt: start, Now: func() time.Time { return start.Add(90 * time.Second) }}

	for _, path := range []string{"/health", "/service"} {
		var got Liveness
		assert.Equal(t, 200, serve(t, d, path, &got))
		assert.Equal(t, "labqc-api", got.Service)
		assert.EqualValues(t, 90, got.Uptime)
		assert.True(t, got.Started.Equal(start))
	}
}

func TestVersion(t *testing.T) {
	var got struct {
		Service string `json:"service"`
		Version string `json:"version"`
	}
	assert.Equal(t, 200, serve(t, Deps{}, "/version", &got))
	assert.Equal(t, "labqc-api", got.Service)
	assert.Equal(t, "dev", got.Version)
}
