// Package http serves the liveness, readiness and build info routes under /meta
package http

import (
	"context"
	"net/http"
	"time"

	"labqc/internal/core/version"
	"labqc/internal/modkit/httpkit"
	"labqc/internal/platform/store"
)

// readyTimeout bounds each dependency check
const readyTimeout = 2 * time.Second

// Deps are what the meta routes report on; nil PG or KV is reported as skipped
type Deps struct {
	StartedAt time.Time
	PG        store.RowQuerier
	KV        store.Pinger
	Now       func() time.Time
}

// Check is one dependency in the readiness report
type Check struct {
	Name   string `json:"name"`
	Status string `json:"status"` // ok, fail or skipped
	Error  string `json:"error,omitempty"`
}

// Readiness is fail when postgres is unusable and degraded when only the case list cache is
type Readiness struct {
	Status string  `json:"status"`
	Checks []Check `json:"checks"`
}

// Liveness carries the uptime of the process
type Liveness struct {
	Service string    `json:"service"`
	Started time.Time `json:"started"`
	Uptime  int64     `json:"uptime_seconds"`
}

// Register mounts /health, /ready, /version and /service
func Register(r httpkit.Router, d Deps) {
	if d.Now == nil {
		d.Now = time.Now
	}
	h := handlers{d}
	httpkit.Get(r, "/health", h.live)
	httpkit.Get(r, "/service", h.live)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", func(*http.Request) (any, error) { return version.Info(), nil })
}

type handlers struct{ d Deps }

func (h handlers) live(*http.Request) (any, error) {
	return Liveness{
		Service: version.Service,
		Started: h.d.StartedAt.UTC(),
		Uptime:  int64(h.d.Now().Sub(h.d.StartedAt) / time.Second),
	}, nil
}

func (h handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	pg := check("pg", h.d.PG != nil, func() error {
		var one int
		return h.d.PG.QueryRow(ctx, "SELECT 1").Scan(&one)
	})
	kv := check("redis", h.d.KV != nil, func() error { return h.d.KV.Ping(ctx) })

	out := Readiness{Status: "ok", Checks: []Check{pg, kv}}
	switch {
	case pg.Status != "ok":
		out.Status = "fail"
		return httpkit.Response{Status: http.StatusServiceUnavailable, Body: out}, nil
	case kv.Status == "fail":
		out.Status = "degraded"
	}
	return out, nil
}

func check(name string, configured bool, ping func() error) Check {
	if !configured {
		return Check{Name: name, Status: "skipped"}
	}
	if err := ping(); err != nil {
		return Check{Name: name, Status: "fail", Error: err.Error()}
	}
	return Check{Name: name, Status: "ok"}
}
