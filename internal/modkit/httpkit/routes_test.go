package httpkit

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	phttp "labqc/internal/platform/net/http"
)

func mkReq(t *testing.T, method string, body io.Reader) *http.Request {
	t.Helper()
	req, err := http.NewRequest(method, "http://labqc.test/api/v1/cases", body)
	if err != nil {
		t.Fatalf("mkReq: %v", err)
	}
	return req
}

type caseIn struct {
	FirstName string `json:"firstName" validate:"required"`
	Contour   *int   `json:"contour" validate:"required,score"`
}

func mount(t *testing.T, fn func(Router)) http.Handler {
	t.Helper()
	m := chi.NewRouter()
	var used bool
	MountAPIV1(phttp.AdaptChi(m), []func(http.Handler) http.Handler{
		func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				used = true
				next.ServeHTTP(w, r)
			})
		},
	}, fn)
	t.Cleanup(func() {
		if !used {
			t.Errorf("scope middleware never ran")
		}
	})
	return m
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) phttp.Envelope {
	t.Helper()
	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return env
}

func TestCaseRoutesUnderAPIV1(t *testing.T) {
	var created caseIn
	h := mount(t, func(api Router) {
		api.Route("/cases", func(r Router) {
			PostJSON(r, "/", func(_ *http.Request, in caseIn) (any, error) {
				created = in
				return Created(map[string]string{"id": "c-1"}), nil
			})
			PutJSON(r, "/{id}", func(req *http.Request, in caseIn) (any, error) {
				id, err := Param(req, "id")
				return map[string]string{"id": id, "firstName": in.FirstName}, err
			})
			Get(r, "/", func(*http.Request) (any, error) {
				return List([]string{"c-1"}, 1, 1, 50), nil
			})
			Delete(r, "/{id}", func(*http.Request) (any, error) {
				return map[string]string{"message": "Case deleted successfully"}, nil
			})
		})
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, mkReq(t, http.MethodPost, strings.NewReader(`{"firstName":"Maria","contour":1}`)))
	if rec.Code != http.StatusCreated || created.FirstName != "Maria" {
		t.Fatalf("create: %d %+v", rec.Code, created)
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/cases/c-1", strings.NewReader(`{"firstName":"Mara","contour":2}`))
	h.ServeHTTP(rec, req)
	if got := decode(t, rec).Data.(map[string]any); got["id"] != "c-1" || got["firstName"] != "Mara" {
		t.Fatalf("update data = %v", got)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cases/", nil))
	page := decode(t, rec).Data.(map[string]any)["page"].(map[string]any)
	if page["page_size"] != 50.0 {
		t.Fatalf("page = %v", page)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/cases/c-1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}
}

func TestPostJSON_ScoreOutOfRange(t *testing.T) {
	h := mount(t, func(api Router) {
		PostJSON(api, "/cases", func(_ *http.Request, _ caseIn) (any, error) {
			t.Fatal("handler must not run")
			return nil, nil
		})
	})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, mkReq(t, http.MethodPost, strings.NewReader(`{"firstName":"Maria","contour":4}`)))

	env := decode(t, rec)
	if rec.Code != http.StatusBadRequest || env.Field != "contour" {
		t.Fatalf("got %d %+v", rec.Code, env)
	}
}
