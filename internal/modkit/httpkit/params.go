package httpkit

import (
	"net/http"
	"strconv"
	"strings"

	perrs "labqc/internal/platform/errors"
	phttp "labqc/internal/platform/net/http"
)

// Param returns a required route parameter
func Param(r *http.Request, name string) (string, error) {
	v := strings.TrimSpace(phttp.URLParam(r, name))
	if v == "" {
		return "", perrs.InvalidArgf("missing path parameter %s", name)
	}
	return v, nil
}

// Query returns a trimmed query string value, empty when absent
func Query(r *http.Request, name string) string {
	return strings.TrimSpace(r.URL.Query().Get(name))
}

// QueryInt parses an optional integer query value, def is used when absent
func QueryInt(r *http.Request, name string, def int) (int, error) {
	raw := Query(r, name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, perrs.WithField(perrs.Validationf("%s must be an integer", name), name)
	}
	return n, nil
}
