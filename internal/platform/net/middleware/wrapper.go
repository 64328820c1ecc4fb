// Package middleware adapts chi middleware to plain net/http signatures
// and adds the zerolog access log and the JSON panic handler
package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// Middleware is the net/http middleware shape every helper here returns
type Middleware = func(http.Handler) http.Handler

// RequestID propagates X-Request-ID or mints one
func RequestID() Middleware { return chimw.RequestID }

// RealIP trusts X-Forwarded-For and X-Real-IP
func RealIP() Middleware { return chimw.RealIP }

// NoCache keeps browsers from caching analytics that change with every case
func NoCache() Middleware { return chimw.NoCache }

// Timeout cancels the request context after d
func Timeout(d time.Duration) Middleware { return chimw.Timeout(d) }

// Compress compresses JSON and CSV bodies at level
func Compress(level int) Middleware {
	return chimw.NewCompressor(level, "application/json", "text/csv").Handler
}

// RedirectSlashes redirects /cases/ to /cases
func RedirectSlashes() Middleware { return chimw.RedirectSlashes }

// StripSlashes routes /cases/ as /cases without redirecting
func StripSlashes() Middleware { return chimw.StripSlashes }

// CORS allows the dashboard origins; an empty list allows any origin
// Content-Disposition is exposed so browsers can name report downloads
func CORS(origins []string) Middleware {
	return chicors.Handler(chicors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"Content-Disposition", "X-Request-ID"},
		MaxAge:         300,
	})
}
