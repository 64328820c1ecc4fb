package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"labqc/internal/platform/net/middleware"
)

// CommonStack returns a baseline per module middleware slice
// allowedOrigins feeds CORS, empty allows any origin
func CommonStack(allowedOrigins ...string) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),

		// safety
		middleware.RecoverJSON,

		// cache / freshness
		middleware.NoCache(),

		// observability
		middleware.AccessLog(500 * time.Millisecond),

		// cross-origin
		middleware.CORS(allowedOrigins),
		middleware.Compress(flate.BestSpeed),
		middleware.RedirectSlashes(),
		middleware.StripSlashes(),
		middleware.Timeout(30 * time.Second),
	}
}
