package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"time"

	"labqc/internal/platform/config"
	"labqc/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// ShutdownTimeout bounds how long in flight requests get once Run is cancelled
const ShutdownTimeout = 10 * time.Second

// Server owns the chi mux and the listener for the labqc API
type Server struct {
	mux *chi.Mux
	srv *stdhttp.Server
}

// NewServer reads API_PORT from cfg, ":4000" when unset
func NewServer(cfg config.Conf) *Server {
	m := chi.NewRouter()
	return &Server{
		mux: m,
		srv: &stdhttp.Server{
			Addr:              cfg.MayString("API_PORT", ":4000"),
			Handler:           m,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Router is the module facing view of the mux
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Handler serves the mounted routes, for tests and embedding
func (s *Server) Handler() stdhttp.Handler { return s.mux }

// Addr is the configured listen address
func (s *Server) Addr() string { return s.srv.Addr }

// Run serves until ctx is done, then drains for at most ShutdownTimeout
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")
	log.Info().Str("addr", s.srv.Addr).Msg("http listening")

	errc := make(chan error, 1)
	go func() { errc <- s.srv.ListenAndServe() }()

	select {
	case err := <-errc:
		if errors.Is(err, stdhttp.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info().Msg("http shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return s.srv.Shutdown(sctx)
	}
}
