// @title         Lab QC API
// @version       0.1.0
// @description   Case records and quality analytics for the lab QC workflow

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"labqc/internal/modkit/repokit"
	"labqc/internal/platform/config"
	"labqc/internal/platform/logger"
	"labqc/internal/platform/metrics"
	phttp "labqc/internal/platform/net/http"
	"labqc/internal/platform/store"

	"labqc/internal/services/api"
)

func main() {
	// modules read their own SERVICE_* and CORE_API_* keys off the root
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	pgCfg := root.Prefix("SERVICE_PGSQL_")  // pgCfg lives under SERVICE_PGSQL_*
	rdsCfg := root.Prefix("SERVICE_REDIS_") // rdsCfg lives under SERVICE_REDIS_*

	// bring up logging early
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// redis is optional; without an address the case list is read straight from postgres
	rdsAddr := rdsCfg.MayString("ADDR", "")

	cfg := store.Config{
		PG: store.PGConfig{
			Enabled:  true,
			URL:      pgCfg.MustString("DBURL"),
			MaxConns: int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowMs:   pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:   pgCfg.MayBool("LOG_SQL", false),
		},
		RDS: store.RedisConfig{
			Enabled:  rdsAddr != "",
			Addr:     rdsAddr,
			Password: rdsCfg.MayString("PASSWORD", ""),
			DB:       rdsCfg.MayInt("DB", 0),
		},
	}

	st, err := store.Open(ctx, cfg, store.WithLogger(*l))
	if err != nil && cfg.RDS.Enabled {
		// the cache is optional, serve from postgres alone
		l.Warn().Err(err).Str("addr", rdsAddr).Msg("redis unavailable, case list cache disabled")
		cfg.RDS.Enabled = false
		st, err = store.Open(ctx, cfg, store.WithLogger(*l))
	}
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	repokit.MustGuard(ctx, st)
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	var reg *metrics.Registry
	if apiCfg.MayBool("METRICS", true) {
		reg = metrics.New()
	}

	// http server (reads CORE_API_API_PORT)
	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Logger:         l,
			Metrics:        reg,
			AllowedOrigins: apiCfg.MayCSV("CORS_ORIGINS", nil),
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	// run until SIGINT/SIGTERM, then drain in flight requests
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
	l.Info().Msg("labqc-api stopped")
}
