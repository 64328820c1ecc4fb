// Package api provides the HTTP API for the application
package api

import (
	"net/http"

	"labqc/internal/platform/config"
	"labqc/internal/platform/logger"
	"labqc/internal/platform/metrics"
	phttp "labqc/internal/platform/net/http"
	"labqc/internal/platform/store"

	"labqc/internal/modkit"
	"labqc/internal/modkit/httpkit"
	"labqc/internal/modkit/module"
	"labqc/internal/modkit/swaggerkit"

	anmod "labqc/internal/services/api/analytics/module"
	casesmod "labqc/internal/services/api/cases/module"
	metamod "labqc/internal/services/api/meta/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	Metrics        *metrics.Registry
	AllowedOrigins []string
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		KV:  opt.Store.KV,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}
	if opt.Metrics != nil {
		deps.Prom = opt.Metrics.Registerer()
	}

	// cases owns the record store and exports the full list port
	cases := casesmod.New(deps)
	lister := module.MustPortsOf[casesmod.Ports](cases).Cases

	// analytics reads through the cases port
	analytics := anmod.New(
		deps,
		modkit.WithPorts(anmod.Ports{
			Cases: lister,
		}),
	)

	mods := []module.Module{
		metamod.New(deps),
		cases,
		analytics,
	}

	stack := httpkit.CommonStack(opt.AllowedOrigins...)
	if opt.Metrics != nil {
		r.Handle("/metrics", opt.Metrics.Handler())
		stack = append([]func(http.Handler) http.Handler{opt.Metrics.Middleware()}, stack...)
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
