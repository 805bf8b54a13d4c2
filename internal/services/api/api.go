// Package api provides the HTTP API for the application
package api

import (
	"net/http"

	"refstar/internal/platform/config"
	"refstar/internal/platform/logger"
	"refstar/internal/platform/metrics"
	phttp "refstar/internal/platform/net/http"
	"refstar/internal/platform/store"

	"refstar/internal/modkit"
	"refstar/internal/modkit/httpkit"
	"refstar/internal/modkit/module"
	"refstar/internal/modkit/swaggerkit"

	metamod "refstar/internal/services/api/meta/module"
	refmod "refstar/internal/services/api/refstar/module"

	// catalog module (owns the View and Stats ports)
	catmod "refstar/internal/services/catalog/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	Metrics        *metrics.Collector
	EnableSwagger  bool
	EnableProfiler bool
	EnableMetrics  bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg:     opt.Config,
		Metrics: opt.Metrics,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
		deps.Lite = opt.Store.Lite
	}

	// Construct the catalog module first and extract its read ports
	catalog := catmod.New(deps)
	cat := module.MustPortsOf[catmod.Ports](catalog)

	// Inject them into the refstar module
	refstar := refmod.New(
		deps,
		modkit.WithPorts(refmod.Ports{
			View:  cat.View,
			Stats: cat.Stats,
		}),
	)

	mods := []module.Module{
		metamod.New(deps),
		catalog, // no routes
		refstar,
	}

	// load balancer probe, answered ahead of routing
	r.Use(httpkit.Heartbeat("/health"))

	stack := httpkit.CommonStack()
	if opt.Metrics != nil {
		stack = append([]func(http.Handler) http.Handler{opt.Metrics.Middleware}, stack...)
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		// Swagger + profiler + metrics
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
		if opt.EnableMetrics {
			r.Handle("/metrics", opt.Metrics.Handler())
		}

		for _, m := range mods {
			m.MountRoutes(api)
		}
	})
}
