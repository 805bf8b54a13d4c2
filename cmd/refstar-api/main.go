// @title         Refstar API
// @version       0.1.0
// @description   Reference star selection under the solar angle constraint

package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"refstar/internal/core/version"
	"refstar/internal/modkit/repokit"
	"refstar/internal/platform/config"
	"refstar/internal/platform/logger"
	"refstar/internal/platform/metrics"
	phttp "refstar/internal/platform/net/http"
	"refstar/internal/platform/store"
	"refstar/internal/platform/tracing"

	"refstar/internal/services/api"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early
	l := logger.Get()

	shutdown, err := tracing.Init(ctx, tracing.FromEnv(version.Info().Service))
	if err != nil {
		l.Panic().Err(err).Msg("tracing.Init failed")
	}
	defer tracing.Shutdown(context.Background(), shutdown)

	// open the catalog store (postgres and/or a local sqlite file)
	st, err := store.Open(ctx, store.FromConfig(root), store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, 5*time.Second, st)

	mc, err := metrics.New(nil)
	if err != nil {
		l.Panic().Err(err).Msg("metrics.New failed")
	}

	// http server (reads CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Logger:         l,
			Metrics:        mc,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
			EnableMetrics:  apiCfg.MayBool("METRICS", true),
		},
	)

	// run until SIGINT/SIGTERM
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
	l.Info().Msg("http server stopped")
}
