package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"time"

	"refstar/internal/platform/config"
	"refstar/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Server owns the chi mux and the listener, NewServer reads its settings from a config scope
//
//	ADDR              listen address, default :4000
//	READ_TIMEOUT_MS   full request read, default 15000
//	WRITE_TIMEOUT_MS  response write, default 35000 so the 30s handler timeout answers first
//	IDLE_TIMEOUT_MS   keep alive, default 60000
//	SHUTDOWN_MS       drain window once ctx ends, default 10000
type Server struct {
	addr  string
	mux   *chi.Mux
	srv   *stdhttp.Server
	grace time.Duration
}

func ms(cfg config.Conf, key string, def int) time.Duration {
	return time.Duration(cfg.MayInt(key, def)) * time.Millisecond
}

// NewServer builds the server, opts see the mux before any route is mounted
func NewServer(cfg config.Conf, opts ...func(*chi.Mux)) *Server {
	m := chi.NewRouter()
	for _, o := range opts {
		o(m)
	}
	s := &Server{
		addr:  cfg.MayString("ADDR", ":4000"),
		mux:   m,
		grace: ms(cfg, "SHUTDOWN_MS", 10_000),
	}
	s.srv = &stdhttp.Server{
		Addr:              s.addr,
		Handler:           m,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       ms(cfg, "READ_TIMEOUT_MS", 15_000),
		WriteTimeout:      ms(cfg, "WRITE_TIMEOUT_MS", 35_000),
		IdleTimeout:       ms(cfg, "IDLE_TIMEOUT_MS", 60_000),
	}
	return s
}

// Router returns a Router facade over the internal chi mux
func (s *Server) Router() Router {
	return AdaptChi(s.mux)
}

// Addr returns the listening address
func (s *Server) Addr() string { return s.addr }

// Run starts the server and blocks until it is shut down or ctx ends
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")
	stop := context.AfterFunc(ctx, func() {
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.grace)
		defer cancel()
		if err := s.srv.Shutdown(sctx); err != nil {
			log.Warn().Err(err).Msg("http shutdown")
		}
	})
	defer stop()

	log.Info().Str("addr", s.addr).Msg("http listening")
	if err := s.srv.ListenAndServe(); !errors.Is(err, stdhttp.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
