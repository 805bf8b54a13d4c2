package store

import (
	"context"
	"fmt"
	"time"

	"refstar/internal/platform/store/pg"
	"refstar/internal/platform/store/sqlite"
)

// backoff bounds the wait for a postgres that is still starting
type backoff struct {
	attempts int
	timeout  time.Duration // per attempt
	start    time.Duration
	ceiling  time.Duration
}

var pgBackoff = backoff{attempts: 20, timeout: 3 * time.Second, start: 150 * time.Millisecond, ceiling: 2 * time.Second}

// retry calls try until it succeeds, attempts run out or ctx ends, onFail sees every failed attempt
func (b backoff) retry(ctx context.Context, try func(context.Context) error, onFail func(attempt int, wait time.Duration, err error)) error {
	wait := b.start
	var err error
	for attempt := 1; attempt <= b.attempts; attempt++ {
		actx, cancel := context.WithTimeout(ctx, b.timeout)
		err = try(actx)
		cancel()
		if err == nil {
			return nil
		}
		if attempt == b.attempts {
			break
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		onFail(attempt, wait, err)

		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		wait = min(wait*2, b.ceiling)
	}
	return fmt.Errorf("gave up after %d attempts: %w", b.attempts, err)
}

// openPG publishes the adapter only once the pool answers a ping
func openPG(ctx context.Context, cfg PGConfig, s *Store) (*pgAdapter, error) {
	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.URL,
		MaxConns: cfg.MaxConns,
		SlowMs:   cfg.SlowQueryMs,
	}, nil)
	if err != nil {
		return nil, err
	}

	err = pgBackoff.retry(ctx, p.Pool.Ping, func(attempt int, wait time.Duration, err error) {
		s.Log.Warn().Err(err).Int("attempt", attempt).Dur("backoff", wait).Msg("postgres not ready")
	})
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return newPGAdapter(p, s.Tracer), nil
}

// openLite opens the catalog file, sqlite needs no retry loop
func openLite(ctx context.Context, cfg LiteConfig, s *Store) (*liteAdapter, error) {
	db, err := sqlite.Open(ctx, sqlite.Config{Path: cfg.Path, ReadOnly: cfg.ReadOnly})
	if err != nil {
		return nil, err
	}
	return newLiteAdapter(db, s.Tracer), nil
}
