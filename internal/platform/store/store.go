// Package store provides the sql seams behind the star catalog
//
// Postgres (pgx) and a local SQLite file (modernc) expose the same small
// RowQuerier/TxRunner surface so repos are written once against "$n" placeholders.
package store

import (
	"context"
	"errors"
	"fmt"

	perr "refstar/internal/platform/errors"
	"refstar/internal/platform/logger"
)

// Store holds the enabled backends, the zero value has none
type Store struct {
	// Log is used by subclients, zero means a no op zerolog logger
	Log logger.Logger

	// Tracer receives query events, nil when sql logging is off
	Tracer QueryTracer

	// PG is the postgres seam, nil when disabled
	PG TxRunner

	// Lite is the sqlite seam, nil when disabled
	Lite TxRunner
}

// Row exposes the minimal scan contract a single row needs
type Row interface {
	Scan(dest ...any) error
}

// Rows exposes the minimal iteration and scan for a result set
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
	Columns() []string
}

// CommandTag is a tiny interface to inspect command results
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is the read and write surface repos use
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner wraps transaction execution around a function
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Pinger is any seam that can report readiness
type Pinger interface{ Ping(context.Context) error }

// Open constructs a Store with the requested backends
// if a later backend fails the earlier ones are closed again
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}
	s.Log = s.Log.With().Logger()
	if s.Tracer == nil && (cfg.PG.LogSQL || cfg.Lite.LogSQL) {
		s.Tracer = LogTracer(s.Log)
	}

	if cfg.PG.Enabled {
		a, err := openPG(ctx, cfg.PG, s)
		if err != nil {
			return nil, err
		}
		s.PG = a
	}

	if cfg.Lite.Enabled {
		a, err := openLite(ctx, cfg.Lite, s)
		if err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
		s.Lite = a
	}

	return s, nil
}

// Catalog returns the seam catalog reads go through, postgres first
func (s *Store) Catalog() (TxRunner, error) {
	switch {
	case s == nil:
		return nil, perr.Unavailablef("no store")
	case s.PG != nil:
		return s.PG, nil
	case s.Lite != nil:
		return s.Lite, nil
	default:
		return nil, perr.Unavailablef("no catalog backend configured")
	}
}

// Guard pings every enabled backend
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	var errs []error
	for _, b := range []struct {
		name string
		seam TxRunner
	}{{"pg", s.PG}, {"sqlite", s.Lite}} {
		if p, ok := b.seam.(Pinger); ok {
			if err := p.Ping(ctx); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", b.name, err))
			}
		}
	}
	return errors.Join(errs...)
}

// Close closes all initialized backends, nil ones are ignored
func (s *Store) Close(_ context.Context) error {
	if s == nil {
		return nil
	}
	var errs []error
	for _, seam := range []TxRunner{s.PG, s.Lite} {
		if c, ok := seam.(interface{ Close() error }); ok {
			if e := c.Close(); e != nil {
				errs = append(errs, e)
			}
		}
	}
	return errors.Join(errs...)
}
