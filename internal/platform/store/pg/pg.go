// Package pg opens the pgxpool behind the Postgres catalog seam
package pg

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config configures pgxpool
type Config struct {
	URL      string
	MaxConns int32
	SlowMs   int
}

// PG is a postgres pool plus its slow query threshold
type PG struct {
	Pool   *pgxpool.Pool
	SlowMs int
}

var newPool = pgxpool.NewWithConfig

// Open parses cfg, applies the optional pool mutator and creates the pool
// the pool connects lazily; callers ping it before publishing
func Open(ctx context.Context, cfg Config, poolCfgMut func(*pgxpool.Config)) (*PG, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	if poolCfgMut != nil {
		poolCfgMut(pcfg)
	}
	pool, err := newPool(ctx, pcfg)
	if err != nil {
		return nil, err
	}
	return &PG{Pool: pool, SlowMs: cfg.SlowMs}, nil
}

// Close closes the pool, nil safe
func (p *PG) Close() {
	if p != nil && p.Pool != nil {
		p.Pool.Close()
	}
}
