package store

import (
	"context"
	"errors"
	"time"

	"refstar/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgAdapter implements TxRunner over a pgx pool
type pgAdapter struct {
	p     *pg.PG
	probe probe
}

func newPGAdapter(p *pg.PG, t QueryTracer) *pgAdapter {
	return &pgAdapter{p: p, probe: probe{backend: "pg", tracer: t, slowUS: int64(p.SlowMs) * 1000}}
}

func (a *pgAdapter) Ping(ctx context.Context) error {
	if a == nil || a.p == nil || a.p.Pool == nil {
		return errors.New("pg: nil adapter")
	}
	return a.p.Pool.Ping(ctx)
}

func (a *pgAdapter) Close() error { a.p.Close(); return nil }

func (a *pgAdapter) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	return pgExec(ctx, a.p.Pool, a.probe, sql, args)
}

func (a *pgAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	return pgQuery(ctx, a.p.Pool, a.probe, sql, args)
}

func (a *pgAdapter) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return pgQueryRow(ctx, a.p.Pool, a.probe, sql, args)
}

// Tx runs fn in one transaction, rolled back when fn fails
func (a *pgAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.p.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(pgTx{tx: tx, probe: a.probe}); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

// pgConn is the part of pgxpool.Pool and pgx.Tx the adapters use
type pgConn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func pgExec(ctx context.Context, c pgConn, p probe, sql string, args []any) (CommandTag, error) {
	start := time.Now()
	ct, err := c.Exec(ctx, sql, args...)
	p.emit(ctx, sql, args, start, err)
	return pgTag{ct}, err
}

func pgQuery(ctx context.Context, c pgConn, p probe, sql string, args []any) (Rows, error) {
	start := time.Now()
	rs, err := c.Query(ctx, sql, args...)
	p.emit(ctx, sql, args, start, err)
	if err != nil {
		return nil, err
	}
	return pgRows{r: rs}, nil
}

func pgQueryRow(ctx context.Context, c pgConn, p probe, sql string, args []any) Row {
	start := time.Now()
	r := c.QueryRow(ctx, sql, args...)
	// trace after Scan so the scan error is reported
	return scanHook{r: r, after: func(err error) { p.emit(ctx, sql, args, start, err) }}
}

// pgTx is the RowQuerier handed to Tx callbacks
type pgTx struct {
	tx    pgx.Tx
	probe probe
}

func (t pgTx) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	return pgExec(ctx, t.tx, t.probe, sql, args)
}

func (t pgTx) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	return pgQuery(ctx, t.tx, t.probe, sql, args)
}

func (t pgTx) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return pgQueryRow(ctx, t.tx, t.probe, sql, args)
}

// scanHook calls after with the Scan result
type scanHook struct {
	r     Row
	after func(error)
}

func (x scanHook) Scan(dst ...any) error {
	err := x.r.Scan(dst...)
	if x.after != nil {
		x.after(err)
	}
	return err
}

type pgRows struct{ r pgx.Rows }

func (x pgRows) Next() bool            { return x.r.Next() }
func (x pgRows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x pgRows) Err() error            { return x.r.Err() }
func (x pgRows) Close()                { x.r.Close() }
func (x pgRows) Columns() []string {
	f := x.r.FieldDescriptions()
	out := make([]string, len(f))
	for i := range f {
		out[i] = f[i].Name
	}
	return out
}

type pgTag struct{ t pgconn.CommandTag }

func (t pgTag) String() string      { return t.t.String() }
func (t pgTag) RowsAffected() int64 { return t.t.RowsAffected() }
