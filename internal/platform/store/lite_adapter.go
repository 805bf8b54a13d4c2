package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// liteAdapter implements TxRunner over database/sql for the sqlite catalog
type liteAdapter struct {
	db    *sql.DB
	probe probe
}

func newLiteAdapter(db *sql.DB, t QueryTracer) *liteAdapter {
	return &liteAdapter{db: db, probe: probe{backend: "sqlite", tracer: t, slowUS: -1}}
}

func (a *liteAdapter) Ping(ctx context.Context) error {
	if a == nil || a.db == nil {
		return errors.New("sqlite: nil adapter")
	}
	return a.db.PingContext(ctx)
}

func (a *liteAdapter) Close() error { return a.db.Close() }

func (a *liteAdapter) Exec(ctx context.Context, q string, args ...any) (CommandTag, error) {
	return liteExec(ctx, a.db, a.probe, q, args)
}

func (a *liteAdapter) Query(ctx context.Context, q string, args ...any) (Rows, error) {
	return liteQuery(ctx, a.db, a.probe, q, args)
}

func (a *liteAdapter) QueryRow(ctx context.Context, q string, args ...any) Row {
	return liteQueryRow(ctx, a.db, a.probe, q, args)
}

// Tx runs fn in one transaction, rolled back when fn fails
func (a *liteAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(liteTx{tx: tx, probe: a.probe}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// sqlConn is the part of *sql.DB and *sql.Tx the adapters use
type sqlConn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func liteExec(ctx context.Context, c sqlConn, p probe, q string, args []any) (CommandTag, error) {
	start := time.Now()
	res, err := c.ExecContext(ctx, q, args...)
	p.emit(ctx, q, args, start, err)
	if err != nil {
		return liteTag{}, err
	}
	n, _ := res.RowsAffected()
	return liteTag{n: n}, nil
}

func liteQuery(ctx context.Context, c sqlConn, p probe, q string, args []any) (Rows, error) {
	start := time.Now()
	rs, err := c.QueryContext(ctx, q, args...)
	p.emit(ctx, q, args, start, err)
	if err != nil {
		return nil, err
	}
	return liteRows{r: rs}, nil
}

func liteQueryRow(ctx context.Context, c sqlConn, p probe, q string, args []any) Row {
	start := time.Now()
	r := c.QueryRowContext(ctx, q, args...)
	return scanHook{r: r, after: func(err error) { p.emit(ctx, q, args, start, err) }}
}

type liteTx struct {
	tx    *sql.Tx
	probe probe
}

func (t liteTx) Exec(ctx context.Context, q string, args ...any) (CommandTag, error) {
	return liteExec(ctx, t.tx, t.probe, q, args)
}

func (t liteTx) Query(ctx context.Context, q string, args ...any) (Rows, error) {
	return liteQuery(ctx, t.tx, t.probe, q, args)
}

func (t liteTx) QueryRow(ctx context.Context, q string, args ...any) Row {
	return liteQueryRow(ctx, t.tx, t.probe, q, args)
}

type liteRows struct{ r *sql.Rows }

func (x liteRows) Next() bool            { return x.r.Next() }
func (x liteRows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x liteRows) Err() error            { return x.r.Err() }
func (x liteRows) Close()                { _ = x.r.Close() }
func (x liteRows) Columns() []string {
	cols, _ := x.r.Columns()
	return cols
}

// liteTag renders like a pg command tag so callers can treat both alike
type liteTag struct{ n int64 }

func (t liteTag) String() string      { return fmt.Sprintf("OK %d", t.n) }
func (t liteTag) RowsAffected() int64 { return t.n }
