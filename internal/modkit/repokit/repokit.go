// Package repokit is what repositories and services see of the store: the query seams,
// repo binding and transaction hooks
package repokit

import (
	"context"
	"fmt"
	"time"

	"refstar/internal/platform/store"
)

type (
	// Queryer runs statements, either on the pool or inside a transaction
	Queryer = store.RowQuerier

	// TxRunner is a Queryer that can also open transactions
	TxRunner = store.TxRunner

	// Rows is a query result set
	Rows = store.Rows

	// Row is a single row result
	Row = store.Row

	// CommandTag reports what a statement changed
	CommandTag = store.CommandTag
)

// Binder binds a repo to a Queryer, typically once per transaction
type Binder[T any] interface {
	Bind(Queryer) T
}

// BeginHook runs first inside every transaction it is attached to
type BeginHook func(ctx context.Context, q Queryer) error

// ReadOnly marks the Postgres transaction read only so a stray write fails fast
func ReadOnly(ctx context.Context, q Queryer) error {
	_, err := q.Exec(ctx, "SET TRANSACTION READ ONLY")
	return err
}

// WithBeginHooks returns inner with hooks run at the start of each Tx, statements outside Tx pass straight through
func WithBeginHooks(inner TxRunner, hooks ...BeginHook) TxRunner {
	return hooked{TxRunner: inner, hooks: hooks}
}

type hooked struct {
	TxRunner
	hooks []BeginHook
}

func (h hooked) Tx(ctx context.Context, fn func(Queryer) error) error {
	return h.TxRunner.Tx(ctx, func(q Queryer) error {
		for _, hook := range h.hooks {
			if err := hook(ctx, q); err != nil {
				return err
			}
		}
		return fn(q)
	})
}

// Guarder checks its backends are reachable
type Guarder interface {
	Guard(context.Context) error
}

// MustGuard panics when g does not pass its guard within timeout, for process startup
func MustGuard(ctx context.Context, timeout time.Duration, g Guarder) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := g.Guard(ctx); err != nil {
		panic(fmt.Errorf("dependency guard failed: %w", err))
	}
}
