// Package service implements catalog reads over a bound repo
package service

import (
	"context"
	"errors"

	"refstar/internal/core/astrometry"
	"refstar/internal/modkit/repokit"
	perr "refstar/internal/platform/errors"
	"refstar/internal/services/catalog/domain"
	"refstar/internal/services/catalog/repo"
)

// Service is the catalog contract
type Service interface {
	domain.ViewPort
	domain.StatsPort
}

// Svc implements the catalog service
type Svc struct {
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	view   repokit.TxRunner
}

// Option configures a Svc
type Option func(*Svc)

// WithReadHooks runs hooks at the start of every View transaction
func WithReadHooks(hooks ...repokit.BeginHook) Option {
	return func(s *Svc) {
		if len(hooks) > 0 {
			s.view = repokit.WithBeginHooks(s.db, hooks...)
		}
	}
}

// New constructs a catalog service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], opts ...Option) *Svc {
	if db == nil {
		panic("catalog.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("catalog.Service requires a non nil Repo binder")
	}
	s := &Svc{binder: binder, db: db, view: db}
	for _, o := range opts {
		o(s)
	}
	return s
}

// View runs fn against one snapshot of the catalog
// errors returned by fn come back unchanged
func (s *Svc) View(ctx context.Context, fn func(domain.Reader) error) error {
	var inner error
	err := s.view.Tx(ctx, func(q repokit.Queryer) error {
		inner = fn(reader{r: s.binder.Bind(q)})
		return inner
	})
	if err != nil && inner == nil {
		return dbErr(err, "catalog read transaction failed")
	}
	return err
}

// Stats counts rows per grade
func (s *Svc) Stats(ctx context.Context) (domain.Stats, error) {
	counts, err := s.binder.Bind(s.db).Counts(ctx)
	if err != nil {
		return domain.Stats{}, dbErr(err, "count catalog rows")
	}
	st := domain.Stats{ByClass: map[string]int64{}}
	for g, n := range counts {
		st.Total += n
		st.ByClass[g] += n
	}
	return st, nil
}

// reader maps storage failures onto service error codes
type reader struct{ r repo.Repo }

func (rd reader) Lookup(ctx context.Context, name string) ([]astrometry.Entry, error) {
	rows, err := rd.r.Lookup(ctx, name)
	return rows, dbErr(err, "catalog lookup")
}

func (rd reader) ByClass(ctx context.Context, c astrometry.Class) ([]astrometry.Entry, error) {
	rows, err := rd.r.ByClass(ctx, c)
	return rows, dbErr(err, "catalog class query")
}

// dbErr classifies a storage failure, the driver error stays the cause for errors.Is and errors.As
func dbErr(err error, msg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	}
	if _, ok := perr.As(err); ok {
		return err
	}
	return perr.FromPostgres(err, msg)
}
