package service_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"refstar/internal/core/astrometry"
	"refstar/internal/modkit/repokit"
	perr "refstar/internal/platform/errors"
	"refstar/internal/services/catalog/catalogtest"
	"refstar/internal/services/catalog/domain"
	"refstar/internal/services/catalog/repo"
	"refstar/internal/services/catalog/service"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(es []astrometry.Entry) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.Name
	}
	return out
}

func seeded(t *testing.T, rows ...astrometry.Entry) *service.Svc {
	t.Helper()
	st := catalogtest.Open(t, filepath.Join(t.TempDir(), "c.db"))
	catalogtest.Seed(t, st.Lite, rows...)
	return catalogtest.Service(st)
}

func TestView_LookupAndClassOrder(t *testing.T) {
	svc := seeded(t,
		catalogtest.Star("HD 3", "B", 3, 3),
		catalogtest.Star("HD 1", "A", 1, 1),
		catalogtest.Star("HD 2", "A", 2, 2),
		catalogtest.Star("HD 4", "", 4, 4),
	)

	err := svc.View(context.Background(), func(r domain.Reader) error {
		rows, err := r.Lookup(context.Background(), "HD 2")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, 2.0, *rows[0].RA)
		assert.Equal(t, astrometry.ClassA, rows[0].Class())

		as, err := r.ByClass(context.Background(), astrometry.ClassA)
		require.NoError(t, err)
		assert.Equal(t, []string{"HD 1", "HD 2"}, names(as), "rows keep storage order")

		bs, err := r.ByClass(context.Background(), astrometry.ClassB)
		require.NoError(t, err)
		assert.Equal(t, []string{"HD 3"}, names(bs))

		none, err := r.Lookup(context.Background(), "HD 9")
		require.NoError(t, err)
		assert.Empty(t, none)
		return nil
	})
	require.NoError(t, err)
}

func TestView_NullColumnsRoundTrip(t *testing.T) {
	partial := catalogtest.Star("HD 5", "C", 5, 5)
	partial.Distance = nil
	partial.RadialVelocity = nil
	svc := seeded(t, partial)

	err := svc.View(context.Background(), func(r domain.Reader) error {
		rows, err := r.Lookup(context.Background(), "HD 5")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Nil(t, rows[0].Distance)
		assert.Nil(t, rows[0].RadialVelocity)
		require.NotNil(t, rows[0].PMRA)

		_, err = rows[0].Record()
		assert.ErrorIs(t, err, astrometry.ErrIncompleteRecord)
		return nil
	})
	require.NoError(t, err)
}

func TestView_DuplicateNames(t *testing.T) {
	svc := seeded(t, catalogtest.Star("HD 7", "A", 1, 1), catalogtest.Star("HD 7", "B", 2, 2))
	err := svc.View(context.Background(), func(r domain.Reader) error {
		rows, err := r.Lookup(context.Background(), "HD 7")
		require.NoError(t, err)
		assert.Len(t, rows, 2)
		return nil
	})
	require.NoError(t, err)
}

func TestView_NameIsMatchedExactly(t *testing.T) {
	svc := seeded(t, catalogtest.Star("Caf\u00e9", "A", 1, 1))
	err := svc.View(context.Background(), func(r domain.Reader) error {
		rows, err := r.Lookup(context.Background(), "Cafe\u0301")
		require.NoError(t, err)
		assert.Empty(t, rows, "the repo does not canonicalize, callers do")

		rows, err = r.Lookup(context.Background(), astrometry.CanonicalName(" Cafe\u0301 "))
		require.NoError(t, err)
		assert.Len(t, rows, 1)
		return nil
	})
	require.NoError(t, err)
}

func TestView_ReturnsCallbackErrorUnchanged(t *testing.T) {
	svc := seeded(t)
	want := perr.NotFoundf("nope")
	err := svc.View(context.Background(), func(domain.Reader) error { return want })
	assert.Same(t, want, err)
}

func TestView_MissingTableIsDBError(t *testing.T) {
	st := catalogtest.Open(t, filepath.Join(t.TempDir(), "empty.db"))
	svc := catalogtest.Service(st)
	err := svc.View(context.Background(), func(r domain.Reader) error {
		_, err := r.ByClass(context.Background(), astrometry.ClassA)
		return err
	})
	require.Error(t, err)
	assert.Equal(t, perr.ErrorCodeDB, perr.CodeOf(err))
}

// failingRepo fails every read with err
type failingRepo struct {
	repo.Repo
	err error
}

func (f failingRepo) Lookup(context.Context, string) ([]astrometry.Entry, error) { return nil, f.err }

func (f failingRepo) ByClass(context.Context, astrometry.Class) ([]astrometry.Entry, error) {
	return nil, f.err
}

type failingBinder struct{ err error }

func (b failingBinder) Bind(repokit.Queryer) repo.Repo { return failingRepo{err: b.err} }

func TestView_StorageErrorsKeepTheirCause(t *testing.T) {
	st := catalogtest.Open(t, filepath.Join(t.TempDir(), "c.db"))
	driverErr := &pgconn.PgError{Code: perr.SQLStateCannotConnectNow, Message: "the database system is starting up"}
	svc := service.New(st.Lite, failingBinder{err: driverErr})

	err := svc.View(context.Background(), func(r domain.Reader) error {
		_, err := r.Lookup(context.Background(), "HD 1")
		return err
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, driverErr)
	var pgErr *pgconn.PgError
	require.ErrorAs(t, err, &pgErr)
	assert.Same(t, driverErr, pgErr)
	assert.Equal(t, perr.ErrorCodeUnavailable, perr.CodeOf(err))

	plain := errors.New("disk I/O error")
	svc = service.New(st.Lite, failingBinder{err: plain})
	err = svc.View(context.Background(), func(r domain.Reader) error {
		_, err := r.ByClass(context.Background(), astrometry.ClassB)
		return err
	})
	assert.ErrorIs(t, err, plain)
	assert.Same(t, plain, perr.Root(err))
	assert.Equal(t, perr.ErrorCodeDB, perr.CodeOf(err))
}

func TestView_ReadHooksRunFirst(t *testing.T) {
	st := catalogtest.Open(t, filepath.Join(t.TempDir(), "c.db"))
	catalogtest.Seed(t, st.Lite)
	var calls int
	hook := func(ctx context.Context, q repokit.Queryer) error {
		calls++
		_, err := q.Exec(ctx, "SELECT 1")
		return err
	}
	svc := service.New(st.Lite, repo.NewSQL(repo.DefaultTable), service.WithReadHooks(hook))
	require.NoError(t, svc.View(context.Background(), func(domain.Reader) error { return nil }))
	assert.Equal(t, 1, calls)

	boom := errors.New("boom")
	failing := service.New(st.Lite, repo.NewSQL(repo.DefaultTable),
		service.WithReadHooks(func(context.Context, repokit.Queryer) error { return boom }))
	err := failing.View(context.Background(), func(domain.Reader) error {
		t.Fatal("callback must not run after a failed hook")
		return nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, perr.ErrorCodeDB, perr.CodeOf(err))
}

func TestView_CanceledContext(t *testing.T) {
	svc := seeded(t, catalogtest.Star("HD 1", "A", 1, 1))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := svc.View(ctx, func(r domain.Reader) error {
		_, err := r.Lookup(ctx, "HD 1")
		return err
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStats(t *testing.T) {
	rows := make([]astrometry.Entry, 0, 1203)
	for i := 0; i < 1200; i++ {
		rows = append(rows, catalogtest.Star(fmt.Sprintf("HD %d", i), []string{"A", "B", "C"}[i%3], float64(i%360), 0))
	}
	rows = append(rows, catalogtest.Star("X 1", "", 1, 1), catalogtest.Star("X 2", "", 2, 2), catalogtest.Star("X 3", "D", 3, 3))
	svc := seeded(t, rows...)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(len(rows)), stats.Total)
	assert.Equal(t, map[string]int64{"A": 400, "B": 400, "C": 400, "": 2, "D": 1}, stats.ByClass)
}

func TestNew_PanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { service.New(nil, repo.NewSQL(repo.DefaultTable)) })
	st := catalogtest.Open(t, filepath.Join(t.TempDir(), "c.db"))
	assert.Panics(t, func() { service.New(st.Lite, nil) })
}
