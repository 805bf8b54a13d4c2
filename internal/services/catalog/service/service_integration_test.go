//go:build integration_pg
// +build integration_pg

package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"refstar/internal/core/astrometry"
	"refstar/internal/modkit/repokit"
	perr "refstar/internal/platform/errors"
	"refstar/internal/platform/store"
	"refstar/internal/services/catalog/catalogtest"
	"refstar/internal/services/catalog/domain"
	"refstar/internal/services/catalog/repo"
	"refstar/internal/services/catalog/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startPostgres launches a disposable Postgres and returns DSN + stop func
func startPostgres(t *testing.T) (dsn string, stop func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "catalog",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections"),
		).WithDeadline(2 * time.Minute),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		cancel()
		t.Fatalf("failed to start postgres container: %v", err)
	}
	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get container host: %v", err)
	}
	mp, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get mapped port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://postgres:postgres@%s:%s/catalog?sslmode=disable", host, mp.Port())
	return dsn, func() {
		_ = c.Terminate(context.Background())
		cancel()
	}
}

func TestPostgres_ImportAndReadOnlyView(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	st, err := store.Open(ctx, store.Config{PG: store.PGConfig{Enabled: true, URL: dsn, MaxConns: 2}})
	require.NoError(t, err)
	defer func() { _ = st.Close(ctx) }()

	svc := service.New(st.PG, repo.NewSQL(repo.DefaultTable), service.WithReadHooks(repokit.ReadOnly))
	partial := catalogtest.Star("HD 3", "B", 3, 3)
	partial.Distance = nil
	catalogtest.Seed(t, st.PG, catalogtest.Star("HD 1", "A", 1, 1), catalogtest.Star("HD 2", "A", 2, 2), partial)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)

	err = svc.View(ctx, func(r domain.Reader) error {
		rows, err := r.Lookup(ctx, "HD 3")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Nil(t, rows[0].Distance)

		as, err := r.ByClass(ctx, astrometry.ClassA)
		require.NoError(t, err)
		assert.Len(t, as, 2)
		return nil
	})
	require.NoError(t, err)

	ro := repokit.WithBeginHooks(st.PG, repokit.ReadOnly)
	err = ro.Tx(ctx, func(q repokit.Queryer) error {
		_, err := repo.NewSQL(repo.DefaultTable).Bind(q).Insert(ctx, []astrometry.Entry{catalogtest.Star("HD 9", "C", 9, 9)})
		return err
	})
	require.Error(t, err)
	assert.True(t, perr.IsSQLState(err, "25006"), "writes inside a read only transaction must fail: %v", err)
}
