// Package catalogtest seeds throwaway SQLite catalogs for tests
package catalogtest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"refstar/internal/core/astrometry"
	"refstar/internal/core/ephem"
	"refstar/internal/modkit/repokit"
	"refstar/internal/platform/store"
	"refstar/internal/services/catalog/repo"
	"refstar/internal/services/catalog/service"
)

// Star returns a complete entry at ra, dec 10 pc away with no motion
// an empty grade is stored as NULL
func Star(name, grade string, ra, dec float64) astrometry.Entry {
	dist, zero := 10.0, 0.0
	e := astrometry.Entry{
		Name:           name,
		RA:             &ra,
		Dec:            &dec,
		Distance:       &dist,
		PMRA:           &zero,
		PMDec:          &zero,
		RadialVelocity: &zero,
	}
	if grade != "" {
		e.Grade = &grade
	}
	return e
}

// Ecliptic returns a Star placed at ecliptic lon, lat in degrees
func Ecliptic(name, grade string, lon, lat float64) astrometry.Entry {
	ra, dec := astrometry.EquatorialOf(astrometry.Deg(lon), astrometry.Deg(lat))
	return Star(name, grade, ra.Degrees(), dec.Degrees())
}

// AntiSunLongitude is the ecliptic longitude opposite the Sun at t, where pointing is always allowed
func AntiSunLongitude(t time.Time) float64 {
	lon, _, _ := astrometry.Spherical(ephem.SunFromEarth(t))
	return (lon + 180).Wrap180().Degrees()
}

// SQLite writes rows into a fresh catalog file and returns its path
func SQLite(t testing.TB, rows ...astrometry.Entry) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.db")
	Seed(t, Open(t, path).Lite, rows...)
	return path
}

// Seed creates the catalog table on db when missing and inserts rows in order
func Seed(t testing.TB, db repokit.TxRunner, rows ...astrometry.Entry) {
	t.Helper()
	ctx := context.Background()
	err := db.Tx(ctx, func(q repokit.Queryer) error {
		r := repo.NewSQL(repo.DefaultTable).Bind(q)
		if err := r.EnsureSchema(ctx); err != nil {
			return err
		}
		_, err := r.Insert(ctx, rows)
		return err
	})
	if err != nil {
		t.Fatalf("seed catalog: %v", err)
	}
}

// Open opens a writable SQLite store at path and closes it with the test
func Open(t testing.TB, path string) *store.Store {
	t.Helper()
	ctx := context.Background()
	st, err := store.Open(ctx, store.Config{Lite: store.LiteConfig{Enabled: true, Path: path}})
	if err != nil {
		t.Fatalf("open catalog: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(ctx) })
	return st
}

// Service binds a catalog service to the SQLite seam of st
func Service(st *store.Store) *service.Svc {
	return service.New(st.Lite, repo.NewSQL(repo.DefaultTable))
}
