// Package repo provides sql access to the star catalog for Postgres and SQLite
package repo

import (
	"context"
	"fmt"
	"strings"

	"refstar/internal/core/astrometry"
	"refstar/internal/modkit/repokit"
	"refstar/internal/platform/store"
)

// insertChunk keeps one INSERT well below the SQLite bind variable limit
const insertChunk = 500

// Repo is the persistence surface for the catalog
type Repo interface {
	Lookup(ctx context.Context, name string) ([]astrometry.Entry, error)
	ByClass(ctx context.Context, c astrometry.Class) ([]astrometry.Entry, error)
	Counts(ctx context.Context) (map[string]int64, error)

	// EnsureSchema and Insert seed local catalogs for tests and demos
	EnsureSchema(ctx context.Context) error
	Insert(ctx context.Context, rows []astrometry.Entry) (int, error)
}

type (
	// SQL binds the repo for one catalog table
	SQL struct{ table string }
	// queries implements the Repo interface
	queries struct {
		q     repokit.Queryer
		table string
	}
)

// NewSQL returns a binder for table, it panics when table is not a plain identifier
func NewSQL(table string) repokit.Binder[Repo] {
	if err := ValidTable(table); err != nil {
		panic(err)
	}
	return SQL{table: table}
}

// Bind wires a Queryer to the repo
func (b SQL) Bind(q repokit.Queryer) Repo { return &queries{q: q, table: b.table} }

// Table returns the bound table name
func (b SQL) Table() string { return b.table }

const columns = `st_name, ra, "dec", sy_dist, sy_pmra, sy_pmdec, st_radv, st_psfgrade`

func (r *queries) Lookup(ctx context.Context, name string) ([]astrometry.Entry, error) {
	sql := fmt.Sprintf(`SELECT %s FROM "%s" WHERE st_name = $1`, columns, r.table)
	return r.entries(ctx, sql, name)
}

// rows come back in storage order, the first acceptable one wins so no sort is applied
func (r *queries) ByClass(ctx context.Context, c astrometry.Class) ([]astrometry.Entry, error) {
	sql := fmt.Sprintf(`SELECT %s FROM "%s" WHERE st_psfgrade = $1`, columns, r.table)
	return r.entries(ctx, sql, c.String())
}

func (r *queries) entries(ctx context.Context, sql string, args ...any) ([]astrometry.Entry, error) {
	return store.Many(ctx, r.q, scanEntry, sql, args...)
}

func scanEntry(row store.Row) (e astrometry.Entry, err error) {
	err = row.Scan(&e.Name, &e.RA, &e.Dec, &e.Distance, &e.PMRA, &e.PMDec, &e.RadialVelocity, &e.Grade)
	return e, err
}

type gradeCount struct {
	grade string
	n     int64
}

func (r *queries) Counts(ctx context.Context) (map[string]int64, error) {
	sql := fmt.Sprintf(`SELECT COALESCE(st_psfgrade, ''), COUNT(*) FROM "%s" GROUP BY st_psfgrade`, r.table)
	counts, err := store.Many(ctx, r.q, func(row store.Row) (c gradeCount, err error) {
		err = row.Scan(&c.grade, &c.n)
		return c, err
	}, sql)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(counts))
	for _, c := range counts {
		out[c.grade] += c.n
	}
	return out, nil
}

func (r *queries) EnsureSchema(ctx context.Context) error {
	for _, stmt := range Schema(r.table) {
		if _, err := r.q.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (r *queries) Insert(ctx context.Context, xs []astrometry.Entry) (int, error) {
	n := 0
	for len(xs) > 0 {
		k := min(len(xs), insertChunk)
		if err := r.insertChunk(ctx, xs[:k]); err != nil {
			return n, err
		}
		n += k
		xs = xs[k:]
	}
	return n, nil
}

func (r *queries) insertChunk(ctx context.Context, xs []astrometry.Entry) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, `INSERT INTO "%s" (%s) VALUES `, r.table, columns)

	args := make([]any, 0, len(xs)*8)
	for i, e := range xs {
		if i > 0 {
			sb.WriteByte(',')
		}
		base := i*8 + 1
		fmt.Fprintf(&sb, "($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base, base+1, base+2, base+3, base+4, base+5, base+6, base+7)
		args = append(args, e.Name, e.RA, e.Dec, e.Distance, e.PMRA, e.PMDec, e.RadialVelocity, e.Grade)
	}
	_, err := r.q.Exec(ctx, sb.String(), args...)
	return err
}
