package repo

import (
	"fmt"
	"regexp"

	perr "refstar/internal/platform/errors"
)

// DefaultTable is the catalog table name used by the planning database
const DefaultTable = "Stars"

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidTable checks that name can be used as a quoted table identifier
func ValidTable(name string) error {
	if !identRe.MatchString(name) || len(name) > 63 {
		return perr.WithField(perr.InvalidArgf("catalog table %q is not a plain identifier", name), "table")
	}
	return nil
}

// Schema returns the DDL for table, valid for both Postgres and SQLite
func Schema(table string) []string {
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS "%s" (
	st_name     TEXT NOT NULL,
	ra          DOUBLE PRECISION,
	"dec"       DOUBLE PRECISION,
	sy_dist     DOUBLE PRECISION,
	sy_pmra     DOUBLE PRECISION,
	sy_pmdec    DOUBLE PRECISION,
	st_radv     DOUBLE PRECISION,
	st_psfgrade TEXT
)`, table),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS "%s_name_idx" ON "%s" (st_name)`, table, table),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS "%s_grade_idx" ON "%s" (st_psfgrade)`, table, table),
	}
}
