// Package sqlite opens a local catalog file through the pure Go modernc driver
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	perr "refstar/internal/platform/errors"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// Config selects the catalog file
type Config struct {
	Path string

	// ReadOnly refuses writes on every connection; the file must already exist
	ReadOnly bool

	// BusyTimeoutMs bounds lock waits, zero means 5000
	BusyTimeoutMs int
}

// DSN renders the modernc connection string with pragmas applied per connection
func DSN(cfg Config) string {
	busy := cfg.BusyTimeoutMs
	if busy <= 0 {
		busy = 5000
	}
	q := url.Values{}
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busy))
	if cfg.ReadOnly {
		// journal mode is left alone, switching it writes the file header
		q.Add("_pragma", "query_only(1)")
	} else {
		q.Add("_pragma", "journal_mode(WAL)")
	}
	return cfg.Path + "?" + q.Encode()
}

// Open opens and pings the catalog file
// a writable open creates the parent directory, a read only open requires the file
func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	if cfg.Path == "" {
		return nil, perr.WithField(perr.InvalidArgf("sqlite path is required"), "path")
	}
	if cfg.ReadOnly {
		if _, err := os.Stat(cfg.Path); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "sqlite catalog %s", cfg.Path)
		}
	} else if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o700); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	db, err := sql.Open("sqlite", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("opening sqlite catalog: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "sqlite catalog %s", cfg.Path)
	}
	return db, nil
}
