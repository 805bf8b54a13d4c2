package store

import "refstar/internal/platform/config"

// Config aggregates per backend configuration
type Config struct {
	PG   PGConfig
	Lite LiteConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int
}

// LiteConfig configures the sqlite catalog file
type LiteConfig struct {
	Enabled  bool
	Path     string
	ReadOnly bool
	LogSQL   bool
}

// FromConfig reads SERVICE_PGSQL_* and SERVICE_SQLITE_*, a backend is enabled when its location is set
func FromConfig(root config.Conf) Config {
	pg := root.Prefix("SERVICE_PGSQL_")
	lite := root.Prefix("SERVICE_SQLITE_")

	url := pg.MayString("DBURL", "")
	path := lite.MayString("PATH", "")
	return Config{
		PG: PGConfig{
			Enabled:     url != "",
			URL:         url,
			MaxConns:    int32(pg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pg.MayInt("SLOW_MS", 500),
			LogSQL:      pg.MayBool("LOG_SQL", false),
		},
		Lite: LiteConfig{
			Enabled:  path != "",
			Path:     path,
			ReadOnly: lite.MayBool("READ_ONLY", true),
			LogSQL:   lite.MayBool("LOG_SQL", false),
		},
	}
}
