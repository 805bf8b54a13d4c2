// Package cli is the refstar command line: select, pointing, catalog and version
package cli

import (
	"context"
	"errors"
	"io"

	"refstar/internal/modkit"
	"refstar/internal/modkit/module"
	"refstar/internal/platform/config"
	perr "refstar/internal/platform/errors"
	"refstar/internal/platform/logger"
	"refstar/internal/platform/store"
	refmod "refstar/internal/services/api/refstar/module"
	refsvc "refstar/internal/services/api/refstar/service"
	catmod "refstar/internal/services/catalog/module"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// ExitStrict is the exit status of a --strict selection that found no reference star
const ExitStrict = 2

// ExitError carries a process exit status, its message has already been written
type ExitError struct {
	Code int
	Msg  string
}

func (e *ExitError) Error() string { return e.Msg }

// ExitCode maps a command error to a process exit status
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return 1
}

type app struct {
	sqlite string
	json   bool
}

// NewRootCmd builds the refstar command tree
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "refstar",
		Short: "Pick reference stars that satisfy the solar angle constraint",
		Long: `refstar reads a star catalog from Postgres (SERVICE_PGSQL_DBURL) or a local
SQLite file (SERVICE_SQLITE_PATH or --sqlite) and evaluates the sun angle of
targets and candidate reference stars over an observation window.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&a.sqlite, "sqlite", "", "path to a SQLite catalog, overrides the environment")
	root.PersistentFlags().BoolVar(&a.json, "json", false, "output as JSON")

	root.AddCommand(a.selectCmd(), a.pointingCmd(), a.catalogCmd(), versionCmd())
	return root
}

// open builds the refstar service over the configured catalog, close releases the store
func (a *app) open(ctx context.Context) (svc refsvc.Service, closeFn func(), err error) {
	root := config.New()
	cfg := store.FromConfig(root)
	if a.sqlite != "" {
		cfg.PG = store.PGConfig{}
		cfg.Lite = store.LiteConfig{Enabled: true, Path: a.sqlite, ReadOnly: true}
	}
	if !cfg.PG.Enabled && !cfg.Lite.Enabled {
		return nil, nil, perr.Unavailablef("no catalog configured: set SERVICE_PGSQL_DBURL, SERVICE_SQLITE_PATH or --sqlite")
	}

	log := logger.Get()
	st, err := store.Open(ctx, cfg, store.WithLogger(*log))
	if err != nil {
		return nil, nil, err
	}
	closeFn = func() {
		if err := st.Close(context.Background()); err != nil {
			log.Warn().Err(err).Msg("failed to close store")
		}
	}

	deps := modkit.Deps{Log: *log, Cfg: root, PG: st.PG, Lite: st.Lite}
	cat := module.MustPortsOf[catmod.Ports](catmod.New(deps))
	ref := refmod.New(deps, modkit.WithPorts(refmod.Ports{View: cat.View, Stats: cat.Stats}))
	return module.MustPortsOf[refsvc.Service](ref), closeFn, nil
}

// scoped tags ctx with a fresh request id so one invocation's logs correlate
func scoped(ctx context.Context, star string) context.Context {
	return logger.WithRequest(ctx, uuid.NewString(), star)
}

func windowFlags(cmd *cobra.Command, start, duration *string, samples *int) {
	cmd.Flags().StringVar(start, "start", "", "window start, RFC 3339 or 2006-01-02T15:04:05 in UTC")
	cmd.Flags().StringVar(duration, "duration", "", "window length, Go duration with optional day count like 30d")
	cmd.Flags().IntVar(samples, "samples", 0, "sample count, the configured default when zero")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("duration")
}

func writeJSON(w io.Writer, v any) error {
	enc := newEncoder(w)
	return enc.Encode(v)
}
