package store

import (
	"context"
	"strings"
	"time"

	"refstar/internal/platform/logger"

	"github.com/rs/zerolog"
)

// QueryEvent describes one statement sent to a backend
type QueryEvent struct {
	Backend   string
	SQL       string
	Args      any
	ElapsedUS int64
	Err       error
	Slow      bool
}

// QueryTracer receives query events from the sql seams
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// LogTracer prints every query regardless of the root level, slow ones at warn
func LogTracer(root logger.Logger) QueryTracer {
	return logTracer{log: root.Level(zerolog.DebugLevel).With().Str("component", "sql").Logger()}
}

type logTracer struct{ log logger.Logger }

func (l logTracer) OnQuery(_ context.Context, ev QueryEvent) {
	evt := l.log.Info()
	if ev.Slow {
		evt = l.log.Warn()
	}
	evt.Str("backend", ev.Backend).
		Float64("elapsed_ms", float64(ev.ElapsedUS)/1000).
		Bool("slow", ev.Slow).
		Str("sql", compact(ev.SQL)).
		Interface("args", ev.Args).
		Err(ev.Err).
		Msg("sql query")
}

// probe measures one statement and reports it to a tracer
type probe struct {
	backend string
	tracer  QueryTracer
	slowUS  int64 // negative disables slow marking
}

func (p probe) emit(ctx context.Context, sql string, args []any, start time.Time, err error) {
	if p.tracer == nil {
		return
	}
	us := time.Since(start).Microseconds()
	p.tracer.OnQuery(ctx, QueryEvent{
		Backend:   p.backend,
		SQL:       sql,
		Args:      args,
		ElapsedUS: us,
		Err:       err,
		Slow:      p.slowUS >= 0 && us >= p.slowUS,
	})
}

// compact puts a statement on one line for logging
func compact(s string) string { return strings.Join(strings.Fields(s), " ") }
