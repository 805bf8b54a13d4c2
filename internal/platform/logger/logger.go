// Package logger is the process logger: zerolog configured from LOG_* plus request scoped children
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"refstar/internal/platform/config/raw"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger is the logger type passed around the codebase
type Logger = zerolog.Logger

// Options shape the root logger
type Options struct {
	Level       string // trace..panic, debug when unset or unknown
	Format      string // console or json
	Service     string
	Writer      io.Writer // stdout when nil
	Caller      bool
	SampleEvery int // keep one in N events when > 1
}

// FromEnv reads LOG_LEVEL, LOG_FORMAT, LOG_SERVICE, LOG_CALLER and LOG_SAMPLE_EVERY
// it goes through raw so config can log without an import cycle
func FromEnv() Options {
	env := raw.New().Prefix("LOG_")
	return Options{
		Level:       env.Get("LEVEL", "debug"),
		Format:      strings.ToLower(env.Get("FORMAT", "console")),
		Service:     env.Get("SERVICE", ""),
		Caller:      env.GetBool("CALLER", false),
		SampleEvery: env.GetInt("SAMPLE_EVERY", 0),
	}
}

// Level maps a level name to zerolog, debug when empty or unknown
func Level(name string) zerolog.Level {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "warning" {
		name = "warn"
	}
	lvl, err := zerolog.ParseLevel(name)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.DebugLevel
	}
	return lvl
}

// New builds a logger from opt without touching the process root
func New(opt Options) Logger {
	w := opt.Writer
	if w == nil {
		w = os.Stdout
	}
	if opt.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	c := zerolog.New(w).Level(Level(opt.Level)).With().Timestamp()
	if opt.Service != "" {
		c = c.Str("service", opt.Service)
	}
	if opt.Caller {
		c = c.Caller()
	}
	l := c.Logger()
	if opt.SampleEvery > 1 {
		l = l.Sample(&zerolog.BasicSampler{N: uint32(opt.SampleEvery)})
	}
	return l
}

var (
	root atomic.Pointer[Logger]
	lazy sync.Once
)

func init() {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = time.RFC3339Nano
}

// Init replaces the root logger, binaries call it once before doing work
func Init(opt Options) {
	l := New(opt)
	root.Store(&l)
}

// Get returns the root logger, configured from the environment on first use unless Init ran
func Get() *Logger {
	if l := root.Load(); l != nil {
		return l
	}
	lazy.Do(func() { root.CompareAndSwap(nil, ptr(New(FromEnv()))) })
	return root.Load()
}

func ptr(l Logger) *Logger { return &l }

// Named returns a root child tagged with component
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	return ptr(Get().With().Str("component", component).Logger())
}

type ctxKey struct{ name string }

var (
	keyRequestID = ctxKey{"request_id"}
	keyTarget    = ctxKey{"target"}
)

// WithRequest stores the request id and the star being worked on, empty values are skipped
func WithRequest(ctx context.Context, reqID, target string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, keyRequestID, reqID)
	}
	if target != "" {
		ctx = context.WithValue(ctx, keyTarget, target)
	}
	return ctx
}

// C returns a root child carrying whatever WithRequest stored in ctx
func C(ctx context.Context) *Logger {
	c := Get().With()
	for _, k := range []ctxKey{keyRequestID, keyTarget} {
		if s, _ := ctx.Value(k).(string); s != "" {
			c = c.Str(k.name, s)
		}
	}
	return ptr(c.Logger())
}
