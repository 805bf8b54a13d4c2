package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	kit "refstar/internal/platform/testkit"

	"github.com/rs/zerolog"
)

func TestLevel(t *testing.T) {
	for in, want := range map[string]zerolog.Level{
		"trace":    zerolog.TraceLevel,
		" INFO ":   zerolog.InfoLevel,
		"warning":  zerolog.WarnLevel,
		"error":    zerolog.ErrorLevel,
		"":         zerolog.DebugLevel,
		"verbose":  zerolog.DebugLevel,
		"disabled": zerolog.Disabled,
	} {
		if got := Level(in); got != want {
			t.Errorf("Level(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: "info", Format: "json", Service: "refstar-api", Writer: &buf})
	l.Debug().Msg("dropped")
	l.Info().Str("star", "HD 1").Msg("kept")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("one json line expected, got %q: %v", buf.String(), err)
	}
	if line["service"] != "refstar-api" || line["star"] != "HD 1" || line["message"] != "kept" {
		t.Fatalf("line = %v", line)
	}
}

func TestNew_ConsoleAndCaller(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: "debug", Format: "console", Writer: &buf, Caller: true})
	l.Info().Msg("hello")
	kit.MustContain(t, buf.String(), "hello")
	kit.MustContain(t, buf.String(), "logger_test.go")
}

func TestInitAndRequestScope(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "debug", Format: "json", Writer: &buf})

	ctx := WithRequest(context.Background(), "req-123", "HD 1")
	C(ctx).Info().Msg("scoped")
	Named("catalog").Info().Msg("named")
	C(WithRequest(context.Background(), "", "")).Info().Msg("bare")

	out := buf.String()
	kit.MustContain(t, out, `"request_id":"req-123"`)
	kit.MustContain(t, out, `"target":"HD 1"`)
	kit.MustContain(t, out, `"component":"catalog"`)
	kit.MustContain(t, out, `"message":"bare"`)
	if Get() == nil {
		t.Fatal("Get after Init returned nil")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("LOG_SERVICE", "refstar")
	t.Setenv("LOG_CALLER", "true")
	t.Setenv("LOG_SAMPLE_EVERY", "5")

	want := Options{Level: "warn", Format: "json", Service: "refstar", Caller: true, SampleEvery: 5}
	if got := FromEnv(); got != want {
		t.Fatalf("FromEnv = %+v", got)
	}
}
