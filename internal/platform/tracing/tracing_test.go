package tracing

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("OTEL_TRACING_ENABLED", "")
	t.Setenv("OTEL_TRACING_SAMPLE_RATIO", "7")
	c := FromEnv("refstar-api")
	if c.Enabled || c.Exporter != "stdout" || c.ServiceName != "refstar-api" || c.SampleRatio != 1 {
		t.Fatalf("unexpected defaults %+v", c)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("OTEL_TRACING_ENABLED", "true")
	t.Setenv("OTEL_TRACING_EXPORTER", "OTLP")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4317")
	t.Setenv("OTEL_TRACING_SAMPLE_RATIO", "0.25")
	c := FromEnv("refstar")
	if !c.Enabled || c.Exporter != "otlp" || c.Endpoint != "collector:4317" || c.SampleRatio != 0.25 {
		t.Fatalf("unexpected config %+v", c)
	}
}

func TestInit_DisabledIsNoop(t *testing.T) {
	shutdown, err := Init(context.Background(), Config{})
	if err != nil {
		t.Fatal(err)
	}
	_, span := Tracer().Start(context.Background(), "x")
	if span.SpanContext().IsValid() {
		t.Fatalf("noop provider produced a sampled span")
	}
	span.End()
	if err := shutdown(context.Background()); err != nil {
		t.Fatal(err)
	}
}

func TestInit_StdoutExporter(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := Init(context.Background(), Config{
		Enabled: true, ServiceName: "refstar-test", Exporter: "stdout", SampleRatio: 1, Writer: &buf,
	})
	if err != nil {
		t.Fatal(err)
	}
	_, span := Tracer().Start(context.Background(), "select")
	span.End()
	Shutdown(context.Background(), shutdown)

	if !strings.Contains(buf.String(), `"Name": "select"`) {
		t.Fatalf("span not exported:\n%s", buf.String())
	}

	_, _ = Init(context.Background(), Config{})
}

func TestInit_UnknownExporter(t *testing.T) {
	if _, err := Init(context.Background(), Config{Enabled: true, Exporter: "zipkin"}); err == nil {
		t.Fatalf("expected error for unknown exporter")
	}
}
