// Package tracing wires OpenTelemetry for the refstar binaries
package tracing

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"refstar/internal/platform/config"
	"refstar/internal/platform/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// InstrumentationName names the tracer refstar code starts spans from
const InstrumentationName = "refstar"

// Config governs tracer provider setup
type Config struct {
	Enabled     bool
	ServiceName string
	Exporter    string // stdout | otlp
	Endpoint    string // otlp gRPC endpoint
	SampleRatio float64

	// Writer receives stdout exporter output, os.Stdout when nil
	Writer io.Writer
}

// FromEnv reads OTEL_TRACING_* and OTEL_EXPORTER_OTLP_ENDPOINT
func FromEnv(service string) Config {
	c := config.New().Prefix("OTEL_")
	ratio := c.MayFloat64("TRACING_SAMPLE_RATIO", 1)
	if ratio < 0 || ratio > 1 {
		ratio = 1
	}
	return Config{
		Enabled:     c.MayBool("TRACING_ENABLED", false),
		ServiceName: c.MayString("TRACING_SERVICE_NAME", service),
		Exporter:    strings.ToLower(c.MayEnum("TRACING_EXPORTER", "stdout", "stdout", "otlp")),
		Endpoint:    c.MayString("EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		SampleRatio: ratio,
	}
}

// Init installs the global tracer provider and propagators
// the returned shutdown flushes pending spans; disabled tracing installs a noop provider
func Init(ctx context.Context, cfg Config) (func(context.Context) error, error) {
	log := logger.Named("tracing")

	if !cfg.Enabled {
		otel.SetTracerProvider(noop.NewTracerProvider())
		otel.SetTextMapPropagator(propagation.TraceContext{})
		log.Debug().Msg("tracing disabled")
		return func(context.Context) error { return nil }, nil
	}

	exp, err := exporter(ctx, cfg)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx, resource.WithAttributes(
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("service.namespace", "refstar"),
	))
	if err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	log.Info().Str("exporter", cfg.Exporter).Str("service_name", cfg.ServiceName).
		Float64("sample_ratio", cfg.SampleRatio).Msg("tracing enabled")
	return tp.Shutdown, nil
}

func exporter(ctx context.Context, cfg Config) (sdktrace.SpanExporter, error) {
	switch strings.ToLower(cfg.Exporter) {
	case "stdout", "":
		w := cfg.Writer
		if w == nil {
			w = os.Stdout
		}
		return stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint(), stdouttrace.WithoutTimestamps())
	case "otlp":
		client := otlptracegrpc.NewClient(
			otlptracegrpc.WithEndpoint(cfg.Endpoint),
			otlptracegrpc.WithInsecure(),
		)
		return otlptrace.New(ctx, client)
	default:
		return nil, fmt.Errorf("unsupported tracing exporter: %s", cfg.Exporter)
	}
}

// Tracer returns the refstar tracer from the global provider
func Tracer() trace.Tracer { return otel.Tracer(InstrumentationName) }

// Shutdown flushes with a bounded timeout and logs failures
func Shutdown(ctx context.Context, shutdown func(context.Context) error) {
	if shutdown == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		logger.Named("tracing").Warn().Err(err).Msg("tracing shutdown failed")
	}
}
