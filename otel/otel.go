package otel

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	wlog "github.com/webitel/viberbot/log"
)

var (
	// Disable the OpenTelemetry SDK for all signals
	disabled = false
	// init ; once !
	initOnce sync.Once

	shutdown func(context.Context) error
	shutOnce sync.Once
)

// Disabled reports whether OpenTelemetry SDK is disabled for all signals.
func Disabled() bool {
	return disabled
}

// Shutdown OpenTelemetry SDK environment
func Shutdown(ctx context.Context) (err error) {
	shutOnce.Do(func() {
		if shutdown == nil {
			return
		}
		err = shutdown(ctx)
		shutdown = nil
	})
	return // err
}

// Options of the SDK environment
type Options struct {
	// Service name resource
	Name    string
	Version string
	// Traces exporter: "console" or "none".
	// Default: $OTEL_TRACES_EXPORTER
	Exporter string
	// Output of the "console" exporter.
	// Default: os.Stderr
	Output io.Writer
	// Log for the SDK internal diagnostics.
	// Default: slog.Default()
	Log *slog.Logger
}

// Option to configure
type Option func(*Options)

func WithService(name, version string) Option {
	return func(opts *Options) {
		opts.Name = name
		opts.Version = version
	}
}

func WithExporter(name string) Option {
	return func(opts *Options) {
		opts.Exporter = name
	}
}

func WithOutput(output io.Writer) Option {
	return func(opts *Options) {
		opts.Output = output
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(opts *Options) {
		opts.Log = log
	}
}

func configure(ctx context.Context, setup []Option) (err error) {

	disabled, _ = strconv.ParseBool(
		os.Getenv("OTEL_SDK_DISABLED"),
	)

	if disabled {
		return //
	}

	opts := Options{
		Name:     "viberbot",
		Exporter: os.Getenv("OTEL_TRACES_EXPORTER"),
		Output:   os.Stderr,
		Log:      slog.Default(),
	}
	for _, option := range setup {
		option(&opts)
	}

	// NOTE: logger used internally to opentelemetry.
	otel.SetLogger(logr.FromSlogHandler(
		&severity{Handler: opts.Log.Handler()},
	))

	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)

	var exporter sdktrace.SpanExporter
	switch strings.ToLower(strings.TrimSpace(opts.Exporter)) {
	case "", "none":
		return nil // propagation only
	case "console", "stdout":
		exporter, err = stdouttrace.New(
			stdouttrace.WithWriter(opts.Output),
		)
	default:
		opts.Log.Warn("otel/traces.exporter",
			slog.String("exporter", opts.Exporter),
			slog.String("error", "exporter: not supported"),
		)
		return nil
	}

	if err != nil {
		otel.Handle(err)
		return err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", opts.Name),
			attribute.String("service.version", opts.Version),
		)),
	)
	otel.SetTracerProvider(provider)
	shutdown = provider.Shutdown

	return nil
}

// Configure OpenTelemetry SDK components ...
func Configure(ctx context.Context, opts ...Option) (err error) {

	initOnce.Do(func() {
		err = configure(ctx, opts)
	})

	return err
}

// severity converts the SDK internal logger verbosity into slog level.
//
// https://github.com/open-telemetry/opentelemetry-go/blob/v1.29.0/internal/global/internal_logging.go#L20
//
// Warn messages are logged with `l.V(1)`,
// Info messages with `l.V(4)` and Debug messages with `l.V(8)`.
type severity struct {
	slog.Handler
}

func otelLevel(level slog.Level) slog.Level {
	switch {
	case level >= slog.LevelInfo: // errors
		return level
	case level >= -1:
		return slog.LevelWarn
	case level >= -4:
		return slog.LevelInfo
	case level >= -8:
		return slog.LevelDebug
	}
	return wlog.LevelTrace
}

func (h *severity) Enabled(ctx context.Context, level slog.Level) bool {
	return h.Handler.Enabled(ctx, otelLevel(level))
}

func (h *severity) Handle(ctx context.Context, rec slog.Record) error {
	rec.Level = otelLevel(rec.Level)
	return h.Handler.Handle(ctx, rec)
}

func (h *severity) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &severity{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *severity) WithGroup(name string) slog.Handler {
	return &severity{Handler: h.Handler.WithGroup(name)}
}
