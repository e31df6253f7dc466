package telemetry

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// OTELHook adds trace and span IDs to every log entry
type OTELHook struct{}

func (h OTELHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == nil {
		return
	}

	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return
	}

	e.Str("trace_id", span.SpanContext().TraceID().String())
	e.Str("span_id", span.SpanContext().SpanID().String())

	if level == zerolog.ErrorLevel {
		span.SetStatus(codes.Error, msg)
	}
}

// Logger wraps zerolog with OTEL integration
type Logger struct {
	zerolog.Logger
}

// NewLogger creates a new logger with OTEL hooks
func NewLogger(component string) *Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs

	logger := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("component", component).
		Logger().
		Hook(OTELHook{})

	return &Logger{Logger: logger}
}

// WithContext returns a logger with context (for trace propagation)
func (l *Logger) WithContext(ctx context.Context) *zerolog.Logger {
	logger := l.Logger.With().Ctx(ctx).Logger()
	return &logger
}

// Convenience methods for pipeline operations

func (l *Logger) LogRunStart(ctx context.Context, region string, events int) {
	l.WithContext(ctx).Info().
		Str("region", region).
		Int("events", events).
		Msg("starting tagging run")
}

func (l *Logger) LogRunComplete(ctx context.Context, processed, tagged, errors int, durationSec float64) {
	l.WithContext(ctx).Info().
		Int("processed", processed).
		Int("tagged", tagged).
		Int("errors", errors).
		Float64("duration_s", durationSec).
		Msg("tagging run completed")
}

func (l *Logger) LogTagged(ctx context.Context, resourceType, resourceID string, tagCount int) {
	l.WithContext(ctx).Info().
		Str("resource_type", resourceType).
		Str("resource_id", resourceID).
		Int("tags", tagCount).
		Msg("resource tagged")
}

func (l *Logger) LogTagFailed(ctx context.Context, resourceType, resourceID string, err error) {
	l.WithContext(ctx).Error().
		Err(err).
		Str("resource_type", resourceType).
		Str("resource_id", resourceID).
		Msg("failed to tag resource")
}
