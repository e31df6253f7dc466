package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// RunMetrics records tagging pipeline activity as OTEL metrics.
type RunMetrics struct {
	eventsProcessed metric.Int64Counter
	resourcesTagged metric.Int64Counter
	taggingErrors   metric.Int64Counter
	runDuration     metric.Float64Histogram
}

// NewRunMetrics creates the pipeline metrics instruments.
func NewRunMetrics() (*RunMetrics, error) {
	meter := otel.Meter("merkki")

	processed, err := meter.Int64Counter(
		"merkki_events_processed_total",
		metric.WithDescription("Total creation events processed"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}

	tagged, err := meter.Int64Counter(
		"merkki_resources_tagged_total",
		metric.WithDescription("Total resources tagged"),
		metric.WithUnit("{resource}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}

	errors, err := meter.Int64Counter(
		"merkki_tagging_errors_total",
		metric.WithDescription("Total tagging failures"),
		metric.WithUnit("{resource}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}

	duration, err := meter.Float64Histogram(
		"merkki_run_duration_seconds",
		metric.WithDescription("Tagging run duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create histogram: %w", err)
	}

	return &RunMetrics{
		eventsProcessed: processed,
		resourcesTagged: tagged,
		taggingErrors:   errors,
		runDuration:     duration,
	}, nil
}

// RecordRun folds one run's counters into the instruments.
func (m *RunMetrics) RecordRun(ctx context.Context, region string, processed, tagged, errors int, durationSec float64) {
	attrs := metric.WithAttributes(attribute.String("region", region))
	m.eventsProcessed.Add(ctx, int64(processed), attrs)
	m.resourcesTagged.Add(ctx, int64(tagged), attrs)
	m.taggingErrors.Add(ctx, int64(errors), attrs)
	m.runDuration.Record(ctx, durationSec, attrs)
}
