package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/AntonStoeckl/library-lending-go/gateway/oteladapters"
)

const instrumentationName = "github.com/AntonStoeckl/library-lending-go/cmd/lendingctl"

// telemetry owns the in-process OpenTelemetry providers behind --otel.
// Finished spans are logged at debug level, metrics are read once at the end of a command.
type telemetry struct {
	reader         *sdkmetric.ManualReader
	meterProvider  *sdkmetric.MeterProvider
	tracerProvider *sdktrace.TracerProvider
	metrics        *oteladapters.MetricsCollector
	tracing        *oteladapters.TracingCollector
}

func newTelemetry(logger *slog.Logger) *telemetry {
	reader := sdkmetric.NewManualReader()
	meterProvider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	tracerProvider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(&spanLogExporter{logger: logger}))

	otel.SetMeterProvider(meterProvider)
	otel.SetTracerProvider(tracerProvider)

	return &telemetry{
		reader:         reader,
		meterProvider:  meterProvider,
		tracerProvider: tracerProvider,
		metrics:        oteladapters.NewMetricsCollector(otel.Meter(instrumentationName)),
		tracing:        oteladapters.NewTracingCollector(otel.Tracer(instrumentationName)),
	}
}

// writeSummary prints one line per metric series: counters with their value, histograms with count and sum.
func (t *telemetry) writeSummary(ctx context.Context, w io.Writer) error {
	var resourceMetrics metricdata.ResourceMetrics
	if err := t.reader.Collect(ctx, &resourceMetrics); err != nil {
		return fmt.Errorf("collect metrics: %w", err)
	}

	var lines []string

	for _, scopeMetrics := range resourceMetrics.ScopeMetrics {
		for _, m := range scopeMetrics.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				for _, point := range data.DataPoints {
					lines = append(lines, fmt.Sprintf("%s{%s} %d", m.Name, labels(point.Attributes), point.Value))
				}
			case metricdata.Histogram[float64]:
				for _, point := range data.DataPoints {
					lines = append(lines, fmt.Sprintf("%s{%s} count=%d sum=%.6fs",
						m.Name, labels(point.Attributes), point.Count, point.Sum))
				}
			case metricdata.Gauge[float64]:
				for _, point := range data.DataPoints {
					lines = append(lines, fmt.Sprintf("%s{%s} %g", m.Name, labels(point.Attributes), point.Value))
				}
			}
		}
	}

	slices.Sort(lines)

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	return nil
}

func (t *telemetry) shutdown(ctx context.Context) {
	_ = t.tracerProvider.Shutdown(ctx)
	_ = t.meterProvider.Shutdown(ctx)
}

func labels(set attribute.Set) string {
	pairs := make([]string, 0, set.Len())
	for _, kv := range set.ToSlice() {
		pairs = append(pairs, fmt.Sprintf("%s=%q", kv.Key, kv.Value.Emit()))
	}

	return strings.Join(pairs, ",")
}

// spanLogExporter writes every finished span to the logger.
type spanLogExporter struct {
	logger *slog.Logger
}

func (e *spanLogExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, span := range spans {
		e.logger.DebugContext(ctx, "span finished",
			"span", span.Name(),
			"trace_id", span.SpanContext().TraceID().String(),
			"status", span.Status().Code.String(),
			"duration_ms", float64(span.EndTime().Sub(span.StartTime()))/float64(time.Millisecond),
		)
	}

	return nil
}

func (e *spanLogExporter) Shutdown(context.Context) error {
	return nil
}
