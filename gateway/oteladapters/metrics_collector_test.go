package oteladapters_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/AntonStoeckl/library-lending-go/gateway/oteladapters"
)

func Test_MetricsCollector_RecordDuration(t *testing.T) {
	// arrange
	reader, collector := newMetricsCollector()

	// act
	collector.RecordDuration("commandhandler_handle_duration_seconds", 250*time.Millisecond, map[string]string{
		"command_type": "BeginLoan",
		"status":       "success",
	})

	// assert
	histogram := findHistogramMetric(t, collect(t, reader), "commandhandler_handle_duration_seconds")
	require.Len(t, histogram.DataPoints, 1)
	point := histogram.DataPoints[0]
	assert.Equal(t, uint64(1), point.Count)
	assert.InDelta(t, 0.25, point.Sum, 0.0001)
	assertHasAttribute(t, point.Attributes, "command_type", "BeginLoan")
	assertHasAttribute(t, point.Attributes, "status", "success")
}

func Test_MetricsCollector_IncrementCounter(t *testing.T) {
	// arrange
	reader, collector := newMetricsCollector()
	labels := map[string]string{"operation": "insert", "status": "conflict"}

	// act
	collector.IncrementCounter("store_operations_total", labels)
	collector.IncrementCounterContext(context.Background(), "store_operations_total", labels)

	// assert
	counter := findCounterMetric(t, collect(t, reader), "store_operations_total")
	require.Len(t, counter.DataPoints, 1)
	assert.Equal(t, int64(2), counter.DataPoints[0].Value)
	assertHasAttribute(t, counter.DataPoints[0].Attributes, "status", "conflict")
}

func Test_MetricsCollector_RecordValue_LastValueWins(t *testing.T) {
	// arrange
	reader, collector := newMetricsCollector()

	// act
	collector.RecordValue("store_rows_returned", 3, nil)
	collector.RecordValueContext(context.Background(), "store_rows_returned", 7, nil)

	// assert
	gauge := findGaugeMetric(t, collect(t, reader), "store_rows_returned")
	require.Len(t, gauge.DataPoints, 1)
	assert.InDelta(t, 7.0, gauge.DataPoints[0].Value, 0.0001)
}

func Test_MetricsCollector_SeparatesSeriesByLabels(t *testing.T) {
	// arrange
	reader, collector := newMetricsCollector()

	// act
	collector.IncrementCounter("queryhandler_calls_total", map[string]string{"query_type": "BookCatalog"})
	collector.IncrementCounter("queryhandler_calls_total", map[string]string{"query_type": "MemberLoans"})
	collector.IncrementCounter("queryhandler_calls_total", map[string]string{"query_type": "MemberLoans"})

	// assert
	counter := findCounterMetric(t, collect(t, reader), "queryhandler_calls_total")
	assert.Len(t, counter.DataPoints, 2)
}

func Test_MetricsCollector_ConcurrentUse(t *testing.T) {
	// arrange
	reader, collector := newMetricsCollector()

	// act
	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			collector.IncrementCounter("commandhandler_calls_total", nil)
		}()
	}
	wg.Wait()

	// assert
	counter := findCounterMetric(t, collect(t, reader), "commandhandler_calls_total")
	assert.Equal(t, int64(20), counter.DataPoints[0].Value)
}

func Test_MetricsCollector_DropsMeasurementsWhenInstrumentCreationFails(t *testing.T) {
	// arrange
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	collector := oteladapters.NewMetricsCollector(&failingMeter{Meter: provider.Meter("test")})

	// act
	assert.NotPanics(t, func() {
		collector.RecordDuration("broken_duration", time.Second, nil)
		collector.IncrementCounter("broken_counter", nil)
		collector.RecordValue("broken_gauge", 1, nil)
	})

	// assert
	var resourceMetrics metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &resourceMetrics))
	assert.Empty(t, resourceMetrics.ScopeMetrics)
}

func newMetricsCollector() (*sdkmetric.ManualReader, *oteladapters.MetricsCollector) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	return reader, oteladapters.NewMetricsCollector(provider.Meter("lending-test"))
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()

	var resourceMetrics metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &resourceMetrics))

	return resourceMetrics
}

func findMetric(t *testing.T, resourceMetrics metricdata.ResourceMetrics, name string) metricdata.Metrics {
	t.Helper()

	for _, scopeMetrics := range resourceMetrics.ScopeMetrics {
		for _, m := range scopeMetrics.Metrics {
			if m.Name == name {
				return m
			}
		}
	}

	t.Fatalf("metric %s not found", name)

	return metricdata.Metrics{}
}

func findHistogramMetric(t *testing.T, resourceMetrics metricdata.ResourceMetrics, name string) metricdata.Histogram[float64] {
	t.Helper()

	histogram, ok := findMetric(t, resourceMetrics, name).Data.(metricdata.Histogram[float64])
	require.True(t, ok, "metric %s is not a float64 histogram", name)

	return histogram
}

func findCounterMetric(t *testing.T, resourceMetrics metricdata.ResourceMetrics, name string) metricdata.Sum[int64] {
	t.Helper()

	counter, ok := findMetric(t, resourceMetrics, name).Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %s is not an int64 sum", name)

	return counter
}

func findGaugeMetric(t *testing.T, resourceMetrics metricdata.ResourceMetrics, name string) metricdata.Gauge[float64] {
	t.Helper()

	gauge, ok := findMetric(t, resourceMetrics, name).Data.(metricdata.Gauge[float64])
	require.True(t, ok, "metric %s is not a float64 gauge", name)

	return gauge
}

func assertHasAttribute(t *testing.T, set attribute.Set, key string, expected string) {
	t.Helper()

	value, found := set.Value(attribute.Key(key))
	require.True(t, found, "attribute %s not found", key)
	assert.Equal(t, expected, value.AsString())
}

type failingMeter struct {
	metric.Meter
}

func (m *failingMeter) Float64Histogram(string, ...metric.Float64HistogramOption) (metric.Float64Histogram, error) {
	return nil, errors.New("histogram creation failed")
}

func (m *failingMeter) Int64Counter(string, ...metric.Int64CounterOption) (metric.Int64Counter, error) {
	return nil, errors.New("counter creation failed")
}

func (m *failingMeter) Float64Gauge(string, ...metric.Float64GaugeOption) (metric.Float64Gauge, error) {
	return nil, errors.New("gauge creation failed")
}
