package sqlengine

import (
	"github.com/AntonStoeckl/library-lending-go/gateway"
)

// Interface aliases so callers can configure the store without importing gateway.
type (
	Logger           = gateway.Logger
	MetricsCollector = gateway.MetricsCollector
	TracingCollector = gateway.TracingCollector
	SpanContext      = gateway.SpanContext
	ContextualLogger = gateway.ContextualLogger
)

// Option defines a functional option for configuring Store.
type Option func(*Store) error

// WithTablePrefix prefixes every table and index name, e.g. "lending_" gives "lending_books".
func WithTablePrefix(prefix string) Option {
	return func(s *Store) error {
		if prefix == "" {
			return gateway.ErrEmptyTablePrefix
		}

		s.tablePrefix = prefix

		return nil
	}
}

// WithLogger sets the logger for the Store.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL statements with execution timing (development use)
// Info level: row counts and durations per operation (production-safe)
// Warn level: isolation fallbacks and failed rollbacks
// Error level: driver failures that cause operation failures.
func WithLogger(logger Logger) Option {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Store.
// It receives operation durations, operation counts, database errors and concurrency conflicts.
func WithMetrics(collector MetricsCollector) Option {
	return func(s *Store) error {
		s.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Store.
func WithTracing(collector TracingCollector) Option {
	return func(s *Store) error {
		s.tracingCollector = collector
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Store.
// When set, it is preferred over the plain logger so that log records carry trace correlation.
func WithContextualLogger(logger ContextualLogger) Option {
	return func(s *Store) error {
		s.contextualLogger = logger
		return nil
	}
}
