// Package oteladapters implements the gateway observability interfaces with OpenTelemetry.
//
// The adapters plug into the store (sqlengine.WithMetrics, WithTracing, WithContextualLogger) and into the
// observable handler wrappers. Instruments and spans are created from the meter and tracer handed in,
// so the caller decides whether the global providers or dedicated ones are used.
package oteladapters
