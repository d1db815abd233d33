// Package helper provides test doubles for the observability interfaces of the gateway
// together with small helpers for arranging test data.
package helper
