package gateway

import "context"

// IsolationLevel defines the transaction isolation a Store opens transactions with.
type IsolationLevel int

const (
	// Serializable is the strictest isolation level and the default for all transactions.
	// Every check-then-act sequence of the lending rules relies on it.
	Serializable IsolationLevel = iota

	// ReadCommitted trades consistency for throughput. It is only meant for pure reads,
	// and it is what a Store falls back to when the database does not support Serializable.
	ReadCommitted
)

// contextKey is a private type to prevent context key collisions.
type contextKey string

// IsolationLevelKey is the context key used to store isolation level preferences.
const IsolationLevelKey contextKey = "gateway.isolation_level"

// WithSerializable returns a context that asks the Store to open serializable transactions.
func WithSerializable(ctx context.Context) context.Context {
	return context.WithValue(ctx, IsolationLevelKey, Serializable)
}

// WithReadCommitted returns a context that allows the Store to open read committed transactions.
//
// Example usage:
//
//	ctx = gateway.WithReadCommitted(ctx)
//	books, err := catalog.ListAll(ctx, query)
func WithReadCommitted(ctx context.Context) context.Context {
	return context.WithValue(ctx, IsolationLevelKey, ReadCommitted)
}

// GetIsolationLevel extracts the isolation level from the context.
// If none is set, it returns Serializable.
func GetIsolationLevel(ctx context.Context) IsolationLevel {
	if level, ok := ctx.Value(IsolationLevelKey).(IsolationLevel); ok {
		return level
	}

	return Serializable
}

// String provides a string representation of IsolationLevel for logging.
func (l IsolationLevel) String() string {
	switch l {
	case Serializable:
		return "serializable"
	case ReadCommitted:
		return "read_committed"
	default:
		return "unknown"
	}
}
