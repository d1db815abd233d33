package gateway

import "errors"

var (
	// ErrNotFound is returned when no row matches the requested identifier.
	ErrNotFound = errors.New("entity not found")

	// ErrStoreFailure is joined into every error caused by the underlying database.
	ErrStoreFailure = errors.New("store failure")

	// ErrConcurrencyConflict is returned when the database aborted a transaction because of a
	// serialization failure, a deadlock, or a locked database file.
	ErrConcurrencyConflict = errors.New("concurrency conflict, transaction was aborted by the database")

	// ErrNilDatabaseConnection is returned when a store is constructed without a connection.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrEmptyTablePrefix is returned when WithTablePrefix is called with an empty prefix.
	ErrEmptyTablePrefix = errors.New("table prefix must not be empty")

	// ErrInvalidCriteria is returned when Criteria reference fields the entity does not have.
	ErrInvalidCriteria = errors.New("invalid criteria")

	// ErrTxDone is returned when a finished transaction is used again.
	ErrTxDone = errors.New("transaction has already been committed or rolled back")
)
