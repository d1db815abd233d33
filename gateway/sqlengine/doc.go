// Package sqlengine provides a relational implementation of the gateway.Store contract.
//
// It supports PostgreSQL through three connection types (pgx.Pool, database/sql with lib/pq,
// and sqlx) and SQLite through mattn/go-sqlite3. All SQL is built with goqu using the
// dialect of the connected database, with placeholders so that values never end up in the SQL text.
//
// Every transaction is opened with the isolation level found in the context (see gateway.GetIsolationLevel),
// which defaults to serializable. If a driver rejects serializable isolation, the store logs a warning
// and falls back to the database default.
//
// Driver errors are wrapped with gateway.ErrStoreFailure. Serialization failures, deadlocks and
// busy SQLite databases are additionally marked with gateway.ErrConcurrencyConflict.
package sqlengine
