// Package adapters provide database adapter implementations for the SQL entity store.
//
// This package implements the adapter pattern to support multiple database libraries:
// pgx.Pool, sql.DB, and sqlx.DB. All adapters provide equivalent functionality through
// a common DBAdapter interface, allowing the store to work with any supported connection type.
//
// The adapters handle the specifics of each library, most notably how transactions are opened
// with a given isolation level, while presenting a unified interface for query execution.
package adapters
