package config

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // sqlite driver
)

// SQLiteDSN builds the DSN for a SQLite file. Transactions take the write lock on BEGIN,
// so two writers never interleave their reads and writes.
func SQLiteDSN(path string) string {
	return fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=1&_txlock=immediate", path)
}

// SQLiteDB opens the SQLite file at path, creating it if necessary.
// The pool is limited to one connection, SQLite serializes writers anyway.
func SQLiteDB(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", SQLiteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	db.SetMaxOpenConns(1)

	if pingErr := db.PingContext(ctx); pingErr != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", pingErr)
	}

	return db, nil
}

// SQLite opens the SQLite file configured in LENDING_SQLITE_PATH.
func (c Config) SQLite(ctx context.Context) (*sql.DB, error) {
	return SQLiteDB(ctx, c.SQLitePath)
}
