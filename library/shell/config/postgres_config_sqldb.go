package config

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // postgres driver
)

// PostgresSQLDB opens a *sql.DB with the lib/pq driver and verifies it with a ping.
func (c Config) PostgresSQLDB(ctx context.Context) (*sql.DB, error) {
	const defaultMaxIdleConnections = 10

	db, err := sql.Open("postgres", c.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(int(c.MaxConns))
	db.SetMaxIdleConns(min(defaultMaxIdleConnections, int(c.MaxConns)))
	db.SetConnMaxLifetime(c.ConnMaxLifetime)
	db.SetConnMaxIdleTime(c.ConnMaxIdleTime)

	if pingErr := db.PingContext(ctx); pingErr != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", pingErr)
	}

	return db, nil
}
