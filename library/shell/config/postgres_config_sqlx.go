package config

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
)

// PostgresSQLX opens a *sqlx.DB with the lib/pq driver and verifies it with a ping.
func (c Config) PostgresSQLX(ctx context.Context) (*sqlx.DB, error) {
	const defaultMaxIdleConnections = 10

	db, err := sqlx.Open("postgres", c.PostgresDSN)
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
