package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresPGXPoolConfig creates a pgxpool.Config from the DSN and the pool sizing of the Config.
func (c Config) PostgresPGXPoolConfig() (*pgxpool.Config, error) {
	return c.pgxPoolConfig(c.PostgresDSN)
}

// PostgresPGXPoolReplicaConfig creates a pgxpool.Config for the read replica, with the same pool sizing.
func (c Config) PostgresPGXPoolReplicaConfig() (*pgxpool.Config, error) {
	if c.PostgresReplica == "" {
		return nil, errors.New("no replica configured in LENDING_POSTGRES_REPLICA_DSN")
	}

	return c.pgxPoolConfig(c.PostgresReplica)
}

func (c Config) pgxPoolConfig(dsn string) (*pgxpool.Config, error) {
	const defaultHealthCheckPeriod = time.Minute
	const defaultConnectTimeout = time.Second * 5

	dbConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}

	dbConfig.MaxConns = c.MaxConns
	dbConfig.MinConns = c.MinConns
	dbConfig.MaxConnLifetime = c.ConnMaxLifetime
	dbConfig.MaxConnIdleTime = c.ConnMaxIdleTime
	dbConfig.HealthCheckPeriod = defaultHealthCheckPeriod
	dbConfig.ConnConfig.ConnectTimeout = defaultConnectTimeout

	return dbConfig, nil
}

// PostgresPGXPool opens a pgx pool and verifies it with a ping.
func (c Config) PostgresPGXPool(ctx context.Context) (*pgxpool.Pool, error) {
	dbConfig, err := c.PostgresPGXPoolConfig()
	if err != nil {
		return nil, err
	}

	return openPGXPool(ctx, dbConfig)
}

// PostgresPGXPoolReplica opens a pgx pool on the read replica.
func (c Config) PostgresPGXPoolReplica(ctx context.Context) (*pgxpool.Pool, error) {
	dbConfig, err := c.PostgresPGXPoolReplicaConfig()
	if err != nil {
		return nil, err
	}

	return openPGXPool(ctx, dbConfig)
}

func openPGXPool(ctx context.Context, dbConfig *pgxpool.Config) (*pgxpool.Pool, error) {
	pool, err := pgxpool.NewWithConfig(ctx, dbConfig)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	if pingErr := pool.Ping(ctx); pingErr != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", pingErr)
	}

	return pool, nil
}
