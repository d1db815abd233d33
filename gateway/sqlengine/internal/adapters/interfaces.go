package adapters

import (
	"context"
	"database/sql"
	"errors"
)

// ErrIsolationLevelUnsupported is returned by BeginTx when the driver rejects the requested isolation level.
var ErrIsolationLevelUnsupported = errors.New("isolation level not supported by driver")

// DBAdapter defines the interface for database operations needed by the entity store.
type DBAdapter interface {
	Exec(ctx context.Context, query string, args ...any) (DBResult, error)
	BeginTx(ctx context.Context, level sql.IsolationLevel) (DBTx, error)
}

// DBTx defines the interface for an open transaction.
type DBTx interface {
	Query(ctx context.Context, query string, args ...any) (DBRows, error)
	Exec(ctx context.Context, query string, args ...any) (DBResult, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// DBRows defines the interface for query result rows.
type DBRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// DBResult defines the interface for execution results.
type DBResult interface {
	RowsAffected() (int64, error)
}
