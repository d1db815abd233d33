// Package storewrapper creates ready-to-use sqlengine stores for tests.
//
// Without further configuration every wrapper is backed by a fresh SQLite file in t.TempDir().
// When LENDING_POSTGRES_DSN is set, ADAPTER_TYPE selects a PostgreSQL adapter instead
// ("pgx.pool", "sql.db" or "sqlx.db"), each wrapper then works on its own randomly prefixed tables.
package storewrapper

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/gateway/sqlengine"
	"github.com/AntonStoeckl/library-lending-go/library/shell/config"
)

// Adapter type constants
const (
	typeSQLite  = "sqlite"
	typePGXPool = "pgx.pool"
	typeSQLDB   = "sql.db"
	typeSQLXDB  = "sqlx.db"
)

const postgresDSNEnv = "LENDING_POSTGRES_DSN"

var dropOrder = []string{"loans", "reservations", "members", "books"}

// Wrapper owns a store together with the connection it was built on.
type Wrapper interface {
	GetStore() sqlengine.Store
	Close()
}

type wrapper struct {
	store   sqlengine.Store
	closeFn func()
	once    sync.Once
}

func (w *wrapper) GetStore() sqlengine.Store {
	return w.store
}

func (w *wrapper) Close() {
	w.once.Do(w.closeFn)
}

// CreateWrapperWithTestConfig creates a store with the schema in place. The wrapper is closed
// automatically at the end of the test.
func CreateWrapperWithTestConfig(t testing.TB, options ...sqlengine.Option) Wrapper {
	t.Helper()

	adapterType := typeSQLite
	if os.Getenv(postgresDSNEnv) != "" {
		adapterType = strings.ToLower(os.Getenv("ADAPTER_TYPE"))
		if adapterType == "" {
			adapterType = typePGXPool
		}
	}

	var w *wrapper

	switch adapterType {
	case typeSQLite:
		w = sqliteWrapper(t, options)

	case typePGXPool, typeSQLDB, typeSQLXDB:
		w = postgresWrapper(t, adapterType, options)

	default:
		t.Fatalf("unsupported adapter type from env: %s", adapterType)
	}

	require.NoError(t, w.store.CreateSchema(context.Background()), "error creating the schema in test setup")
	t.Cleanup(w.Close)

	return w
}

func sqliteWrapper(t testing.TB, options []sqlengine.Option) *wrapper {
	db, err := config.SQLiteDB(context.Background(), filepath.Join(t.TempDir(), "library.db"))
	require.NoError(t, err, "error opening sqlite in test setup")

	store, err := sqlengine.NewStoreFromSQLite(db, options...)
	require.NoError(t, err, "error creating the store in test setup")

	return &wrapper{store: store, closeFn: func() { _ = db.Close() }}
}

func postgresWrapper(t testing.TB, adapterType string, options []sqlengine.Option) *wrapper {
	ctx := context.Background()
	cfg := config.Config{
		PostgresDSN:     os.Getenv(postgresDSNEnv),
		MaxConns:        8,
		MinConns:        1,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: 5 * time.Minute,
	}

	prefix := "t" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12] + "_"
	options = append([]sqlengine.Option{sqlengine.WithTablePrefix(prefix)}, options...)

	var exec func(query string) error
	var closeDB func()
	var store sqlengine.Store
	var err error

	switch adapterType {
	case typePGXPool:
		pool, poolErr := cfg.PostgresPGXPool(ctx)
		require.NoError(t, poolErr, "error connecting to DB pool in test setup")
		store, err = sqlengine.NewStoreFromPGXPool(pool, options...)
		exec = func(query string) error {
			_, execErr := pool.Exec(ctx, query)
			return execErr
		}
		closeDB = pool.Close

	case typeSQLDB:
		db, dbErr := cfg.PostgresSQLDB(ctx)
		require.NoError(t, dbErr, "error connecting to DB in test setup")
		store, err = sqlengine.NewStoreFromSQLDB(db, options...)
		exec = func(query string) error {
			_, execErr := db.ExecContext(ctx, query)
			return execErr
		}
		closeDB = func() { _ = db.Close() }

	default:
		db, dbErr := cfg.PostgresSQLX(ctx)
		require.NoError(t, dbErr, "error connecting to DB in test setup")
		store, err = sqlengine.NewStoreFromSQLX(db, options...)
		exec = func(query string) error {
			_, execErr := db.ExecContext(ctx, query)
			return execErr
		}
		closeDB = func() { _ = db.Close() }
	}

	require.NoError(t, err, "error creating the store in test setup")

	return &wrapper{
		store: store,
		closeFn: func() {
			for _, table := range dropOrder {
				if dropErr := exec(fmt.Sprintf("DROP TABLE IF EXISTS %s%s CASCADE", prefix, table)); dropErr != nil {
					t.Logf("error dropping test table %s%s: %v", prefix, table, dropErr)
				}
			}

			closeDB()
		},
	}
}
