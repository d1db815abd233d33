package sqlengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"  // dialect registration
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/library-lending-go/gateway"
	"github.com/AntonStoeckl/library-lending-go/gateway/sqlengine/internal/adapters"
)

const (
	dialectPostgres = "postgres"
	dialectSQLite   = "sqlite3"
)

// Store is a gateway.Store backed by a relational database.
type Store struct {
	db               adapters.DBAdapter
	dialectName      string
	dialect          goqu.DialectWrapper
	tablePrefix      string
	tables           tableSet
	logger           Logger
	metricsCollector MetricsCollector
	tracingCollector TracingCollector
	contextualLogger ContextualLogger
}

// NewStoreFromPGXPool creates a new Store for PostgreSQL using a pgx Pool with optional configuration.
func NewStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, gateway.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapter(db), dialectPostgres, options...)
}

// NewStoreFromPGXPoolAndReplica creates a new Store for PostgreSQL with a primary and a replica pool.
// Serializable transactions run on the primary, read committed ones on the replica.
func NewStoreFromPGXPoolAndReplica(primary *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (Store, error) {
	if primary == nil || replica == nil {
		return Store{}, gateway.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapterWithReplica(primary, replica), dialectPostgres, options...)
}

// NewStoreFromSQLDB creates a new Store for PostgreSQL using a sql.DB with optional configuration.
func NewStoreFromSQLDB(db *sql.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, gateway.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLAdapter(db), dialectPostgres, options...)
}

// NewStoreFromSQLX creates a new Store for PostgreSQL using a sqlx.DB with optional configuration.
func NewStoreFromSQLX(db *sqlx.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, gateway.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLXAdapter(db), dialectPostgres, options...)
}

// NewStoreFromSQLite creates a new Store for SQLite using a sql.DB opened with the sqlite3 driver.
func NewStoreFromSQLite(db *sql.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, gateway.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLAdapter(db), dialectSQLite, options...)
}

func newStore(db adapters.DBAdapter, dialectName string, options ...Option) (Store, error) {
	s := Store{
		db:          db,
		dialectName: dialectName,
		dialect:     goqu.Dialect(dialectName),
	}

	for _, option := range options {
		if err := option(&s); err != nil {
			return Store{}, err
		}
	}

	s.tables = newTableSet(s.tablePrefix)

	return s, nil
}

// Begin opens a transaction with the isolation level found in the context.
func (s Store) Begin(ctx context.Context) (gateway.Tx, error) {
	level := gateway.GetIsolationLevel(ctx)

	ctx, span := s.startSpan(ctx, spanNameBegin, map[string]string{spanAttrIsolation: level.String()})
	start := time.Now()

	dbTx, err := s.db.BeginTx(ctx, toSQLIsolationLevel(level))
	if err != nil && errors.Is(err, adapters.ErrIsolationLevelUnsupported) {
		s.logWarn(ctx, logMsgIsolationFallback, logAttrIsolation, level.String(), logAttrError, err.Error())
		s.incrementCounter(ctx, metricIsolationFallbacks, map[string]string{spanAttrIsolation: level.String()})

		level = gateway.ReadCommitted
		dbTx, err = s.db.BeginTx(ctx, sql.LevelDefault)
	}

	duration := time.Since(start)

	if err != nil {
		err = s.classifyError(ctx, operationBegin, "", err)
		s.logError(ctx, logMsgBeginFailed, err)
		s.finishSpan(span, statusFor(err), duration)

		return nil, err
	}

	s.recordOperation(ctx, operationBegin, "", statusSuccess, duration)
	s.finishSpan(span, statusSuccess, duration)

	return &storeTx{store: s, dbTx: dbTx, level: level}, nil
}

// DialectName returns the goqu dialect used by the store, "postgres" or "sqlite3".
func (s Store) DialectName() string {
	return s.dialectName
}

func toSQLIsolationLevel(level gateway.IsolationLevel) sql.IsolationLevel {
	if level == gateway.ReadCommitted {
		return sql.LevelReadCommitted
	}

	return sql.LevelSerializable
}
