package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-lending-go/gateway/oteladapters"
	"github.com/AntonStoeckl/library-lending-go/gateway/sqlengine"
	"github.com/AntonStoeckl/library-lending-go/library/script"
	"github.com/AntonStoeckl/library-lending-go/library/shell/config"
)

// environment is what every subcommand works with: the resolved config, a logger and an open store.
type environment struct {
	cfg       config.Config
	logger    *slog.Logger
	store     sqlengine.Store
	telemetry *telemetry
	closers   []func()
}

func setUp(cmd *cobra.Command, opts *RootOptions) (*environment, error) {
	cfg, err := opts.resolveConfig(cmd)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	env := &environment{
		cfg:    cfg,
		logger: slog.New(newLogHandler(cmd.ErrOrStderr(), opts.LogFormat, level)),
	}

	storeOptions := []sqlengine.Option{sqlengine.WithLogger(env.logger)}

	if opts.OTel {
		env.telemetry = newTelemetry(env.logger)
		env.closers = append(env.closers, func() { env.telemetry.shutdown(context.Background()) })

		storeOptions = append(storeOptions,
			sqlengine.WithMetrics(env.telemetry.metrics),
			sqlengine.WithTracing(env.telemetry.tracing),
			sqlengine.WithContextualLogger(oteladapters.NewSlogBridgeLoggerWithHandler(env.logger.Handler())),
		)
	}

	if err = env.openStore(cmd.Context(), storeOptions...); err != nil {
		env.close()
		return nil, WrapExitError(ExitCommandError, "cannot open store", err)
	}

	return env, nil
}

func newLogHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	handlerOptions := &slog.HandlerOptions{Level: level}

	if format == "json" {
		return slog.NewJSONHandler(w, handlerOptions)
	}

	return slog.NewTextHandler(w, handlerOptions)
}

func (e *environment) openStore(ctx context.Context, options ...sqlengine.Option) error {
	var err error

	switch e.cfg.Driver {
	case config.DriverPGXPool:
		pool, poolErr := e.cfg.PostgresPGXPool(ctx)
		if poolErr != nil {
			return poolErr
		}
		e.closers = append(e.closers, pool.Close)

		if e.cfg.PostgresReplica == "" {
			e.store, err = sqlengine.NewStoreFromPGXPool(pool, options...)
			break
		}

		replica, replicaErr := e.cfg.PostgresPGXPoolReplica(ctx)
		if replicaErr != nil {
			return replicaErr
		}
		e.closers = append(e.closers, replica.Close)

		e.store, err = sqlengine.NewStoreFromPGXPoolAndReplica(pool, replica, options...)

	case config.DriverSQLDB:
		db, dbErr := e.cfg.PostgresSQLDB(ctx)
		if dbErr != nil {
			return dbErr
		}
		e.closers = append(e.closers, func() { _ = db.Close() })

		e.store, err = sqlengine.NewStoreFromSQLDB(db, options...)

	case config.DriverSQLX:
		db, dbErr := e.cfg.PostgresSQLX(ctx)
		if dbErr != nil {
			return dbErr
		}
		e.closers = append(e.closers, func() { _ = db.Close() })

		e.store, err = sqlengine.NewStoreFromSQLX(db, options...)

	case config.DriverSQLite:
		db, dbErr := e.cfg.SQLite(ctx)
		if dbErr != nil {
			return dbErr
		}
		e.closers = append(e.closers, func() { _ = db.Close() })

		e.store, err = sqlengine.NewStoreFromSQLite(db, options...)

	default:
		err = fmt.Errorf("%w: %q", config.ErrUnsupportedDriver, e.cfg.Driver)
	}

	return err
}

// observability returns what the script handlers get wrapped with.
func (e *environment) observability() script.Observability {
	o := script.Observability{Logger: e.logger}

	if e.telemetry != nil {
		o.Metrics = e.telemetry.metrics
		o.Tracing = e.telemetry.tracing
		o.ContextualLogger = oteladapters.NewSlogBridgeLoggerWithHandler(e.logger.Handler())
	}

	return o
}

// close releases connections in reverse order of opening.
func (e *environment) close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i]()
	}
}
