package sqlengine

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"

	"github.com/AntonStoeckl/library-lending-go/gateway"
)

const (
	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
	errorTypeConcurrency         = "concurrency_conflict"
	errorTypeCanceled            = "canceled"
	errorTypeTimeout             = "timeout"
	errorTypeDatabase            = "database"
)

// classifyError wraps a driver error with gateway.ErrStoreFailure, marks conflicts with
// gateway.ErrConcurrencyConflict, and records the matching error metrics.
func (s Store) classifyError(ctx context.Context, operation string, entity string, err error) error {
	errorType := errorTypeOf(err)

	s.recordError(ctx, operation, entity, errorType)

	if errorType == errorTypeConcurrency {
		s.logInfo(ctx, logMsgConcurrencyConflict, logAttrOperation, operation, logAttrEntity, entity)
		return errors.Join(gateway.ErrStoreFailure, gateway.ErrConcurrencyConflict, err)
	}

	return errors.Join(gateway.ErrStoreFailure, err)
}

func errorTypeOf(err error) string {
	switch {
	case isConcurrencyConflict(err):
		return errorTypeConcurrency
	case errors.Is(err, context.Canceled):
		return errorTypeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return errorTypeTimeout
	default:
		return errorTypeDatabase
	}
}

// isConcurrencyConflict detects aborted transactions of all supported drivers.
func isConcurrencyConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == sqlStateSerializationFailure || pgErr.Code == sqlStateDeadlockDetected
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == sqlStateSerializationFailure || string(pqErr.Code) == sqlStateDeadlockDetected
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code == sqlite3.ErrBusy || liteErr.Code == sqlite3.ErrLocked
	}

	return false
}

// statusFor maps an error onto the status used for spans and metrics.
func statusFor(err error) string {
	switch {
	case err == nil:
		return statusSuccess
	case errors.Is(err, gateway.ErrConcurrencyConflict):
		return statusConflict
	case errors.Is(err, context.Canceled):
		return statusCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return statusTimeout
	default:
		return statusError
	}
}
