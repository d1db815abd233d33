package sqlengine

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/AntonStoeckl/library-lending-go/gateway"
)

const (
	metricOperationDuration    = "sqlengine_operation_duration_seconds"
	metricOperationsTotal      = "sqlengine_operations_total"
	metricDatabaseErrors       = "sqlengine_database_errors_total"
	metricConcurrencyConflicts = "sqlengine_concurrency_conflicts_total"
	metricIsolationFallbacks   = "sqlengine_isolation_fallbacks_total"
	spanNamePrefix             = "sqlengine."
	spanNameBegin              = "sqlengine.begin"
	spanAttrOperation          = "operation"
	spanAttrEntity             = "entity"
	spanAttrIsolation          = "isolation_level"
	spanAttrErrorType          = "error_type"
	spanAttrDurationMS         = "duration_ms"
	statusSuccess              = "success"
	statusError                = "error"
	statusConflict             = "conflict"
	statusCanceled             = "canceled"
	statusTimeout              = "timeout"
	operationBegin             = "begin"
	operationCommit            = "commit"
	operationRollback          = "rollback"
	operationGet               = "get"
	operationInsert            = "insert"
	operationUpdate            = "update"
	operationDelete            = "delete"
	operationList              = "list"
	operationCount             = "count"
	operationCreateSchema      = "create_schema"
	logMsgBuildQueryFailed     = "failed to build sql query"
	logMsgDBQueryFailed        = "database query execution failed"
	logMsgDBExecFailed         = "database statement execution failed"
	logMsgRowsAffectedFailed   = "failed to get rows affected count"
	logMsgCloseRowsFailed      = "failed to close database rows"
	logMsgScanRowFailed        = "failed to scan database row"
	logMsgBeginFailed          = "failed to begin transaction"
	logMsgCommitFailed         = "failed to commit transaction"
	logMsgRollbackFailed       = "failed to roll back transaction"
	logMsgIsolationFallback    = "isolation level not supported, falling back to database default"
	logMsgConcurrencyConflict  = "concurrency conflict detected"
	logMsgSchemaFailed         = "failed to create schema"
	logMsgSQLExecuted          = "executed sql for: "
	logMsgOperation            = "sqlengine operation: "
	logAttrError               = "error"
	logAttrQuery               = "query"
	logAttrEntity              = "entity"
	logAttrOperation           = "operation"
	logAttrIsolation           = "isolation_level"
	logAttrDurationMS          = "duration_ms"
	logAttrRowsAffected        = "rows_affected"
	logAttrDialect             = "dialect"
)

// logQueryWithDuration logs SQL statements with execution time at debug level.
func (s Store) logQueryWithDuration(ctx context.Context, sqlQuery string, action string, duration time.Duration) {
	args := []any{logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery}

	if s.contextualLogger != nil {
		s.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+action, args...)
	} else if s.logger != nil {
		s.logger.Debug(logMsgSQLExecuted+action, args...)
	}
}

// logOperation logs operational information at info level.
func (s Store) logOperation(ctx context.Context, action string, args ...any) {
	s.logInfo(ctx, logMsgOperation+action, args...)
}

func (s Store) logInfo(ctx context.Context, msg string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.InfoContext(ctx, msg, args...)
	} else if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}

func (s Store) logWarn(ctx context.Context, msg string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.WarnContext(ctx, msg, args...)
	} else if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}

// logError logs error information at the error level.
func (s Store) logError(ctx context.Context, msg string, err error, args ...any) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if s.contextualLogger != nil {
		s.contextualLogger.ErrorContext(ctx, msg, allArgs...)
	} else if s.logger != nil {
		s.logger.Error(msg, allArgs...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

// recordOperation records the duration and the count of one database operation.
func (s Store) recordOperation(ctx context.Context, operation, entity, status string, duration time.Duration) {
	labels := map[string]string{
		spanAttrOperation: operation,
		"status":          status,
	}

	if entity != "" {
		labels[spanAttrEntity] = entity
	}

	s.recordDuration(ctx, metricOperationDuration, duration, labels)
	s.incrementCounter(ctx, metricOperationsTotal, labels)
}

// recordError records database errors and, separately, concurrency conflicts.
func (s Store) recordError(ctx context.Context, operation, entity, errorType string) {
	labels := map[string]string{
		spanAttrOperation: operation,
		"status":          statusError,
		spanAttrErrorType: errorType,
	}

	if entity != "" {
		labels[spanAttrEntity] = entity
	}

	s.incrementCounter(ctx, metricDatabaseErrors, labels)

	if errorType == errorTypeConcurrency {
		s.incrementCounter(ctx, metricConcurrencyConflicts, map[string]string{
			spanAttrOperation: operation,
			"conflict_type":   "serialization",
		})
	}
}

func (s Store) recordDuration(ctx context.Context, metric string, duration time.Duration, labels map[string]string) {
	if s.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := s.metricsCollector.(gateway.ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metric, duration, labels)
	} else {
		s.metricsCollector.RecordDuration(metric, duration, labels)
	}
}

func (s Store) incrementCounter(ctx context.Context, metric string, labels map[string]string) {
	if s.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := s.metricsCollector.(gateway.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metric, labels)
	} else {
		s.metricsCollector.IncrementCounter(metric, labels)
	}
}

// startSpan starts a tracing span if the tracing collector is configured.
func (s Store) startSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, SpanContext) {
	if s.tracingCollector == nil {
		return ctx, nil
	}

	return s.tracingCollector.StartSpan(ctx, name, attrs)
}

// finishSpan finishes a tracing span if the tracing collector is configured.
func (s Store) finishSpan(span SpanContext, status string, duration time.Duration) {
	if s.tracingCollector == nil || span == nil {
		return
	}

	s.tracingCollector.FinishSpan(span, status, map[string]string{
		spanAttrDurationMS: fmt.Sprintf("%.2f", float64(duration.Nanoseconds())/1e6),
	})
}
