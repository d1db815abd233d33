package sqlengine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/gateway"
	"github.com/AntonStoeckl/library-lending-go/gateway/sqlengine/internal/adapters"
)

// repository implements gateway.Repository for one table inside one transaction.
type repository[E any] struct {
	tx   *storeTx
	spec *tableSpec[E]
}

// Get fetches one row by primary key.
func (r *repository[E]) Get(ctx context.Context, id uuid.UUID) (E, error) {
	var empty E

	criteria := gateway.BuildCriteria().Where(gateway.FieldID, id).Limit(1).Finalize()

	found, err := r.list(ctx, operationGet, criteria)
	if err != nil {
		return empty, err
	}

	if len(found) == 0 {
		return empty, fmt.Errorf("%s %s: %w", r.spec.entity, id, gateway.ErrNotFound)
	}

	return found[0], nil
}

// Insert adds one row.
func (r *repository[E]) Insert(ctx context.Context, entity E) error {
	sqlQuery, args, err := r.tx.store.dialect.Insert(r.spec.table).Prepared(true).Rows(r.spec.record(entity)).ToSQL()
	if err != nil {
		return r.buildFailed(ctx, operationInsert, err)
	}

	_, err = r.exec(ctx, operationInsert, sqlQuery, args)

	return err
}

// Update overwrites every column of the row with the entity's primary key.
func (r *repository[E]) Update(ctx context.Context, entity E) error {
	id := r.spec.id(entity)
	record := r.spec.record(entity)
	delete(record, gateway.FieldID)

	sqlQuery, args, err := r.tx.store.dialect.Update(r.spec.table).Prepared(true).
		Set(record).
		Where(goqu.C(gateway.FieldID).Eq(id.String())).
		ToSQL()
	if err != nil {
		return r.buildFailed(ctx, operationUpdate, err)
	}

	rowsAffected, err := r.exec(ctx, operationUpdate, sqlQuery, args)
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%s %s: %w", r.spec.entity, id, gateway.ErrNotFound)
	}

	return nil
}

// Delete removes the row with the given primary key.
func (r *repository[E]) Delete(ctx context.Context, id uuid.UUID) error {
	sqlQuery, args, err := r.tx.store.dialect.Delete(r.spec.table).Prepared(true).
		Where(goqu.C(gateway.FieldID).Eq(id.String())).
		ToSQL()
	if err != nil {
		return r.buildFailed(ctx, operationDelete, err)
	}

	rowsAffected, err := r.exec(ctx, operationDelete, sqlQuery, args)
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%s %s: %w", r.spec.entity, id, gateway.ErrNotFound)
	}

	return nil
}

// ListBy returns all rows matching the criteria in the criteria's order.
func (r *repository[E]) ListBy(ctx context.Context, criteria gateway.Criteria) ([]E, error) {
	return r.list(ctx, operationList, criteria)
}

// Count returns the number of rows matching the criteria. Ordering and limit are ignored.
func (r *repository[E]) Count(ctx context.Context, criteria gateway.Criteria) (int, error) {
	conditions, err := r.conditions(criteria)
	if err != nil {
		return 0, err
	}

	sqlQuery, args, err := r.tx.store.dialect.From(r.spec.table).Prepared(true).
		Select(goqu.COUNT(goqu.Star())).
		Where(conditions...).
		ToSQL()
	if err != nil {
		return 0, r.buildFailed(ctx, operationCount, err)
	}

	rows, err := r.query(ctx, operationCount, sqlQuery, args)
	if err != nil {
		return 0, err
	}
	defer r.closeRows(ctx, rows)

	var count int64
	if rows.Next() {
		if scanErr := rows.Scan(&count); scanErr != nil {
			return 0, r.scanFailed(ctx, operationCount, scanErr)
		}
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return 0, r.tx.store.classifyError(ctx, operationCount, r.spec.entity, rowsErr)
	}

	return int(count), nil
}

func (r *repository[E]) list(ctx context.Context, operation string, criteria gateway.Criteria) ([]E, error) {
	conditions, err := r.conditions(criteria)
	if err != nil {
		return nil, err
	}

	order := make([]exp.OrderedExpression, 0, len(criteria.OrderBy()))
	for _, field := range criteria.OrderBy() {
		order = append(order, goqu.C(field).Asc())
	}

	ds := r.tx.store.dialect.From(r.spec.table).Prepared(true).
		Select(r.spec.selectColumns()...).
		Where(conditions...).
		Order(order...)

	if criteria.Limit() > 0 {
		ds = ds.Limit(criteria.Limit())
	}

	sqlQuery, args, err := ds.ToSQL()
	if err != nil {
		return nil, r.buildFailed(ctx, operation, err)
	}

	rows, err := r.query(ctx, operation, sqlQuery, args)
	if err != nil {
		return nil, err
	}
	defer r.closeRows(ctx, rows)

	result := make([]E, 0)

	for rows.Next() {
		entity, scanErr := r.spec.scan(rows)
		if scanErr != nil {
			return nil, r.scanFailed(ctx, operation, scanErr)
		}

		result = append(result, entity)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, r.tx.store.classifyError(ctx, operation, r.spec.entity, rowsErr)
	}

	return result, nil
}

// conditions translates the criteria into goqu expressions after checking every field against the table.
func (r *repository[E]) conditions(criteria gateway.Criteria) ([]exp.Expression, error) {
	for _, field := range criteria.Fields() {
		if !r.spec.hasColumn(field) {
			return nil, fmt.Errorf("%w: %s has no field %q", gateway.ErrInvalidCriteria, r.spec.entity, field)
		}
	}

	conditions := make([]exp.Expression, 0, len(criteria.Equal())+len(criteria.Contains())+1)

	for _, p := range criteria.Equal() {
		conditions = append(conditions, goqu.C(p.Field()).Eq(sqlValue(p.Val())))
	}

	for _, p := range criteria.Contains() {
		conditions = append(conditions, goqu.Func("LOWER", goqu.C(p.Field())).Like(fmt.Sprintf("%%%v%%", p.Val())))
	}

	if criteria.OnlyActive() {
		conditions = append(conditions, goqu.C(gateway.FieldReturnedAt).IsNull())
	}

	return conditions, nil
}

func (r *repository[E]) query(ctx context.Context, operation string, sqlQuery string, args []any) (adapters.DBRows, error) {
	if r.tx.done {
		return nil, gateway.ErrTxDone
	}

	ctx, span := r.tx.store.startSpan(ctx, spanNamePrefix+r.spec.entity+"."+operation, r.spanAttrs(operation))

	start := time.Now()
	rows, err := r.tx.dbTx.Query(ctx, sqlQuery, args...)
	duration := time.Since(start)
	r.tx.store.logQueryWithDuration(ctx, sqlQuery, operation, duration)

	if err != nil {
		err = r.tx.store.classifyError(ctx, operation, r.spec.entity, err)
		r.tx.store.logError(ctx, logMsgDBQueryFailed, err, logAttrQuery, sqlQuery)
		r.tx.store.finishSpan(span, statusFor(err), duration)

		return nil, err
	}

	r.tx.store.recordOperation(ctx, operation, r.spec.entity, statusSuccess, duration)
	r.tx.store.finishSpan(span, statusSuccess, duration)

	return rows, nil
}

func (r *repository[E]) exec(ctx context.Context, operation string, sqlQuery string, args []any) (int64, error) {
	if r.tx.done {
		return 0, gateway.ErrTxDone
	}

	ctx, span := r.tx.store.startSpan(ctx, spanNamePrefix+r.spec.entity+"."+operation, r.spanAttrs(operation))

	start := time.Now()
	result, err := r.tx.dbTx.Exec(ctx, sqlQuery, args...)
	duration := time.Since(start)
	r.tx.store.logQueryWithDuration(ctx, sqlQuery, operation, duration)

	if err != nil {
		err = r.tx.store.classifyError(ctx, operation, r.spec.entity, err)
		r.tx.store.logError(ctx, logMsgDBExecFailed, err, logAttrQuery, sqlQuery)
		r.tx.store.finishSpan(span, statusFor(err), duration)

		return 0, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err = r.tx.store.classifyError(ctx, operation, r.spec.entity, err)
		r.tx.store.logError(ctx, logMsgRowsAffectedFailed, err)
		r.tx.store.finishSpan(span, statusFor(err), duration)

		return 0, err
	}

	r.tx.store.logOperation(ctx, operation,
		logAttrEntity, r.spec.entity,
		logAttrRowsAffected, rowsAffected,
		logAttrDurationMS, toMilliseconds(duration))
	r.tx.store.recordOperation(ctx, operation, r.spec.entity, statusSuccess, duration)
	r.tx.store.finishSpan(span, statusSuccess, duration)

	return rowsAffected, nil
}

func (r *repository[E]) spanAttrs(operation string) map[string]string {
	return map[string]string{
		spanAttrOperation: operation,
		spanAttrEntity:    r.spec.entity,
		spanAttrIsolation: r.tx.level.String(),
	}
}

func (r *repository[E]) closeRows(ctx context.Context, rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		r.tx.store.logWarn(ctx, logMsgCloseRowsFailed, logAttrError, closeErr.Error())
	}
}

func (r *repository[E]) buildFailed(ctx context.Context, operation string, err error) error {
	r.tx.store.logError(ctx, logMsgBuildQueryFailed, err, logAttrEntity, r.spec.entity, logAttrOperation, operation)

	return errors.Join(gateway.ErrStoreFailure, err)
}

func (r *repository[E]) scanFailed(ctx context.Context, operation string, err error) error {
	r.tx.store.logError(ctx, logMsgScanRowFailed, err, logAttrEntity, r.spec.entity, logAttrOperation, operation)

	return errors.Join(gateway.ErrStoreFailure, err)
}
