package adapters

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// stdTxHandle is satisfied by both *sql.Tx and *sqlx.Tx.
type stdTxHandle interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	Commit() error
	Rollback() error
}

// stdTx wraps a database/sql transaction to implement the DBTx interface.
type stdTx struct {
	tx stdTxHandle
}

func (s *stdTx) Query(ctx context.Context, query string, args ...any) (DBRows, error) {
	rows, err := s.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	return &stdRows{rows: rows}, nil
}

func (s *stdTx) Exec(ctx context.Context, query string, args ...any) (DBResult, error) {
	result, err := s.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	return &stdResult{result: result}, nil
}

func (s *stdTx) Commit(_ context.Context) error {
	return s.tx.Commit()
}

func (s *stdTx) Rollback(_ context.Context) error {
	return s.tx.Rollback()
}

// stdRows wraps standard library sql.Rows to implement DBRows interface.
type stdRows struct {
	rows *sql.Rows
}

func (s *stdRows) Next() bool {
	return s.rows.Next()
}

func (s *stdRows) Scan(dest ...any) error {
	return s.rows.Scan(dest...)
}

func (s *stdRows) Err() error {
	return s.rows.Err()
}

func (s *stdRows) Close() error {
	return s.rows.Close()
}

// stdResult wraps standard library sql.Result to implement DBResult interface.
type stdResult struct {
	result sql.Result
}

func (s *stdResult) RowsAffected() (int64, error) {
	return s.result.RowsAffected()
}

// unsupportedIsolationMessages are the driver rejections of a requested isolation level:
// database/sql for drivers without isolation support and lib/pq for levels it does not know.
var unsupportedIsolationMessages = []string{
	"sql: driver does not support non-default isolation level",
	"pq: isolation level not supported",
}

// wrapBeginErr marks driver errors that reject the isolation level, so the store can fall back.
func wrapBeginErr(err error) error {
	for _, message := range unsupportedIsolationMessages {
		if strings.HasPrefix(err.Error(), message) {
			return errors.Join(ErrIsolationLevelUnsupported, err)
		}
	}

	return err
}
