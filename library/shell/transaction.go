package shell

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-lending-go/gateway"
)

// TxFunc is one business operation working on an open transaction.
type TxFunc func(ctx context.Context, tx gateway.Tx) error

// RunInTransaction begins a transaction, runs fn and commits.
// If fn or the commit fail, the transaction is rolled back and the error is returned unchanged,
// so rule violations stay matchable with errors.Is.
//
// Transactions are serializable unless the context asks for another isolation level,
// see gateway.WithReadCommitted.
func RunInTransaction(ctx context.Context, store gateway.Store, fn TxFunc) error {
	if store == nil {
		return ErrNilStore
	}

	if _, ok := ctx.Value(gateway.IsolationLevelKey).(gateway.IsolationLevel); !ok {
		ctx = gateway.WithSerializable(ctx)
	}

	tx, err := store.Begin(ctx)
	if err != nil {
		return err
	}

	if err = fn(ctx, tx); err != nil {
		return rollback(ctx, tx, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return rollback(ctx, tx, err)
	}

	return nil
}

// rollback keeps the original error in front, a failing rollback is only joined to it.
func rollback(ctx context.Context, tx gateway.Tx, cause error) error {
	if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil && !errors.Is(rbErr, gateway.ErrTxDone) {
		return errors.Join(cause, rbErr)
	}

	return cause
}
