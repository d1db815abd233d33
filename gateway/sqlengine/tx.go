package sqlengine

import (
	"context"
	"time"

	"github.com/AntonStoeckl/library-lending-go/gateway"
	"github.com/AntonStoeckl/library-lending-go/gateway/sqlengine/internal/adapters"
)

// storeTx implements gateway.Tx. It is not safe for concurrent use.
type storeTx struct {
	store Store
	dbTx  adapters.DBTx
	level gateway.IsolationLevel
	done  bool
}

func (t *storeTx) Books() gateway.Repository[gateway.Book] {
	return &repository[gateway.Book]{tx: t, spec: t.store.tables.books}
}

func (t *storeTx) Members() gateway.Repository[gateway.Member] {
	return &repository[gateway.Member]{tx: t, spec: t.store.tables.members}
}

func (t *storeTx) Loans() gateway.Repository[gateway.Loan] {
	return &repository[gateway.Loan]{tx: t, spec: t.store.tables.loans}
}

func (t *storeTx) Reservations() gateway.Repository[gateway.Reservation] {
	return &repository[gateway.Reservation]{tx: t, spec: t.store.tables.reservations}
}

// Commit commits the transaction. PostgreSQL may report serialization failures only at commit time,
// those are returned as gateway.ErrConcurrencyConflict.
func (t *storeTx) Commit(ctx context.Context) error {
	if t.done {
		return gateway.ErrTxDone
	}

	t.done = true
	start := time.Now()

	if err := t.dbTx.Commit(ctx); err != nil {
		err = t.store.classifyError(ctx, operationCommit, "", err)
		t.store.logError(ctx, logMsgCommitFailed, err)
		t.store.recordOperation(ctx, operationCommit, "", statusFor(err), time.Since(start))

		return err
	}

	t.store.recordOperation(ctx, operationCommit, "", statusSuccess, time.Since(start))

	return nil
}

// Rollback aborts the transaction. It is a no-op once the transaction is finished,
// so it can always be deferred right after Begin.
func (t *storeTx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}

	t.done = true
	start := time.Now()

	if err := t.dbTx.Rollback(ctx); err != nil {
		err = t.store.classifyError(ctx, operationRollback, "", err)
		t.store.logWarn(ctx, logMsgRollbackFailed, logAttrError, err.Error())

		return err
	}

	t.store.recordOperation(ctx, operationRollback, "", statusSuccess, time.Since(start))

	return nil
}
