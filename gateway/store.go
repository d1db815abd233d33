package gateway

import (
	"context"

	"github.com/google/uuid"
)

// Repository gives access to the rows of one entity type inside a transaction.
//
// Get returns ErrNotFound when no row has the given id.
// Update and Delete return ErrNotFound when no row was affected.
// ListBy returns an empty, non-nil slice when nothing matches.
type Repository[E any] interface {
	Get(ctx context.Context, id uuid.UUID) (E, error)
	Insert(ctx context.Context, entity E) error
	Update(ctx context.Context, entity E) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListBy(ctx context.Context, criteria Criteria) ([]E, error)
	Count(ctx context.Context, criteria Criteria) (int, error)
}

// Tx is one open transaction. All reads and writes of a lending operation go through a single Tx.
// Commit and Rollback finish it. Calling Rollback after Commit is a no-op.
type Tx interface {
	Books() Repository[Book]
	Members() Repository[Member]
	Loans() Repository[Loan]
	Reservations() Repository[Reservation]
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Store opens transactions. The isolation level is taken from the context, see GetIsolationLevel.
type Store interface {
	Begin(ctx context.Context) (Tx, error)
}
