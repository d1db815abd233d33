package reservationqueue

import (
	"context"
	"errors"
	"fmt"

	"github.com/AntonStoeckl/library-lending-go/gateway"
	"github.com/AntonStoeckl/library-lending-go/library/core"
	"github.com/AntonStoeckl/library-lending-go/library/shell"
)

// QueryHandler answers reservation queue queries.
type QueryHandler struct {
	store gateway.Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store gateway.Store) QueryHandler {
	return QueryHandler{
		store: store,
	}
}

// Handle loads the queue of the book ordered by reservation time.
// Querying the queue of a book that does not exist fails with core.ErrMissingEntity.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Queue, error) {
	var result Queue

	err := shell.RunInTransaction(gateway.WithReadCommitted(ctx), h.store, func(txCtx context.Context, tx gateway.Tx) error {
		_, err := tx.Books().Get(txCtx, query.BookID)
		if errors.Is(err, gateway.ErrNotFound) {
			return fmt.Errorf("%w: book %s", core.ErrMissingEntity, query.BookID)
		}
		if err != nil {
			return err
		}

		activeLoans, err := tx.Loans().Count(txCtx, gateway.BuildCriteria().
			Where(gateway.FieldBookID, query.BookID).
			OnlyActive().
			Finalize())
		if err != nil {
			return err
		}

		reservations, err := tx.Reservations().ListBy(txCtx, gateway.BuildCriteria().
			Where(gateway.FieldBookID, query.BookID).
			OrderBy(gateway.FieldReservedAt).
			Finalize())
		if err != nil {
			return err
		}

		result = Queue{
			BookID:   query.BookID,
			IsOnLoan: activeLoans > 0,
			Entries:  make([]Entry, 0, len(reservations)),
			Count:    len(reservations),
		}

		for i, reservation := range reservations {
			result.Entries = append(result.Entries, Entry{
				Position:      i + 1,
				ReservationID: reservation.ID,
				MemberID:      reservation.MemberID,
				ReservedAt:    reservation.ReservedAt,
			})
		}

		return nil
	})
	if err != nil {
		return Queue{}, err
	}

	return result, nil
}
