package bookcatalog

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/gateway"
	"github.com/AntonStoeckl/library-lending-go/library/core"
	"github.com/AntonStoeckl/library-lending-go/library/shell"
)

var sortFields = []gateway.Field{gateway.FieldTitle, gateway.FieldAuthor, gateway.FieldAcquiredAt}

// QueryHandler answers catalog queries.
type QueryHandler struct {
	store gateway.Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store gateway.Store) QueryHandler {
	return QueryHandler{
		store: store,
	}
}

// Handle loads the matching books in a read-committed transaction.
// Looking up a book that does not exist fails with core.ErrMissingEntity.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Books, error) {
	if !slices.Contains(sortFields, query.SortBy) {
		return Books{}, fmt.Errorf("%w: books cannot be sorted by %q", core.ErrInvalidInput, query.SortBy)
	}

	var result Books

	err := shell.RunInTransaction(gateway.WithReadCommitted(ctx), h.store, func(txCtx context.Context, tx gateway.Tx) error {
		books, err := loadBooks(txCtx, tx, query)
		if err != nil {
			return err
		}

		result, err = project(txCtx, tx, books)

		return err
	})
	if err != nil {
		return Books{}, err
	}

	return result, nil
}

func loadBooks(ctx context.Context, tx gateway.Tx, query Query) ([]gateway.Book, error) {
	if query.BookID != uuid.Nil {
		book, err := tx.Books().Get(ctx, query.BookID)
		if errors.Is(err, gateway.ErrNotFound) {
			return nil, fmt.Errorf("%w: book %s", core.ErrMissingEntity, query.BookID)
		}
		if err != nil {
			return nil, err
		}

		return []gateway.Book{book}, nil
	}

	return tx.Books().ListBy(ctx, gateway.BuildCriteria().
		WhereContains(gateway.FieldTitle, query.TitleContains).
		OrderBy(query.SortBy).
		Finalize())
}

func project(ctx context.Context, tx gateway.Tx, books []gateway.Book) (Books, error) {
	activeLoans, err := tx.Loans().ListBy(ctx, gateway.BuildCriteria().OnlyActive().Finalize())
	if err != nil {
		return Books{}, err
	}

	onLoan := make(map[uuid.UUID]bool, len(activeLoans))
	for _, loan := range activeLoans {
		onLoan[loan.BookID] = true
	}

	reservations, err := tx.Reservations().ListBy(ctx, gateway.AllOrderedBy(gateway.FieldReservedAt))
	if err != nil {
		return Books{}, err
	}

	waiting := make(map[uuid.UUID]int, len(reservations))
	for _, reservation := range reservations {
		waiting[reservation.BookID]++
	}

	infos := make([]BookInfo, 0, len(books))
	for _, book := range books {
		infos = append(infos, BookInfo{
			BookID:       book.ID,
			Title:        book.Title,
			Author:       book.Author,
			AcquiredAt:   book.AcquiredAt,
			IsOnLoan:     onLoan[book.ID],
			Reservations: waiting[book.ID],
		})
	}

	return Books{
		Books: infos,
		Count: len(infos),
	}, nil
}
