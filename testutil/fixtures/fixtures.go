// Package fixtures arranges and inspects store state for tests of the lending features.
// Everything goes straight through gateway.Tx, so a test of one feature never depends on
// the handlers of another one.
package fixtures

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/gateway"
)

// Epoch is the fake clock start all fixtures are stamped relative to.
var Epoch = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

// InTx runs fn in a committed serializable transaction and fails the test on any error.
func InTx(t testing.TB, store gateway.Store, fn func(ctx context.Context, tx gateway.Tx) error) {
	t.Helper()

	ctx := gateway.WithSerializable(context.Background())

	tx, err := store.Begin(ctx)
	require.NoError(t, err, "error beginning fixture transaction")

	if err = fn(ctx, tx); err != nil {
		_ = tx.Rollback(ctx)
		require.NoError(t, err, "error in fixture transaction")
	}

	require.NoError(t, tx.Commit(ctx), "error committing fixture transaction")
}

// GivenBook inserts a book.
func GivenBook(t testing.TB, store gateway.Store, title string, author string) gateway.Book {
	t.Helper()

	book := gateway.Book{ID: uuid.New(), Title: title, Author: author, AcquiredAt: Epoch}
	InTx(t, store, func(ctx context.Context, tx gateway.Tx) error {
		return tx.Books().Insert(ctx, book)
	})

	return book
}

// GivenMember inserts a member without loans.
func GivenMember(t testing.TB, store gateway.Store, name string, loanLimit int) gateway.Member {
	t.Helper()

	member := gateway.Member{ID: uuid.New(), Name: name, Phone: "555-0100", LoanLimit: loanLimit}
	InTx(t, store, func(ctx context.Context, tx gateway.Tx) error {
		return tx.Members().Insert(ctx, member)
	})

	return member
}

// GivenActiveLoan inserts a loan that has not been returned and bumps the member's loan counter.
func GivenActiveLoan(t testing.TB, store gateway.Store, bookID uuid.UUID, memberID uuid.UUID, loanedAt time.Time) gateway.Loan {
	t.Helper()

	loan := gateway.Loan{ID: uuid.New(), BookID: bookID, MemberID: memberID, LoanedAt: loanedAt}
	InTx(t, store, func(ctx context.Context, tx gateway.Tx) error {
		if err := tx.Loans().Insert(ctx, loan); err != nil {
			return err
		}

		member, err := tx.Members().Get(ctx, memberID)
		if err != nil {
			return err
		}
		member.LoanCount++

		return tx.Members().Update(ctx, member)
	})

	return loan
}

// GivenReturnedLoan inserts a historic loan.
func GivenReturnedLoan(t testing.TB, store gateway.Store, bookID uuid.UUID, memberID uuid.UUID, loanedAt time.Time) gateway.Loan {
	t.Helper()

	returnedAt := loanedAt.Add(24 * time.Hour)
	loan := gateway.Loan{ID: uuid.New(), BookID: bookID, MemberID: memberID, LoanedAt: loanedAt, ReturnedAt: &returnedAt}
	InTx(t, store, func(ctx context.Context, tx gateway.Tx) error {
		return tx.Loans().Insert(ctx, loan)
	})

	return loan
}

// GivenReservation inserts a reservation.
func GivenReservation(t testing.TB, store gateway.Store, bookID uuid.UUID, memberID uuid.UUID, reservedAt time.Time) gateway.Reservation {
	t.Helper()

	reservation := gateway.Reservation{ID: uuid.New(), BookID: bookID, MemberID: memberID, ReservedAt: reservedAt}
	InTx(t, store, func(ctx context.Context, tx gateway.Tx) error {
		return tx.Reservations().Insert(ctx, reservation)
	})

	return reservation
}

// BookExists reports whether the book is still in the store.
func BookExists(t testing.TB, store gateway.Store, bookID uuid.UUID) bool {
	t.Helper()

	return exists(t, store, func(ctx context.Context, tx gateway.Tx) error {
		_, err := tx.Books().Get(ctx, bookID)
		return err
	})
}

// MemberExists reports whether the member is still in the store.
func MemberExists(t testing.TB, store gateway.Store, memberID uuid.UUID) bool {
	t.Helper()

	return exists(t, store, func(ctx context.Context, tx gateway.Tx) error {
		_, err := tx.Members().Get(ctx, memberID)
		return err
	})
}

// ReservationExists reports whether the reservation is still in the store.
func ReservationExists(t testing.TB, store gateway.Store, reservationID uuid.UUID) bool {
	t.Helper()

	return exists(t, store, func(ctx context.Context, tx gateway.Tx) error {
		_, err := tx.Reservations().Get(ctx, reservationID)
		return err
	})
}

// GetMember loads a member.
func GetMember(t testing.TB, store gateway.Store, memberID uuid.UUID) gateway.Member {
	t.Helper()

	var member gateway.Member
	InTx(t, store, func(ctx context.Context, tx gateway.Tx) error {
		var err error
		member, err = tx.Members().Get(ctx, memberID)
		return err
	})

	return member
}

// GetLoan loads a loan.
func GetLoan(t testing.TB, store gateway.Store, loanID uuid.UUID) gateway.Loan {
	t.Helper()

	var loan gateway.Loan
	InTx(t, store, func(ctx context.Context, tx gateway.Tx) error {
		var err error
		loan, err = tx.Loans().Get(ctx, loanID)
		return err
	})

	return loan
}

// ActiveLoansOfBook lists the loans of a book that have not been returned.
func ActiveLoansOfBook(t testing.TB, store gateway.Store, bookID uuid.UUID) []gateway.Loan {
	t.Helper()

	var loans []gateway.Loan
	InTx(t, store, func(ctx context.Context, tx gateway.Tx) error {
		var err error
		loans, err = tx.Loans().ListBy(ctx, gateway.BuildCriteria().
			Where(gateway.FieldBookID, bookID).
			OnlyActive().
			OrderBy(gateway.FieldLoanedAt).
			Finalize())
		return err
	})

	return loans
}

// ActiveLoanCountOfMember counts the loans of a member that have not been returned.
func ActiveLoanCountOfMember(t testing.TB, store gateway.Store, memberID uuid.UUID) int {
	t.Helper()

	var count int
	InTx(t, store, func(ctx context.Context, tx gateway.Tx) error {
		var err error
		count, err = tx.Loans().Count(ctx, gateway.BuildCriteria().
			Where(gateway.FieldMemberID, memberID).
			OnlyActive().
			Finalize())
		return err
	})

	return count
}

// ReservationsOfBook lists the reservation queue of a book, head first.
func ReservationsOfBook(t testing.TB, store gateway.Store, bookID uuid.UUID) []gateway.Reservation {
	t.Helper()

	var reservations []gateway.Reservation
	InTx(t, store, func(ctx context.Context, tx gateway.Tx) error {
		var err error
		reservations, err = tx.Reservations().ListBy(ctx, gateway.BuildCriteria().
			Where(gateway.FieldBookID, bookID).
			OrderBy(gateway.FieldReservedAt).
			Finalize())
		return err
	})

	return reservations
}

func exists(t testing.TB, store gateway.Store, get func(ctx context.Context, tx gateway.Tx) error) bool {
	t.Helper()

	found := true
	InTx(t, store, func(ctx context.Context, tx gateway.Tx) error {
		err := get(ctx, tx)
		if errors.Is(err, gateway.ErrNotFound) {
			found = false
			return nil
		}

		return err
	})

	return found
}
