package usereservation_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/library/core"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/usereservation"
	. "github.com/AntonStoeckl/library-lending-go/testutil/fixtures"     //nolint:revive
	. "github.com/AntonStoeckl/library-lending-go/testutil/storewrapper" //nolint:revive
)

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// setup
	store := CreateWrapperWithTestConfig(t).GetStore()
	handler := usereservation.NewCommandHandler(store)

	book := GivenBook(t, store, "T1", "A1")
	first := GivenMember(t, store, "Ada", 1)
	second := GivenMember(t, store, "Grace", 1)
	head := GivenReservation(t, store, book.ID, first.ID, Epoch)
	next := GivenReservation(t, store, book.ID, second.ID, Epoch.Add(time.Minute))
	loanID := uuid.New()

	// act
	result, err := handler.Handle(context.Background(), usereservation.BuildCommand(head.ID, loanID, Epoch.Add(time.Hour)))

	// assert
	require.NoError(t, err)
	assert.Equal(t, core.ReservationUsedChangeType, result.ChangeType)
	assert.False(t, ReservationExists(t, store, head.ID))

	loan := GetLoan(t, store, loanID)
	assert.Equal(t, book.ID, loan.BookID)
	assert.Equal(t, first.ID, loan.MemberID)
	assert.True(t, loan.IsActive())
	assert.Equal(t, 1, GetMember(t, store, first.ID).LoanCount)

	queue := ReservationsOfBook(t, store, book.ID)
	require.Len(t, queue, 1, "other reservations stay queued")
	assert.Equal(t, next.ID, queue[0].ID)
}

func Test_CommandHandler_Handle_Error_NotFirstInLine(t *testing.T) {
	// setup
	store := CreateWrapperWithTestConfig(t).GetStore()
	handler := usereservation.NewCommandHandler(store)

	book := GivenBook(t, store, "T1", "A1")
	first := GivenMember(t, store, "Ada", 1)
	second := GivenMember(t, store, "Grace", 1)
	GivenReservation(t, store, book.ID, first.ID, Epoch)
	behind := GivenReservation(t, store, book.ID, second.ID, Epoch.Add(time.Minute))

	// act
	_, err := handler.Handle(context.Background(), usereservation.BuildCommand(behind.ID, uuid.New(), Epoch.Add(time.Hour)))

	// assert
	assert.ErrorIs(t, err, core.ErrExistingReservation)
	assert.True(t, ReservationExists(t, store, behind.ID))
	assert.Empty(t, ActiveLoansOfBook(t, store, book.ID))
}

func Test_CommandHandler_Handle_Error_BookStillOnLoan(t *testing.T) {
	// setup
	store := CreateWrapperWithTestConfig(t).GetStore()
	handler := usereservation.NewCommandHandler(store)

	book := GivenBook(t, store, "T1", "A1")
	borrower := GivenMember(t, store, "Ada", 1)
	waiting := GivenMember(t, store, "Grace", 1)
	GivenActiveLoan(t, store, book.ID, borrower.ID, Epoch)
	reservation := GivenReservation(t, store, book.ID, waiting.ID, Epoch.Add(time.Minute))

	// act
	_, err := handler.Handle(context.Background(), usereservation.BuildCommand(reservation.ID, uuid.New(), Epoch.Add(time.Hour)))

	// assert
	assert.ErrorIs(t, err, core.ErrExistingLoan)
	assert.True(t, ReservationExists(t, store, reservation.ID))
	assert.Equal(t, 0, GetMember(t, store, waiting.ID).LoanCount)
}

func Test_CommandHandler_Handle_Error_LoanLimitReached(t *testing.T) {
	// setup
	store := CreateWrapperWithTestConfig(t).GetStore()
	handler := usereservation.NewCommandHandler(store)

	member := GivenMember(t, store, "Ada", 1)
	held := GivenBook(t, store, "T1", "A1")
	reserved := GivenBook(t, store, "T2", "A2")
	GivenActiveLoan(t, store, held.ID, member.ID, Epoch)
	reservation := GivenReservation(t, store, reserved.ID, member.ID, Epoch.Add(time.Minute))

	// act
	_, err := handler.Handle(context.Background(), usereservation.BuildCommand(reservation.ID, uuid.New(), Epoch.Add(time.Hour)))

	// assert
	assert.ErrorIs(t, err, core.ErrInvalidLoanLimit)
	assert.True(t, ReservationExists(t, store, reservation.ID))
	assert.Empty(t, ActiveLoansOfBook(t, store, reserved.ID))
}

func Test_CommandHandler_Handle_Error_MissingReservation(t *testing.T) {
	// setup
	store := CreateWrapperWithTestConfig(t).GetStore()
	handler := usereservation.NewCommandHandler(store)

	// act
	_, err := handler.Handle(context.Background(), usereservation.BuildCommand(uuid.New(), uuid.New(), Epoch))

	// assert
	assert.ErrorIs(t, err, core.ErrMissingEntity)
}

func Test_CommandHandler_Handle_Error_ReservationUsedTwice(t *testing.T) {
	// setup
	store := CreateWrapperWithTestConfig(t).GetStore()
	handler := usereservation.NewCommandHandler(store)

	book := GivenBook(t, store, "T1", "A1")
	member := GivenMember(t, store, "Ada", 2)
	reservation := GivenReservation(t, store, book.ID, member.ID, Epoch)

	_, err := handler.Handle(context.Background(), usereservation.BuildCommand(reservation.ID, uuid.New(), Epoch.Add(time.Hour)))
	require.NoError(t, err)

	// act
	_, err = handler.Handle(context.Background(), usereservation.BuildCommand(reservation.ID, uuid.New(), Epoch.Add(2*time.Hour)))

	// assert
	assert.ErrorIs(t, err, core.ErrMissingEntity)
	assert.Len(t, ActiveLoansOfBook(t, store, book.ID), 1)
}
