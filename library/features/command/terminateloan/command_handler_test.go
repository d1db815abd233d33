package terminateloan_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/library/core"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/terminateloan"
	. "github.com/AntonStoeckl/library-lending-go/testutil/fixtures"     //nolint:revive
	. "github.com/AntonStoeckl/library-lending-go/testutil/storewrapper" //nolint:revive
)

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// setup
	store := CreateWrapperWithTestConfig(t).GetStore()
	handler := terminateloan.NewCommandHandler(store)

	book := GivenBook(t, store, "T1", "A1")
	member := GivenMember(t, store, "Ada", 1)
	loan := GivenActiveLoan(t, store, book.ID, member.ID, Epoch)
	returnedAt := Epoch.Add(7 * 24 * time.Hour)

	// act
	result, err := handler.Handle(context.Background(), terminateloan.BuildCommand(loan.ID, member.ID, returnedAt))

	// assert
	require.NoError(t, err)
	assert.Equal(t, core.LoanTerminatedChangeType, result.ChangeType)

	returned := GetLoan(t, store, loan.ID)
	require.NotNil(t, returned.ReturnedAt)
	assert.True(t, returnedAt.Equal(*returned.ReturnedAt))
	assert.Empty(t, ActiveLoansOfBook(t, store, book.ID))
	assert.Equal(t, 0, GetMember(t, store, member.ID).LoanCount)
}

func Test_CommandHandler_Handle_Success_ReservationDoesNotBlockTheReturn(t *testing.T) {
	// setup
	store := CreateWrapperWithTestConfig(t).GetStore()
	handler := terminateloan.NewCommandHandler(store)

	book := GivenBook(t, store, "T1", "A1")
	member := GivenMember(t, store, "Ada", 1)
	waiting := GivenMember(t, store, "Grace", 1)
	loan := GivenActiveLoan(t, store, book.ID, member.ID, Epoch)
	GivenReservation(t, store, book.ID, waiting.ID, Epoch.Add(time.Hour))

	// act
	_, err := handler.Handle(context.Background(), terminateloan.BuildCommand(loan.ID, member.ID, Epoch.Add(48*time.Hour)))

	// assert
	require.NoError(t, err)
	assert.Len(t, ReservationsOfBook(t, store, book.ID), 1)
}

func Test_CommandHandler_Handle_Error_BookNotOnLoan(t *testing.T) {
	// setup
	store := CreateWrapperWithTestConfig(t).GetStore()
	handler := terminateloan.NewCommandHandler(store)

	book := GivenBook(t, store, "T1", "A1")
	member := GivenMember(t, store, "Ada", 1)
	loan := GivenReturnedLoan(t, store, book.ID, member.ID, Epoch)

	// act
	_, err := handler.Handle(context.Background(), terminateloan.BuildCommand(loan.ID, member.ID, Epoch.Add(48*time.Hour)))

	// assert
	assert.ErrorIs(t, err, core.ErrMissingLoan)
}

func Test_CommandHandler_Handle_Error_ReturningTwice(t *testing.T) {
	// setup
	store := CreateWrapperWithTestConfig(t).GetStore()
	handler := terminateloan.NewCommandHandler(store)

	book := GivenBook(t, store, "T1", "A1")
	member := GivenMember(t, store, "Ada", 1)
	loan := GivenActiveLoan(t, store, book.ID, member.ID, Epoch)

	_, err := handler.Handle(context.Background(), terminateloan.BuildCommand(loan.ID, member.ID, Epoch.Add(time.Hour)))
	require.NoError(t, err)

	// act
	_, err = handler.Handle(context.Background(), terminateloan.BuildCommand(loan.ID, member.ID, Epoch.Add(2*time.Hour)))

	// assert
	assert.ErrorIs(t, err, core.ErrMissingLoan)
	returned := GetLoan(t, store, loan.ID)
	require.NotNil(t, returned.ReturnedAt)
	assert.True(t, Epoch.Add(time.Hour).Equal(*returned.ReturnedAt), "the first return timestamp is kept")
}

func Test_CommandHandler_Handle_Error_LoanHeldByAnotherMember(t *testing.T) {
	// setup
	store := CreateWrapperWithTestConfig(t).GetStore()
	handler := terminateloan.NewCommandHandler(store)

	book := GivenBook(t, store, "T1", "A1")
	holder := GivenMember(t, store, "Ada", 1)
	other := GivenMember(t, store, "Grace", 1)
	loan := GivenActiveLoan(t, store, book.ID, holder.ID, Epoch)

	// act
	_, err := handler.Handle(context.Background(), terminateloan.BuildCommand(loan.ID, other.ID, Epoch.Add(time.Hour)))

	// assert
	assert.ErrorIs(t, err, core.ErrExistingLoan)
	assert.True(t, GetLoan(t, store, loan.ID).IsActive())
	assert.Equal(t, 1, GetMember(t, store, holder.ID).LoanCount)
}

func Test_CommandHandler_Handle_Error_MissingEntities(t *testing.T) {
	// setup
	store := CreateWrapperWithTestConfig(t).GetStore()
	handler := terminateloan.NewCommandHandler(store)

	book := GivenBook(t, store, "T1", "A1")
	member := GivenMember(t, store, "Ada", 1)
	loan := GivenActiveLoan(t, store, book.ID, member.ID, Epoch)

	// act
	_, missingLoanErr := handler.Handle(context.Background(), terminateloan.BuildCommand(uuid.New(), member.ID, Epoch))
	_, missingMemberErr := handler.Handle(context.Background(), terminateloan.BuildCommand(loan.ID, uuid.New(), Epoch))

	// assert
	assert.ErrorIs(t, missingLoanErr, core.ErrMissingEntity)
	assert.ErrorIs(t, missingMemberErr, core.ErrMissingEntity)
}
