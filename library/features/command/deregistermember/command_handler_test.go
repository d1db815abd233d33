package deregistermember_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/library/core"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/deregistermember"
	. "github.com/AntonStoeckl/library-lending-go/testutil/fixtures"     //nolint:revive
	. "github.com/AntonStoeckl/library-lending-go/testutil/storewrapper" //nolint:revive
)

func Test_CommandHandler_Handle_Success_WithHistoricLoans(t *testing.T) {
	// setup
	store := CreateWrapperWithTestConfig(t).GetStore()
	handler := deregistermember.NewCommandHandler(store)

	member := GivenMember(t, store, "Ada", 1)
	book := GivenBook(t, store, "Dune", "Frank Herbert")
	GivenReturnedLoan(t, store, book.ID, member.ID, Epoch)

	// act
	_, err := handler.Handle(context.Background(), deregistermember.BuildCommand(member.ID, Epoch.Add(time.Hour)))

	// assert
	require.NoError(t, err)
	assert.False(t, MemberExists(t, store, member.ID))
	assert.True(t, BookExists(t, store, book.ID))
}

func Test_CommandHandler_Handle_Error_MissingMember(t *testing.T) {
	// setup
	store := CreateWrapperWithTestConfig(t).GetStore()
	handler := deregistermember.NewCommandHandler(store)

	// act
	_, err := handler.Handle(context.Background(), deregistermember.BuildCommand(uuid.New(), Epoch))

	// assert
	assert.ErrorIs(t, err, core.ErrMissingEntity)
}

func Test_CommandHandler_Handle_Error_MemberHoldsBook(t *testing.T) {
	// setup
	store := CreateWrapperWithTestConfig(t).GetStore()
	handler := deregistermember.NewCommandHandler(store)

	member := GivenMember(t, store, "Ada", 1)
	book := GivenBook(t, store, "Dune", "Frank Herbert")
	GivenActiveLoan(t, store, book.ID, member.ID, Epoch)

	// act
	_, err := handler.Handle(context.Background(), deregistermember.BuildCommand(member.ID, Epoch.Add(time.Hour)))

	// assert
	assert.ErrorIs(t, err, core.ErrExistingLoan)
	assert.True(t, MemberExists(t, store, member.ID))
}

func Test_CommandHandler_Handle_Error_MemberHoldsReservation(t *testing.T) {
	// setup
	store := CreateWrapperWithTestConfig(t).GetStore()
	handler := deregistermember.NewCommandHandler(store)

	member := GivenMember(t, store, "Ada", 1)
	book := GivenBook(t, store, "Dune", "Frank Herbert")
	GivenReservation(t, store, book.ID, member.ID, Epoch)

	// act
	_, err := handler.Handle(context.Background(), deregistermember.BuildCommand(member.ID, Epoch.Add(time.Hour)))

	// assert
	assert.ErrorIs(t, err, core.ErrExistingReservation)
	assert.True(t, MemberExists(t, store, member.ID))
}
