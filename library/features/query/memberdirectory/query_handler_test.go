package memberdirectory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/gateway"
	"github.com/AntonStoeckl/library-lending-go/library/core"
	"github.com/AntonStoeckl/library-lending-go/library/features/query/memberdirectory"
	. "github.com/AntonStoeckl/library-lending-go/testutil/fixtures"     //nolint:revive
	. "github.com/AntonStoeckl/library-lending-go/testutil/storewrapper" //nolint:revive
)

func Test_QueryHandler_Handle_ReturnsEmptyResult_WhenNoMembersRegistered(t *testing.T) {
	// setup
	store := CreateWrapperWithTestConfig(t).GetStore()
	handler := memberdirectory.NewQueryHandler(store)

	// act
	result, err := handler.Handle(context.Background(), memberdirectory.BuildQuery(gateway.FieldName))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 0, result.Count)
	assert.NotNil(t, result.Members)
}

func Test_QueryHandler_Handle_FindsMembersByNameFragmentIgnoringCase(t *testing.T) {
	// setup
	store := CreateWrapperWithTestConfig(t).GetStore()
	handler := memberdirectory.NewQueryHandler(store)

	lovelace := GivenMember(t, store, "Ada Lovelace", 2)
	GivenMember(t, store, "Grace Hopper", 2)
	adams := GivenMember(t, store, "Douglas Adams", 2)

	// act
	result, err := handler.Handle(context.Background(), memberdirectory.BuildFindByNameQuery("ADA"))

	// assert
	require.NoError(t, err)
	require.Equal(t, 2, result.Count)
	assert.Equal(t, lovelace.ID, result.Members[0].MemberID)
	assert.Equal(t, adams.ID, result.Members[1].MemberID)
}

func Test_QueryHandler_Handle_CountsActiveLoansFromTheLoans(t *testing.T) {
	// setup
	store := CreateWrapperWithTestConfig(t).GetStore()
	handler := memberdirectory.NewQueryHandler(store)

	member := GivenMember(t, store, "Ada", 3)
	first := GivenBook(t, store, "T1", "A1")
	second := GivenBook(t, store, "T2", "A2")
	third := GivenBook(t, store, "T3", "A3")
	GivenActiveLoan(t, store, first.ID, member.ID, Epoch)
	GivenReturnedLoan(t, store, second.ID, member.ID, Epoch)
	GivenReservation(t, store, third.ID, member.ID, Epoch.Add(time.Hour))

	// act
	result, err := handler.Handle(context.Background(), memberdirectory.BuildGetQuery(member.ID))

	// assert
	require.NoError(t, err)
	require.Len(t, result.Members, 1)
	assert.Equal(t, 1, result.Members[0].ActiveLoans)
	assert.Equal(t, 1, result.Members[0].Reservations)
	assert.Equal(t, 3, result.Members[0].LoanLimit)
}

func Test_QueryHandler_Handle_Errors(t *testing.T) {
	// setup
	store := CreateWrapperWithTestConfig(t).GetStore()
	handler := memberdirectory.NewQueryHandler(store)

	// act
	_, missingErr := handler.Handle(context.Background(), memberdirectory.BuildGetQuery(uuid.New()))
	_, sortErr := handler.Handle(context.Background(), memberdirectory.BuildQuery(gateway.FieldTitle))

	// assert
	assert.ErrorIs(t, missingErr, core.ErrMissingEntity)
	assert.ErrorIs(t, sortErr, core.ErrInvalidInput)
}
