package placereservation_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/library/core"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/placereservation"
	. "github.com/AntonStoeckl/library-lending-go/testutil/fixtures"     //nolint:revive
	. "github.com/AntonStoeckl/library-lending-go/testutil/storewrapper" //nolint:revive
)

func Test_CommandHandler_Handle_Success_OnBookOnLoan(t *testing.T) {
	// setup
	store := CreateWrapperWithTestConfig(t).GetStore()
	handler := placereservation.NewCommandHandler(store)

	book := GivenBook(t, store, "T1", "A1")
	borrower := GivenMember(t, store, "Ada", 1)
	member := GivenMember(t, store, "Grace", 1)
	GivenActiveLoan(t, store, book.ID, borrower.ID, Epoch)
	reservationID := uuid.New()

	// act
	result, err := handler.Handle(context.Background(),
		placereservation.BuildCommand(reservationID, book.ID, member.ID, Epoch.Add(time.Hour)))

	// assert
	require.NoError(t, err)
	assert.Equal(t, core.ReservationPlacedChangeType, result.ChangeType)

	queue := ReservationsOfBook(t, store, book.ID)
	require.Len(t, queue, 1)
	assert.Equal(t, reservationID, queue[0].ID)
	assert.Equal(t, member.ID, queue[0].MemberID)
	assert.True(t, Epoch.Add(time.Hour).Equal(queue[0].ReservedAt))
}

func Test_CommandHandler_Handle_Success_OnAvailableBook(t *testing.T) {
	// setup
	store := CreateWrapperWithTestConfig(t).GetStore()
	handler := placereservation.NewCommandHandler(store)

	book := GivenBook(t, store, "T1", "A1")
	member := GivenMember(t, store, "Ada", 1)

	// act
	_, err := handler.Handle(context.Background(), placereservation.BuildCommand(uuid.New(), book.ID, member.ID, Epoch))

	// assert
	require.NoError(t, err, "reserving an available book creates a one-entry queue")
	assert.Len(t, ReservationsOfBook(t, store, book.ID), 1)
}

func Test_CommandHandler_Handle_Error_DuplicateReservation(t *testing.T) {
	// setup
	store := CreateWrapperWithTestConfig(t).GetStore()
	handler := placereservation.NewCommandHandler(store)

	book := GivenBook(t, store, "T1", "A1")
	member := GivenMember(t, store, "Ada", 1)
	first := GivenReservation(t, store, book.ID, member.ID, Epoch)

	// act
	_, err := handler.Handle(context.Background(), placereservation.BuildCommand(uuid.New(), book.ID, member.ID, Epoch.Add(time.Hour)))

	// assert
	assert.ErrorIs(t, err, core.ErrExistingReservation)
	queue := ReservationsOfBook(t, store, book.ID)
	require.Len(t, queue, 1)
	assert.Equal(t, first.ID, queue[0].ID)
}

func Test_CommandHandler_Handle_Success_QueueKeepsPlacementOrder(t *testing.T) {
	// setup
	store := CreateWrapperWithTestConfig(t).GetStore()
	handler := placereservation.NewCommandHandler(store)
	clock := core.NewMonotonicClockFrom(func() time.Time { return Epoch })

	book := GivenBook(t, store, "T1", "A1")
	members := []uuid.UUID{
		GivenMember(t, store, "Ada", 1).ID,
		GivenMember(t, store, "Grace", 1).ID,
		GivenMember(t, store, "Barbara", 1).ID,
	}

	// act
	for _, memberID := range members {
		_, err := handler.Handle(context.Background(), placereservation.BuildCommand(uuid.New(), book.ID, memberID, clock.Now()))
		require.NoError(t, err)
	}

	// assert
	queue := ReservationsOfBook(t, store, book.ID)
	require.Len(t, queue, len(members))
	for i, reservation := range queue {
		assert.Equal(t, members[i], reservation.MemberID)
	}
}

func Test_CommandHandler_Handle_Error_MissingEntities(t *testing.T) {
	// setup
	store := CreateWrapperWithTestConfig(t).GetStore()
	handler := placereservation.NewCommandHandler(store)

	book := GivenBook(t, store, "T1", "A1")
	member := GivenMember(t, store, "Ada", 1)

	// act
	_, missingMemberErr := handler.Handle(context.Background(), placereservation.BuildCommand(uuid.New(), book.ID, uuid.New(), Epoch))
	_, missingBookErr := handler.Handle(context.Background(), placereservation.BuildCommand(uuid.New(), uuid.New(), member.ID, Epoch))

	// assert
	assert.ErrorIs(t, missingMemberErr, core.ErrMissingEntity)
	assert.ErrorIs(t, missingBookErr, core.ErrMissingEntity)
	assert.Empty(t, ReservationsOfBook(t, store, book.ID))
}
