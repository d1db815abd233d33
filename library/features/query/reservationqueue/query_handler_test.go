package reservationqueue_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/library/core"
	"github.com/AntonStoeckl/library-lending-go/library/features/query/reservationqueue"
	. "github.com/AntonStoeckl/library-lending-go/testutil/fixtures"     //nolint:revive
	. "github.com/AntonStoeckl/library-lending-go/testutil/storewrapper" //nolint:revive
)

func Test_QueryHandler_Handle_ReturnsEmptyQueue_WhenBookIsNotReserved(t *testing.T) {
	// setup
	store := CreateWrapperWithTestConfig(t).GetStore()
	handler := reservationqueue.NewQueryHandler(store)
	book := GivenBook(t, store, "T1", "A1")

	// act
	result, err := handler.Handle(context.Background(), reservationqueue.BuildQuery(book.ID))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 0, result.Count)
	assert.NotNil(t, result.Entries)
	_, hasHead := result.Head()
	assert.False(t, hasHead)
}

func Test_QueryHandler_Handle_ListsQueueInReservationOrder(t *testing.T) {
	// setup
	store := CreateWrapperWithTestConfig(t).GetStore()
	handler := reservationqueue.NewQueryHandler(store)

	book := GivenBook(t, store, "T1", "A1")
	borrower := GivenMember(t, store, "Barbara", 1)
	late := GivenMember(t, store, "Grace", 1)
	early := GivenMember(t, store, "Ada", 1)
	GivenActiveLoan(t, store, book.ID, borrower.ID, Epoch)
	lateReservation := GivenReservation(t, store, book.ID, late.ID, Epoch.Add(2*time.Hour))
	earlyReservation := GivenReservation(t, store, book.ID, early.ID, Epoch.Add(time.Hour))

	// act
	result, err := handler.Handle(context.Background(), reservationqueue.BuildQuery(book.ID))

	// assert
	require.NoError(t, err)
	assert.True(t, result.IsOnLoan)
	require.Equal(t, 2, result.Count)

	head, hasHead := result.Head()
	require.True(t, hasHead)
	assert.Equal(t, earlyReservation.ID, head.ReservationID)
	assert.Equal(t, 1, head.Position)
	assert.Equal(t, early.ID, head.MemberID)

	assert.Equal(t, lateReservation.ID, result.Entries[1].ReservationID)
	assert.Equal(t, 2, result.Entries[1].Position)
}

func Test_QueryHandler_Handle_Error_MissingBook(t *testing.T) {
	// setup
	store := CreateWrapperWithTestConfig(t).GetStore()
	handler := reservationqueue.NewQueryHandler(store)

	// act
	_, err := handler.Handle(context.Background(), reservationqueue.BuildQuery(uuid.New()))

	// assert
	assert.ErrorIs(t, err, core.ErrMissingEntity)
}
