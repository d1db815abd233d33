package cancelreservation_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/library/core"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/cancelreservation"
	. "github.com/AntonStoeckl/library-lending-go/testutil/fixtures"     //nolint:revive
	. "github.com/AntonStoeckl/library-lending-go/testutil/storewrapper" //nolint:revive
)

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// setup
	store := CreateWrapperWithTestConfig(t).GetStore()
	handler := cancelreservation.NewCommandHandler(store)

	book := GivenBook(t, store, "T1", "A1")
	first := GivenMember(t, store, "Ada", 1)
	second := GivenMember(t, store, "Grace", 1)
	canceled := GivenReservation(t, store, book.ID, first.ID, Epoch)
	kept := GivenReservation(t, store, book.ID, second.ID, Epoch.Add(time.Minute))

	// act
	result, err := handler.Handle(context.Background(), cancelreservation.BuildCommand(canceled.ID, Epoch.Add(time.Hour)))

	// assert
	require.NoError(t, err)
	assert.Equal(t, core.ReservationCanceledChangeType, result.ChangeType)
	assert.False(t, ReservationExists(t, store, canceled.ID))

	queue := ReservationsOfBook(t, store, book.ID)
	require.Len(t, queue, 1)
	assert.Equal(t, kept.ID, queue[0].ID, "the next member moves up")
}

func Test_CommandHandler_Handle_Error_MissingReservation(t *testing.T) {
	// setup
	store := CreateWrapperWithTestConfig(t).GetStore()
	handler := cancelreservation.NewCommandHandler(store)

	// act
	_, err := handler.Handle(context.Background(), cancelreservation.BuildCommand(uuid.New(), Epoch))

	// assert
	assert.ErrorIs(t, err, core.ErrMissingEntity)
}
