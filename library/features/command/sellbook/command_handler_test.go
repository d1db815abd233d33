package sellbook_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/library/core"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/sellbook"
	. "github.com/AntonStoeckl/library-lending-go/testutil/fixtures"     //nolint:revive
	. "github.com/AntonStoeckl/library-lending-go/testutil/storewrapper" //nolint:revive
)

func Test_CommandHandler_Handle_Success_WithHistoricLoans(t *testing.T) {
	// setup
	store := CreateWrapperWithTestConfig(t).GetStore()
	handler := sellbook.NewCommandHandler(store)

	book := GivenBook(t, store, "Dune", "Frank Herbert")
	member := GivenMember(t, store, "Ada", 3)
	GivenReturnedLoan(t, store, book.ID, member.ID, Epoch)

	// act
	result, err := handler.Handle(context.Background(), sellbook.BuildCommand(book.ID, Epoch.Add(time.Hour)))

	// assert
	require.NoError(t, err)
	assert.Equal(t, core.BookSoldChangeType, result.ChangeType)
	assert.False(t, BookExists(t, store, book.ID))
}

func Test_CommandHandler_Handle_Error_MissingBook(t *testing.T) {
	// setup
	store := CreateWrapperWithTestConfig(t).GetStore()
	handler := sellbook.NewCommandHandler(store)

	// act
	_, err := handler.Handle(context.Background(), sellbook.BuildCommand(uuid.New(), Epoch))

	// assert
	assert.ErrorIs(t, err, core.ErrMissingEntity)
}

func Test_CommandHandler_Handle_Error_BookOnLoan(t *testing.T) {
	// setup
	store := CreateWrapperWithTestConfig(t).GetStore()
	handler := sellbook.NewCommandHandler(store)

	book := GivenBook(t, store, "Dune", "Frank Herbert")
	member := GivenMember(t, store, "Ada", 3)
	GivenActiveLoan(t, store, book.ID, member.ID, Epoch)

	// act
	_, err := handler.Handle(context.Background(), sellbook.BuildCommand(book.ID, Epoch.Add(time.Hour)))

	// assert
	assert.ErrorIs(t, err, core.ErrExistingLoan)
	assert.True(t, BookExists(t, store, book.ID))
}

func Test_CommandHandler_Handle_Error_BookReserved(t *testing.T) {
	// setup
	store := CreateWrapperWithTestConfig(t).GetStore()
	handler := sellbook.NewCommandHandler(store)

	book := GivenBook(t, store, "Dune", "Frank Herbert")
	member := GivenMember(t, store, "Ada", 3)
	GivenReservation(t, store, book.ID, member.ID, Epoch)

	// act
	_, err := handler.Handle(context.Background(), sellbook.BuildCommand(book.ID, Epoch.Add(time.Hour)))

	// assert
	assert.ErrorIs(t, err, core.ErrExistingReservation)
	assert.True(t, BookExists(t, store, book.ID))
}
