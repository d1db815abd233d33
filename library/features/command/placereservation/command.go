package placereservation

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/library/core"
)

const (
	commandType = "PlaceReservation"
)

// Command represents the intent to queue up a member for a book.
type Command struct {
	ReservationID uuid.UUID
	BookID        uuid.UUID
	MemberID      uuid.UUID
	OccurredAt    core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
// The occurredAt timestamp becomes the queue position, callers should take it from a core.Clock.
func BuildCommand(reservationID uuid.UUID, bookID uuid.UUID, memberID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		ReservationID: reservationID,
		BookID:        bookID,
		MemberID:      memberID,
		OccurredAt:    core.ToOccurredAt(occurredAt),
	}
}
