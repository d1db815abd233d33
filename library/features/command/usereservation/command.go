package usereservation

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/library/core"
)

const (
	commandType = "UseReservation"
)

// Command represents the intent to lend a reserved book to the member who reserved it.
// LoanID identifies the loan that replaces the reservation.
type Command struct {
	ReservationID uuid.UUID
	LoanID        uuid.UUID
	OccurredAt    core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(reservationID uuid.UUID, loanID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		ReservationID: reservationID,
		LoanID:        loanID,
		OccurredAt:    core.ToOccurredAt(occurredAt),
	}
}
