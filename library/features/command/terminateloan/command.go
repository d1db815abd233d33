package terminateloan

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/library/core"
)

const (
	commandType = "TerminateLoan"
)

// Command represents the intent to return a borrowed book.
// MemberID is the member asking for it, who must hold the loan.
type Command struct {
	LoanID     uuid.UUID
	MemberID   uuid.UUID
	OccurredAt core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(loanID uuid.UUID, memberID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		LoanID:     loanID,
		MemberID:   memberID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
