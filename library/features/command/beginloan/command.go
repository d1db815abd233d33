package beginloan

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/library/core"
)

const (
	commandType = "BeginLoan"
)

// Command represents the intent to lend a book to a member.
type Command struct {
	LoanID     uuid.UUID
	BookID     uuid.UUID
	MemberID   uuid.UUID
	OccurredAt core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(loanID uuid.UUID, bookID uuid.UUID, memberID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		LoanID:     loanID,
		BookID:     bookID,
		MemberID:   memberID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
