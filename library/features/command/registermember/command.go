package registermember

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/library/core"
)

const (
	commandType = "RegisterMember"
)

// Command represents the intent to register a new member.
type Command struct {
	MemberID   uuid.UUID
	Name       string
	Phone      string
	LoanLimit  int
	OccurredAt core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(memberID uuid.UUID, name string, phone string, loanLimit int, occurredAt time.Time) Command {
	return Command{
		MemberID:   memberID,
		Name:       strings.TrimSpace(name),
		Phone:      strings.TrimSpace(phone),
		LoanLimit:  loanLimit,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
