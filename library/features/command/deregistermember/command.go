package deregistermember

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/library/core"
)

const (
	commandType = "DeregisterMember"
)

// Command represents the intent to remove a member.
type Command struct {
	MemberID   uuid.UUID
	OccurredAt core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(memberID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		MemberID:   memberID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
