package acquirebook

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/library/core"
)

const (
	commandType = "AcquireBook"
)

// Command represents the intent to add a book to the catalog.
type Command struct {
	BookID     uuid.UUID
	Title      string
	Author     string
	OccurredAt core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(bookID uuid.UUID, title string, author string, occurredAt time.Time) Command {
	return Command{
		BookID:     bookID,
		Title:      strings.TrimSpace(title),
		Author:     strings.TrimSpace(author),
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
