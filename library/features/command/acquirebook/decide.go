package acquirebook

import (
	"fmt"

	"github.com/AntonStoeckl/library-lending-go/library/core"
)

// Decide implements the business logic to determine whether a book can be acquired.
//
// Business Rules:
//
//	GIVEN: A title and an author
//	WHEN: AcquireBook command is received
//	THEN: BookAcquired change is generated
//	ERROR: ErrInvalidInput if the title or the author is empty
func Decide(command Command) core.DecisionResult {
	if command.Title == "" {
		return core.ErrorDecision(fmt.Errorf("%w: title must not be empty", core.ErrInvalidInput))
	}

	if command.Author == "" {
		return core.ErrorDecision(fmt.Errorf("%w: author must not be empty", core.ErrInvalidInput))
	}

	return core.SuccessDecision(
		core.BuildBookAcquired(command.BookID, command.Title, command.Author, command.OccurredAt),
	)
}
