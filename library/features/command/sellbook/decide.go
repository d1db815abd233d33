package sellbook

import (
	"fmt"

	"github.com/AntonStoeckl/library-lending-go/library/core"
)

// State is what Decide needs to know about the book, loaded inside the command's transaction.
type State struct {
	BookExists   bool
	ActiveLoans  int
	Reservations int
}

// Decide implements the business logic to determine whether a book can be sold.
//
// Business Rules:
//
//	GIVEN: A book with BookID
//	WHEN: SellBook command is received
//	THEN: BookSold change is generated
//	ERROR: ErrMissingEntity if the book does not exist
//	ERROR: ErrExistingLoan if the book is currently on loan
//	ERROR: ErrExistingReservation if any member has reserved the book
func Decide(state State, command Command) core.DecisionResult {
	if !state.BookExists {
		return core.ErrorDecision(fmt.Errorf("%w: book %s", core.ErrMissingEntity, command.BookID))
	}

	if state.ActiveLoans > 0 {
		return core.ErrorDecision(fmt.Errorf("%w: book %s is on loan", core.ErrExistingLoan, command.BookID))
	}

	if state.Reservations > 0 {
		return core.ErrorDecision(fmt.Errorf("%w: book %s has %d reservations",
			core.ErrExistingReservation, command.BookID, state.Reservations))
	}

	return core.SuccessDecision(core.BuildBookSold(command.BookID, command.OccurredAt))
}
