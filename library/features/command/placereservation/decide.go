package placereservation

import (
	"fmt"

	"github.com/AntonStoeckl/library-lending-go/library/core"
)

// State is what Decide needs to know about the book and the member.
type State struct {
	MemberExists    bool
	BookExists      bool
	AlreadyReserved bool
}

// Decide implements the business logic to determine whether a member can reserve a book.
//
// Business Rules:
//
//	GIVEN: A member with MemberID and a book with BookID
//	WHEN: PlaceReservation command is received
//	THEN: ReservationPlaced change is generated, whether or not the book is on loan
//	ERROR: ErrMissingEntity if the member or the book does not exist
//	ERROR: ErrExistingReservation if the member already reserved this book
func Decide(state State, command Command) core.DecisionResult {
	if !state.MemberExists {
		return core.ErrorDecision(fmt.Errorf("%w: member %s", core.ErrMissingEntity, command.MemberID))
	}

	if !state.BookExists {
		return core.ErrorDecision(fmt.Errorf("%w: book %s", core.ErrMissingEntity, command.BookID))
	}

	if state.AlreadyReserved {
		return core.ErrorDecision(fmt.Errorf("%w: member %s already reserved book %s",
			core.ErrExistingReservation, command.MemberID, command.BookID))
	}

	return core.SuccessDecision(
		core.BuildReservationPlaced(command.ReservationID, command.BookID, command.MemberID, command.OccurredAt),
	)
}
