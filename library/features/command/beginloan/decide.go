package beginloan

import (
	"fmt"

	"github.com/AntonStoeckl/library-lending-go/library/core"
)

// State is what Decide needs to know about the book and the member.
type State struct {
	MemberExists      bool
	BookExists        bool
	BookOnLoan        bool
	BookReservations  int
	MemberActiveLoans int
	MemberLoanLimit   int
}

// Decide implements the business logic to determine whether a book can be lent to a member.
//
// Business Rules:
//
//	GIVEN: A book with BookID and a member with MemberID
//	WHEN: BeginLoan command is received
//	THEN: LoanBegun change is generated
//	ERROR: ErrMissingEntity if the member or the book does not exist
//	ERROR: ErrExistingLoan if the book is already on loan
//	ERROR: ErrExistingReservation if the book is reserved by anyone
//	ERROR: ErrInvalidLoanLimit if the member's active loans reached the loan limit
func Decide(state State, command Command) core.DecisionResult {
	if !state.MemberExists {
		return core.ErrorDecision(fmt.Errorf("%w: member %s", core.ErrMissingEntity, command.MemberID))
	}

	if !state.BookExists {
		return core.ErrorDecision(fmt.Errorf("%w: book %s", core.ErrMissingEntity, command.BookID))
	}

	if state.BookOnLoan {
		return core.ErrorDecision(fmt.Errorf("%w: book %s is on loan", core.ErrExistingLoan, command.BookID))
	}

	if state.BookReservations > 0 {
		return core.ErrorDecision(fmt.Errorf("%w: book %s has %d reservations",
			core.ErrExistingReservation, command.BookID, state.BookReservations))
	}

	if state.MemberActiveLoans >= state.MemberLoanLimit {
		return core.ErrorDecision(fmt.Errorf("%w: member %s has %d active loans, limit is %d",
			core.ErrInvalidLoanLimit, command.MemberID, state.MemberActiveLoans, state.MemberLoanLimit))
	}

	return core.SuccessDecision(
		core.BuildLoanBegun(command.LoanID, command.BookID, command.MemberID, command.OccurredAt),
	)
}
