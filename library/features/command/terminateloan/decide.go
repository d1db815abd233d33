package terminateloan

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/gateway"
	"github.com/AntonStoeckl/library-lending-go/library/core"
)

// State is what Decide needs to know about the loan, its book and the requesting member.
type State struct {
	Loan              gateway.Loan
	LoanExists        bool
	MemberExists      bool
	BookExists        bool
	ActiveLoanHolders []uuid.UUID // members holding an active loan on the loan's book
}

// Decide implements the business logic to determine whether a book can be returned.
//
// Business Rules:
//
//	GIVEN: A loan with LoanID, requested by the member with MemberID
//	WHEN: TerminateLoan command is received
//	THEN: LoanTerminated change is generated
//	ERROR: ErrMissingEntity if the loan, the member or the loan's book does not exist
//	ERROR: ErrMissingLoan if the book has no active loan
//	ERROR: ErrExistingLoan if an active loan on the book belongs to another member
//	ERROR: ErrMissingLoan if the addressed loan was already returned
func Decide(state State, command Command) core.DecisionResult {
	if !state.LoanExists {
		return core.ErrorDecision(fmt.Errorf("%w: loan %s", core.ErrMissingEntity, command.LoanID))
	}

	if !state.MemberExists {
		return core.ErrorDecision(fmt.Errorf("%w: member %s", core.ErrMissingEntity, command.MemberID))
	}

	if !state.BookExists {
		return core.ErrorDecision(fmt.Errorf("%w: book %s", core.ErrMissingEntity, state.Loan.BookID))
	}

	if len(state.ActiveLoanHolders) == 0 {
		return core.ErrorDecision(fmt.Errorf("%w: book %s is not on loan", core.ErrMissingLoan, state.Loan.BookID))
	}

	for _, holder := range state.ActiveLoanHolders {
		if holder != command.MemberID {
			return core.ErrorDecision(fmt.Errorf("%w: book %s is on loan to member %s",
				core.ErrExistingLoan, state.Loan.BookID, holder))
		}
	}

	if !state.Loan.IsActive() {
		return core.ErrorDecision(fmt.Errorf("%w: loan %s was already returned", core.ErrMissingLoan, command.LoanID))
	}

	return core.SuccessDecision(
		core.BuildLoanTerminated(state.Loan.ID, state.Loan.BookID, state.Loan.MemberID, command.OccurredAt),
	)
}
