package registermember

import (
	"fmt"

	"github.com/AntonStoeckl/library-lending-go/library/core"
)

// Decide implements the business logic to determine whether a member can be registered.
//
// Business Rules:
//
//	GIVEN: A name, a phone number and a loan limit
//	WHEN: RegisterMember command is received
//	THEN: MemberRegistered change is generated
//	ERROR: ErrInvalidInput if the name is empty
//	ERROR: ErrInvalidInput if the loan limit is not between 1 and core.MaxLoanLimit
func Decide(command Command) core.DecisionResult {
	if command.Name == "" {
		return core.ErrorDecision(fmt.Errorf("%w: name must not be empty", core.ErrInvalidInput))
	}

	if command.LoanLimit < 1 || command.LoanLimit > core.MaxLoanLimit {
		return core.ErrorDecision(fmt.Errorf("%w: loan limit must be between 1 and %d, got %d",
			core.ErrInvalidInput, core.MaxLoanLimit, command.LoanLimit))
	}

	return core.SuccessDecision(
		core.BuildMemberRegistered(command.MemberID, command.Name, command.Phone, command.LoanLimit, command.OccurredAt),
	)
}
