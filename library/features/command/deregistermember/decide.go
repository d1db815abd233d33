package deregistermember

import (
	"fmt"

	"github.com/AntonStoeckl/library-lending-go/library/core"
)

// State is what Decide needs to know about the member.
type State struct {
	MemberExists bool
	ActiveLoans  int
	Reservations int
}

// Decide implements the business logic to determine whether a member can be deregistered.
//
// Business Rules:
//
//	GIVEN: A member with MemberID
//	WHEN: DeregisterMember command is received
//	THEN: MemberDeregistered change is generated
//	ERROR: ErrMissingEntity if the member does not exist
//	ERROR: ErrExistingLoan if the member still holds a book
//	ERROR: ErrExistingReservation if the member still waits for a book
func Decide(state State, command Command) core.DecisionResult {
	if !state.MemberExists {
		return core.ErrorDecision(fmt.Errorf("%w: member %s", core.ErrMissingEntity, command.MemberID))
	}

	if state.ActiveLoans > 0 {
		return core.ErrorDecision(fmt.Errorf("%w: member %s holds %d books",
			core.ErrExistingLoan, command.MemberID, state.ActiveLoans))
	}

	if state.Reservations > 0 {
		return core.ErrorDecision(fmt.Errorf("%w: member %s holds %d reservations",
			core.ErrExistingReservation, command.MemberID, state.Reservations))
	}

	return core.SuccessDecision(core.BuildMemberDeregistered(command.MemberID, command.OccurredAt))
}
