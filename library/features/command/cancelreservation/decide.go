package cancelreservation

import (
	"fmt"

	"github.com/AntonStoeckl/library-lending-go/library/core"
)

// State tells Decide whether the reservation is there.
type State struct {
	ReservationExists bool
}

// Decide implements the business logic to determine whether a reservation can be canceled.
//
// Business Rules:
//
//	GIVEN: A reservation with ReservationID
//	WHEN: CancelReservation command is received
//	THEN: ReservationCanceled change is generated
//	ERROR: ErrMissingEntity if the reservation does not exist
func Decide(state State, command Command) core.DecisionResult {
	if !state.ReservationExists {
		return core.ErrorDecision(fmt.Errorf("%w: reservation %s", core.ErrMissingEntity, command.ReservationID))
	}

	return core.SuccessDecision(core.BuildReservationCanceled(command.ReservationID, command.OccurredAt))
}
