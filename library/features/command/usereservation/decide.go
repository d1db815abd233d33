package usereservation

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/gateway"
	"github.com/AntonStoeckl/library-lending-go/library/core"
)

// State is what Decide needs to know about the reservation, its book queue and its member.
type State struct {
	Reservation       gateway.Reservation
	ReservationExists bool
	MemberExists      bool
	BookExists        bool
	QueueHeadID       uuid.UUID
	BookOnLoan        bool
	MemberActiveLoans int
	MemberLoanLimit   int
}

// Decide implements the business logic to determine whether a reservation can be turned into a loan.
//
// Business Rules:
//
//	GIVEN: A reservation with ReservationID for a book and a member
//	WHEN: UseReservation command is received
//	THEN: ReservationUsed change is generated
//	ERROR: ErrMissingEntity if the reservation, its member or its book does not exist
//	ERROR: ErrExistingReservation if another reservation is ahead in the book's queue
//	ERROR: ErrExistingLoan if the book is on loan
//	ERROR: ErrInvalidLoanLimit if the member's active loans reached the member's limit
func Decide(state State, command Command) core.DecisionResult {
	if !state.ReservationExists {
		return core.ErrorDecision(fmt.Errorf("%w: reservation %s", core.ErrMissingEntity, command.ReservationID))
	}

	reservation := state.Reservation

	if !state.MemberExists {
		return core.ErrorDecision(fmt.Errorf("%w: member %s", core.ErrMissingEntity, reservation.MemberID))
	}

	if !state.BookExists {
		return core.ErrorDecision(fmt.Errorf("%w: book %s", core.ErrMissingEntity, reservation.BookID))
	}

	if state.QueueHeadID != reservation.ID {
		return core.ErrorDecision(fmt.Errorf("%w: reservation %s is not first in line for book %s",
			core.ErrExistingReservation, reservation.ID, reservation.BookID))
	}

	if state.BookOnLoan {
		return core.ErrorDecision(fmt.Errorf("%w: book %s", core.ErrExistingLoan, reservation.BookID))
	}

	if state.MemberActiveLoans >= state.MemberLoanLimit {
		return core.ErrorDecision(fmt.Errorf("%w: member %s has %d of %d loans",
			core.ErrInvalidLoanLimit, reservation.MemberID, state.MemberActiveLoans, state.MemberLoanLimit))
	}

	return core.SuccessDecision(
		core.BuildReservationUsed(reservation.ID, command.LoanID, reservation.BookID, reservation.MemberID, command.OccurredAt),
	)
}
