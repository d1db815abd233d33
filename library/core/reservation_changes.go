package core

import (
	"time"

	"github.com/google/uuid"
)

// Change type identifiers.
const (
	ReservationPlacedChangeType   = "ReservationPlaced"
	ReservationUsedChangeType     = "ReservationUsed"
	ReservationCanceledChangeType = "ReservationCanceled"
)

// ReservationPlaced records that a member joined the reservation queue of a book.
type ReservationPlaced struct {
	ReservationID uuid.UUID
	BookID        uuid.UUID
	MemberID      uuid.UUID
	ReservedAt    OccurredAt
}

// BuildReservationPlaced creates a new ReservationPlaced change.
func BuildReservationPlaced(reservationID uuid.UUID, bookID uuid.UUID, memberID uuid.UUID, occurredAt time.Time) ReservationPlaced {
	return ReservationPlaced{
		ReservationID: reservationID,
		BookID:        bookID,
		MemberID:      memberID,
		ReservedAt:    ToOccurredAt(occurredAt),
	}
}

// ChangeType returns the change type identifier.
func (c ReservationPlaced) ChangeType() string {
	return ReservationPlacedChangeType
}

// HasOccurredAt returns when this change happened.
func (c ReservationPlaced) HasOccurredAt() time.Time {
	return c.ReservedAt
}

// ReservationUsed records that the head of a reservation queue was promoted into a loan.
type ReservationUsed struct {
	ReservationID uuid.UUID
	LoanID        uuid.UUID
	BookID        uuid.UUID
	MemberID      uuid.UUID
	LoanedAt      OccurredAt
}

// BuildReservationUsed creates a new ReservationUsed change.
func BuildReservationUsed(reservationID uuid.UUID, loanID uuid.UUID, bookID uuid.UUID, memberID uuid.UUID, occurredAt time.Time) ReservationUsed {
	return ReservationUsed{
		ReservationID: reservationID,
		LoanID:        loanID,
		BookID:        bookID,
		MemberID:      memberID,
		LoanedAt:      ToOccurredAt(occurredAt),
	}
}

// ChangeType returns the change type identifier.
func (c ReservationUsed) ChangeType() string {
	return ReservationUsedChangeType
}

// HasOccurredAt returns when this change happened.
func (c ReservationUsed) HasOccurredAt() time.Time {
	return c.LoanedAt
}

// ReservationCanceled records that a reservation was withdrawn.
type ReservationCanceled struct {
	ReservationID uuid.UUID
	CanceledAt    OccurredAt
}

// BuildReservationCanceled creates a new ReservationCanceled change.
func BuildReservationCanceled(reservationID uuid.UUID, occurredAt time.Time) ReservationCanceled {
	return ReservationCanceled{
		ReservationID: reservationID,
		CanceledAt:    ToOccurredAt(occurredAt),
	}
}

// ChangeType returns the change type identifier.
func (c ReservationCanceled) ChangeType() string {
	return ReservationCanceledChangeType
}

// HasOccurredAt returns when this change happened.
func (c ReservationCanceled) HasOccurredAt() time.Time {
	return c.CanceledAt
}
