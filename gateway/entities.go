package gateway

import (
	"time"

	"github.com/google/uuid"
)

// Book is a physical copy owned by the library.
type Book struct {
	ID         uuid.UUID
	Title      string
	Author     string
	AcquiredAt time.Time
}

// Member is a registered borrower.
//
// LoanCount is a denormalized hint maintained on loan begin and terminate.
// The number of active loans in the store is the ground truth.
type Member struct {
	ID        uuid.UUID
	Name      string
	Phone     string
	LoanLimit int
	LoanCount int
}

// Loan links a Book to the Member holding it. It is active while ReturnedAt is nil.
type Loan struct {
	ID         uuid.UUID
	BookID     uuid.UUID
	MemberID   uuid.UUID
	LoanedAt   time.Time
	ReturnedAt *time.Time
}

// IsActive reports whether the loan has not been returned yet.
func (l Loan) IsActive() bool {
	return l.ReturnedAt == nil
}

// Reservation is a queue entry of a Member waiting for a Book.
// Reservations on the same Book are served in ascending ReservedAt order.
type Reservation struct {
	ID         uuid.UUID
	BookID     uuid.UUID
	MemberID   uuid.UUID
	ReservedAt time.Time
}
