package core

import (
	"time"

	"github.com/google/uuid"
)

// Change type identifiers.
const (
	LoanBegunChangeType      = "LoanBegun"
	LoanRenewedChangeType    = "LoanRenewed"
	LoanTerminatedChangeType = "LoanTerminated"
)

// LoanBegun records that a book was lent to a member.
type LoanBegun struct {
	LoanID   uuid.UUID
	BookID   uuid.UUID
	MemberID uuid.UUID
	LoanedAt OccurredAt
}

// BuildLoanBegun creates a new LoanBegun change.
func BuildLoanBegun(loanID uuid.UUID, bookID uuid.UUID, memberID uuid.UUID, occurredAt time.Time) LoanBegun {
	return LoanBegun{
		LoanID:   loanID,
		BookID:   bookID,
		MemberID: memberID,
		LoanedAt: ToOccurredAt(occurredAt),
	}
}

// ChangeType returns the change type identifier.
func (c LoanBegun) ChangeType() string {
	return LoanBegunChangeType
}

// HasOccurredAt returns when this change happened.
func (c LoanBegun) HasOccurredAt() time.Time {
	return c.LoanedAt
}

// LoanRenewed records that the loan period of an active loan was restarted.
type LoanRenewed struct {
	LoanID    uuid.UUID
	BookID    uuid.UUID
	MemberID  uuid.UUID
	RenewedAt OccurredAt
}

// BuildLoanRenewed creates a new LoanRenewed change.
func BuildLoanRenewed(loanID uuid.UUID, bookID uuid.UUID, memberID uuid.UUID, occurredAt time.Time) LoanRenewed {
	return LoanRenewed{
		LoanID:    loanID,
		BookID:    bookID,
		MemberID:  memberID,
		RenewedAt: ToOccurredAt(occurredAt),
	}
}

// ChangeType returns the change type identifier.
func (c LoanRenewed) ChangeType() string {
	return LoanRenewedChangeType
}

// HasOccurredAt returns when this change happened.
func (c LoanRenewed) HasOccurredAt() time.Time {
	return c.RenewedAt
}

// LoanTerminated records that a member returned a book.
type LoanTerminated struct {
	LoanID     uuid.UUID
	BookID     uuid.UUID
	MemberID   uuid.UUID
	ReturnedAt OccurredAt
}

// BuildLoanTerminated creates a new LoanTerminated change.
func BuildLoanTerminated(loanID uuid.UUID, bookID uuid.UUID, memberID uuid.UUID, occurredAt time.Time) LoanTerminated {
	return LoanTerminated{
		LoanID:     loanID,
		BookID:     bookID,
		MemberID:   memberID,
		ReturnedAt: ToOccurredAt(occurredAt),
	}
}

// ChangeType returns the change type identifier.
func (c LoanTerminated) ChangeType() string {
	return LoanTerminatedChangeType
}

// HasOccurredAt returns when this change happened.
func (c LoanTerminated) HasOccurredAt() time.Time {
	return c.ReturnedAt
}
