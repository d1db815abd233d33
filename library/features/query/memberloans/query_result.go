package memberloans

import (
	"time"

	"github.com/google/uuid"
)

// LoanInfo represents one loan of the member.
type LoanInfo struct {
	LoanID     uuid.UUID
	BookID     uuid.UUID
	Title      string
	LoanedAt   time.Time
	ReturnedAt *time.Time
}

// MemberLoans represents the query result.
type MemberLoans struct {
	MemberID       uuid.UUID
	Loans          []LoanInfo
	Count          int
	LoanLimit      int
	RemainingLoans int
}
