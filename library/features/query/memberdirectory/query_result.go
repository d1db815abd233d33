package memberdirectory

import (
	"github.com/google/uuid"
)

// MemberInfo represents a directory entry. ActiveLoans is counted from the loans, not taken from the stored counter.
type MemberInfo struct {
	MemberID     uuid.UUID
	Name         string
	Phone        string
	LoanLimit    int
	ActiveLoans  int
	Reservations int
}

// Members represents the query result.
type Members struct {
	Members []MemberInfo
	Count   int
}
