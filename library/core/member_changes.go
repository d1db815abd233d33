package core

import (
	"time"

	"github.com/google/uuid"
)

// Change type identifiers.
const (
	MemberRegisteredChangeType   = "MemberRegistered"
	MemberDeregisteredChangeType = "MemberDeregistered"
)

// MemberRegistered records that a member was registered.
type MemberRegistered struct {
	MemberID     uuid.UUID
	Name         string
	Phone        string
	LoanLimit    int
	RegisteredAt OccurredAt
}

// BuildMemberRegistered creates a new MemberRegistered change.
func BuildMemberRegistered(memberID uuid.UUID, name string, phone string, loanLimit int, occurredAt time.Time) MemberRegistered {
	return MemberRegistered{
		MemberID:     memberID,
		Name:         name,
		Phone:        phone,
		LoanLimit:    loanLimit,
		RegisteredAt: ToOccurredAt(occurredAt),
	}
}

// ChangeType returns the change type identifier.
func (c MemberRegistered) ChangeType() string {
	return MemberRegisteredChangeType
}

// HasOccurredAt returns when this change happened.
func (c MemberRegistered) HasOccurredAt() time.Time {
	return c.RegisteredAt
}

// MemberDeregistered records that a member was removed.
type MemberDeregistered struct {
	MemberID       uuid.UUID
	DeregisteredAt OccurredAt
}

// BuildMemberDeregistered creates a new MemberDeregistered change.
func BuildMemberDeregistered(memberID uuid.UUID, occurredAt time.Time) MemberDeregistered {
	return MemberDeregistered{
		MemberID:       memberID,
		DeregisteredAt: ToOccurredAt(occurredAt),
	}
}

// ChangeType returns the change type identifier.
func (c MemberDeregistered) ChangeType() string {
	return MemberDeregisteredChangeType
}

// HasOccurredAt returns when this change happened.
func (c MemberDeregistered) HasOccurredAt() time.Time {
	return c.DeregisteredAt
}
