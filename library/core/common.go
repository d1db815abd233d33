package core

import (
	"time"
)

// MaxLoanLimit is the largest loan limit a member can be registered with.
const MaxLoanLimit = 10

// OccurredAt represents when a change happened.
type OccurredAt = time.Time

// ToOccurredAt converts a time to OccurredAt with UTC normalization and microsecond precision
func ToOccurredAt(t time.Time) OccurredAt {
	return t.UTC().Truncate(time.Microsecond)
}
