package core

import "time"

// Change is a state transition the lending rules decided on.
// Command handlers translate it into inserts, updates and deletes inside the same transaction.
type Change interface {
	ChangeType() string
	HasOccurredAt() time.Time
}
