package reservationqueue

import (
	"time"

	"github.com/google/uuid"
)

// Entry represents one reservation in the queue. Position 1 is the head of the queue.
type Entry struct {
	Position      int
	ReservationID uuid.UUID
	MemberID      uuid.UUID
	ReservedAt    time.Time
}

// Queue represents the query result.
type Queue struct {
	BookID   uuid.UUID
	IsOnLoan bool
	Entries  []Entry
	Count    int
}

// Head returns the reservation first in line, if any.
func (q Queue) Head() (Entry, bool) {
	if len(q.Entries) == 0 {
		return Entry{}, false
	}

	return q.Entries[0], true
}
