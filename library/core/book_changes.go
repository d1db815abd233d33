package core

import (
	"time"

	"github.com/google/uuid"
)

// Change type identifiers.
const (
	BookAcquiredChangeType = "BookAcquired"
	BookSoldChangeType     = "BookSold"
)

// BookAcquired records that a book was bought and added to the catalog.
type BookAcquired struct {
	BookID     uuid.UUID
	Title      string
	Author     string
	AcquiredAt OccurredAt
}

// BuildBookAcquired creates a new BookAcquired change.
func BuildBookAcquired(bookID uuid.UUID, title string, author string, occurredAt time.Time) BookAcquired {
	return BookAcquired{
		BookID:     bookID,
		Title:      title,
		Author:     author,
		AcquiredAt: ToOccurredAt(occurredAt),
	}
}

// ChangeType returns the change type identifier.
func (c BookAcquired) ChangeType() string {
	return BookAcquiredChangeType
}

// HasOccurredAt returns when this change happened.
func (c BookAcquired) HasOccurredAt() time.Time {
	return c.AcquiredAt
}

// BookSold records that a book was sold and removed from the catalog.
type BookSold struct {
	BookID uuid.UUID
	SoldAt OccurredAt
}

// BuildBookSold creates a new BookSold change.
func BuildBookSold(bookID uuid.UUID, occurredAt time.Time) BookSold {
	return BookSold{
		BookID: bookID,
		SoldAt: ToOccurredAt(occurredAt),
	}
}

// ChangeType returns the change type identifier.
func (c BookSold) ChangeType() string {
	return BookSoldChangeType
}

// HasOccurredAt returns when this change happened.
func (c BookSold) HasOccurredAt() time.Time {
	return c.SoldAt
}
