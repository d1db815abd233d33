package bookcatalog

import (
	"time"

	"github.com/google/uuid"
)

// BookInfo represents a catalog entry.
type BookInfo struct {
	BookID       uuid.UUID
	Title        string
	Author       string
	AcquiredAt   time.Time
	IsOnLoan     bool
	Reservations int
}

// Books represents the query result.
type Books struct {
	Books []BookInfo
	Count int
}
