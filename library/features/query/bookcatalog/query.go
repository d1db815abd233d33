package bookcatalog

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/gateway"
)

const (
	queryType = "BookCatalog"
)

// Query represents the intent to look up books.
// A zero BookID and an empty TitleContains list the whole catalog.
type Query struct {
	BookID        uuid.UUID
	TitleContains string
	SortBy        gateway.Field
}

// BuildQuery creates a Query for the whole catalog sorted by the given field.
// Valid sort fields are gateway.FieldTitle, gateway.FieldAuthor and gateway.FieldAcquiredAt.
func BuildQuery(sortBy gateway.Field) Query {
	return Query{
		SortBy: sortBy,
	}
}

// BuildGetQuery creates a Query for a single book.
func BuildGetQuery(bookID uuid.UUID) Query {
	return Query{
		BookID: bookID,
		SortBy: gateway.FieldTitle,
	}
}

// BuildFindByTitleQuery creates a Query for books whose title contains the fragment, ignoring case.
func BuildFindByTitleQuery(fragment string) Query {
	return Query{
		TitleContains: fragment,
		SortBy:        gateway.FieldTitle,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
