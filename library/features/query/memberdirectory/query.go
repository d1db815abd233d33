package memberdirectory

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/gateway"
)

const (
	queryType = "MemberDirectory"
)

// Query represents the intent to look up members.
// A zero MemberID and an empty NameContains list all members.
type Query struct {
	MemberID     uuid.UUID
	NameContains string
	SortBy       gateway.Field
}

// BuildQuery creates a Query for all members sorted by the given field.
// Valid sort fields are gateway.FieldName and gateway.FieldLoanLimit.
func BuildQuery(sortBy gateway.Field) Query {
	return Query{
		SortBy: sortBy,
	}
}

// BuildGetQuery creates a Query for a single member.
func BuildGetQuery(memberID uuid.UUID) Query {
	return Query{
		MemberID: memberID,
		SortBy:   gateway.FieldName,
	}
}

// BuildFindByNameQuery creates a Query for members whose name contains the fragment.
func BuildFindByNameQuery(fragment string) Query {
	return Query{
		NameContains: fragment,
		SortBy:       gateway.FieldName,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
