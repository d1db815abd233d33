package memberloans

import (
	"github.com/google/uuid"
)

const (
	queryType = "MemberLoans"
)

// Query represents the intent to list the loans of a member.
type Query struct {
	MemberID        uuid.UUID
	IncludeReturned bool
}

// BuildQuery creates a Query for the active loans of the member.
func BuildQuery(memberID uuid.UUID) Query {
	return Query{
		MemberID: memberID,
	}
}

// BuildHistoryQuery creates a Query for all loans of the member, returned ones included.
func BuildHistoryQuery(memberID uuid.UUID) Query {
	return Query{
		MemberID:        memberID,
		IncludeReturned: true,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
