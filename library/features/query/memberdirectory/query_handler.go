package memberdirectory

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/gateway"
	"github.com/AntonStoeckl/library-lending-go/library/core"
	"github.com/AntonStoeckl/library-lending-go/library/shell"
)

var sortFields = []gateway.Field{gateway.FieldName, gateway.FieldLoanLimit}

// QueryHandler answers member directory queries.
type QueryHandler struct {
	store gateway.Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store gateway.Store) QueryHandler {
	return QueryHandler{
		store: store,
	}
}

// Handle loads the matching members in a read-committed transaction.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Members, error) {
	if !slices.Contains(sortFields, query.SortBy) {
		return Members{}, fmt.Errorf("%w: members cannot be sorted by %q", core.ErrInvalidInput, query.SortBy)
	}

	var result Members

	err := shell.RunInTransaction(gateway.WithReadCommitted(ctx), h.store, func(txCtx context.Context, tx gateway.Tx) error {
		members, err := loadMembers(txCtx, tx, query)
		if err != nil {
			return err
		}

		result = Members{
			Members: make([]MemberInfo, 0, len(members)),
			Count:   len(members),
		}

		for _, member := range members {
			info, err := describe(txCtx, tx, member)
			if err != nil {
				return err
			}

			result.Members = append(result.Members, info)
		}

		return nil
	})
	if err != nil {
		return Members{}, err
	}

	return result, nil
}

func loadMembers(ctx context.Context, tx gateway.Tx, query Query) ([]gateway.Member, error) {
	if query.MemberID != uuid.Nil {
		member, err := tx.Members().Get(ctx, query.MemberID)
		if errors.Is(err, gateway.ErrNotFound) {
			return nil, fmt.Errorf("%w: member %s", core.ErrMissingEntity, query.MemberID)
		}
		if err != nil {
			return nil, err
		}

		return []gateway.Member{member}, nil
	}

	return tx.Members().ListBy(ctx, gateway.BuildCriteria().
		WhereContains(gateway.FieldName, query.NameContains).
		OrderBy(query.SortBy).
		Finalize())
}

func describe(ctx context.Context, tx gateway.Tx, member gateway.Member) (MemberInfo, error) {
	activeLoans, err := shell.CountActiveLoans(ctx, tx, member.ID)
	if err != nil {
		return MemberInfo{}, err
	}

	reservations, err := tx.Reservations().Count(ctx, gateway.BuildCriteria().
		Where(gateway.FieldMemberID, member.ID).
		Finalize())
	if err != nil {
		return MemberInfo{}, err
	}

	return MemberInfo{
		MemberID:     member.ID,
		Name:         member.Name,
		Phone:        member.Phone,
		LoanLimit:    member.LoanLimit,
		ActiveLoans:  activeLoans,
		Reservations: reservations,
	}, nil
}
