package memberloans

import (
	"context"
	"errors"
	"fmt"

	"github.com/AntonStoeckl/library-lending-go/gateway"
	"github.com/AntonStoeckl/library-lending-go/library/core"
	"github.com/AntonStoeckl/library-lending-go/library/shell"
)

// QueryHandler answers member loan queries.
type QueryHandler struct {
	store gateway.Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store gateway.Store) QueryHandler {
	return QueryHandler{
		store: store,
	}
}

// Handle loads the loans of the member ordered by loan time, oldest first.
// Querying the loans of a member that does not exist fails with core.ErrMissingEntity.
func (h QueryHandler) Handle(ctx context.Context, query Query) (MemberLoans, error) {
	var result MemberLoans

	err := shell.RunInTransaction(gateway.WithReadCommitted(ctx), h.store, func(txCtx context.Context, tx gateway.Tx) error {
		member, err := tx.Members().Get(txCtx, query.MemberID)
		if errors.Is(err, gateway.ErrNotFound) {
			return fmt.Errorf("%w: member %s", core.ErrMissingEntity, query.MemberID)
		}
		if err != nil {
			return err
		}

		criteria := gateway.BuildCriteria().Where(gateway.FieldMemberID, member.ID)
		if !query.IncludeReturned {
			criteria = criteria.OnlyActive()
		}

		loans, err := tx.Loans().ListBy(txCtx, criteria.OrderBy(gateway.FieldLoanedAt).Finalize())
		if err != nil {
			return err
		}

		activeLoans := 0
		infos := make([]LoanInfo, 0, len(loans))

		for _, loan := range loans {
			book, err := tx.Books().Get(txCtx, loan.BookID)
			if err != nil {
				return err
			}

			if loan.IsActive() {
				activeLoans++
			}

			infos = append(infos, LoanInfo{
				LoanID:     loan.ID,
				BookID:     loan.BookID,
				Title:      book.Title,
				LoanedAt:   loan.LoanedAt,
				ReturnedAt: loan.ReturnedAt,
			})
		}

		result = MemberLoans{
			MemberID:       member.ID,
			Loans:          infos,
			Count:          len(infos),
			LoanLimit:      member.LoanLimit,
			RemainingLoans: max(member.LoanLimit-activeLoans, 0),
		}

		return nil
	})
	if err != nil {
		return MemberLoans{}, err
	}

	return result, nil
}
