package shell

import (
	"context"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/gateway"
)

// CountActiveLoans returns the number of loans the member has not returned yet.
// This is the value all loan limit decisions are based on.
func CountActiveLoans(ctx context.Context, tx gateway.Tx, memberID uuid.UUID) (int, error) {
	return tx.Loans().Count(ctx, gateway.BuildCriteria().
		Where(gateway.FieldMemberID, memberID).
		OnlyActive().
		Finalize())
}

// SyncLoanCount refreshes the denormalized Member.LoanCount from the active loans.
// It must run after the loan rows of the operation were written.
func SyncLoanCount(ctx context.Context, tx gateway.Tx, memberID uuid.UUID) error {
	member, err := tx.Members().Get(ctx, memberID)
	if err != nil {
		return err
	}

	active, err := CountActiveLoans(ctx, tx, memberID)
	if err != nil {
		return err
	}

	if member.LoanCount == active {
		return nil
	}

	member.LoanCount = active

	return tx.Members().Update(ctx, member)
}
