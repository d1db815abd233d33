package terminateloan_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-lending-go/gateway"
	"github.com/AntonStoeckl/library-lending-go/library/core"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/terminateloan"
)

func Test_Decide_Success_WhenMemberHoldsTheLoan(t *testing.T) {
	// arrange
	state := givenState()
	command := terminateloan.BuildCommand(state.Loan.ID, state.Loan.MemberID, time.Now())

	// act
	result := terminateloan.Decide(state, command)

	// assert
	assert.NoError(t, result.HasError())
	assert.Equal(t, core.BuildLoanTerminated(state.Loan.ID, state.Loan.BookID, state.Loan.MemberID, command.OccurredAt), result.Change)
}

func Test_Decide_Errors(t *testing.T) {
	otherMember := uuid.New()

	testCases := []struct {
		name    string
		modify  func(s *terminateloan.State)
		wantErr error
	}{
		{"missing loan", func(s *terminateloan.State) { s.LoanExists = false }, core.ErrMissingEntity},
		{"missing member", func(s *terminateloan.State) { s.MemberExists = false }, core.ErrMissingEntity},
		{"missing book", func(s *terminateloan.State) { s.BookExists = false }, core.ErrMissingEntity},
		{"book not on loan", func(s *terminateloan.State) { s.ActiveLoanHolders = nil }, core.ErrMissingLoan},
		{"book on loan to another member", func(s *terminateloan.State) { s.ActiveLoanHolders = []uuid.UUID{otherMember} }, core.ErrExistingLoan},
		{
			"loan already returned",
			func(s *terminateloan.State) {
				returnedAt := s.Loan.LoanedAt.Add(time.Hour)
				s.Loan.ReturnedAt = &returnedAt
			},
			core.ErrMissingLoan,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			state := givenState()
			tc.modify(&state)

			// act
			result := terminateloan.Decide(state, terminateloan.BuildCommand(state.Loan.ID, state.Loan.MemberID, time.Now()))

			// assert
			assert.ErrorIs(t, result.HasError(), tc.wantErr)
			assert.False(t, result.HasChangeToApply())
		})
	}
}

func givenState() terminateloan.State {
	memberID := uuid.New()

	return terminateloan.State{
		Loan: gateway.Loan{
			ID:       uuid.New(),
			BookID:   uuid.New(),
			MemberID: memberID,
			LoanedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		},
		LoanExists:        true,
		MemberExists:      true,
		BookExists:        true,
		ActiveLoanHolders: []uuid.UUID{memberID},
	}
}
