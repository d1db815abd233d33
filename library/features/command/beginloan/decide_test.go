package beginloan_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-lending-go/library/core"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/beginloan"
)

func Test_Decide_Success_WhenAllPreconditionsMet(t *testing.T) {
	// arrange
	command := beginloan.BuildCommand(uuid.New(), uuid.New(), uuid.New(), time.Now())
	state := givenState()

	// act
	result := beginloan.Decide(state, command)

	// assert
	assert.NoError(t, result.HasError())
	assert.Equal(t, core.BuildLoanBegun(command.LoanID, command.BookID, command.MemberID, command.OccurredAt), result.Change)
}

func Test_Decide_Success_WhenMemberBorrowsTheLastAllowedBook(t *testing.T) {
	// arrange
	state := givenState()
	state.MemberLoanLimit = 10
	state.MemberActiveLoans = 9

	// act
	result := beginloan.Decide(state, beginloan.BuildCommand(uuid.New(), uuid.New(), uuid.New(), time.Now()))

	// assert
	assert.True(t, result.HasChangeToApply())
}

func Test_Decide_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		modify  func(s *beginloan.State)
		wantErr error
	}{
		{"missing member", func(s *beginloan.State) { s.MemberExists = false }, core.ErrMissingEntity},
		{"missing book", func(s *beginloan.State) { s.BookExists = false }, core.ErrMissingEntity},
		{"book on loan", func(s *beginloan.State) { s.BookOnLoan = true }, core.ErrExistingLoan},
		{"book reserved", func(s *beginloan.State) { s.BookReservations = 1 }, core.ErrExistingReservation},
		{"loan limit reached", func(s *beginloan.State) { s.MemberActiveLoans = s.MemberLoanLimit }, core.ErrInvalidLoanLimit},
		{
			"loan is checked before the reservation and the limit",
			func(s *beginloan.State) {
				s.BookOnLoan = true
				s.BookReservations = 1
				s.MemberActiveLoans = s.MemberLoanLimit
			},
			core.ErrExistingLoan,
		},
		{
			"reservation is checked before the limit",
			func(s *beginloan.State) {
				s.BookReservations = 1
				s.MemberActiveLoans = s.MemberLoanLimit
			},
			core.ErrExistingReservation,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			state := givenState()
			tc.modify(&state)

			// act
			result := beginloan.Decide(state, beginloan.BuildCommand(uuid.New(), uuid.New(), uuid.New(), time.Now()))

			// assert
			assert.ErrorIs(t, result.HasError(), tc.wantErr)
			assert.False(t, result.HasChangeToApply())
		})
	}
}

func givenState() beginloan.State {
	return beginloan.State{
		MemberExists:    true,
		BookExists:      true,
		MemberLoanLimit: 1,
	}
}
