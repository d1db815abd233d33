package registermember_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-lending-go/library/core"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/registermember"
)

func Test_Decide_Success(t *testing.T) {
	// arrange
	memberID := uuid.New()
	now := time.Now()

	// act
	result := registermember.Decide(registermember.BuildCommand(memberID, "Ada Lovelace", "555-0100", 10, now))

	// assert
	assert.NoError(t, result.HasError())
	assert.Equal(t, core.MemberRegistered{
		MemberID:     memberID,
		Name:         "Ada Lovelace",
		Phone:        "555-0100",
		LoanLimit:    10,
		RegisteredAt: core.ToOccurredAt(now),
	}, result.Change)
}

func Test_Decide_Error_InvalidInput(t *testing.T) {
	testCases := []struct {
		name      string
		member    string
		loanLimit int
	}{
		{"empty name", "", 1},
		{"zero loan limit", "Ada", 0},
		{"negative loan limit", "Ada", -1},
		{"loan limit above maximum", "Ada", core.MaxLoanLimit + 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result := registermember.Decide(registermember.BuildCommand(uuid.New(), tc.member, "", tc.loanLimit, time.Now()))

			// assert
			assert.ErrorIs(t, result.HasError(), core.ErrInvalidInput)
		})
	}
}
