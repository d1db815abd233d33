package core_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-lending-go/library/core"
)

func Test_SuccessDecision_HasChangeToApply(t *testing.T) {
	change := core.BuildBookSold(uuid.New(), time.Now())

	result := core.SuccessDecision(change)

	assert.True(t, result.HasChangeToApply())
	assert.NoError(t, result.HasError())
	assert.Equal(t, core.BookSoldChangeType, result.Change.ChangeType())
}

func Test_ErrorDecision_HasNoChange(t *testing.T) {
	result := core.ErrorDecision(core.ErrExistingLoan)

	assert.False(t, result.HasChangeToApply())
	assert.ErrorIs(t, result.HasError(), core.ErrExistingLoan)
}

func Test_BuildChange_NormalizesOccurredAt(t *testing.T) {
	local := time.Date(2024, 3, 1, 11, 0, 0, 999, time.FixedZone("CET", 3600))

	change := core.BuildReservationPlaced(uuid.New(), uuid.New(), uuid.New(), local)

	assert.Equal(t, time.UTC, change.HasOccurredAt().Location())
	assert.Equal(t, 0, change.HasOccurredAt().Nanosecond())
}
