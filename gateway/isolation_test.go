package gateway_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-lending-go/gateway"
)

func Test_GetIsolationLevel_DefaultsToSerializable(t *testing.T) {
	assert.Equal(t, gateway.Serializable, gateway.GetIsolationLevel(context.Background()))
}

func Test_GetIsolationLevel_FromContext(t *testing.T) {
	// arrange
	ctx := gateway.WithReadCommitted(context.Background())

	// act + assert
	assert.Equal(t, gateway.ReadCommitted, gateway.GetIsolationLevel(ctx))
	assert.Equal(t, gateway.Serializable, gateway.GetIsolationLevel(gateway.WithSerializable(ctx)))
}

func Test_IsolationLevel_String(t *testing.T) {
	assert.Equal(t, "serializable", gateway.Serializable.String())
	assert.Equal(t, "read_committed", gateway.ReadCommitted.String())
	assert.Equal(t, "unknown", gateway.IsolationLevel(42).String())
}

func Test_Loan_IsActive(t *testing.T) {
	// arrange
	active := gateway.Loan{}
	returnedAt := active.LoanedAt
	returned := gateway.Loan{ReturnedAt: &returnedAt}

	// act + assert
	assert.True(t, active.IsActive())
	assert.False(t, returned.IsActive())
}
