package observable_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/gateway"
	"github.com/AntonStoeckl/library-lending-go/library/core"
	"github.com/AntonStoeckl/library-lending-go/library/shell"
	"github.com/AntonStoeckl/library-lending-go/library/shell/observable"
	. "github.com/AntonStoeckl/library-lending-go/testutil/helper" //nolint:revive
)

const testCommandType = "TestCommand"

type mockCommand struct{}

func (c mockCommand) CommandType() string {
	return testCommandType
}

type mockHandler struct {
	result shell.HandlerResult
	err    error
	calls  []mockCommand
}

func (h *mockHandler) Handle(_ context.Context, command mockCommand) (shell.HandlerResult, error) {
	h.calls = append(h.calls, command)
	return h.result, h.err
}

func Test_CommandWrapper_Handle_Success(t *testing.T) {
	// arrange
	expectedResult := shell.HandlerResult{ChangeType: core.LoanBegunChangeType, RetryAttempts: 1, LastErrorType: core.KindNone}
	handler := &mockHandler{result: expectedResult}
	metricsCollector := NewMetricsCollectorSpy(true)
	tracingCollector := NewTracingCollectorSpy(true)
	logHandler := NewLogHandlerSpy(false)

	wrapper, err := observable.NewCommandWrapper[mockCommand](
		handler,
		observable.WithCommandMetrics[mockCommand](metricsCollector),
		observable.WithCommandTracing[mockCommand](tracingCollector),
		observable.WithCommandContextualLogging[mockCommand](slog.New(logHandler)),
	)
	require.NoError(t, err)

	// act
	result, err := wrapper.Handle(context.Background(), mockCommand{})

	// assert
	assert.NoError(t, err)
	assert.Equal(t, expectedResult, result)
	assert.Len(t, handler.calls, 1)

	assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.CommandHandlerCallsMetric).
		WithLabel(shell.LogAttrCommandType, testCommandType).
		WithStatus(shell.StatusSuccess).
		Assert(), "Should record success metric")
	assert.True(t, metricsCollector.HasDurationRecordForMetric(shell.CommandHandlerDurationMetric).
		WithStatus(shell.StatusSuccess).
		Assert(), "Should record duration metric")
	assert.Equal(t, 0, metricsCollector.CountCounterRecordsForMetric(shell.CommandHandlerRetriesMetric))

	assert.True(t, tracingCollector.HasSpanRecordForName(shell.SpanNameCommandHandle).
		WithStatus(shell.StatusSuccess).
		WithStartAttribute(shell.LogAttrCommandType, testCommandType).
		WithEndAttributeKey(shell.LogAttrDurationMS).
		Assert())

	assert.True(t, logHandler.HasInfoLogWithMessage(shell.LogMsgCommandStarted).Assert())
	assert.True(t, logHandler.HasInfoLogWithMessage(shell.LogMsgCommandCompleted).
		WithAttr(shell.LogAttrBusinessOutcome, core.LoanBegunChangeType).
		WithDurationMS().
		Assert())
}

func Test_CommandWrapper_Handle_RuleViolation(t *testing.T) {
	// arrange
	violation := fmt.Errorf("%w: member has 1 active loans, limit is 1", core.ErrInvalidLoanLimit)
	handler := &mockHandler{result: shell.HandlerResult{RetryAttempts: 1}, err: violation}
	metricsCollector := NewMetricsCollectorSpy(true)
	logHandler := NewLogHandlerSpy(false)

	wrapper, err := observable.NewCommandWrapper[mockCommand](
		handler,
		observable.WithCommandMetrics[mockCommand](metricsCollector),
		observable.WithCommandLogging[mockCommand](slog.New(logHandler)),
	)
	require.NoError(t, err)

	// act
	_, err = wrapper.Handle(context.Background(), mockCommand{})

	// assert
	assert.ErrorIs(t, err, core.ErrInvalidLoanLimit, "the error must pass through unchanged")
	assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.CommandHandlerRuleViolationMetric).
		WithStatus(shell.StatusRuleViolation).
		Assert())
	assert.True(t, logHandler.HasInfoLogWithMessage(shell.LogMsgCommandFailed).
		WithAttr(shell.LogAttrErrorKind, core.KindInvalidLoanLimit).
		Assert(), "rule violations are expected outcomes and logged at info")
	assert.False(t, logHandler.HasErrorLogWithMessage(shell.LogMsgCommandFailed).Assert())
}

func Test_CommandWrapper_Handle_ErrorStatuses(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		status string
		metric string
	}{
		{"canceled", context.Canceled, shell.StatusCanceled, shell.CommandHandlerCanceledMetric},
		{"timeout", context.DeadlineExceeded, shell.StatusTimeout, shell.CommandHandlerTimeoutMetric},
		{
			"concurrency conflict",
			errors.Join(gateway.ErrStoreFailure, gateway.ErrConcurrencyConflict),
			shell.StatusConcurrencyConflict,
			shell.CommandHandlerConcurrencyConflictMetric,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			handler := &mockHandler{err: tc.err}
			metricsCollector := NewMetricsCollectorSpy(true)
			logHandler := NewLogHandlerSpy(false)

			wrapper, err := observable.NewCommandWrapper[mockCommand](
				handler,
				observable.WithCommandMetrics[mockCommand](metricsCollector),
				observable.WithCommandContextualLogging[mockCommand](slog.New(logHandler)),
			)
			require.NoError(t, err)

			// act
			_, err = wrapper.Handle(context.Background(), mockCommand{})

			// assert
			assert.ErrorIs(t, err, tc.err)
			assert.True(t, metricsCollector.HasCounterRecordForMetric(tc.metric).WithStatus(tc.status).Assert())
			assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.CommandHandlerCallsMetric).WithStatus(tc.status).Assert())
			assert.True(t, logHandler.HasErrorLogWithMessage(shell.LogMsgCommandFailed).
				WithAttr(shell.LogAttrStatus, tc.status).
				Assert())
		})
	}
}

func Test_CommandWrapper_Handle_RecordsRetries(t *testing.T) {
	// arrange
	handler := &mockHandler{
		result: shell.HandlerResult{
			RetryAttempts:    3,
			TotalRetryDelay:  30 * time.Millisecond,
			LastErrorType:    core.KindConcurrencyConflict,
			RetriesExhausted: true,
		},
		err: errors.Join(gateway.ErrStoreFailure, gateway.ErrConcurrencyConflict),
	}
	metricsCollector := NewMetricsCollectorSpy(true)

	wrapper, err := observable.NewCommandWrapper[mockCommand](
		handler,
		observable.WithCommandMetrics[mockCommand](metricsCollector),
	)
	require.NoError(t, err)

	// act
	_, _ = wrapper.Handle(context.Background(), mockCommand{})

	// assert
	assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.CommandHandlerRetriesMetric).
		WithLabel(shell.LabelAttemptNumber, "2").
		WithLabel(shell.LabelErrorType, core.KindConcurrencyConflict).
		Assert())
	assert.True(t, metricsCollector.HasDurationRecordForMetric(shell.CommandHandlerRetryDelayMetric).Assert())
	assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.CommandHandlerMaxRetriesReachedMetric).Assert())
}

func Test_CommandWrapper_Handle_WithoutObservability(t *testing.T) {
	// arrange
	handler := &mockHandler{result: shell.HandlerResult{RetryAttempts: 1}}

	wrapper, err := observable.NewCommandWrapper[mockCommand](handler)
	require.NoError(t, err)

	// act
	result, err := wrapper.Handle(context.Background(), mockCommand{})

	// assert
	assert.NoError(t, err)
	assert.Equal(t, 1, result.RetryAttempts)
}
