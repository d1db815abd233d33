package core

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-lending-go/gateway"
)

// Rule violations. Every failed decision wraps exactly one of them.
var (
	// ErrMissingEntity is returned when a referenced book, member, loan or reservation does not exist.
	ErrMissingEntity = errors.New("missing entity")

	// ErrExistingLoan is returned when an active loan conflicts with the requested operation.
	ErrExistingLoan = errors.New("existing loan")

	// ErrExistingReservation is returned when a reservation conflicts with the requested operation.
	ErrExistingReservation = errors.New("existing reservation")

	// ErrMissingLoan is returned when an operation needs an active loan that does not exist.
	ErrMissingLoan = errors.New("missing loan")

	// ErrInvalidLoanLimit is returned when a member has no remaining loan capacity.
	ErrInvalidLoanLimit = errors.New("loan limit reached")

	// ErrInvalidInput is returned for commands that are malformed regardless of the store's state.
	ErrInvalidInput = errors.New("invalid input")
)

// Kind names distinguish failures in logs, metrics and script reports.
const (
	KindNone                = "none"
	KindMissingEntity       = "missing_entity"
	KindExistingLoan        = "existing_loan"
	KindExistingReservation = "existing_reservation"
	KindMissingLoan         = "missing_loan"
	KindInvalidLoanLimit    = "invalid_loan_limit"
	KindInvalidInput        = "invalid_input"
	KindConcurrencyConflict = "concurrency_conflict"
	KindCanceled            = "canceled"
	KindTimeout             = "timeout"
	KindStoreFailure        = "store_failure"
	KindOther               = "other"
)

// KindOf classifies an error returned by a command handler or a query handler.
// Rule violations win over store failures, a conflict or a canceled context wins over the
// generic store failure it is joined with.
func KindOf(err error) string {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrMissingEntity), errors.Is(err, gateway.ErrNotFound):
		return KindMissingEntity
	case errors.Is(err, ErrExistingLoan):
		return KindExistingLoan
	case errors.Is(err, ErrExistingReservation):
		return KindExistingReservation
	case errors.Is(err, ErrMissingLoan):
		return KindMissingLoan
	case errors.Is(err, ErrInvalidLoanLimit):
		return KindInvalidLoanLimit
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, gateway.ErrConcurrencyConflict):
		return KindConcurrencyConflict
	case errors.Is(err, context.Canceled):
		return KindCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.Is(err, gateway.ErrStoreFailure):
		return KindStoreFailure
	default:
		return KindOther
	}
}

// IsRuleViolation reports whether err is one of the rule violations above.
func IsRuleViolation(err error) bool {
	switch KindOf(err) {
	case KindMissingEntity, KindExistingLoan, KindExistingReservation, KindMissingLoan, KindInvalidLoanLimit, KindInvalidInput:
		return true
	default:
		return false
	}
}
