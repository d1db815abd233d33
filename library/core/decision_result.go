package core

// DecisionResult represents the outcome of a business decision in a Decide function.
//
// IMPORTANT: DecisionResult should only be constructed using the provided factory methods:
// SuccessDecision(change) or ErrorDecision(err).
type DecisionResult struct {
	Outcome string // "success" or "error"
	Change  Change // nil for error decisions
	Err     error
}

const (
	successOutcome = "success"
	errorOutcome   = "error"
)

// SuccessDecision creates a DecisionResult with the change the handler has to apply to the store.
func SuccessDecision(change Change) DecisionResult {
	return DecisionResult{
		Outcome: successOutcome,
		Change:  change,
	}
}

// ErrorDecision creates a DecisionResult indicating a business rule violation.
func ErrorDecision(err error) DecisionResult {
	return DecisionResult{
		Outcome: errorOutcome,
		Err:     err,
	}
}

// HasChangeToApply returns true if the decision produced a change.
func (r DecisionResult) HasChangeToApply() bool {
	return r.Outcome == successOutcome && r.Change != nil
}

// HasError returns the error if there is one, otherwise nil.
func (r DecisionResult) HasError() error {
	if r.Outcome == errorOutcome {
		return r.Err
	}

	return nil
}
