package shell

import "errors"

var (
	// ErrUnexpectedChange is returned when a decision produced a change the handler does not know how to apply.
	ErrUnexpectedChange = errors.New("unexpected change type")

	// ErrNilStore is returned when a transaction is requested without a store.
	ErrNilStore = errors.New("store must not be nil")
)
