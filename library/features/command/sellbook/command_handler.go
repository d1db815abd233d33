package sellbook

import (
	"context"
	"errors"
	"fmt"

	"github.com/AntonStoeckl/library-lending-go/gateway"
	"github.com/AntonStoeckl/library-lending-go/library/core"
	"github.com/AntonStoeckl/library-lending-go/library/shell"
)

// CommandHandler removes books from the catalog.
type CommandHandler struct {
	store        gateway.Store
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(store gateway.Store, opts ...Option) CommandHandler {
	handler := CommandHandler{
		store: store,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the command in its own transaction.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		return shell.RunInTransaction(retryCtx, h.store, func(txCtx context.Context, tx gateway.Tx) error {
			return h.executeCommand(txCtx, tx, command)
		})
	}, h.retryOptions...)

	if err != nil {
		return shell.NewErrorResult(retryMetrics), err
	}

	return shell.NewSuccessResult(core.BookSoldChangeType, retryMetrics), nil
}

func (h CommandHandler) executeCommand(ctx context.Context, tx gateway.Tx, command Command) error {
	state, err := loadState(ctx, tx, command)
	if err != nil {
		return err
	}

	result := Decide(state, command)
	if err = result.HasError(); err != nil {
		return err
	}

	change, ok := result.Change.(core.BookSold)
	if !ok {
		return fmt.Errorf("%w: %s", shell.ErrUnexpectedChange, result.Change.ChangeType())
	}

	return tx.Books().Delete(ctx, change.BookID)
}

func loadState(ctx context.Context, tx gateway.Tx, command Command) (State, error) {
	_, err := tx.Books().Get(ctx, command.BookID)
	if errors.Is(err, gateway.ErrNotFound) {
		return State{}, nil
	}
	if err != nil {
		return State{}, err
	}

	activeLoans, err := tx.Loans().Count(ctx, gateway.BuildCriteria().
		Where(gateway.FieldBookID, command.BookID).
		OnlyActive().
		Finalize())
	if err != nil {
		return State{}, err
	}

	reservations, err := tx.Reservations().Count(ctx, gateway.BuildCriteria().
		Where(gateway.FieldBookID, command.BookID).
		Finalize())
	if err != nil {
		return State{}, err
	}

	return State{BookExists: true, ActiveLoans: activeLoans, Reservations: reservations}, nil
}
