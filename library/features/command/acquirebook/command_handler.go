package acquirebook

import (
	"context"
	"fmt"

	"github.com/AntonStoeckl/library-lending-go/gateway"
	"github.com/AntonStoeckl/library-lending-go/library/core"
	"github.com/AntonStoeckl/library-lending-go/library/shell"
)

// CommandHandler adds books to the catalog.
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

	return shell.NewSuccessResult(core.BookAcquiredChangeType, retryMetrics), nil
}

func (h CommandHandler) executeCommand(ctx context.Context, tx gateway.Tx, command Command) error {
	result := Decide(command)
	if err := result.HasError(); err != nil {
		return err
	}

	change, ok := result.Change.(core.BookAcquired)
	if !ok {
		return fmt.Errorf("%w: %s", shell.ErrUnexpectedChange, result.Change.ChangeType())
	}

	return tx.Books().Insert(ctx, gateway.Book{
		ID:         change.BookID,
		Title:      change.Title,
		Author:     change.Author,
		AcquiredAt: change.AcquiredAt,
	})
}
