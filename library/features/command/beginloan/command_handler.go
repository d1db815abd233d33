package beginloan

import (
	"context"
	"errors"
	"fmt"

	"github.com/AntonStoeckl/library-lending-go/gateway"
	"github.com/AntonStoeckl/library-lending-go/library/core"
	"github.com/AntonStoeckl/library-lending-go/library/shell"
)

// CommandHandler lends books to members.
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

	return shell.NewSuccessResult(core.LoanBegunChangeType, retryMetrics), nil
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

	change, ok := result.Change.(core.LoanBegun)
	if !ok {
		return fmt.Errorf("%w: %s", shell.ErrUnexpectedChange, result.Change.ChangeType())
	}

	err = tx.Loans().Insert(ctx, gateway.Loan{
		ID:       change.LoanID,
		BookID:   change.BookID,
		MemberID: change.MemberID,
		LoanedAt: change.LoanedAt,
	})
	if err != nil {
		return err
	}

	return shell.SyncLoanCount(ctx, tx, change.MemberID)
}

func loadState(ctx context.Context, tx gateway.Tx, command Command) (State, error) {
	state := State{}

	member, err := tx.Members().Get(ctx, command.MemberID)
	if errors.Is(err, gateway.ErrNotFound) {
		return state, nil
	}
	if err != nil {
		return state, err
	}

	state.MemberExists = true
	state.MemberLoanLimit = member.LoanLimit

	_, err = tx.Books().Get(ctx, command.BookID)
	if errors.Is(err, gateway.ErrNotFound) {
		return state, nil
	}
	if err != nil {
		return state, err
	}

	state.BookExists = true

	bookLoans, err := tx.Loans().Count(ctx, gateway.BuildCriteria().
		Where(gateway.FieldBookID, command.BookID).
		OnlyActive().
		Finalize())
	if err != nil {
		return state, err
	}

	state.BookOnLoan = bookLoans > 0

	if state.BookReservations, err = tx.Reservations().Count(ctx, gateway.BuildCriteria().
		Where(gateway.FieldBookID, command.BookID).
		Finalize()); err != nil {
		return state, err
	}

	if state.MemberActiveLoans, err = shell.CountActiveLoans(ctx, tx, command.MemberID); err != nil {
		return state, err
	}

	return state, nil
}
