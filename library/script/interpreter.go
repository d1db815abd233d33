package script

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/library/core"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/acquirebook"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/beginloan"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/cancelreservation"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/deregistermember"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/placereservation"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/registermember"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/renewloan"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/sellbook"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/terminateloan"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/usereservation"
	"github.com/AntonStoeckl/library-lending-go/library/features/query/bookcatalog"
	"github.com/AntonStoeckl/library-lending-go/library/features/query/memberdirectory"
	"github.com/AntonStoeckl/library-lending-go/library/features/query/memberloans"
	"github.com/AntonStoeckl/library-lending-go/library/features/query/reservationqueue"
	"github.com/AntonStoeckl/library-lending-go/library/shell"
)

const (
	logMsgStepFailed = "script line failed"
	logAttrLine      = "line"
	logAttrOp        = "op"
)

// Interpreter runs parsed statements one by one.
// Aliases bound by a run stay bound for later runs of the same Interpreter.
type Interpreter struct {
	handlers Handlers
	clock    core.Clock
	logger   shell.Logger
	aliases  map[string]uuid.UUID
	newID    func() uuid.UUID
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithClock sets the clock that stamps every operation. The default is a core.MonotonicClock.
func WithClock(clock core.Clock) Option {
	return func(i *Interpreter) {
		i.clock = clock
	}
}

// WithLogger logs failing lines.
func WithLogger(logger shell.Logger) Option {
	return func(i *Interpreter) {
		i.logger = logger
	}
}

// WithIDGenerator replaces uuid.New for identifiers of created entities.
func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(i *Interpreter) {
		i.newID = newID
	}
}

// NewInterpreter creates an Interpreter.
func NewInterpreter(handlers Handlers, opts ...Option) *Interpreter {
	interpreter := &Interpreter{
		handlers: handlers,
		clock:    core.NewMonotonicClock(),
		aliases:  make(map[string]uuid.UUID),
		newID:    uuid.New,
	}

	for _, opt := range opts {
		opt(interpreter)
	}

	return interpreter
}

// Run executes the statements in order and reports every one of them.
// A failing statement does not stop the run, a canceled context does: the remaining statements are skipped.
func (i *Interpreter) Run(ctx context.Context, statements []Statement) Report {
	report := Report{Steps: make([]Step, 0, len(statements))}

	for _, statement := range statements {
		if ctx.Err() != nil {
			break
		}

		step := i.execute(ctx, statement)
		if step.Err != nil && i.logger != nil {
			i.logger.Info(logMsgStepFailed,
				logAttrLine, step.Line,
				logAttrOp, step.Op,
				shell.LogAttrErrorKind, step.ErrorKind,
				shell.LogAttrError, step.Err.Error())
		}

		report.add(step)
	}

	return report
}

// Alias returns the identifier bound to the alias.
func (i *Interpreter) Alias(alias string) (uuid.UUID, bool) {
	id, ok := i.aliases[alias]

	return id, ok
}

func (i *Interpreter) execute(ctx context.Context, statement Statement) Step {
	step := Step{
		Line:  statement.Line,
		Op:    statement.Op,
		Alias: statement.Alias,
	}

	id, result, err := i.dispatch(ctx, statement)
	if err != nil {
		return step.failed(err)
	}

	if id != uuid.Nil {
		step.ID = id.String()

		if statement.Alias != "" {
			i.aliases[statement.Alias] = id
		}
	}

	return step.succeeded(result)
}

// dispatch returns the identifier of a created entity, or uuid.Nil, together with the handler outcome.
func (i *Interpreter) dispatch(ctx context.Context, statement Statement) (uuid.UUID, any, error) {
	args := statement.Args
	now := i.clock.Now()

	switch statement.Op {
	case OpAcquire:
		bookID := i.newID()
		result, err := i.handlers.AcquireBook.Handle(ctx, acquirebook.BuildCommand(bookID, args[0], args[1], now))

		return created(bookID, result, err)

	case OpSell:
		bookID, err := i.resolve(args[0])
		if err != nil {
			return uuid.Nil, nil, err
		}

		return changed(i.handlers.SellBook.Handle(ctx, sellbook.BuildCommand(bookID, now)))

	case OpRegister:
		loanLimit, err := strconv.Atoi(args[2])
		if err != nil {
			return uuid.Nil, nil, fmt.Errorf("%w: loan limit %q is not a number", core.ErrInvalidInput, args[2])
		}

		memberID := i.newID()
		result, err := i.handlers.RegisterMember.Handle(ctx,
			registermember.BuildCommand(memberID, args[0], args[1], loanLimit, now))

		return created(memberID, result, err)

	case OpDeregister:
		memberID, err := i.resolve(args[0])
		if err != nil {
			return uuid.Nil, nil, err
		}

		return changed(i.handlers.DeregisterMember.Handle(ctx, deregistermember.BuildCommand(memberID, now)))

	case OpBegin:
		ids, err := i.resolveAll(args[0], args[1])
		if err != nil {
			return uuid.Nil, nil, err
		}

		loanID := i.newID()
		result, err := i.handlers.BeginLoan.Handle(ctx, beginloan.BuildCommand(loanID, ids[0], ids[1], now))

		return created(loanID, result, err)

	case OpRenew:
		ids, err := i.resolveAll(args[0], args[1])
		if err != nil {
			return uuid.Nil, nil, err
		}

		return changed(i.handlers.RenewLoan.Handle(ctx, renewloan.BuildCommand(ids[0], ids[1], now)))

	case OpTerminate:
		ids, err := i.resolveAll(args[0], args[1])
		if err != nil {
			return uuid.Nil, nil, err
		}

		return changed(i.handlers.TerminateLoan.Handle(ctx, terminateloan.BuildCommand(ids[0], ids[1], now)))

	case OpPlace:
		ids, err := i.resolveAll(args[0], args[1])
		if err != nil {
			return uuid.Nil, nil, err
		}

		reservationID := i.newID()
		result, err := i.handlers.PlaceReservation.Handle(ctx,
			placereservation.BuildCommand(reservationID, ids[0], ids[1], now))

		return created(reservationID, result, err)

	case OpUse:
		reservationID, err := i.resolve(args[0])
		if err != nil {
			return uuid.Nil, nil, err
		}

		loanID := i.newID()
		result, err := i.handlers.UseReservation.Handle(ctx, usereservation.BuildCommand(reservationID, loanID, now))

		return created(loanID, result, err)

	case OpCancel:
		reservationID, err := i.resolve(args[0])
		if err != nil {
			return uuid.Nil, nil, err
		}

		return changed(i.handlers.CancelReservation.Handle(ctx, cancelreservation.BuildCommand(reservationID, now)))

	case OpCatalog:
		query := bookcatalog.BuildFindByTitleQuery(optionalArg(args))
		if sortBy, ok := sortArg(args); ok {
			query = bookcatalog.BuildQuery(sortBy)
		}

		return answered(i.handlers.BookCatalog.Handle(ctx, query))

	case OpBook:
		bookID, err := i.resolve(args[0])
		if err != nil {
			return uuid.Nil, nil, err
		}

		return answered(i.handlers.BookCatalog.Handle(ctx, bookcatalog.BuildGetQuery(bookID)))

	case OpMembers:
		query := memberdirectory.BuildFindByNameQuery(optionalArg(args))
		if sortBy, ok := sortArg(args); ok {
			query = memberdirectory.BuildQuery(sortBy)
		}

		return answered(i.handlers.MemberDirectory.Handle(ctx, query))

	case OpMember:
		memberID, err := i.resolve(args[0])
		if err != nil {
			return uuid.Nil, nil, err
		}

		return answered(i.handlers.MemberDirectory.Handle(ctx, memberdirectory.BuildGetQuery(memberID)))

	case OpQueue:
		bookID, err := i.resolve(args[0])
		if err != nil {
			return uuid.Nil, nil, err
		}

		return answered(i.handlers.ReservationQueue.Handle(ctx, reservationqueue.BuildQuery(bookID)))

	case OpLoans:
		memberID, err := i.resolve(args[0])
		if err != nil {
			return uuid.Nil, nil, err
		}

		return answered(i.handlers.MemberLoans.Handle(ctx, memberloans.BuildQuery(memberID)))
	}

	return uuid.Nil, nil, fmt.Errorf("%w: unknown operation %q", ErrSyntax, statement.Op)
}

func (i *Interpreter) resolve(ref string) (uuid.UUID, error) {
	if strings.HasPrefix(ref, aliasPrefix) {
		id, ok := i.aliases[ref]
		if !ok {
			return uuid.Nil, fmt.Errorf("%w: alias %s is not bound", core.ErrInvalidInput, ref)
		}

		return id, nil
	}

	id, err := uuid.Parse(ref)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q is neither an alias nor an identifier", core.ErrInvalidInput, ref)
	}

	return id, nil
}

func (i *Interpreter) resolveAll(refs ...string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(refs))

	for _, ref := range refs {
		id, err := i.resolve(ref)
		if err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}

	return ids, nil
}

func created(id uuid.UUID, result shell.HandlerResult, err error) (uuid.UUID, any, error) {
	if err != nil {
		return uuid.Nil, nil, err
	}

	return id, result, nil
}

func changed(result shell.HandlerResult, err error) (uuid.UUID, any, error) {
	return created(uuid.Nil, result, err)
}

func answered(result any, err error) (uuid.UUID, any, error) {
	if err != nil {
		return uuid.Nil, nil, err
	}

	return uuid.Nil, result, nil
}

// sortArg recognizes the "sort=<field>" form of a list query argument.
func sortArg(args []string) (string, bool) {
	arg := optionalArg(args)
	if !strings.HasPrefix(arg, sortPrefix) {
		return "", false
	}

	return strings.TrimSpace(strings.TrimPrefix(arg, sortPrefix)), true
}

func optionalArg(args []string) string {
	if len(args) == 0 {
		return ""
	}

	return args[0]
}
