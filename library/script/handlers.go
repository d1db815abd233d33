package script

import (
	"errors"

	"github.com/AntonStoeckl/library-lending-go/gateway"
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
	"github.com/AntonStoeckl/library-lending-go/library/shell/observable"
)

// Handlers holds one handler per script operation.
type Handlers struct {
	AcquireBook       shell.CoreCommandHandler[acquirebook.Command]
	SellBook          shell.CoreCommandHandler[sellbook.Command]
	RegisterMember    shell.CoreCommandHandler[registermember.Command]
	DeregisterMember  shell.CoreCommandHandler[deregistermember.Command]
	BeginLoan         shell.CoreCommandHandler[beginloan.Command]
	RenewLoan         shell.CoreCommandHandler[renewloan.Command]
	TerminateLoan     shell.CoreCommandHandler[terminateloan.Command]
	PlaceReservation  shell.CoreCommandHandler[placereservation.Command]
	UseReservation    shell.CoreCommandHandler[usereservation.Command]
	CancelReservation shell.CoreCommandHandler[cancelreservation.Command]

	BookCatalog      shell.CoreQueryHandler[bookcatalog.Query, bookcatalog.Books]
	MemberDirectory  shell.CoreQueryHandler[memberdirectory.Query, memberdirectory.Members]
	ReservationQueue shell.CoreQueryHandler[reservationqueue.Query, reservationqueue.Queue]
	MemberLoans      shell.CoreQueryHandler[memberloans.Query, memberloans.MemberLoans]
}

// NewHandlers wires all handlers to the store. The retry options apply to every command handler.
func NewHandlers(store gateway.Store, retryOptions ...shell.RetryOption) Handlers {
	return Handlers{
		AcquireBook:       acquirebook.NewCommandHandler(store, acquirebook.WithRetryOptions(retryOptions...)),
		SellBook:          sellbook.NewCommandHandler(store, sellbook.WithRetryOptions(retryOptions...)),
		RegisterMember:    registermember.NewCommandHandler(store, registermember.WithRetryOptions(retryOptions...)),
		DeregisterMember:  deregistermember.NewCommandHandler(store, deregistermember.WithRetryOptions(retryOptions...)),
		BeginLoan:         beginloan.NewCommandHandler(store, beginloan.WithRetryOptions(retryOptions...)),
		RenewLoan:         renewloan.NewCommandHandler(store, renewloan.WithRetryOptions(retryOptions...)),
		TerminateLoan:     terminateloan.NewCommandHandler(store, terminateloan.WithRetryOptions(retryOptions...)),
		PlaceReservation:  placereservation.NewCommandHandler(store, placereservation.WithRetryOptions(retryOptions...)),
		UseReservation:    usereservation.NewCommandHandler(store, usereservation.WithRetryOptions(retryOptions...)),
		CancelReservation: cancelreservation.NewCommandHandler(store, cancelreservation.WithRetryOptions(retryOptions...)),

		BookCatalog:      bookcatalog.NewQueryHandler(store),
		MemberDirectory:  memberdirectory.NewQueryHandler(store),
		ReservationQueue: reservationqueue.NewQueryHandler(store),
		MemberLoans:      memberloans.NewQueryHandler(store),
	}
}

// Observability holds the collectors Instrument hands to the observable wrappers. Nil members are skipped.
type Observability struct {
	Metrics          shell.MetricsCollector
	Tracing          shell.TracingCollector
	ContextualLogger shell.ContextualLogger
	Logger           shell.Logger
}

// Instrument wraps every handler with the observable wrappers.
func Instrument(h Handlers, o Observability) (Handlers, error) {
	var errs []error

	h.AcquireBook = wrapCommand(h.AcquireBook, o, &errs)
	h.SellBook = wrapCommand(h.SellBook, o, &errs)
	h.RegisterMember = wrapCommand(h.RegisterMember, o, &errs)
	h.DeregisterMember = wrapCommand(h.DeregisterMember, o, &errs)
	h.BeginLoan = wrapCommand(h.BeginLoan, o, &errs)
	h.RenewLoan = wrapCommand(h.RenewLoan, o, &errs)
	h.TerminateLoan = wrapCommand(h.TerminateLoan, o, &errs)
	h.PlaceReservation = wrapCommand(h.PlaceReservation, o, &errs)
	h.UseReservation = wrapCommand(h.UseReservation, o, &errs)
	h.CancelReservation = wrapCommand(h.CancelReservation, o, &errs)

	h.BookCatalog = wrapQuery(h.BookCatalog, o, &errs)
	h.MemberDirectory = wrapQuery(h.MemberDirectory, o, &errs)
	h.ReservationQueue = wrapQuery(h.ReservationQueue, o, &errs)
	h.MemberLoans = wrapQuery(h.MemberLoans, o, &errs)

	if len(errs) > 0 {
		return Handlers{}, errors.Join(errs...)
	}

	return h, nil
}

func wrapCommand[C shell.Command](
	handler shell.CoreCommandHandler[C],
	o Observability,
	errs *[]error,
) shell.CoreCommandHandler[C] {
	wrapper, err := observable.NewCommandWrapper[C](
		handler,
		observable.WithCommandMetrics[C](o.Metrics),
		observable.WithCommandTracing[C](o.Tracing),
		observable.WithCommandContextualLogging[C](o.ContextualLogger),
		observable.WithCommandLogging[C](o.Logger),
	)
	if err != nil {
		*errs = append(*errs, err)
		return handler
	}

	return wrapper
}

func wrapQuery[Q shell.Query, R any](
	handler shell.CoreQueryHandler[Q, R],
	o Observability,
	errs *[]error,
) shell.CoreQueryHandler[Q, R] {
	wrapper, err := observable.NewQueryWrapper[Q, R](
		handler,
		observable.WithQueryMetrics[Q, R](o.Metrics),
		observable.WithQueryTracing[Q, R](o.Tracing),
		observable.WithQueryContextualLogging[Q, R](o.ContextualLogger),
		observable.WithQueryLogging[Q, R](o.Logger),
	)
	if err != nil {
		*errs = append(*errs, err)
		return handler
	}

	return wrapper
}
