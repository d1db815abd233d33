// Package observable provides wrappers that instrument command and query handlers
// with metrics, tracing and logging while the handlers themselves stay free of observability code.
//
// The wrappers are applied at wiring time:
//
//	core := beginloan.NewCommandHandler(store)
//
//	handler, err := observable.NewCommandWrapper[beginloan.Command](
//		core,
//		observable.WithCommandMetrics[beginloan.Command](metricsCollector),
//		observable.WithCommandTracing[beginloan.Command](tracingCollector),
//		observable.WithCommandContextualLogging[beginloan.Command](contextualLogger),
//	)
//
//	result, err := handler.Handle(ctx, command)
//
// Tests of the lending rules use the core handlers directly.
package observable
