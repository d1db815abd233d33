package shell

import (
	"context"
)

// Command represents the contract for all command types of the library.
// The CommandType method enables polymorphic handling and observability instrumentation.
type Command interface {
	CommandType() string
}

// CoreCommandHandler defines the contract for components that process commands with pure business logic.
// Handlers orchestrate the complete command workflow: load state, decide, apply the change.
// Implementations should focus purely on business logic without observability concerns,
// see the observable package for the wrapper.
type CoreCommandHandler[C Command] interface {
	Handle(ctx context.Context, command C) (HandlerResult, error)
}

// Query represents the contract for all query types of the library.
type Query interface {
	QueryType() string
}

// CoreQueryHandler defines the contract for components that answer queries.
// The generic parameters Q and R ensure type safety between queries and their corresponding results.
type CoreQueryHandler[Q Query, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}
