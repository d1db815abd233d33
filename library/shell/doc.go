// Package shell provides the transaction orchestration for the lending rules.
//
// Every command handler runs one business operation through RunInTransaction: begin a
// serializable transaction, load the state, decide, apply the resulting change, commit.
// Any failure on the way rolls the whole operation back. Optional retries of serialization
// conflicts, handler results and the shared observability helpers live here as well.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'application' layer.
package shell
