// Package script runs transaction scripts against the lending handlers.
//
// A script holds one operation per line, the fields are separated by '|':
//
//	# comments and blank lines are ignored
//	acquire $dune | Dune | Frank Herbert
//	register $ada | Ada Lovelace | 555-0100 | 2
//	begin $loan | $dune | $ada
//	terminate | $loan | $ada
//
// An operation that creates something can bind the new identifier to an alias ($name) that later lines
// refer to. Plain identifiers work as well. Every line runs in its own transaction, a failing line is
// reported with its error kind and the interpreter continues with the next one.
package script
