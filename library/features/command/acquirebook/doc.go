// Package acquirebook implements the Acquire Book use case.
//
// A newly bought book is added to the catalog. There is no legality precondition
// beyond a non-empty title and author.
package acquirebook
