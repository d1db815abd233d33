// Package terminateloan implements the Terminate Loan use case, the return of a book.
//
// The loan stays in the store with its return timestamp set, which makes the book available again.
package terminateloan
