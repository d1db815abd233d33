// Package renewloan implements the Renew Loan use case.
//
// Renewing resets the loan timestamp of an active loan, no new loan row is created.
// A reservation on the book blocks the renewal so that the queue gets served.
package renewloan
