// Package registermember implements the Register Member use case.
//
// A new borrower is registered with a loan limit between 1 and core.MaxLoanLimit.
// The member starts without loans.
package registermember
