// Package memberloans implements the Member Loans query use case.
//
// By default only active loans are listed, the history query includes returned loans as well.
// The result also tells how many more books the member may borrow.
package memberloans
