// Package beginloan implements the Begin Loan use case.
//
// An available book is lent to a member. A book on loan, a book somebody waits for, or a
// member at the loan limit all stop the loan. Reserved books are lent through the
// usereservation feature instead, which serves the queue in order.
//
// The loan limit is checked against the number of active loans in the store.
// The member's loan counter is only refreshed afterwards.
package beginloan
