// Package usereservation implements the Use Reservation use case, the promotion of a reservation into a loan.
//
// Only the head of a book's queue can be served. The reservation is deleted and the loan is inserted
// in the same transaction, the remaining reservations of the book keep their order.
package usereservation
