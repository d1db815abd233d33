// Package placereservation implements the Place Reservation use case.
//
// A reservation joins the book's queue, which is ordered by reservation timestamp.
// Placing a reservation does not depend on the loan state of the book: an available book can be reserved too.
package placereservation
