// Package reservationqueue implements the Reservation Queue query use case: the members waiting for a book,
// first in line first.
package reservationqueue
