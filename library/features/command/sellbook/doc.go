// Package sellbook implements the Sell Book use case.
//
// A book leaves the catalog for good. This is only allowed while nobody borrows it and
// nobody waits for it. Historic loans of the book are removed together with it.
package sellbook
