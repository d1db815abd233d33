// Package bookcatalog implements the Book Catalog query use case.
//
// The catalog lists the books the library owns, optionally narrowed to a single book or to titles
// containing a fragment. Every entry tells whether the book is on loan and how many members wait for it.
//
// This is a read-only operation, it runs in a read-committed transaction and never changes any data.
package bookcatalog
