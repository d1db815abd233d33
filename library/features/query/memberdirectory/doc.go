// Package memberdirectory implements the Member Directory query use case.
//
// The directory lists registered members with their live number of active loans and reservations.
// It can be narrowed to a single member or to names containing a fragment, ignoring case.
package memberdirectory
