// Package deregistermember implements the Deregister Member use case.
//
// A member can only leave once every borrowed book is back and every reservation is withdrawn.
package deregistermember
