// Package gateway defines the entity store contract consumed by the lending rules.
//
// It holds the four persisted entity types (Book, Member, Loan, Reservation), the Criteria
// builder used for listing entities in a deterministic order, the transactional Store/Tx
// interfaces, isolation level selection, and the dependency-free observability interfaces
// that store implementations and command handlers report through.
//
// Concrete implementations live in sub-packages, e.g. gateway/sqlengine for PostgreSQL and SQLite.
package gateway
