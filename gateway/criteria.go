package gateway

import (
	"slices"
	"strings"
)

// Field is a column of a persisted entity that Criteria can filter or sort on.
type Field = string

const (
	FieldID         Field = "id"
	FieldTitle      Field = "title"
	FieldAuthor     Field = "author"
	FieldAcquiredAt Field = "acquired_at"
	FieldName       Field = "name"
	FieldPhone      Field = "phone"
	FieldLoanLimit  Field = "loan_limit"
	FieldLoanCount  Field = "loan_count"
	FieldBookID     Field = "book_id"
	FieldMemberID   Field = "member_id"
	FieldLoanedAt   Field = "loaned_at"
	FieldReturnedAt Field = "returned_at"
	FieldReservedAt Field = "reserved_at"
)

/***** Predicate *****/

// Predicate is a field/value pair.
type Predicate struct {
	field Field
	val   any
}

// P creates a Predicate.
func P(field Field, val any) Predicate {
	return Predicate{field: field, val: val}
}

func (p Predicate) Field() Field {
	return p.field
}

func (p Predicate) Val() any {
	return p.val
}

/***** Criteria *****/

// Criteria select and order the rows returned by Repository.ListBy and counted by Repository.Count.
// All equality predicates and all substring patterns must match.
// Ordering is always ascending and always ends with FieldID, so equal sort keys never produce a random order.
type Criteria struct {
	equal      []Predicate
	contains   []Predicate
	onlyActive bool
	orderBy    []Field
	limit      uint
}

func (c Criteria) Equal() []Predicate {
	return c.equal
}

// Contains returns the case-insensitive substring predicates. Their values are lower-cased strings.
func (c Criteria) Contains() []Predicate {
	return c.contains
}

// OnlyActive reports whether only loans without a return timestamp are selected.
func (c Criteria) OnlyActive() bool {
	return c.onlyActive
}

func (c Criteria) OrderBy() []Field {
	return c.orderBy
}

// Limit returns the maximum number of rows, 0 means unlimited.
func (c Criteria) Limit() uint {
	return c.limit
}

// Fields returns every field the Criteria reference, used by stores to validate them.
func (c Criteria) Fields() []Field {
	fields := make([]Field, 0, len(c.equal)+len(c.contains)+len(c.orderBy))

	for _, p := range c.equal {
		fields = append(fields, p.field)
	}

	for _, p := range c.contains {
		fields = append(fields, p.field)
	}

	fields = append(fields, c.orderBy...)

	if c.onlyActive {
		fields = append(fields, FieldReturnedAt)
	}

	return fields
}

/***** CriteriaBuilder *****/

// CriteriaBuilder builds Criteria fluently:
//
//	gateway.BuildCriteria().
//		Where(gateway.FieldBookID, bookID).
//		OrderBy(gateway.FieldReservedAt).
//		Limit(1).
//		Finalize()
type CriteriaBuilder interface {
	// Where adds an equality predicate. Predicates with an empty field are dropped.
	Where(field Field, val any) CriteriaBuilder

	// WhereContains adds a case-insensitive substring match. An empty pattern matches everything and is dropped.
	WhereContains(field Field, pattern string) CriteriaBuilder

	// OnlyActive restricts loans to the ones that have not been returned.
	OnlyActive() CriteriaBuilder

	// OrderBy sets the ascending sort fields, replacing earlier ones. Empty and duplicate fields are dropped.
	OrderBy(field Field, fields ...Field) CriteriaBuilder

	// Limit caps the number of returned rows.
	Limit(n uint) CriteriaBuilder

	// Finalize returns the Criteria with FieldID appended as the final sort key.
	Finalize() Criteria
}

type criteriaBuilder struct {
	criteria Criteria
}

// BuildCriteria starts building Criteria.
func BuildCriteria() CriteriaBuilder {
	return &criteriaBuilder{}
}

// AllOrderedBy returns Criteria selecting every row, sorted ascending by the given field.
func AllOrderedBy(field Field) Criteria {
	return BuildCriteria().OrderBy(field).Finalize()
}

func (b *criteriaBuilder) Where(field Field, val any) CriteriaBuilder {
	if field != "" {
		b.criteria.equal = append(b.criteria.equal, P(field, val))
	}

	return b
}

func (b *criteriaBuilder) WhereContains(field Field, pattern string) CriteriaBuilder {
	pattern = strings.ToLower(strings.TrimSpace(pattern))

	if field != "" && pattern != "" {
		b.criteria.contains = append(b.criteria.contains, P(field, pattern))
	}

	return b
}

func (b *criteriaBuilder) OnlyActive() CriteriaBuilder {
	b.criteria.onlyActive = true

	return b
}

func (b *criteriaBuilder) OrderBy(field Field, fields ...Field) CriteriaBuilder {
	all := append([]Field{field}, fields...)
	orderBy := make([]Field, 0, len(all))

	for _, f := range all {
		if f == "" || slices.Contains(orderBy, f) {
			continue
		}

		orderBy = append(orderBy, f)
	}

	b.criteria.orderBy = orderBy

	return b
}

func (b *criteriaBuilder) Limit(n uint) CriteriaBuilder {
	b.criteria.limit = n

	return b
}

func (b *criteriaBuilder) Finalize() Criteria {
	if !slices.Contains(b.criteria.orderBy, FieldID) {
		b.criteria.orderBy = append(b.criteria.orderBy, FieldID)
	}

	return b.criteria
}
