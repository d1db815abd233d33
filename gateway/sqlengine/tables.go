package sqlengine

import (
	"slices"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/gateway"
	"github.com/AntonStoeckl/library-lending-go/gateway/sqlengine/internal/adapters"
)

const (
	tableBooks        = "books"
	tableMembers      = "members"
	tableLoans        = "loans"
	tableReservations = "reservations"
	entityBook        = "book"
	entityMember      = "member"
	entityLoan        = "loan"
	entityReservation = "reservation"
)

// tableSpec maps one entity type onto its table. The first column is always the primary key.
type tableSpec[E any] struct {
	entity  string
	table   string
	columns []gateway.Field
	id      func(E) uuid.UUID
	record  func(E) goqu.Record
	scan    func(rows adapters.DBRows) (E, error)
}

func (ts *tableSpec[E]) hasColumn(field gateway.Field) bool {
	return slices.Contains(ts.columns, field)
}

func (ts *tableSpec[E]) selectColumns() []any {
	cols := make([]any, 0, len(ts.columns))
	for _, c := range ts.columns {
		cols = append(cols, goqu.C(c))
	}

	return cols
}

type tableSet struct {
	books        *tableSpec[gateway.Book]
	members      *tableSpec[gateway.Member]
	loans        *tableSpec[gateway.Loan]
	reservations *tableSpec[gateway.Reservation]
}

func newTableSet(prefix string) tableSet {
	return tableSet{
		books:        bookTable(prefix),
		members:      memberTable(prefix),
		loans:        loanTable(prefix),
		reservations: reservationTable(prefix),
	}
}

func bookTable(prefix string) *tableSpec[gateway.Book] {
	return &tableSpec[gateway.Book]{
		entity:  entityBook,
		table:   prefix + tableBooks,
		columns: []gateway.Field{gateway.FieldID, gateway.FieldTitle, gateway.FieldAuthor, gateway.FieldAcquiredAt},
		id:      func(b gateway.Book) uuid.UUID { return b.ID },
		record: func(b gateway.Book) goqu.Record {
			return goqu.Record{
				gateway.FieldID:         b.ID.String(),
				gateway.FieldTitle:      b.Title,
				gateway.FieldAuthor:     b.Author,
				gateway.FieldAcquiredAt: normalizeTime(b.AcquiredAt),
			}
		},
		scan: func(rows adapters.DBRows) (gateway.Book, error) {
			var b gateway.Book
			if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.AcquiredAt); err != nil {
				return gateway.Book{}, err
			}

			b.AcquiredAt = normalizeTime(b.AcquiredAt)

			return b, nil
		},
	}
}

func memberTable(prefix string) *tableSpec[gateway.Member] {
	return &tableSpec[gateway.Member]{
		entity: entityMember,
		table:  prefix + tableMembers,
		columns: []gateway.Field{
			gateway.FieldID, gateway.FieldName, gateway.FieldPhone, gateway.FieldLoanLimit, gateway.FieldLoanCount,
		},
		id: func(m gateway.Member) uuid.UUID { return m.ID },
		record: func(m gateway.Member) goqu.Record {
			return goqu.Record{
				gateway.FieldID:        m.ID.String(),
				gateway.FieldName:      m.Name,
				gateway.FieldPhone:     m.Phone,
				gateway.FieldLoanLimit: m.LoanLimit,
				gateway.FieldLoanCount: m.LoanCount,
			}
		},
		scan: func(rows adapters.DBRows) (gateway.Member, error) {
			var m gateway.Member
			var loanLimit, loanCount int64
			if err := rows.Scan(&m.ID, &m.Name, &m.Phone, &loanLimit, &loanCount); err != nil {
				return gateway.Member{}, err
			}

			m.LoanLimit = int(loanLimit)
			m.LoanCount = int(loanCount)

			return m, nil
		},
	}
}

func loanTable(prefix string) *tableSpec[gateway.Loan] {
	return &tableSpec[gateway.Loan]{
		entity: entityLoan,
		table:  prefix + tableLoans,
		columns: []gateway.Field{
			gateway.FieldID, gateway.FieldBookID, gateway.FieldMemberID, gateway.FieldLoanedAt, gateway.FieldReturnedAt,
		},
		id: func(l gateway.Loan) uuid.UUID { return l.ID },
		record: func(l gateway.Loan) goqu.Record {
			return goqu.Record{
				gateway.FieldID:         l.ID.String(),
				gateway.FieldBookID:     l.BookID.String(),
				gateway.FieldMemberID:   l.MemberID.String(),
				gateway.FieldLoanedAt:   normalizeTime(l.LoanedAt),
				gateway.FieldReturnedAt: nullableTime(l.ReturnedAt),
			}
		},
		scan: func(rows adapters.DBRows) (gateway.Loan, error) {
			var l gateway.Loan
			var returnedAt *time.Time
			if err := rows.Scan(&l.ID, &l.BookID, &l.MemberID, &l.LoanedAt, &returnedAt); err != nil {
				return gateway.Loan{}, err
			}

			l.LoanedAt = normalizeTime(l.LoanedAt)
			if returnedAt != nil {
				t := normalizeTime(*returnedAt)
				l.ReturnedAt = &t
			}

			return l, nil
		},
	}
}

func reservationTable(prefix string) *tableSpec[gateway.Reservation] {
	return &tableSpec[gateway.Reservation]{
		entity: entityReservation,
		table:  prefix + tableReservations,
		columns: []gateway.Field{
			gateway.FieldID, gateway.FieldBookID, gateway.FieldMemberID, gateway.FieldReservedAt,
		},
		id: func(r gateway.Reservation) uuid.UUID { return r.ID },
		record: func(r gateway.Reservation) goqu.Record {
			return goqu.Record{
				gateway.FieldID:         r.ID.String(),
				gateway.FieldBookID:     r.BookID.String(),
				gateway.FieldMemberID:   r.MemberID.String(),
				gateway.FieldReservedAt: normalizeTime(r.ReservedAt),
			}
		},
		scan: func(rows adapters.DBRows) (gateway.Reservation, error) {
			var r gateway.Reservation
			if err := rows.Scan(&r.ID, &r.BookID, &r.MemberID, &r.ReservedAt); err != nil {
				return gateway.Reservation{}, err
			}

			r.ReservedAt = normalizeTime(r.ReservedAt)

			return r, nil
		},
	}
}

// normalizeTime stores and returns all timestamps in UTC with microsecond precision,
// the finest precision PostgreSQL keeps.
func normalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}

	return normalizeTime(*t)
}

// sqlValue converts criteria values into driver-friendly arguments.
func sqlValue(val any) any {
	switch v := val.(type) {
	case uuid.UUID:
		return v.String()
	case time.Time:
		return normalizeTime(v)
	default:
		return v
	}
}
