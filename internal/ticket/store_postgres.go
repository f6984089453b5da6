package ticket

import (
	"context"
	"database/sql"
	"errors"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const ticketColumns = `id, ticket_id, customer_name, customer_mobile, product, address, date_time, status, accepted, rejected_reason`

func (s *PostgresStore) List(ctx context.Context) ([]Ticket, error) {
	const q = `
SELECT ` + ticketColumns + `
FROM tickets
ORDER BY date_time;
`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return collectTickets(rows)
}

func (s *PostgresStore) FindByCode(ctx context.Context, code string) ([]Ticket, error) {
	const q = `
SELECT ` + ticketColumns + `
FROM tickets
WHERE ticket_id = $1
ORDER BY date_time;
`
	rows, err := s.db.QueryContext(ctx, q, code)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return collectTickets(rows)
}

func (s *PostgresStore) Create(ctx context.Context, t Ticket) (Ticket, error) {
	const q = `
INSERT INTO tickets (id, ticket_id, customer_name, customer_mobile, product, address, date_time, status, accepted, rejected_reason, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), now(), now())
RETURNING ` + ticketColumns + `;
`
	row := s.db.QueryRowContext(ctx, q,
		t.ID, t.TicketID, t.CustomerName, t.CustomerMobile, t.Product,
		t.Address, t.DateTime, t.Status, t.Accepted, t.RejectedReason,
	)
	return scanTicket(row)
}

// ApplyPatch updates only the fields the patch carries; a single UPDATE keeps
// the partial update atomic.
func (s *PostgresStore) ApplyPatch(ctx context.Context, id string, p Patch) (Ticket, error) {
	const q = `
UPDATE tickets
SET accepted = COALESCE($2::boolean, accepted),
    status = COALESCE($3::text, status),
    rejected_reason = CASE
      WHEN $4::boolean THEN NULL
      WHEN $5::text IS NOT NULL THEN $5::text
      ELSE rejected_reason
    END,
    updated_at = now()
WHERE id = $1
RETURNING ` + ticketColumns + `;
`
	row := s.db.QueryRowContext(ctx, q, id, p.Accepted, p.Status, p.ClearReason, p.Reason)

	t, err := scanTicket(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Ticket{}, ErrNotFound
		}
		return Ticket{}, err
	}
	return t, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTicket(row rowScanner) (Ticket, error) {
	var t Ticket
	var reason sql.NullString
	err := row.Scan(
		&t.ID, &t.TicketID, &t.CustomerName, &t.CustomerMobile, &t.Product,
		&t.Address, &t.DateTime, &t.Status, &t.Accepted, &reason,
	)
	if err != nil {
		return Ticket{}, err
	}
	t.RejectedReason = reason.String
	return t, nil
}

func collectTickets(rows *sql.Rows) ([]Ticket, error) {
	var out []Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
