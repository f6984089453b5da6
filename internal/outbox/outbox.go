package outbox

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"
	"time"
)

// Record is one lifecycle event waiting to be published. The ticket handler
// appends records; the relay claims and publishes them.
type Record struct {
	ID          int64
	EventID     string
	Aggregate   string
	AggregateID string
	EventType   string
	Payload     json.RawMessage
	CreatedAt   time.Time
	Attempts    int
}

// Sink is the write side the ticket handler needs.
type Sink interface {
	Append(ctx context.Context, rec Record) error
}

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) Append(ctx context.Context, rec Record) error {
	const q = `
INSERT INTO outbox (event_id, aggregate, aggregate_id, event_type, payload, status, created_at)
VALUES ($1, $2, $3, $4, $5, 'pending', now());
`
	_, err := r.db.ExecContext(ctx, q,
		rec.EventID, rec.Aggregate, rec.AggregateID, rec.EventType, rec.Payload,
	)
	return err
}

func (r *PostgresRepo) ClaimPending(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}

	const q = `
WITH cte AS (
  SELECT id
  FROM outbox
  WHERE status = 'pending'
  ORDER BY created_at
  FOR UPDATE SKIP LOCKED
  LIMIT $1
)
UPDATE outbox o
SET status = 'processing',
    processing_started_at = now(),
    attempts = o.attempts + 1
FROM cte
WHERE o.id = cte.id
RETURNING o.id, o.event_id, o.aggregate, o.aggregate_id, o.event_type, o.payload, o.created_at, o.attempts;
`

	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Record
	for rows.Next() {
		var rec Record
		var payload []byte
		if err := rows.Scan(
			&rec.ID,
			&rec.EventID,
			&rec.Aggregate,
			&rec.AggregateID,
			&rec.EventType,
			&payload,
			&rec.CreatedAt,
			&rec.Attempts,
		); err != nil {
			return nil, err
		}
		rec.Payload = payload
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresRepo) MarkSent(ctx context.Context, id int64) error {
	const q = `
UPDATE outbox
SET status = 'sent', sent_at = now(), processing_started_at = NULL
WHERE id = $1;
`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

func (r *PostgresRepo) MarkPending(ctx context.Context, id int64) error {
	const q = `
UPDATE outbox
SET status = 'pending', processing_started_at = NULL
WHERE id = $1;
`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

// RequeueStuck returns rows stuck in processing (e.g. after a relay crash)
// back to pending.
func (r *PostgresRepo) RequeueStuck(ctx context.Context, timeout time.Duration) (int64, error) {
	threshold := time.Now().UTC().Add(-timeout)
	const q = `
UPDATE outbox
SET status = 'pending', processing_started_at = NULL
WHERE status = 'processing' AND processing_started_at < $1;
`
	res, err := r.db.ExecContext(ctx, q, threshold)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// MemorySink collects appended records; used by tests and the in-memory
// ticket-api mode.
type MemorySink struct {
	mu      sync.Mutex
	records []Record
}

func NewMemorySink() *MemorySink { return &MemorySink{} }

func (s *MemorySink) Append(ctx context.Context, rec Record) error {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

func (s *MemorySink) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}
