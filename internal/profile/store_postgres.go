package profile

import (
	"context"
	"database/sql"
	"errors"
)

// PostgresStore keeps a single profile row; the table holds exactly one user
// in this deployment shape.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context) (User, error) {
	const q = `
SELECT name, mobile, email, address
FROM app_user
LIMIT 1;
`
	var u User
	err := s.db.QueryRowContext(ctx, q).Scan(&u.Name, &u.Mobile, &u.Email, &u.Address)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, nil
		}
		return User{}, err
	}
	return u, nil
}

func (s *PostgresStore) Put(ctx context.Context, u User) (User, error) {
	const q = `
INSERT INTO app_user (id, name, mobile, email, address, updated_at)
VALUES (1, $1, $2, $3, $4, now())
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name,
    mobile = EXCLUDED.mobile,
    email = EXCLUDED.email,
    address = EXCLUDED.address,
    updated_at = now()
RETURNING name, mobile, email, address;
`
	var out User
	err := s.db.QueryRowContext(ctx, q, u.Name, u.Mobile, u.Email, u.Address).
		Scan(&out.Name, &out.Mobile, &out.Email, &out.Address)
	if err != nil {
		return User{}, err
	}
	return out, nil
}
