package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/example/fleet-inventory/internal/auth"
)

// PostgresUserStore persists user accounts.
type PostgresUserStore struct {
	db *sql.DB
}

func NewPostgresUserStore(db *sql.DB) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

func (s *PostgresUserStore) Save(ctx context.Context, u *auth.User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, role, created_at)
		 VALUES ($1,$2,$3,$4,$5)`,
		u.ID, u.Username, u.PasswordHash, string(u.Role), u.CreatedAt,
	)
	return err
}

func (s *PostgresUserStore) ByUsername(ctx context.Context, username string) (*auth.User, error) {
	var u auth.User
	var role string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, role, created_at FROM users WHERE username = $1`,
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, auth.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	u.Role = auth.Role(role)
	return &u, nil
}

func (s *PostgresUserStore) UpdateRole(ctx context.Context, username string, role auth.Role) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET role = $1 WHERE username = $2`,
		string(role), username,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}
