package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresUserStore persists the user directory in Postgres. Roles live in
// the authorities table keyed by username.
type PostgresUserStore struct {
	pool *pgxpool.Pool
}

func NewPostgresUserStore(pool *pgxpool.Pool) *PostgresUserStore {
	return &PostgresUserStore{pool: pool}
}

const userColumns = `user_id, name, username, email, created_at`

func (s *PostgresUserStore) FindByID(ctx context.Context, id int) (User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	return s.scanUser(s.pool.QueryRow(ctx, q, id))
}

func (s *PostgresUserStore) FindByUsername(ctx context.Context, username string) (User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE lower(username) = lower($1);`
	return s.scanUser(s.pool.QueryRow(ctx, q, username))
}

func (s *PostgresUserStore) FindAll(ctx context.Context) ([]User, error) {
	q := `SELECT ` + userColumns + ` FROM users ORDER BY user_id;`
	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.UserID, &u.Name, &u.Username, &u.Email, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *PostgresUserStore) FindCredentials(ctx context.Context, username string) (Credentials, error) {
	q := `
SELECT u.user_id, u.username, u.password_hash, COALESCE(a.authority, 'ROLE_USER')
FROM users u
LEFT JOIN authorities a ON a.username = u.username
WHERE lower(u.username) = lower($1)
LIMIT 1;`
	var c Credentials
	err := s.pool.QueryRow(ctx, q, username).Scan(&c.UserID, &c.Username, &c.PasswordHash, &c.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Credentials{}, ErrNotFound
		}
		return Credentials{}, err
	}
	return c, nil
}

// Create inserts the user row and its default authority in one transaction
// so a failed role attach never leaves a role-less user behind.
func (s *PostgresUserStore) Create(ctx context.Context, n NewUser, role string) (User, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return User{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	q := `
INSERT INTO users (name, username, password_hash, email)
VALUES ($1, $2, $3, $4)
RETURNING ` + userColumns + `;`
	var u User
	err = tx.QueryRow(ctx, q, n.Name, n.Username, n.PasswordHash, n.Email).Scan(
		&u.UserID, &u.Name, &u.Username, &u.Email, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return User{}, ErrConflict
		}
		return User{}, err
	}

	if _, err := tx.Exec(ctx, `INSERT INTO authorities (username, authority) VALUES ($1, $2);`, u.Username, role); err != nil {
		return User{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return User{}, err
	}
	return u, nil
}

// Update patches the user row. The password column is only touched when a
// new hash is supplied; an empty hash must never overwrite a real one.
func (s *PostgresUserStore) Update(ctx context.Context, u UserUpdate) error {
	var (
		q    string
		args []any
	)
	if u.PasswordHash != "" {
		q = `UPDATE users SET name = $2, username = $3, email = $4, password_hash = $5 WHERE user_id = $1;`
		args = []any{u.UserID, u.Name, u.Username, u.Email, u.PasswordHash}
	} else {
		q = `UPDATE users SET name = $2, username = $3, email = $4 WHERE user_id = $1;`
		args = []any{u.UserID, u.Name, u.Username, u.Email}
	}
	tag, err := s.pool.Exec(ctx, q, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrConflict
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresUserStore) Delete(ctx context.Context, id int) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM users WHERE user_id = $1;`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// SetRoleByUsername resolves the canonical username first so the authorities
// row always matches the users row regardless of caller casing.
func (s *PostgresUserStore) SetRoleByUsername(ctx context.Context, username, role string) error {
	q := `
INSERT INTO authorities (username, authority)
SELECT username, $2 FROM users WHERE lower(username) = lower($1)
ON CONFLICT (username) DO UPDATE SET authority = EXCLUDED.authority;`
	tag, err := s.pool.Exec(ctx, q, username, role)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresUserStore) scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.UserID, &u.Name, &u.Username, &u.Email, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}
