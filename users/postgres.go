package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// DBTX is the subset of pgx used by PostgresRepository. *pgxpool.Pool,
// *db.LazyPool and pgxmock all satisfy it.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores users in the `users` table.
type PostgresRepository struct {
	db  DBTX
	now func() time.Time
}

// NewPostgresRepository creates a repository over db.
func NewPostgresRepository(db DBTX) *PostgresRepository {
	return &PostgresRepository{db: db, now: time.Now}
}

func (r *PostgresRepository) Insert(ctx context.Context, u *User) (*User, error) {
	stored := &User{
		ID:        uuid.NewString(),
		Email:     u.Email,
		FirstName: u.FirstName,
		CreatedAt: r.now().UTC(),
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, first_name, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, stored.ID, stored.Email, u.PasswordHash, stored.FirstName, stored.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return stored, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string, withHash bool) (*User, error) {
	var u User
	var err error
	if withHash {
		err = r.db.QueryRow(ctx, `
			SELECT id::text, email, password_hash, first_name, created_at
			FROM users
			WHERE email = $1
		`, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.CreatedAt)
	} else {
		err = r.db.QueryRow(ctx, `
			SELECT id::text, email, first_name, created_at
			FROM users
			WHERE email = $1
		`, email).Scan(&u.ID, &u.Email, &u.FirstName, &u.CreatedAt)
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*User, error) {
	if uuid.Validate(id) != nil {
		return nil, ErrNotFound
	}

	var u User
	err := r.db.QueryRow(ctx, `
		SELECT id::text, email, first_name, created_at
		FROM users
		WHERE id = $1
	`, id).Scan(&u.ID, &u.Email, &u.FirstName, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return &u, nil
}

func (r *PostgresRepository) GetPasswordHash(ctx context.Context, id string) (string, error) {
	if uuid.Validate(id) != nil {
		return "", ErrNotFound
	}

	var hash string
	err := r.db.QueryRow(ctx, `SELECT password_hash FROM users WHERE id = $1`, id).Scan(&hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("get password hash: %w", err)
	}
	return hash, nil
}

func (r *PostgresRepository) SetPasswordHash(ctx context.Context, id, hash string) error {
	if uuid.Validate(id) != nil {
		return ErrNotFound
	}

	tag, err := r.db.Exec(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, hash, id)
	if err != nil {
		return fmt.Errorf("update password hash: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) SetFirstName(ctx context.Context, id, firstName string) (*User, error) {
	if uuid.Validate(id) != nil {
		return nil, ErrNotFound
	}

	var u User
	err := r.db.QueryRow(ctx, `
		UPDATE users SET first_name = $1
		WHERE id = $2
		RETURNING id::text, email, first_name, created_at
	`, firstName, id).Scan(&u.ID, &u.Email, &u.FirstName, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update first name: %w", err)
	}
	return &u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

var _ Repository = (*PostgresRepository)(nil)
