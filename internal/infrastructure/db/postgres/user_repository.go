package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/carewatch/monitoring-api/internal/core/domain"
)

// UserRepository implements ports.AuthRepository on PostgreSQL. Uniqueness of
// username and email is enforced by the table constraints, so there is no
// check-then-act race between concurrent signups.
type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (username, fullname, email, cadre, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, user.Username, user.Fullname, user.Email, user.Cadre, user.PasswordHash)

	created := *user
	if err := row.Scan(&created.ID, &created.CreatedAt); err != nil {
		if mapped := mapConflict(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &created, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, username, fullname, email, cadre, password_hash, created_at
		FROM users
		WHERE username = $1
	`, username)

	var u domain.User
	err := row.Scan(&u.ID, &u.Username, &u.Fullname, &u.Email, &u.Cadre, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

// mapConflict translates a unique-constraint violation into the
// field-specific conflict sentinel. Any other error returns nil so the
// caller wraps it as an internal failure.
func mapConflict(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return nil
	}
	switch {
	case strings.Contains(pgErr.ConstraintName, "username"):
		return domain.ErrUsernameTaken
	case strings.Contains(pgErr.ConstraintName, "email"):
		return domain.ErrEmailTaken
	default:
		return domain.ErrUserExists
	}
}
