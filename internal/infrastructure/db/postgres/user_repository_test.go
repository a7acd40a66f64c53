package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carewatch/monitoring-api/internal/core/domain"
)

func uniqueViolation(constraint string) *pgconn.PgError {
	return &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: constraint}
}

func TestUserRepository_Create(t *testing.T) {
	user := &domain.User{
		Username:     "newuser1",
		Fullname:     "New User",
		Email:        "new@example.com",
		Cadre:        "physician",
		PasswordHash: "$2a$12$fakefakefakefakefakefake",
	}
	createdAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   error
		errMsg    string
	}{
		{
			name: "successful insert",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"id", "created_at"}).
					AddRow(int64(42), createdAt)
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs(user.Username, user.Fullname, user.Email, user.Cadre, user.PasswordHash).
					WillReturnRows(rows)
			},
		},
		{
			name: "duplicate username",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs(user.Username, user.Fullname, user.Email, user.Cadre, user.PasswordHash).
					WillReturnError(uniqueViolation("users_username_key"))
			},
			wantErr: domain.ErrUsernameTaken,
		},
		{
			name: "duplicate email",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs(user.Username, user.Fullname, user.Email, user.Cadre, user.PasswordHash).
					WillReturnError(uniqueViolation("users_email_key"))
			},
			wantErr: domain.ErrEmailTaken,
		},
		{
			name: "unique violation on unknown constraint",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs(user.Username, user.Fullname, user.Email, user.Cadre, user.PasswordHash).
					WillReturnError(uniqueViolation("users_pkey"))
			},
			wantErr: domain.ErrUserExists,
		},
		{
			name: "database error",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs(user.Username, user.Fullname, user.Email, user.Cadre, user.PasswordHash).
					WillReturnError(errors.New("connection refused"))
			},
			errMsg: "connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err, "failed to create mock")
			defer mock.Close()

			tt.setupMock(mock)

			repo := NewUserRepository(mock)
			created, err := repo.Create(context.Background(), user)

			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			case tt.errMsg != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			default:
				require.NoError(t, err)
				assert.Equal(t, int64(42), created.ID)
				assert.Equal(t, createdAt, created.CreatedAt)
				assert.Equal(t, user.Username, created.Username)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}

func TestUserRepository_FindByUsername(t *testing.T) {
	createdAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   error
		errMsg    string
	}{
		{
			name: "found",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"id", "username", "fullname", "email", "cadre", "password_hash", "created_at"}).
					AddRow(int64(42), "newuser1", "New User", "new@example.com", "physician", "$2a$12$fake", createdAt)
				mock.ExpectQuery(`SELECT id, username, fullname, email, cadre, password_hash, created_at`).
					WithArgs("newuser1").
					WillReturnRows(rows)
			},
		},
		{
			name: "not found",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT id, username, fullname, email, cadre, password_hash, created_at`).
					WithArgs("newuser1").
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: domain.ErrUserNotFound,
		},
		{
			name: "database error",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT id, username, fullname, email, cadre, password_hash, created_at`).
					WithArgs("newuser1").
					WillReturnError(errors.New("timeout"))
			},
			errMsg: "timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err, "failed to create mock")
			defer mock.Close()

			tt.setupMock(mock)

			repo := NewUserRepository(mock)
			got, err := repo.FindByUsername(context.Background(), "newuser1")

			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			case tt.errMsg != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			default:
				require.NoError(t, err)
				assert.Equal(t, "newuser1", got.Username)
				assert.Equal(t, "$2a$12$fake", got.PasswordHash)
				assert.Equal(t, "physician", got.Cadre)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}
