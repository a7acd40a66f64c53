package ports

import (
	"context"

	"github.com/carewatch/monitoring-api/internal/core/domain"
)

// AuthRepository defines the interface for operator credential persistence.
// Uniqueness of username and email is enforced by the storage engine's own
// constraints; Create surfaces a violation as the field-specific sentinel
// (domain.ErrUsernameTaken, domain.ErrEmailTaken, domain.ErrUserExists).
type AuthRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}
