package ports

import "github.com/carewatch/monitoring-api/internal/core/domain"

// TokenService issues and verifies signed, time-bounded session tokens.
// Verify collapses every failure mode (bad signature, malformed token,
// elapsed expiry) into domain.ErrInvalidToken.
type TokenService interface {
	Issue(user *domain.User) (string, error)
	Verify(token string) (*domain.SessionClaims, error)
}
