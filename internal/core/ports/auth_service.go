package ports

import (
	"context"

	"github.com/carewatch/monitoring-api/internal/core/domain"
)

// SignupInput carries the untrusted fields of a registration request.
type SignupInput struct {
	Username string
	Fullname string
	Email    string
	Cadre    string
	Password string
}

type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*domain.UserInfo, error)
	Login(ctx context.Context, username, password string) (string, *domain.UserInfo, error)
	VerifyToken(token string) (*domain.SessionClaims, error)
	WhoAmI(ctx context.Context, token string) (*domain.UserInfo, error)
}
