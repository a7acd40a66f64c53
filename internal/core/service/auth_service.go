package service

import (
	"context"
	"fmt"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/carewatch/monitoring-api/internal/core/domain"
	"github.com/carewatch/monitoring-api/internal/core/ports"
	"github.com/carewatch/monitoring-api/internal/validation"
)

// AuthService implements signup, login, and token-backed identity lookup.
// It is the only layer that translates repository and crypto failures into
// user-facing outcomes; raw storage errors never pass through it.
type AuthService struct {
	repo   ports.AuthRepository
	hasher ports.PasswordHasher
	tokens ports.TokenService
	log    zerolog.Logger
}

func NewAuthService(repo ports.AuthRepository, hasher ports.PasswordHasher, tokens ports.TokenService, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens, log: log}
}

// Signup validates, hashes, and creates a new operator account. Conflicts on
// username or email surface as their field-specific sentinels; the created
// identity is returned without its password hash.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.UserInfo, error) {
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, err
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, err
	}
	fullname, err := validation.ValidateTextInput(in.Fullname)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}

	cadre, err := domain.ParseCadre(in.Cadre)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		// Internal failure, never shown to a user as "wrong password".
		return nil, fmt.Errorf("signup: %w", err)
	}

	user := &domain.User{
		Username:     in.Username,
		Fullname:     fullname,
		Email:        in.Email,
		Cadre:        cadre.String(),
		PasswordHash: hash,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", created.Username).Str("cadre", created.Cadre).Msg("user created")
	return created.PublicView(), nil
}

// Login authenticates by username and password. An unknown username and a
// wrong password produce the same domain.ErrInvalidCredentials so the
// response cannot be used to enumerate accounts.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.UserInfo, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("login: %w", err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}
	if !ok {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}

	s.log.Info().Str("username", user.Username).Str("cadre", user.Cadre).Msg("login successful")
	return token, user.PublicView(), nil
}

// VerifyToken checks a session token without touching storage.
func (s *AuthService) VerifyToken(token string) (*domain.SessionClaims, error) {
	return s.tokens.Verify(token)
}

// WhoAmI resolves a verified token's username back against the repository so
// the caller sees live profile data rather than stale token-embedded fields.
func (s *AuthService) WhoAmI(ctx context.Context, token string) (*domain.UserInfo, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.FindByUsername(ctx, claims.Username)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("whoami: %w", err)
	}
	return user.PublicView(), nil
}

// validatePassword enforces the signup password policy: at least 8
// characters with one uppercase letter and one digit. The message names the
// missing property.
func validatePassword(password string) error {
	if len(password) < 8 {
		return validation.NewError(validation.TooShort, "password must be at least 8 characters")
	}

	var hasUpper, hasDigit bool
	for _, c := range password {
		if unicode.IsUpper(c) {
			hasUpper = true
		}
		if unicode.IsDigit(c) {
			hasDigit = true
		}
	}
	switch {
	case !hasUpper && !hasDigit:
		return validation.NewError(validation.InvalidInput, "password must contain at least one uppercase letter and one number")
	case !hasUpper:
		return validation.NewError(validation.InvalidInput, "password must contain at least one uppercase letter")
	case !hasDigit:
		return validation.NewError(validation.InvalidInput, "password must contain at least one number")
	}
	return nil
}
