package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/carewatch/monitoring-api/internal/core/domain"
)

// DevFallbackSecret is the signing secret used when none is configured.
// A process running with it must be treated as insecure for production;
// callers are expected to log a loud warning at startup.
const DevFallbackSecret = "development_only_secret_replace_in_production"

const defaultTokenTTL = 24 * time.Hour

// sessionClaims is the wire shape of a session token payload.
type sessionClaims struct {
	Username string `json:"username"`
	Cadre    string `json:"cadre"`
	jwt.RegisteredClaims
}

// TokenService mints and verifies HS256-signed session tokens. The secret
// and validity window are fixed at construction and immutable for the life
// of the process.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService builds a TokenService. An empty secret falls back to
// DevFallbackSecret; a non-positive ttl falls back to 24 hours.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if secret == "" {
		secret = DevFallbackSecret
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for the user with iat = now and exp = now + window.
func (s *TokenService) Issue(user *domain.User) (string, error) {
	now := s.now().UTC()
	claims := sessionClaims{
		Username: user.Username,
		Cadre:    user.Cadre,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify decodes and checks the token. Signature mismatch, malformed input,
// and elapsed expiry all collapse to domain.ErrInvalidToken so callers
// cannot distinguish tampered from expired.
func (s *TokenService) Verify(tokenString string) (*domain.SessionClaims, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil || !token.Valid {
		return nil, domain.ErrInvalidToken
	}
	if claims.ExpiresAt == nil {
		return nil, domain.ErrInvalidToken
	}

	out := &domain.SessionClaims{
		Subject:   claims.Subject,
		Username:  claims.Username,
		Cadre:     claims.Cadre,
		ExpiresAt: claims.ExpiresAt.Unix(),
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Unix()
	}
	return out, nil
}
