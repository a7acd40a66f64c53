package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/carewatch/monitoring-api/internal/core/ports"
)

const bearerPrefix = "Bearer "

// Unauthorized is the single constructor for every authentication rejection.
// Missing header, malformed prefix, bad signature, and expired token all go
// through here so no code path can leak which one happened.
func Unauthorized() *echo.HTTPError {
	return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
}

// BearerToken extracts the token from an Authorization header value. The
// prefix must be exactly "Bearer ": case-sensitive, single space. An empty
// second return means rejection.
func BearerToken(header string) (string, bool) {
	token, ok := strings.CutPrefix(header, bearerPrefix)
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// Auth verifies the bearer token and injects the session claims into the
// request context.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := BearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return Unauthorized()
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				return Unauthorized()
			}

			c.Set("sub", claims.Subject)
			c.Set("username", claims.Username)
			c.Set("cadre", claims.Cadre)

			return next(c)
		}
	}
}
