package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/carewatch/monitoring-api/internal/api/metrics"
	"github.com/carewatch/monitoring-api/internal/api/middleware"
	"github.com/carewatch/monitoring-api/internal/core/domain"
	"github.com/carewatch/monitoring-api/internal/core/ports"
	"github.com/carewatch/monitoring-api/internal/validation"
)

// AuthHandler exposes the credential workflows: signup, login, token
// verification, and current-user lookup.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type signupRequest struct {
	Fullname string `json:"fullname"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Cadre    string `json:"cadre"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signupResponse struct {
	Message string           `json:"message"`
	User    *domain.UserInfo `json:"user"`
}

type authResponse struct {
	Token string           `json:"token"`
	User  *domain.UserInfo `json:"user"`
}

type verifyResponse struct {
	Valid    bool   `json:"valid"`
	Username string `json:"username"`
	Cadre    string `json:"cadre"`
}

// Signup registers a new operator account.
//
// @Summary      Register a new operator
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Registration details"
// @Success      201   {object}  signupResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.authService.Signup(c.Request().Context(), ports.SignupInput{
		Fullname: req.Fullname,
		Username: req.Username,
		Email:    req.Email,
		Cadre:    req.Cadre,
		Password: req.Password,
	})
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("signup", authOutcome(err)).Inc()
		return err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("signup", "success").Inc()
	return c.JSON(http.StatusCreated, signupResponse{
		Message: "Account created successfully",
		User:    user,
	})
}

// Login authenticates an operator and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  map[string]string
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", authOutcome(err)).Inc()
		return err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()
	return c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}

// Verify checks the bearer token without touching storage.
//
// @Summary      Verify a session token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  verifyResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/auth/verify [get]
func (h *AuthHandler) Verify(c echo.Context) error {
	token, ok := middleware.BearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
	if !ok {
		metrics.AuthAttemptsTotal.WithLabelValues("verify", "unauthorized").Inc()
		return middleware.Unauthorized()
	}

	claims, err := h.authService.VerifyToken(token)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("verify", "unauthorized").Inc()
		return middleware.Unauthorized()
	}

	metrics.AuthAttemptsTotal.WithLabelValues("verify", "success").Inc()
	return c.JSON(http.StatusOK, verifyResponse{
		Valid:    true,
		Username: claims.Username,
		Cadre:    claims.Cadre,
	})
}

// Me returns the live profile of the token's operator, re-resolved against
// the store so renames and deletions are reflected before the token expires.
//
// @Summary      Current operator profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.UserInfo
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	token, ok := middleware.BearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
	if !ok {
		metrics.AuthAttemptsTotal.WithLabelValues("whoami", "unauthorized").Inc()
		return middleware.Unauthorized()
	}

	user, err := h.authService.WhoAmI(c.Request().Context(), token)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("whoami", authOutcome(err)).Inc()
		return err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("whoami", "success").Inc()
	return c.JSON(http.StatusOK, user)
}

// authOutcome buckets an auth workflow error for metrics.
func authOutcome(err error) string {
	var ve *validation.Error
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrInvalidToken):
		return "unauthorized"
	case errors.As(err, &ve):
		return "rejected"
	case errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrUserExists),
		errors.Is(err, domain.ErrUnknownCadre),
		errors.Is(err, domain.ErrUserNotFound):
		return "rejected"
	default:
		return "error"
	}
}
