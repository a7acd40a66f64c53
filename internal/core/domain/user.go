package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Cadre is the professional role of a healthcare operator account.
type Cadre string

const (
	CadrePhysician       Cadre = "physician"
	CadreNurse           Cadre = "nurse"
	CadrePhysiotherapist Cadre = "physiotherapist"
	CadreCaretaker       Cadre = "caretaker"
)

// ErrUnknownCadre is returned when a text value does not name a known cadre.
var ErrUnknownCadre = errors.New("unknown cadre")

// ParseCadre converts the case-insensitive text form into a Cadre.
func ParseCadre(s string) (Cadre, error) {
	switch strings.ToLower(s) {
	case string(CadrePhysician):
		return CadrePhysician, nil
	case string(CadreNurse):
		return CadreNurse, nil
	case string(CadrePhysiotherapist):
		return CadrePhysiotherapist, nil
	case string(CadreCaretaker):
		return CadreCaretaker, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownCadre, s)
	}
}

func (c Cadre) String() string { return string(c) }

// User models a registered healthcare operator. The password hash is opaque
// to every layer above the repository and is never serialized outward.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Fullname     string    `json:"fullname"`
	Email        string    `json:"email"`
	Cadre        string    `json:"cadre"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserInfo is the public view of a User returned to clients.
type UserInfo struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Cadre    string `json:"cadre"`
}

// PublicView strips the credential fields from a User.
func (u *User) PublicView() *UserInfo {
	return &UserInfo{
		ID:       u.ID,
		Username: u.Username,
		Fullname: u.Fullname,
		Email:    u.Email,
		Cadre:    u.Cadre,
	}
}

var (
	// ErrInvalidCredentials covers both unknown-username and wrong-password
	// login failures so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidToken covers every token verification failure: bad signature,
	// malformed token, and elapsed expiry collapse to this one error.
	ErrInvalidToken = errors.New("invalid or expired token")

	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already exists")
	ErrUserExists    = errors.New("user already exists")
)
