// Package validation is the input firewall that screens untrusted request
// text before it reaches storage or business logic.
//
// The injection and XSS checks are heuristic keyword matches intended as
// defense-in-depth only. Parameterized queries and output encoding remain the
// actual defenses; false negatives are expected and false positives on
// legitimate text are a known risk callers must tolerate.
//
// Every function here is pure, total, and side-effect-free: inputs are
// classified, never logged, never retried.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// ErrorKind tags the outcome of a failed firewall check.
type ErrorKind string

const (
	InvalidUsername       ErrorKind = "invalid_username"
	InvalidEmail          ErrorKind = "invalid_email"
	InvalidInput          ErrorKind = "invalid_input"
	PotentialSQLInjection ErrorKind = "potential_sql_injection"
	PotentialXSS          ErrorKind = "potential_xss"
	InvalidRange          ErrorKind = "invalid_range"
	InvalidFHIR           ErrorKind = "invalid_fhir"
	TooLong               ErrorKind = "too_long"
	TooShort              ErrorKind = "too_short"
)

// Error is the tagged result of a failed check. It is control flow, not
// state: it is never persisted.
type Error struct {
	Kind   ErrorKind
	Detail string
}

func (e *Error) Error() string {
	switch e.Kind {
	case InvalidUsername:
		return "invalid username: " + e.Detail
	case InvalidEmail:
		return "invalid email: " + e.Detail
	case PotentialSQLInjection:
		return "potential SQL injection detected: " + e.Detail
	case PotentialXSS:
		return "potential XSS detected: " + e.Detail
	case InvalidRange:
		return "value out of range: " + e.Detail
	case InvalidFHIR:
		return "invalid FHIR data: " + e.Detail
	case TooLong:
		return "input too long: " + e.Detail
	case TooShort:
		return "input too short: " + e.Detail
	default:
		return "invalid input: " + e.Detail
	}
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// NewError builds a tagged validation error. Exposed for policy layers that
// reject input for reasons the stock checks do not cover.
func NewError(kind ErrorKind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

// Patterns are compiled once at package init, not per call.
var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,30}$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

	// Deliberately narrow keyword list. Tautology probes like "1 OR 1=1"
	// pass; completing the detector is a non-goal because parameterized
	// queries are the real defense.
	sqlInjectionPattern = regexp.MustCompile(`(?i)(union|select|insert|update|delete|drop|create|alter|exec|execute|script|javascript|<script)`)

	xssPattern = regexp.MustCompile(`(?i)(<script|javascript:|onerror=|onload=|onclick=|<iframe|<object|<embed)`)

	htmlTagPattern = regexp.MustCompile(`<[^>]*>`)
)

// ValidateUsername checks format and length (3-30 chars, [A-Za-z0-9_-]).
func ValidateUsername(username string) error {
	if username == "" {
		return newError(InvalidUsername, "username cannot be empty")
	}
	if len(username) < 3 {
		return newError(TooShort, "username must be at least 3 characters")
	}
	if len(username) > 30 {
		return newError(TooLong, "username must be at most 30 characters")
	}
	if !usernamePattern.MatchString(username) {
		return newError(InvalidUsername, "username can only contain letters, numbers, underscore, and hyphen")
	}
	return nil
}

// ValidateEmail checks RFC-shaped format and length (max 254 chars).
func ValidateEmail(email string) error {
	if email == "" {
		return newError(InvalidEmail, "email cannot be empty")
	}
	if len(email) > 254 {
		return newError(TooLong, "email is too long")
	}
	if !emailPattern.MatchString(email) {
		return newError(InvalidEmail, "invalid email format")
	}
	return nil
}

// CheckSQLInjection flags input containing suspicious SQL keywords.
func CheckSQLInjection(input string) error {
	if sqlInjectionPattern.MatchString(input) {
		return newError(PotentialSQLInjection, "input contains suspicious SQL keywords")
	}
	return nil
}

// CheckXSS flags input containing suspicious script patterns.
func CheckXSS(input string) error {
	if xssPattern.MatchString(input) {
		return newError(PotentialXSS, "input contains suspicious script patterns")
	}
	return nil
}

// SanitizeHTML escapes the six HTML-significant characters to entities.
func SanitizeHTML(input string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#x27;",
		"/", "&#x2F;",
	)
	return r.Replace(input)
}

// StripHTMLTags removes everything matching <...> from the input.
func StripHTMLTags(input string) string {
	return htmlTagPattern.ReplaceAllString(input, "")
}

// SanitizeString keeps only alphanumerics, whitespace, and -_.@, characters.
func SanitizeString(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for _, c := range input {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteRune(c)
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			b.WriteRune(c)
		case strings.ContainsRune("-_.@,", c):
			b.WriteRune(c)
		}
	}
	return b.String()
}

// ValidateLength checks that input is between min and max characters.
func ValidateLength(input string, min, max int, fieldName string) error {
	if len(input) < min {
		return newError(TooShort, "%s must be at least %d characters", fieldName, min)
	}
	if len(input) > max {
		return newError(TooLong, "%s must be at most %d characters", fieldName, max)
	}
	return nil
}

// ValidateTextInput is the combined gate for free-text fields: the injection
// and XSS heuristics run first, and only clean input is escaped and returned.
// Flagged input is rejected outright, never sanitized and passed on.
func ValidateTextInput(input string) (string, error) {
	if err := CheckSQLInjection(input); err != nil {
		return "", err
	}
	if err := CheckXSS(input); err != nil {
		return "", err
	}
	return SanitizeHTML(input), nil
}
