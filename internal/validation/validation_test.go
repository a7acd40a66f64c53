package validation

import (
	"errors"
	"strings"
	"testing"
)

func assertKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	var ve *Error
	if !errors.As(err, &ve) {
		t.Fatalf("expected *validation.Error, got %T: %v", err, err)
	}
	if ve.Kind != kind {
		t.Fatalf("expected kind %s, got %s (%v)", kind, ve.Kind, ve)
	}
}

func TestValidateUsername(t *testing.T) {
	if err := ValidateUsername("john_doe"); err != nil {
		t.Fatalf("john_doe should be valid: %v", err)
	}
	if err := ValidateUsername("user123"); err != nil {
		t.Fatalf("user123 should be valid: %v", err)
	}
	if err := ValidateUsername("with-hyphen"); err != nil {
		t.Fatalf("with-hyphen should be valid: %v", err)
	}

	assertKind(t, ValidateUsername(""), InvalidUsername)
	assertKind(t, ValidateUsername("ab"), TooShort)
	assertKind(t, ValidateUsername(strings.Repeat("a", 31)), TooLong)
	assertKind(t, ValidateUsername("user@name"), InvalidUsername)
	assertKind(t, ValidateUsername("user name"), InvalidUsername)
}

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"test.user+tag@domain.co.uk",
		"a_b-c%d@sub.domain.org",
	}
	for _, e := range valid {
		if err := ValidateEmail(e); err != nil {
			t.Fatalf("%s should be valid: %v", e, err)
		}
	}

	assertKind(t, ValidateEmail(""), InvalidEmail)
	assertKind(t, ValidateEmail("invalid"), InvalidEmail)
	assertKind(t, ValidateEmail("@example.com"), InvalidEmail)
	assertKind(t, ValidateEmail("user@"), InvalidEmail)
	assertKind(t, ValidateEmail("u@"+strings.Repeat("d", 250)+".com"), TooLong)
}

func TestCheckSQLInjection(t *testing.T) {
	if err := CheckSQLInjection("hello world"); err != nil {
		t.Fatalf("plain text should pass: %v", err)
	}
	if err := CheckSQLInjection("normal text"); err != nil {
		t.Fatalf("plain text should pass: %v", err)
	}

	assertKind(t, CheckSQLInjection("SELECT * FROM users"), PotentialSQLInjection)
	assertKind(t, CheckSQLInjection("'; DROP TABLE users--"), PotentialSQLInjection)
	assertKind(t, CheckSQLInjection("union all select"), PotentialSQLInjection)

	// The keyword list is deliberately narrow: tautology probes without a
	// listed keyword are not flagged.
	if err := CheckSQLInjection("1 OR 1=1"); err != nil {
		t.Fatalf("tautology without keywords should pass the heuristic: %v", err)
	}
}

func TestCheckXSS(t *testing.T) {
	if err := CheckXSS("normal text"); err != nil {
		t.Fatalf("plain text should pass: %v", err)
	}

	assertKind(t, CheckXSS("<script>alert('xss')</script>"), PotentialXSS)
	assertKind(t, CheckXSS("javascript:alert(1)"), PotentialXSS)
	assertKind(t, CheckXSS("<img onerror='alert(1)'>"), PotentialXSS)
	assertKind(t, CheckXSS("<IFRAME src=x>"), PotentialXSS)
}

func TestSanitizeHTML(t *testing.T) {
	cases := map[string]string{
		"<script>":   "&lt;script&gt;",
		"A & B":      "A &amp; B",
		`"quoted"`:   "&quot;quoted&quot;",
		"it's a/b":   "it&#x27;s a&#x2F;b",
		"no specials": "no specials",
	}
	for in, want := range cases {
		if got := SanitizeHTML(in); got != want {
			t.Fatalf("SanitizeHTML(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStripHTMLTags(t *testing.T) {
	if got := StripHTMLTags("<b>bold</b> text"); got != "bold text" {
		t.Fatalf("unexpected strip result: %q", got)
	}
	if got := StripHTMLTags("no tags"); got != "no tags" {
		t.Fatalf("unexpected strip result: %q", got)
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("Jane O'Neil <x>!"); got != "Jane ONeil x" {
		t.Fatalf("unexpected sanitize result: %q", got)
	}
	if got := SanitizeString("a-b_c.d@e,f"); got != "a-b_c.d@e,f" {
		t.Fatalf("allowed punctuation must survive: %q", got)
	}
}

func TestValidateLength(t *testing.T) {
	if err := ValidateLength("abcd", 3, 10, "field"); err != nil {
		t.Fatalf("in-range length should pass: %v", err)
	}
	assertKind(t, ValidateLength("ab", 3, 10, "field"), TooShort)
	assertKind(t, ValidateLength(strings.Repeat("a", 11), 3, 10, "field"), TooLong)
}

func TestValidateTextInput(t *testing.T) {
	got, err := ValidateTextInput("Maria Lopez")
	if err != nil {
		t.Fatalf("clean input should pass: %v", err)
	}
	if got != "Maria Lopez" {
		t.Fatalf("clean input should be unchanged: %q", got)
	}

	got, err = ValidateTextInput(`Jane "Doe"`)
	if err != nil {
		t.Fatalf("quoted input should pass: %v", err)
	}
	if got != "Jane &quot;Doe&quot;" {
		t.Fatalf("expected escaped output, got %q", got)
	}

	// Reject-then-sanitize: flagged input is never escaped and returned.
	if _, err := ValidateTextInput("<script>alert(1)</script>"); err == nil {
		t.Fatalf("script input must be rejected, not sanitized")
	}
	if _, err := ValidateTextInput("DELETE FROM patients"); err == nil {
		t.Fatalf("sql keywords must be rejected")
	}
}
