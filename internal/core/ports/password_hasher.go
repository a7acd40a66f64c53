package ports

// PasswordHasher abstracts the one-way credential hash so the domain does not
// care about the algorithm.
type PasswordHasher interface {
	// Hash produces a self-contained salted digest of the plaintext.
	Hash(password string) (string, error)

	// Verify reports whether plaintext matches digest. A mismatch is
	// (false, nil); a malformed digest is (false, err).
	Verify(password, digest string) (bool, error)
}
