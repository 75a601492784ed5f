package core

// PasswordHasher abstracts the salted one-way password hash used for login
// credentials.
type PasswordHasher interface {
	// Hash derives a salted hash from the plaintext password
	Hash(password string) (string, error)
	// Verify reports whether the plaintext password matches the stored hash
	Verify(password, hash string) bool
}
