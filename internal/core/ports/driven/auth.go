package driven

// PasswordHasher handles one-way salted password hashing.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
	VerifyPassword(password, hash string) bool
}

// TokenService issues and validates signed, time-limited session tokens.
// Nothing is stored: a token is revalidated from its own signed contents.
type TokenService interface {
	// Issue returns a signed token for subject, valid for domain.SessionTTL
	Issue(subject string) (string, error)

	// SubjectOf verifies the token and returns its subject.
	// Returns domain.ErrTokenExpired or domain.ErrTokenInvalid.
	SubjectOf(token string) (string, error)

	// Validate checks signature, subject and expiry.
	// Returns nil, domain.ErrTokenExpired or domain.ErrTokenInvalid.
	Validate(token, expectedSubject string) error
}
