package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/custodia-labs/bank-core/internal/core/domain"
	"github.com/custodia-labs/bank-core/internal/core/ports/driven"
)

// Ensure TokenService implements driven.TokenService
var _ driven.TokenService = (*TokenService)(nil)

// Issuer is written to and required in every token
const Issuer = "bank-core"

// SigningKeySize is the length of generated HS256 keys in bytes
const SigningKeySize = 32

// TokenService issues and validates HS256 session tokens.
// The key is fixed at construction and never changes, so one instance
// is safe to share between requests.
type TokenService struct {
	key    []byte
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

// TokenOption configures a TokenService
type TokenOption func(*TokenService)

// WithTTL overrides the token validity window
func WithTTL(ttl time.Duration) TokenOption {
	return func(s *TokenService) {
		s.ttl = ttl
	}
}

// WithClock overrides the time source used for issuing and validating
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) {
		s.now = now
	}
}

// GenerateSigningKey returns a random key for tokens that only need to
// outlive the current process
func GenerateSigningKey() ([]byte, error) {
	key := make([]byte, SigningKeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate signing key: %w", err)
	}
	return key, nil
}

// NewTokenService creates a token service signing with key
func NewTokenService(key []byte, opts ...TokenOption) (*TokenService, error) {
	if len(key) == 0 {
		return nil, errors.New("token signing key is empty")
	}

	s := &TokenService{
		key: append([]byte(nil), key...),
		ttl: domain.SessionTTL,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(Issuer),
		jwt.WithTimeFunc(s.now),
	)
	return s, nil
}

// Issue creates a signed token for subject expiring after the TTL
func (s *TokenService) Issue(subject string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		ID:        uuid.NewString(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// SubjectOf verifies the token and returns its subject
func (s *TokenService) SubjectOf(tokenString string) (string, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// Validate succeeds only for a correctly signed, unexpired token whose
// subject equals expectedSubject
func (s *TokenService) Validate(tokenString, expectedSubject string) error {
	claims, err := s.parse(tokenString)
	if err != nil {
		return err
	}
	if claims.Subject != expectedSubject {
		return fmt.Errorf("%w: subject mismatch", domain.ErrTokenInvalid)
	}
	// exp must be strictly after now
	if !claims.ExpiresAt.After(s.now()) {
		return domain.ErrTokenExpired
	}
	return nil
}

// IsValid reports whether Validate succeeds
func (s *TokenService) IsValid(tokenString, expectedSubject string) bool {
	return s.Validate(tokenString, expectedSubject) == nil
}

func (s *TokenService) parse(tokenString string) (*jwt.RegisteredClaims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("%w: empty token", domain.ErrTokenInvalid)
	}

	claims := &jwt.RegisteredClaims{}
	_, err := s.parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.key, nil
	})
	if err != nil {
		return nil, convertError(err)
	}
	return claims, nil
}

// convertError maps jwt errors onto the two token failure kinds.
// Expiry is only reported once the signature has verified.
func convertError(err error) error {
	if errors.Is(err, jwt.ErrTokenExpired) && !errors.Is(err, jwt.ErrTokenSignatureInvalid) {
		return fmt.Errorf("%w: %v", domain.ErrTokenExpired, err)
	}
	return fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
}
