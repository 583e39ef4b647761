package mocks

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/bank-core/internal/core/domain"
	"github.com/custodia-labs/bank-core/internal/core/ports/driven"
)

// Ensure mocks implement the driven ports
var (
	_ driven.PasswordHasher = (*MockPasswordHasher)(nil)
	_ driven.TokenService   = (*MockTokenService)(nil)
)

const mockHashPrefix = "hashed:"

// MockPasswordHasher is a mock implementation of PasswordHasher for testing.
// It prefixes the password instead of hashing it.
// NOT secure - only for testing.
type MockPasswordHasher struct {
	Err error
}

// NewMockPasswordHasher creates a new MockPasswordHasher
func NewMockPasswordHasher() *MockPasswordHasher {
	return &MockPasswordHasher{}
}

// HashPassword returns the password with a fixed prefix (for testing only)
func (m *MockPasswordHasher) HashPassword(password string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return mockHashPrefix + password, nil
}

// VerifyPassword compares password with the prefixed hash (for testing only)
func (m *MockPasswordHasher) VerifyPassword(password, hash string) bool {
	return strings.HasPrefix(hash, mockHashPrefix) && hash == mockHashPrefix+password
}

type mockClaims struct {
	Subject   string `json:"sub"`
	ExpiresAt int64  `json:"exp"`
}

// MockTokenService is a mock implementation of TokenService for testing.
// Tokens are base64-encoded JSON with no signature.
// NOT secure - only for testing.
type MockTokenService struct {
	TTL      time.Duration
	Now      func() time.Time
	IssueErr error
}

// NewMockTokenService creates a MockTokenService with the default session TTL
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{
		TTL: domain.SessionTTL,
		Now: time.Now,
	}
}

// Issue creates a base64-encoded JSON token for subject
func (m *MockTokenService) Issue(subject string) (string, error) {
	if m.IssueErr != nil {
		return "", m.IssueErr
	}
	return m.encode(mockClaims{Subject: subject, ExpiresAt: m.Now().Add(m.TTL).Unix()})
}

// IssueExpired creates a token that expired an hour ago
func (m *MockTokenService) IssueExpired(subject string) string {
	token, _ := m.encode(mockClaims{Subject: subject, ExpiresAt: m.Now().Add(-time.Hour).Unix()})
	return token
}

// SubjectOf decodes the token and returns its subject
func (m *MockTokenService) SubjectOf(token string) (string, error) {
	claims, err := m.decode(token)
	if err != nil {
		return "", err
	}
	if m.Now().Unix() >= claims.ExpiresAt {
		return "", domain.ErrTokenExpired
	}
	return claims.Subject, nil
}

// Validate checks subject and expiry of a decoded token
func (m *MockTokenService) Validate(token, expectedSubject string) error {
	subject, err := m.SubjectOf(token)
	if err != nil {
		return err
	}
	if subject != expectedSubject {
		return domain.ErrTokenInvalid
	}
	return nil
}

func (m *MockTokenService) encode(claims mockClaims) (string, error) {
	data, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("failed to marshal claims: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

func (m *MockTokenService) decode(token string) (*mockClaims, error) {
	data, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	var claims mockClaims
	if err := json.Unmarshal(data, &claims); err != nil || claims.Subject == "" {
		return nil, domain.ErrTokenInvalid
	}
	return &claims, nil
}
