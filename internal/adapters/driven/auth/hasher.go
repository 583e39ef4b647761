package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/custodia-labs/bank-core/internal/core/ports/driven"
)

// Ensure Hasher implements PasswordHasher
var _ driven.PasswordHasher = (*Hasher)(nil)

// Hasher hashes passwords with bcrypt
type Hasher struct {
	cost int
}

// NewHasher creates a bcrypt hasher with the default cost
func NewHasher() *Hasher {
	return &Hasher{cost: bcrypt.DefaultCost}
}

// NewHasherWithCost creates a bcrypt hasher with a custom cost.
// Out-of-range costs fall back to bcrypt.DefaultCost.
func NewHasherWithCost(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// HashPassword generates a salted bcrypt hash from a plaintext password
func (h *Hasher) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword checks if a password matches a bcrypt hash
func (h *Hasher) VerifyPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
