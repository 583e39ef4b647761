package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/custodia-labs/bank-core/internal/core/domain"
	"github.com/custodia-labs/bank-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.CustomerStore = (*CustomerCache)(nil)

const (
	customerEmailPrefix = "customer:email:"

	// DefaultCustomerTTL bounds how long a cached customer may be served
	DefaultCustomerTTL = 5 * time.Minute
)

// CustomerCache is a read-through cache in front of a CustomerStore.
// Redis failures are logged and fall back to the underlying store.
type CustomerCache struct {
	store  driven.CustomerStore
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// cachedCustomer carries the fields domain.Customer hides from JSON.
// The bcrypt hash is included so sign-in can be served from Redis; every
// entry is written with the cache TTL.
type cachedCustomer struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Phone        string    `json:"phone"`
	DateOfBirth  string    `json:"date_of_birth"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewCustomerCache wraps store with a Redis cache.
// A non-positive ttl selects DefaultCustomerTTL.
func NewCustomerCache(store driven.CustomerStore, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CustomerCache {
	if ttl <= 0 {
		ttl = DefaultCustomerTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CustomerCache{store: store, client: client, ttl: ttl, logger: logger}
}

// Save writes through to the store, then caches the stored record
func (c *CustomerCache) Save(ctx context.Context, customer *domain.Customer) error {
	if err := c.store.Save(ctx, customer); err != nil {
		return err
	}
	c.put(ctx, customer)
	return nil
}

// GetByEmail serves from Redis when possible, otherwise loads and caches
func (c *CustomerCache) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	if customer, ok := c.get(ctx, email); ok {
		return customer, nil
	}

	customer, err := c.store.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	c.put(ctx, customer)
	return customer, nil
}

// ExistsByEmail answers from the cache on a hit and asks the store otherwise
func (c *CustomerCache) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	n, err := c.client.Exists(ctx, customerEmailPrefix+email).Result()
	if err != nil {
		c.logger.Warn("customer cache exists failed", "error", err)
	} else if n > 0 {
		return true, nil
	}
	return c.store.ExistsByEmail(ctx, email)
}

// Invalidate drops a cached customer
func (c *CustomerCache) Invalidate(ctx context.Context, email string) error {
	if err := c.client.Del(ctx, customerEmailPrefix+email).Err(); err != nil {
		return fmt.Errorf("failed to invalidate customer: %w", err)
	}
	return nil
}

func (c *CustomerCache) get(ctx context.Context, email string) (*domain.Customer, bool) {
	data, err := c.client.Get(ctx, customerEmailPrefix+email).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("customer cache read failed", "error", err)
		return nil, false
	}

	var cached cachedCustomer
	if err := json.Unmarshal(data, &cached); err != nil {
		c.logger.Warn("customer cache entry corrupt", "error", err)
		_ = c.client.Del(ctx, customerEmailPrefix+email).Err()
		return nil, false
	}

	customer := &domain.Customer{
		ID:           cached.ID,
		Name:         cached.Name,
		Email:        cached.Email,
		PasswordHash: cached.PasswordHash,
		Phone:        cached.Phone,
		CreatedAt:    cached.CreatedAt,
	}
	if cached.DateOfBirth != "" {
		dob, err := domain.ParseDate(cached.DateOfBirth)
		if err != nil {
			return nil, false
		}
		customer.DateOfBirth = dob
	}
	return customer, true
}

func (c *CustomerCache) put(ctx context.Context, customer *domain.Customer) {
	data, err := json.Marshal(cachedCustomer{
		ID:           customer.ID,
		Name:         customer.Name,
		Email:        customer.Email,
		PasswordHash: customer.PasswordHash,
		Phone:        customer.Phone,
		DateOfBirth:  customer.DateOfBirth.String(),
		CreatedAt:    customer.CreatedAt,
	})
	if err != nil {
		c.logger.Warn("customer cache encode failed", "error", err)
		return
	}

	if err := c.client.Set(ctx, customerEmailPrefix+customer.Email, data, c.ttl).Err(); err != nil {
		c.logger.Warn("customer cache write failed", "error", err)
	}
}
