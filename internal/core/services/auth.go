package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/custodia-labs/bank-core/internal/core/domain"
	"github.com/custodia-labs/bank-core/internal/core/ports/driven"
	"github.com/custodia-labs/bank-core/internal/core/ports/driving"
)

// Ensure authService implements AuthService
var _ driving.AuthService = (*authService)(nil)

// authService implements the AuthService interface
type authService struct {
	customers driven.CustomerStore
	hasher    driven.PasswordHasher
	tokens    driven.TokenService
	logger    *slog.Logger
	now       func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(
	customers driven.CustomerStore,
	hasher driven.PasswordHasher,
	tokens driven.TokenService,
	logger *slog.Logger,
) driving.AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &authService{
		customers: customers,
		hasher:    hasher,
		tokens:    tokens,
		logger:    logger,
		now:       time.Now,
	}
}

// SignUp validates the request and stores a new customer with a hashed password
func (s *authService) SignUp(ctx context.Context, req domain.SignUpRequest) (*domain.Customer, error) {
	if err := req.Validate(s.now()); err != nil {
		return nil, err
	}

	exists, err := s.customers.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, s.registrationFailed(fmt.Errorf("check email: %w", err))
	}
	if exists {
		return nil, domain.ErrAlreadyExists
	}

	dob, err := domain.ParseDate(req.DateOfBirth)
	if err != nil {
		return nil, s.registrationFailed(err)
	}

	hash, err := s.hasher.HashPassword(req.Password)
	if err != nil {
		return nil, s.registrationFailed(err)
	}

	customer := &domain.Customer{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Phone:        req.Phone,
		DateOfBirth:  dob,
		CreatedAt:    s.now(),
	}

	if err := s.customers.Save(ctx, customer); err != nil {
		// Lost a race with a concurrent signup for the same email
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, domain.ErrAlreadyExists
		}
		return nil, s.registrationFailed(fmt.Errorf("save customer: %w", err))
	}

	s.logger.Info("customer registered", "customer_id", customer.ID)
	return customer, nil
}

func (s *authService) registrationFailed(err error) error {
	s.logger.Error("registration failed", "error", err)
	return err
}

// SignIn verifies credentials and issues a session token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *authService) SignIn(ctx context.Context, req domain.SignInRequest) (*domain.AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	customer, err := s.customers.GetByEmail(ctx, req.Email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		s.logger.Error("sign-in lookup failed", "error", err)
		return nil, fmt.Errorf("load customer: %w", err)
	}

	if !s.hasher.VerifyPassword(req.Password, customer.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(customer.Email)
	if err != nil {
		s.logger.Error("token issue failed", "customer_id", customer.ID, "error", err)
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &domain.AuthResponse{
		Token: token,
		User:  customer,
	}, nil
}

// Authenticate resolves a bearer token into an AuthContext.
// Token errors are returned as domain.ErrTokenExpired or domain.ErrTokenInvalid.
func (s *authService) Authenticate(ctx context.Context, token string) (*domain.AuthContext, error) {
	subject, err := s.tokens.SubjectOf(token)
	if err != nil {
		return nil, err
	}

	customer, err := s.customers.GetByEmail(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("resolve token subject: %w", err)
	}

	if err := s.tokens.Validate(token, customer.Email); err != nil {
		return nil, err
	}

	return domain.NewAuthContext(customer), nil
}

// Me returns the current customer's record
func (s *authService) Me(ctx context.Context, authCtx *domain.AuthContext) (*domain.Customer, error) {
	if authCtx == nil {
		return nil, domain.ErrUnauthorized
	}
	return s.customers.GetByEmail(ctx, authCtx.Email)
}
