package driving

import (
	"context"

	"github.com/custodia-labs/bank-core/internal/core/domain"
)

// AuthService handles customer registration and authentication
type AuthService interface {
	// SignUp validates and registers a new customer. No token is issued.
	SignUp(ctx context.Context, req domain.SignUpRequest) (*domain.Customer, error)

	// SignIn verifies credentials and issues a session token
	SignIn(ctx context.Context, req domain.SignInRequest) (*domain.AuthResponse, error)

	// Authenticate resolves a bearer token into the caller's identity
	Authenticate(ctx context.Context, token string) (*domain.AuthContext, error)

	// Me returns the customer behind an auth context
	Me(ctx context.Context, authCtx *domain.AuthContext) (*domain.Customer, error)
}
