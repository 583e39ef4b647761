package http

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/custodia-labs/bank-core/internal/core/domain"
)

// Mock services for testing

type mockAuthService struct {
	signUpFn       func(ctx context.Context, req domain.SignUpRequest) (*domain.Customer, error)
	signInFn       func(ctx context.Context, req domain.SignInRequest) (*domain.AuthResponse, error)
	authenticateFn func(ctx context.Context, token string) (*domain.AuthContext, error)
	meFn           func(ctx context.Context, authCtx *domain.AuthContext) (*domain.Customer, error)
}

func (m *mockAuthService) SignUp(ctx context.Context, req domain.SignUpRequest) (*domain.Customer, error) {
	if m.signUpFn != nil {
		return m.signUpFn(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAuthService) SignIn(ctx context.Context, req domain.SignInRequest) (*domain.AuthResponse, error) {
	if m.signInFn != nil {
		return m.signInFn(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAuthService) Authenticate(ctx context.Context, token string) (*domain.AuthContext, error) {
	if m.authenticateFn != nil {
		return m.authenticateFn(ctx, token)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAuthService) Me(ctx context.Context, authCtx *domain.AuthContext) (*domain.Customer, error) {
	if m.meFn != nil {
		return m.meFn(ctx, authCtx)
	}
	return nil, errors.New("not implemented")
}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(ctx context.Context) error {
	return m.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// tokenAuth accepts "good-token" for Jane and maps a few sentinel tokens to errors
func tokenAuth() *mockAuthService {
	return &mockAuthService{
		authenticateFn: func(ctx context.Context, token string) (*domain.AuthContext, error) {
			switch token {
			case "good-token":
				return &domain.AuthContext{CustomerID: 1, Email: "jane@example.com", Name: "Jane Doe"}, nil
			case "expired-token":
				return nil, domain.ErrTokenExpired
			case "boom-token":
				return nil, errors.New("db down")
			default:
				return nil, domain.ErrTokenInvalid
			}
		},
	}
}
