package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/custodia-labs/bank-core/internal/core/domain"
	"github.com/custodia-labs/bank-core/internal/core/ports/driven/mocks"
	"github.com/custodia-labs/bank-core/internal/core/services"
)

// newTestServer wires a Server around authService with in-memory entity stores
func newTestServer(authService *mockAuthService, db, redis Pinger) *Server {
	cfg := DefaultConfig()
	cfg.Version = "1.2.3"
	cfg.Logger = discardLogger()

	return NewServer(cfg, Services{
		Auth:         authService,
		Accounts:     services.NewAccountService(mocks.NewMockEntityStore[*domain.Account]()),
		Admins:       services.NewAdminService(mocks.NewMockEntityStore[*domain.Admin](), mocks.NewMockPasswordHasher()),
		Branches:     services.NewBranchService(mocks.NewMockEntityStore[*domain.Branch]()),
		Loans:        services.NewLoanService(mocks.NewMockEntityStore[*domain.Loan]()),
		Transactions: services.NewTransactionService(mocks.NewMockEntityStore[*domain.Transaction]()),
	}, db, redis)
}

func doRequest(s *Server, method, path, body, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	return body.Error
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(tokenAuth(), nil, nil)

	rr := doRequest(s, "GET", "/health", "", "")

	if rr.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %s", ct)
	}
}

func TestHandleReady(t *testing.T) {
	tests := []struct {
		name       string
		db         Pinger
		redis      Pinger
		wantStatus int
	}{
		{"all up", &mockPinger{}, &mockPinger{}, http.StatusOK},
		{"no redis configured", &mockPinger{}, nil, http.StatusOK},
		{"database down", &mockPinger{err: errors.New("down")}, nil, http.StatusServiceUnavailable},
		{"redis down", &mockPinger{}, &mockPinger{err: errors.New("down")}, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(tokenAuth(), tt.db, tt.redis)

			rr := doRequest(s, "GET", "/ready", "", "")

			if rr.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rr.Code)
			}
		})
	}
}

func TestHandleVersion(t *testing.T) {
	s := newTestServer(tokenAuth(), nil, nil)

	rr := doRequest(s, "GET", "/version", "", "")

	var resp VersionResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Version != "1.2.3" {
		t.Errorf("expected version 1.2.3, got %s", resp.Version)
	}
}

func TestHandleSwaggerDoc(t *testing.T) {
	s := newTestServer(tokenAuth(), nil, nil)

	rr := doRequest(s, "GET", "/swagger/doc.json", "", "")

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var doc map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&doc); err != nil {
		t.Fatalf("doc is not valid JSON: %v", err)
	}
	paths, ok := doc["paths"].(map[string]any)
	if !ok {
		t.Fatal("expected paths object")
	}
	for _, p := range []string{"/api/auth/signin", "/api/auth/signup", "/api/me"} {
		if _, ok := paths[p]; !ok {
			t.Errorf("expected path %s in doc", p)
		}
	}
}

func TestHandleSignIn(t *testing.T) {
	customer := &domain.Customer{ID: 1, Name: "Jane Doe", Email: "jane@example.com", PasswordHash: "secret-hash"}

	tests := []struct {
		name       string
		body       string
		signInErr  error
		wantStatus int
		wantError  string
	}{
		{"success", `{"email":"jane@example.com","password":"secret1"}`, nil, http.StatusOK, ""},
		{"invalid credentials", `{"email":"jane@example.com","password":"wrong"}`, domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
		{"store failure", `{"email":"jane@example.com","password":"secret1"}`, errors.New("db down"), http.StatusInternalServerError, "Error during authentication"},
		{"malformed body", `{"email":`, nil, http.StatusBadRequest, "invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authService := tokenAuth()
			authService.signInFn = func(ctx context.Context, req domain.SignInRequest) (*domain.AuthResponse, error) {
				if tt.signInErr != nil {
					return nil, tt.signInErr
				}
				return &domain.AuthResponse{Token: "signed.jwt.token", User: customer}, nil
			}
			s := newTestServer(authService, nil, nil)

			rr := doRequest(s, "POST", "/api/auth/signin", tt.body, "")

			if rr.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rr.Code)
			}
			if tt.wantError != "" {
				if got := decodeError(t, rr); got != tt.wantError {
					t.Errorf("expected error %q, got %q", tt.wantError, got)
				}
				return
			}

			raw := rr.Body.String()
			if strings.Contains(raw, "secret-hash") || strings.Contains(raw, "password") {
				t.Errorf("response must not expose password data: %s", raw)
			}

			var resp struct {
				Token string `json:"token"`
				User  struct {
					Email string `json:"email"`
				} `json:"user"`
			}
			if err := json.Unmarshal([]byte(raw), &resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Token != "signed.jwt.token" || resp.User.Email != "jane@example.com" {
				t.Errorf("unexpected response %+v", resp)
			}
		})
	}
}

func TestHandleSignUp(t *testing.T) {
	body := `{"name":"Jane Doe","email":"jane@example.com","password":"secret1","phone":"+15551234567","date_of_birth":"1990-01-01"}`

	t.Run("success", func(t *testing.T) {
		authService := tokenAuth()
		var got domain.SignUpRequest
		authService.signUpFn = func(ctx context.Context, req domain.SignUpRequest) (*domain.Customer, error) {
			got = req
			return &domain.Customer{ID: 1, Email: req.Email}, nil
		}
		s := newTestServer(authService, nil, nil)

		rr := doRequest(s, "POST", "/api/auth/signup", body, "")

		if rr.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rr.Code)
		}
		var resp MessageResponse
		if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Message != "User registered successfully" {
			t.Errorf("unexpected message %q", resp.Message)
		}
		if got.DateOfBirth != "1990-01-01" || got.Phone != "+15551234567" {
			t.Errorf("request not decoded: %+v", got)
		}
	})

	t.Run("validation failure", func(t *testing.T) {
		authService := tokenAuth()
		authService.signUpFn = func(ctx context.Context, req domain.SignUpRequest) (*domain.Customer, error) {
			return nil, domain.NewValidationError(map[string]string{
				"email":    "Please provide a valid email address",
				"password": "Password must be at least 6 characters long",
			})
		}
		s := newTestServer(authService, nil, nil)

		rr := doRequest(s, "POST", "/api/auth/signup", body, "")

		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rr.Code)
		}
		var resp ValidationErrorResponse
		if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Status != "error" || resp.Message != "Validation failed" {
			t.Errorf("unexpected envelope %+v", resp)
		}
		if resp.Errors["email"] != "Please provide a valid email address" {
			t.Errorf("missing email error: %v", resp.Errors)
		}
		if _, ok := resp.Errors["password"]; !ok {
			t.Errorf("missing password error: %v", resp.Errors)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		authService := tokenAuth()
		authService.signUpFn = func(ctx context.Context, req domain.SignUpRequest) (*domain.Customer, error) {
			return nil, domain.ErrAlreadyExists
		}
		s := newTestServer(authService, nil, nil)

		rr := doRequest(s, "POST", "/api/auth/signup", body, "")

		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rr.Code)
		}
		if got := decodeError(t, rr); got != "Email is already in use" {
			t.Errorf("unexpected error %q", got)
		}
	})

	t.Run("unexpected failure", func(t *testing.T) {
		authService := tokenAuth()
		authService.signUpFn = func(ctx context.Context, req domain.SignUpRequest) (*domain.Customer, error) {
			return nil, fmt.Errorf("save customer: %w", errors.New("connection refused"))
		}
		s := newTestServer(authService, nil, nil)

		rr := doRequest(s, "POST", "/api/auth/signup", body, "")

		if rr.Code != http.StatusInternalServerError {
			t.Fatalf("expected status 500, got %d", rr.Code)
		}
		if got := decodeError(t, rr); got != "Error during registration: save customer: connection refused" {
			t.Errorf("unexpected error %q", got)
		}
	})
}

func TestHandleGetMe(t *testing.T) {
	authService := tokenAuth()
	authService.meFn = func(ctx context.Context, authCtx *domain.AuthContext) (*domain.Customer, error) {
		return &domain.Customer{ID: authCtx.CustomerID, Name: authCtx.Name, Email: authCtx.Email}, nil
	}
	s := newTestServer(authService, nil, nil)

	t.Run("authenticated", func(t *testing.T) {
		rr := doRequest(s, "GET", "/api/me", "", "good-token")

		if rr.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rr.Code)
		}
		var customer domain.Customer
		if err := json.NewDecoder(rr.Body).Decode(&customer); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if customer.Email != "jane@example.com" {
			t.Errorf("expected jane@example.com, got %s", customer.Email)
		}
	})

	t.Run("anonymous", func(t *testing.T) {
		rr := doRequest(s, "GET", "/api/me", "", "")
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", rr.Code)
		}
	})

	t.Run("expired token never reaches handler", func(t *testing.T) {
		called := false
		authService.meFn = func(ctx context.Context, authCtx *domain.AuthContext) (*domain.Customer, error) {
			called = true
			return nil, nil
		}

		rr := doRequest(s, "GET", "/api/me", "", "expired-token")

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", rr.Code)
		}
		if got := decodeError(t, rr); got != "JWT token is expired" {
			t.Errorf("unexpected error %q", got)
		}
		if called {
			t.Error("handler must not run for an expired token")
		}
	})
}

func TestPublicRoutes_WithBadTokenAreHalted(t *testing.T) {
	s := newTestServer(tokenAuth(), nil, nil)

	rr := doRequest(s, "GET", "/health", "", "forged-token")

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected gate to halt with 401, got %d", rr.Code)
	}
}
