package http

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/custodia-labs/bank-core/internal/core/domain"
	"github.com/custodia-labs/bank-core/internal/core/ports/driving"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string
	logger     *slog.Logger

	authMiddleware *AuthMiddleware
	allowedOrigins []string

	// Services
	authService        driving.AuthService
	accountService     driving.EntityService[*domain.Account]
	adminService       driving.EntityService[*domain.Admin]
	branchService      driving.EntityService[*domain.Branch]
	loanService        driving.EntityService[*domain.Loan]
	transactionService driving.EntityService[*domain.Transaction]

	// Infrastructure
	db          Pinger // PostgreSQL health check
	redisClient Pinger // Redis health check (optional)
}

// Config holds server configuration
type Config struct {
	Host           string
	Port           int
	Version        string
	AllowedOrigins []string
	Logger         *slog.Logger
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:           "0.0.0.0",
		Port:           8080,
		Version:        "dev",
		AllowedOrigins: []string{"*"},
	}
}

// Services groups the driving ports the server exposes
type Services struct {
	Auth         driving.AuthService
	Accounts     driving.EntityService[*domain.Account]
	Admins       driving.EntityService[*domain.Admin]
	Branches     driving.EntityService[*domain.Branch]
	Loans        driving.EntityService[*domain.Loan]
	Transactions driving.EntityService[*domain.Transaction]
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	services Services,
	db Pinger,
	redisClient Pinger, // can be nil
) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		router:             http.NewServeMux(),
		version:            cfg.Version,
		logger:             logger,
		allowedOrigins:     cfg.AllowedOrigins,
		authService:        services.Auth,
		accountService:     services.Accounts,
		adminService:       services.Admins,
		branchService:      services.Branches,
		loanService:        services.Loans,
		transactionService: services.Transactions,
		db:                 db,
		redisClient:        redisClient,
	}
	s.authMiddleware = NewAuthMiddleware(s.authService, logger)

	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the router wrapped in the global middleware chain.
// The auth gate runs before every route; recovered panics are still access-logged.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.router
	h = s.authMiddleware.Authenticate(h)
	h = NewCORSMiddleware(s.allowedOrigins).Handler(h)
	h = NewRecoveryMiddleware().Handler(h)
	h = NewLoggingMiddleware().Handler(h)
	return h
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	requireCustomer := s.authMiddleware.RequireCustomer

	// Health endpoints
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)
	s.router.HandleFunc("GET /swagger/doc.json", s.handleSwaggerDoc)

	// Auth endpoints (public)
	s.router.HandleFunc("POST /api/auth/signin", s.handleSignIn)
	s.router.HandleFunc("POST /api/auth/signup", s.handleSignUp)

	// Customer endpoints
	s.router.Handle("GET /api/me", requireCustomer(http.HandlerFunc(s.handleGetMe)))

	// Back-office records
	registerEntityRoutes(s.router, "accounts", "Account", s.accountService, newAccount, requireCustomer)
	registerEntityRoutes(s.router, "admins", "Admin", s.adminService, newAdmin, requireCustomer)
	registerEntityRoutes(s.router, "branches", "Branch", s.branchService, newBranch, requireCustomer)
	registerEntityRoutes(s.router, "loans", "Loan", s.loanService, newLoan, requireCustomer)
	registerEntityRoutes(s.router, "transactions", "Transaction", s.transactionService, newTransaction, requireCustomer)
}

// Start starts the HTTP server with graceful shutdown.
// It returns nil once the server is stopped by a signal or by Stop.
func (s *Server) Start() error {
	// Channel to listen for OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			log.Println("Server stopped")
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.Stop(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
