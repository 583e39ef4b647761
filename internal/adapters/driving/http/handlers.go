package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/swaggo/swag"

	"github.com/custodia-labs/bank-core/docs"
	"github.com/custodia-labs/bank-core/internal/core/domain"
)

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"Invalid JWT token"`
}

// MessageResponse is returned by endpoints that only confirm an action
// @Description Confirmation message
type MessageResponse struct {
	Message string `json:"message" example:"User registered successfully"`
}

// ValidationErrorResponse lists rejected signup fields
// @Description Field validation failure
type ValidationErrorResponse struct {
	Status  string            `json:"status" example:"error"`
	Message string            `json:"message" example:"Validation failed"`
	Errors  map[string]string `json:"errors"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// VersionResponse represents the API version response
// @Description API version response
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Pings PostgreSQL and, when configured, Redis
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if s.db != nil {
		if err := s.db.Ping(ctx); err != nil {
			s.logger.Warn("readiness: database unreachable", "error", err)
			writeError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	if s.redisClient != nil {
		if err := s.redisClient.Ping(ctx); err != nil {
			s.logger.Warn("readiness: redis unreachable", "error", err)
			writeError(w, http.StatusServiceUnavailable, "redis unavailable")
			return
		}
	}

	writeJSON(w, http.StatusOK, StatusResponse{Status: "ready"})
}

// handleVersion godoc
// @Summary      Get API version
// @Description  Returns the current API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, VersionResponse{Version: s.version})
}

func (s *Server) handleSwaggerDoc(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "api documentation unavailable")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}

// Auth endpoints

// handleSignIn godoc
// @Summary      Customer sign-in
// @Description  Authenticate with email and password to receive a JWT token
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.SignInRequest  true  "Credentials"
// @Success      200      {object}  domain.AuthResponse
// @Failure      401      {object}  ErrorResponse  "Invalid email or password"
// @Failure      500      {object}  ErrorResponse  "Error during authentication"
// @Router       /api/auth/signin [post]
func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req domain.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.authService.SignIn(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		writeError(w, http.StatusInternalServerError, "Error during authentication")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleSignUp godoc
// @Summary      Customer registration
// @Description  Register a new customer. No token is issued; sign in afterwards.
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.SignUpRequest  true  "Registration"
// @Success      200      {object}  MessageResponse
// @Failure      400      {object}  ValidationErrorResponse  "Validation failed"
// @Failure      400      {object}  ErrorResponse  "Email is already in use"
// @Failure      500      {object}  ErrorResponse  "Error during registration"
// @Router       /api/auth/signup [post]
func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req domain.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	_, err := s.authService.SignUp(r.Context(), req)
	if err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			writeJSON(w, http.StatusBadRequest, ValidationErrorResponse{
				Status:  "error",
				Message: "Validation failed",
				Errors:  verr.Fields,
			})
		case errors.Is(err, domain.ErrAlreadyExists):
			writeError(w, http.StatusBadRequest, "Email is already in use")
		default:
			writeError(w, http.StatusInternalServerError, "Error during registration: "+err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "User registered successfully"})
}

// Customer endpoints

// handleGetMe godoc
// @Summary      Get current customer
// @Description  Returns the signed-in customer's profile
// @Tags         Customers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Customer
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Router       /api/me [get]
func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	customer, err := s.authService.Me(r.Context(), GetAuthContext(r.Context()))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnauthorized):
			writeError(w, http.StatusUnauthorized, msgUnauthorized)
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "customer not found")
		default:
			s.logger.Error("load current customer failed", "error", err)
			writeError(w, http.StatusInternalServerError, msgInternalError)
		}
		return
	}

	writeJSON(w, http.StatusOK, customer)
}

// Helper functions

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
