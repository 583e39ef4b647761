package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/custodia-labs/bank-core/internal/core/domain"
	"github.com/custodia-labs/bank-core/internal/core/ports/driving"
)

func newAccount() *domain.Account         { return &domain.Account{} }
func newAdmin() *domain.Admin             { return &domain.Admin{} }
func newBranch() *domain.Branch           { return &domain.Branch{} }
func newLoan() *domain.Loan               { return &domain.Loan{} }
func newTransaction() *domain.Transaction { return &domain.Transaction{} }

// registerEntityRoutes mounts list/get/create/delete for one collection under /api/{plural}
func registerEntityRoutes[T domain.Entity](
	mux *http.ServeMux,
	plural, name string,
	svc driving.EntityService[T],
	newEntity func() T,
	guard func(http.Handler) http.Handler,
) {
	h := &entityHandler[T]{name: name, svc: svc, newEntity: newEntity}
	base := "/api/" + plural

	mux.Handle("GET "+base, guard(http.HandlerFunc(h.list)))
	mux.Handle("POST "+base, guard(http.HandlerFunc(h.create)))
	mux.Handle("GET "+base+"/{id}", guard(http.HandlerFunc(h.get)))
	mux.Handle("DELETE "+base+"/{id}", guard(http.HandlerFunc(h.delete)))
}

type entityHandler[T domain.Entity] struct {
	name      string
	svc       driving.EntityService[T]
	newEntity func() T
}

func (h *entityHandler[T]) list(w http.ResponseWriter, r *http.Request) {
	entities, err := h.svc.List(r.Context())
	if err != nil {
		writeEntityError(w, h.name, err)
		return
	}
	writeJSON(w, http.StatusOK, entities)
}

func (h *entityHandler[T]) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	entity, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeEntityError(w, h.name, err)
		return
	}
	writeJSON(w, http.StatusOK, entity)
}

func (h *entityHandler[T]) create(w http.ResponseWriter, r *http.Request) {
	entity := h.newEntity()
	if err := json.NewDecoder(r.Body).Decode(entity); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	// Clients cannot choose the ID
	entity.SetID(0)

	created, err := h.svc.Create(r.Context(), entity)
	if err != nil {
		writeEntityError(w, h.name, err)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (h *entityHandler[T]) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeEntityError(w, h.name, err)
		return
	}
	writeJSON(w, http.StatusOK, StatusResponse{Status: "deleted"})
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func writeEntityError(w http.ResponseWriter, name string, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Status:  "error",
			Message: "Validation failed",
			Errors:  verr.Fields,
		})
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, fmt.Sprintf("%s not found", name))
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusBadRequest, fmt.Sprintf("%s already exists", name))
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, msgInternalError)
	}
}
