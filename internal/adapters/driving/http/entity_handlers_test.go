package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/custodia-labs/bank-core/internal/core/domain"
)

func TestEntityRoutes_RequireCustomer(t *testing.T) {
	s := newTestServer(tokenAuth(), nil, nil)

	for _, path := range []string{"/api/accounts", "/api/admins", "/api/branches", "/api/loans", "/api/transactions", "/api/loans/1"} {
		t.Run(path, func(t *testing.T) {
			rr := doRequest(s, "GET", path, "", "")
			if rr.Code != http.StatusUnauthorized {
				t.Errorf("expected status 401, got %d", rr.Code)
			}
		})
	}
}

func TestEntityRoutes_Lifecycle(t *testing.T) {
	s := newTestServer(tokenAuth(), nil, nil)

	rr := doRequest(s, "POST", "/api/branches", `{"id":99,"name":"Downtown","location":"Main St"}`, "good-token")
	if rr.Code != http.StatusOK {
		t.Fatalf("create: expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var created domain.Branch
	if err := json.NewDecoder(rr.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode branch: %v", err)
	}
	if created.ID != 1 {
		t.Errorf("expected store-assigned ID 1, got %d", created.ID)
	}

	rr = doRequest(s, "GET", "/api/branches/1", "", "good-token")
	if rr.Code != http.StatusOK {
		t.Fatalf("get: expected status 200, got %d", rr.Code)
	}

	rr = doRequest(s, "GET", "/api/branches", "", "good-token")
	var list []domain.Branch
	if err := json.NewDecoder(rr.Body).Decode(&list); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Downtown" {
		t.Errorf("unexpected list %+v", list)
	}

	rr = doRequest(s, "DELETE", "/api/branches/1", "", "good-token")
	if rr.Code != http.StatusOK {
		t.Fatalf("delete: expected status 200, got %d", rr.Code)
	}

	rr = doRequest(s, "GET", "/api/branches/1", "", "good-token")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("get after delete: expected status 404, got %d", rr.Code)
	}
	if got := decodeError(t, rr); got != "Branch not found" {
		t.Errorf("unexpected error %q", got)
	}

	rr = doRequest(s, "DELETE", "/api/branches/1", "", "good-token")
	if rr.Code != http.StatusOK {
		t.Errorf("deleting a missing id: expected status 200, got %d", rr.Code)
	}
}

func TestEntityRoutes_EmptyListIsArray(t *testing.T) {
	s := newTestServer(tokenAuth(), nil, nil)

	rr := doRequest(s, "GET", "/api/loans", "", "good-token")

	if strings.TrimSpace(rr.Body.String()) != "[]" {
		t.Errorf("expected empty JSON array, got %s", rr.Body.String())
	}
}

func TestEntityRoutes_LoanDefaults(t *testing.T) {
	s := newTestServer(tokenAuth(), nil, nil)

	rr := doRequest(s, "POST", "/api/loans", `{"amount":5000,"interest_rate":3.5,"customer_id":1}`, "good-token")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var loan domain.Loan
	if err := json.NewDecoder(rr.Body).Decode(&loan); err != nil {
		t.Fatalf("failed to decode loan: %v", err)
	}
	if loan.Status != domain.StatusPending {
		t.Errorf("expected PENDING, got %s", loan.Status)
	}
	if loan.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
}

func TestEntityRoutes_AdminPasswordNotReturned(t *testing.T) {
	s := newTestServer(tokenAuth(), nil, nil)

	rr := doRequest(s, "POST", "/api/admins", `{"name":"Root","email":"root@bank.test","password":"s3cret"}`, "good-token")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if body := rr.Body.String(); strings.Contains(body, "s3cret") || strings.Contains(body, "password") {
		t.Errorf("admin response leaks password data: %s", body)
	}
}

func TestEntityRoutes_BadRequests(t *testing.T) {
	s := newTestServer(tokenAuth(), nil, nil)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"non-numeric id", "GET", "/api/accounts/abc", ""},
		{"zero id", "DELETE", "/api/accounts/0", ""},
		{"malformed body", "POST", "/api/accounts", `{"account_type":`},
		{"missing required field", "POST", "/api/accounts", `{"balance":10}`},
		{"null body", "POST", "/api/transactions", `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(s, tt.method, tt.path, tt.body, "good-token")
			if rr.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d: %s", rr.Code, rr.Body.String())
			}
		})
	}
}
