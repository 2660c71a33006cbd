package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"pennywise/internal/middleware/ratelimit"
	"pennywise/internal/services"
	"pennywise/internal/storage"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return NewServer(":0", Deps{
		Store:        store,
		Transactions: services.NewTransactionService(store),
		Budgets:      services.NewBudgetService(store),
		Goals:        services.NewGoalService(store),
		Reports:      services.NewReportsService(store),
		Sync:         services.NewSyncService(store, nil),
	})
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, into any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), into); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t)

	if w := doJSON(t, s, http.MethodGet, "/healthz", nil); w.Code != http.StatusOK {
		t.Errorf("healthz = %d, want 200", w.Code)
	}
	if w := doJSON(t, s, http.MethodGet, "/readyz", nil); w.Code != http.StatusOK {
		t.Errorf("readyz = %d, want 200", w.Code)
	}
}

func TestCreateTransactionRoundsAmount(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/transactions", map[string]any{
		"user_id":  "user-1",
		"title":    "Groceries",
		"amount":   200.005,
		"category": "food",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create = %d: %s", w.Code, w.Body.String())
	}

	var created struct {
		ID     int64   `json:"id"`
		Amount float64 `json:"amount"`
	}
	decode(t, w, &created)
	if created.ID == 0 {
		t.Error("response should carry the generated id")
	}
	if created.Amount != 200.01 {
		t.Errorf("amount = %v, want 200.01 (half-up)", created.Amount)
	}
}

func TestCreateTransactionValidation(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{name: "missing amount", body: map[string]any{"user_id": "u", "title": "x", "category": "food"}},
		{name: "missing title", body: map[string]any{"user_id": "u", "amount": 1, "category": "food"}},
		{name: "amount not a number", body: map[string]any{"user_id": "u", "title": "x", "amount": "abc", "category": "food"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, s, http.MethodPost, "/api/transactions", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400: %s", w.Code, w.Body.String())
			}
			var resp map[string]any
			decode(t, w, &resp)
			if resp["message"] == "" {
				t.Error("error body should carry a message")
			}
		})
	}
}

func TestDeleteTransactionOwnerScoped(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/transactions", map[string]any{
		"user_id": "user-1", "title": "Coffee", "amount": -3.5, "category": "food",
	})
	var created struct {
		ID int64 `json:"id"`
	}
	decode(t, w, &created)

	w = doJSON(t, s, http.MethodDelete, fmt.Sprintf("/api/transactions/%d", created.ID),
		map[string]any{"user_id": "someone-else"})
	if w.Code != http.StatusNotFound {
		t.Errorf("cross-owner delete = %d, want 404", w.Code)
	}

	w = doJSON(t, s, http.MethodDelete, fmt.Sprintf("/api/transactions/%d", created.ID),
		map[string]any{"user_id": "user-1"})
	if w.Code != http.StatusOK {
		t.Errorf("owner delete = %d, want 200: %s", w.Code, w.Body.String())
	}
}

func TestBudgetDuplicateCategory(t *testing.T) {
	s := newTestServer(t)

	body := map[string]any{"user_id": "user-1", "category": "food", "amount": 300}
	if w := doJSON(t, s, http.MethodPost, "/api/budgets", body); w.Code != http.StatusCreated {
		t.Fatalf("first create = %d: %s", w.Code, w.Body.String())
	}

	w := doJSON(t, s, http.MethodPost, "/api/budgets", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate create = %d, want 400", w.Code)
	}
	var resp map[string]string
	decode(t, w, &resp)
	if resp["message"] != "Budget already exists for this category" {
		t.Errorf("message = %q", resp["message"])
	}
}

func TestUpdateBudgetPartialBody(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/budgets", map[string]any{
		"user_id": "user-1", "category": "food", "amount": 300, "period": "weekly",
	})
	var created struct {
		ID int64 `json:"id"`
	}
	decode(t, w, &created)

	w = doJSON(t, s, http.MethodPut, fmt.Sprintf("/api/budgets/%d", created.ID),
		map[string]any{"user_id": "user-1", "amount": 450})
	if w.Code != http.StatusOK {
		t.Fatalf("update = %d: %s", w.Code, w.Body.String())
	}
	var updated struct {
		Amount   float64 `json:"amount"`
		Category string  `json:"category"`
		Period   string  `json:"period"`
	}
	decode(t, w, &updated)
	if updated.Amount != 450 || updated.Category != "food" || updated.Period != "weekly" {
		t.Errorf("partial update drifted: %+v", updated)
	}
}

func TestAddMoneyEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/goals", map[string]any{
		"user_id": "user-1", "title": "Vacation", "target_amount": 1000,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create goal = %d: %s", w.Code, w.Body.String())
	}
	var created struct {
		ID int64 `json:"id"`
	}
	decode(t, w, &created)

	for i := 0; i < 2; i++ {
		w = doJSON(t, s, http.MethodPatch, fmt.Sprintf("/api/goals/%d/add-money", created.ID),
			map[string]any{"user_id": "user-1", "amount": 10})
		if w.Code != http.StatusOK {
			t.Fatalf("add-money = %d: %s", w.Code, w.Body.String())
		}
	}
	var goal struct {
		CurrentAmount float64 `json:"current_amount"`
	}
	decode(t, w, &goal)
	if goal.CurrentAmount != 20 {
		t.Errorf("current_amount = %v, want 20", goal.CurrentAmount)
	}

	w = doJSON(t, s, http.MethodPatch, fmt.Sprintf("/api/goals/%d/add-money", created.ID),
		map[string]any{"user_id": "user-1", "amount": -5})
	if w.Code != http.StatusBadRequest {
		t.Errorf("negative deposit = %d, want 400", w.Code)
	}
}

func TestSyncUploadEndpoint(t *testing.T) {
	s := newTestServer(t)

	// Seed a budget so one uploaded record collides.
	if w := doJSON(t, s, http.MethodPost, "/api/budgets", map[string]any{
		"user_id": "user-1", "category": "food", "amount": 300,
	}); w.Code != http.StatusCreated {
		t.Fatalf("seed budget = %d", w.Code)
	}

	w := doJSON(t, s, http.MethodPost, "/api/sync/upload", map[string]any{
		"user_id": "user-1",
		"transactions": []map[string]any{
			{"title": "Offline coffee", "amount": -4, "category": "food"},
		},
		"budgets": []map[string]any{
			{"category": "food", "amount": 999},
		},
		"goals": []map[string]any{
			{"title": "Offline goal", "target_amount": 100},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("upload = %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		RecordsSynced     int `json:"recordsSynced"`
		ConflictsResolved int `json:"conflictsResolved"`
	}
	decode(t, w, &resp)
	if resp.RecordsSynced != 2 || resp.ConflictsResolved != 1 {
		t.Errorf("counters = %+v, want 2 synced / 1 conflict", resp)
	}
}

func TestReportsEndpointsEmptyData(t *testing.T) {
	s := newTestServer(t)

	paths := []string{
		"/api/transactions/summary/nobody",
		"/api/budgets/summary/nobody",
		"/api/budgets/progress/nobody",
		"/api/reports/summary/nobody",
		"/api/reports/monthly-expenditure/nobody",
		"/api/reports/budget-adherence/nobody",
		"/api/reports/savings-progress/nobody",
		"/api/reports/category-distribution/nobody",
		"/api/reports/savings-forecast/nobody",
	}
	for _, path := range paths {
		if w := doJSON(t, s, http.MethodGet, path, nil); w.Code != http.StatusOK {
			t.Errorf("%s = %d, want 200: %s", path, w.Code, w.Body.String())
		}
	}
}

func TestCategoryDistributionBadWindow(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodGet, "/api/reports/category-distribution/user-1?startDate=2025-06-01&endDate=2025-05-01", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("inverted window = %d, want 400", w.Code)
	}
	w = doJSON(t, s, http.MethodGet, "/api/reports/category-distribution/user-1?startDate=junk", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad date = %d, want 400", w.Code)
	}
}

func TestInvalidIDPath(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodDelete, "/api/budgets/abc", map[string]any{"user_id": "u"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("non-numeric id = %d, want 400", w.Code)
	}
}

func TestRateLimitReturns429(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	limiter := ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: 2, CleanupInterval: time.Minute})
	t.Cleanup(limiter.Stop)

	s := NewServer(":0", Deps{
		Store:        store,
		Transactions: services.NewTransactionService(store),
		Budgets:      services.NewBudgetService(store),
		Goals:        services.NewGoalService(store),
		Reports:      services.NewReportsService(store),
		Sync:         services.NewSyncService(store, nil),
		Limiter:      limiter,
	})

	for i := 0; i < 2; i++ {
		if w := doJSON(t, s, http.MethodGet, "/api/transactions/user-1", nil); w.Code != http.StatusOK {
			t.Fatalf("request %d = %d, want 200", i+1, w.Code)
		}
	}
	w := doJSON(t, s, http.MethodGet, "/api/transactions/user-1", nil)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("over-limit request = %d, want 429", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("429 should carry Retry-After")
	}

	// Health stays outside the limited group.
	if w := doJSON(t, s, http.MethodGet, "/healthz", nil); w.Code != http.StatusOK {
		t.Errorf("healthz under rate limit = %d, want 200", w.Code)
	}
}

func TestRequestIDHeaderEchoed(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "fixed-id")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if got := w.Header().Get(requestIDHeader); got != "fixed-id" {
		t.Errorf("request id = %q, want fixed-id", got)
	}

	w2 := doJSON(t, s, http.MethodGet, "/healthz", nil)
	if w2.Header().Get(requestIDHeader) == "" {
		t.Error("server should generate a request id when absent")
	}
}
