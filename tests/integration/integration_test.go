package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/odlemon/khaya-portal-sub000/internal/chat"
	"github.com/odlemon/khaya-portal-sub000/internal/client"
	"github.com/odlemon/khaya-portal-sub000/internal/domain"
	"github.com/odlemon/khaya-portal-sub000/internal/handler"
	"github.com/odlemon/khaya-portal-sub000/internal/infra/backend"
	"github.com/odlemon/khaya-portal-sub000/internal/infra/cache"
	"github.com/odlemon/khaya-portal-sub000/internal/infra/observability"
	"github.com/odlemon/khaya-portal-sub000/internal/infra/resilience"
	"github.com/odlemon/khaya-portal-sub000/internal/service"
	"github.com/odlemon/khaya-portal-sub000/internal/session"
)

func envelope(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
}

func adminToken(t *testing.T) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	s, err := tok.SignedString([]byte("integration"))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// TestIntegration_FullFlow runs login, a filtered listing, a vendor
// assignment and the 304-cached earnings fetch against one mock
// upstream, through the real router.
func TestIntegration_FullFlow(t *testing.T) {
	token := adminToken(t)

	maintenanceStatus := "awaiting_vendor"
	var earningsHits atomic.Int32

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			envelope(w, map[string]any{
				"token": token,
				"user":  map[string]any{"_id": "admin-1", "email": "admin@khaya.test", "role": "admin"},
			})
		case "/agreements/admin/all":
			if got := r.Header.Get("Authorization"); got != "Bearer "+token {
				t.Errorf("agreements call Authorization = %q", got)
			}
			envelope(w, []map[string]any{
				{"_id": "ag-1", "title": "Smith lease", "rentAmount": 9000},
				{"_id": "ag-2", "title": "Jones lease", "rentAmount": 7000},
			})
		case "/maintenance/admin/all":
			envelope(w, []map[string]any{
				{"_id": "mr-1", "title": "burst pipe", "status": maintenanceStatus},
			})
		case "/maintenance/admin/requests/mr-1/assign-vendor":
			maintenanceStatus = "vendor_assigned"
			envelope(w, nil)
		case "/payments/admin/earnings":
			earningsHits.Add(1)
			if r.Header.Get("If-None-Match") == `"e1"` {
				w.WriteHeader(http.StatusNotModified)
				return
			}
			w.Header().Set("ETag", `"e1"`)
			envelope(w, map[string]any{"totalEarnings": 16000.0, "payments": []any{}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer upstream.Close()

	// --- Build the stack ---
	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	httpClient := upstream.Client()

	store, err := session.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	authClient := client.NewAuthClient(nil, httpClient, upstream.URL, logger)
	provider := session.NewProvider(store, authClient, nil, metrics, logger)
	api := backend.NewClient(
		httpClient,
		upstream.URL,
		provider,
		resilience.NewCircuitBreaker("integration"),
		resilience.Config{MaxRetries: 0, InitialBackoff: time.Millisecond},
		metrics,
		logger,
	)
	authClient.SetBackend(api)
	provider.Initialize(context.Background(), "")

	paymentsAPI := client.NewPaymentsClient(api, logger)
	escrowAPI := client.NewEscrowClient(api, logger)
	svcs := handler.Services{
		Session:         provider,
		Auth:            authClient,
		Agreements:      service.NewAgreementsService(client.NewAgreementsClient(api, logger), metrics, logger, 10),
		Payments:        service.NewPaymentsService(paymentsAPI, metrics, logger, 10),
		Earnings:        service.NewEarningsService(client.NewEarningsClient(api, logger), cache.New[*domain.EarningsReport](time.Minute), metrics, logger, 2, time.Millisecond),
		Properties:      service.NewPropertiesService(client.NewPropertiesClient(api, logger), metrics, logger, 10),
		Maintenance:     service.NewMaintenanceService(client.NewMaintenanceClient(api, logger), metrics, logger, 10),
		Vendors:         service.NewVendorsService(client.NewVendorsClient(api, logger), metrics, logger, 10),
		Escrow:          service.NewEscrowService(escrowAPI, metrics, logger),
		PaymentRequests: service.NewPaymentRequestsService(client.NewPaymentRequestsClient(api, logger), metrics, logger),
		Dashboard:       service.NewDashboardService(client.NewDashboardClient(api), paymentsAPI, escrowAPI, cache.New[*domain.DashboardOverview](time.Minute), metrics, logger),
		Chat:            service.NewChatService(client.NewChatClient(api, logger), chat.NewSocket("ws://unused", logger), logger),
		Export:          service.NewExportService(metrics, logger),
	}
	router := handler.NewRouter(svcs, metrics, logger)

	// --- Anonymous session cannot reach the API ---
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/agreements", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous list: expected 401, got %d", rec.Code)
	}

	// --- Login ---
	body, _ := json.Marshal(domain.LoginRequest{Email: "admin@khaya.test", Password: "secret"})
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d. Body: %s", rec.Code, rec.Body.String())
	}

	// --- Filtered listing ---
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/agreements?query=smith", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d. Body: %s", rec.Code, rec.Body.String())
	}
	var listing struct {
		Items []domain.Agreement `json:"items"`
		Total int                `json:"total"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&listing); err != nil {
		t.Fatal(err)
	}
	if listing.Total != 1 || listing.Items[0].ID != "ag-1" {
		t.Errorf("listing = %+v", listing)
	}

	// --- Vendor assignment moves the workflow forward ---
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/maintenance", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("maintenance list: %d", rec.Code)
	}

	assignBody, _ := json.Marshal(domain.AssignVendorInput{
		VendorID:         "v-1",
		EstimatedArrival: time.Now().Add(3 * time.Hour),
	})
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/v1/maintenance/mr-1/assign-vendor", bytes.NewReader(assignBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("assign: expected 200, got %d. Body: %s", rec.Code, rec.Body.String())
	}
	var updated domain.MaintenanceRequest
	if err := json.NewDecoder(rec.Body).Decode(&updated); err != nil {
		t.Fatal(err)
	}
	if updated.Status != "vendor_assigned" {
		t.Errorf("status after assign = %q", updated.Status)
	}

	// --- Earnings: second fetch is served from the held payload ---
	for i := 0; i < 2; i++ {
		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/earnings", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("earnings fetch %d: %d. Body: %s", i+1, rec.Code, rec.Body.String())
		}
		var report domain.EarningsReport
		if err := json.NewDecoder(rec.Body).Decode(&report); err != nil {
			t.Fatal(err)
		}
		if report.TotalEarnings != 16000 {
			t.Errorf("fetch %d: total = %v", i+1, report.TotalEarnings)
		}
	}
	if got := earningsHits.Load(); got != 2 {
		t.Errorf("upstream earnings hits = %d, want 2 (fresh then 304)", got)
	}

	// --- Logout closes the door again ---
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("logout: %d", rec.Code)
	}
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/agreements", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("post-logout list: expected 401, got %d", rec.Code)
	}
}
