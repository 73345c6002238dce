package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/odlemon/khaya-portal-sub000/internal/domain"
	"github.com/odlemon/khaya-portal-sub000/internal/infra/observability"
	"github.com/odlemon/khaya-portal-sub000/internal/service"
)

type mockMaintenanceAPI struct {
	requests    []domain.MaintenanceRequest
	listErr     error
	assignErr   error
	assignCalls int
	etaCalls    int
	arrivedErr  error

	// afterWrite, when set, replaces the request list before the
	// post-action refetch runs.
	afterWrite []domain.MaintenanceRequest
}

func (m *mockMaintenanceAPI) ListMaintenanceRequests(_ context.Context) ([]domain.MaintenanceRequest, error) {
	return m.requests, m.listErr
}

func (m *mockMaintenanceAPI) AssignVendor(_ context.Context, _ string, _ *domain.AssignVendorInput) error {
	m.assignCalls++
	if m.assignErr == nil && m.afterWrite != nil {
		m.requests = m.afterWrite
	}
	return m.assignErr
}

func (m *mockMaintenanceAPI) UpdateETA(_ context.Context, _, _ string) error {
	m.etaCalls++
	if m.afterWrite != nil {
		m.requests = m.afterWrite
	}
	return nil
}

func (m *mockMaintenanceAPI) MarkArrived(_ context.Context, _ string) error {
	if m.arrivedErr == nil && m.afterWrite != nil {
		m.requests = m.afterWrite
	}
	return m.arrivedErr
}

func newMaintenanceService(t *testing.T, api *mockMaintenanceAPI) *service.MaintenanceService {
	t.Helper()
	svc := service.NewMaintenanceService(api, observability.NewMetrics(), zap.NewNop(), 10)
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	return svc
}

func request(id, status string) domain.MaintenanceRequest {
	return domain.MaintenanceRequest{ID: id, Title: "leaking geyser", Status: status}
}

func TestAvailableActions(t *testing.T) {
	cases := []struct {
		status string
		want   []string
	}{
		{domain.MaintenancePending, nil},
		{domain.MaintenanceApproved, nil},
		{domain.MaintenanceRejected, nil},
		{domain.MaintenanceAwaitingVendor, []string{service.ActionAssignVendor}},
		{domain.MaintenanceVendorAssigned, []string{service.ActionUpdateETA, service.ActionMarkArrived}},
		{domain.MaintenanceInProgress, []string{service.ActionUpdateETA}},
		{domain.MaintenanceCompleted, nil},
		{domain.MaintenanceCancelled, nil},
	}
	for _, tc := range cases {
		got := service.AvailableActions(tc.status)
		if len(got) != len(tc.want) {
			t.Errorf("%s: got %v, want %v", tc.status, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("%s: got %v, want %v", tc.status, got, tc.want)
			}
		}
	}
}

func TestAssignVendorHappyPath(t *testing.T) {
	api := &mockMaintenanceAPI{
		requests:   []domain.MaintenanceRequest{request("mr-1", domain.MaintenanceAwaitingVendor)},
		afterWrite: []domain.MaintenanceRequest{request("mr-1", domain.MaintenanceVendorAssigned)},
	}
	svc := newMaintenanceService(t, api)

	updated, err := svc.AssignVendor(context.Background(), "mr-1", &domain.AssignVendorInput{
		VendorID:         "v-1",
		EstimatedArrival: time.Now().Add(2 * time.Hour),
	})
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	// The returned status comes from the refetched list, not a local guess.
	if updated.Status != domain.MaintenanceVendorAssigned {
		t.Errorf("status after assign = %q", updated.Status)
	}
	if api.assignCalls != 1 {
		t.Errorf("assign called %d times", api.assignCalls)
	}
}

func TestAssignVendorWrongStatus(t *testing.T) {
	api := &mockMaintenanceAPI{
		requests: []domain.MaintenanceRequest{request("mr-1", domain.MaintenancePending)},
	}
	svc := newMaintenanceService(t, api)

	_, err := svc.AssignVendor(context.Background(), "mr-1", &domain.AssignVendorInput{
		VendorID:         "v-1",
		EstimatedArrival: time.Now().Add(time.Hour),
	})
	var notAllowed *domain.ErrActionNotAllowed
	if !errors.As(err, &notAllowed) {
		t.Fatalf("expected ErrActionNotAllowed, got %v", err)
	}
	if api.assignCalls != 0 {
		t.Error("backend called despite gating")
	}
}

func TestAssignVendorValidation(t *testing.T) {
	api := &mockMaintenanceAPI{
		requests: []domain.MaintenanceRequest{request("mr-1", domain.MaintenanceAwaitingVendor)},
	}
	svc := newMaintenanceService(t, api)

	_, err := svc.AssignVendor(context.Background(), "mr-1", &domain.AssignVendorInput{
		EstimatedArrival: time.Now().Add(time.Hour),
	})
	var validation *domain.ErrValidation
	if !errors.As(err, &validation) || validation.Field != "vendorId" {
		t.Fatalf("expected vendorId validation error, got %v", err)
	}

	_, err = svc.AssignVendor(context.Background(), "mr-1", &domain.AssignVendorInput{
		VendorID:         "v-1",
		EstimatedArrival: time.Now().Add(-time.Minute),
	})
	if !errors.As(err, &validation) || validation.Field != "estimatedArrival" {
		t.Fatalf("expected estimatedArrival validation error, got %v", err)
	}
	if api.assignCalls != 0 {
		t.Error("backend called despite invalid input")
	}
}

func TestUpdateETAGating(t *testing.T) {
	for _, status := range []string{domain.MaintenanceCompleted, domain.MaintenanceCancelled} {
		api := &mockMaintenanceAPI{
			requests: []domain.MaintenanceRequest{request("mr-1", status)},
		}
		svc := newMaintenanceService(t, api)

		_, err := svc.UpdateETA(context.Background(), "mr-1", "on our way")
		var notAllowed *domain.ErrActionNotAllowed
		if !errors.As(err, &notAllowed) {
			t.Errorf("%s: expected ErrActionNotAllowed, got %v", status, err)
		}
		if api.etaCalls != 0 {
			t.Errorf("%s: backend called despite gating", status)
		}
	}
}

func TestMarkArrivedOnlyWhenVendorAssigned(t *testing.T) {
	api := &mockMaintenanceAPI{
		requests:   []domain.MaintenanceRequest{request("mr-1", domain.MaintenanceVendorAssigned)},
		afterWrite: []domain.MaintenanceRequest{request("mr-1", domain.MaintenanceInProgress)},
	}
	svc := newMaintenanceService(t, api)

	updated, err := svc.MarkArrived(context.Background(), "mr-1")
	if err != nil {
		t.Fatalf("mark arrived: %v", err)
	}
	if updated.Status != domain.MaintenanceInProgress {
		t.Errorf("status = %q", updated.Status)
	}

	_, err = svc.MarkArrived(context.Background(), "mr-1")
	var notAllowed *domain.ErrActionNotAllowed
	if !errors.As(err, &notAllowed) {
		t.Fatalf("expected ErrActionNotAllowed after status moved on, got %v", err)
	}
}

func TestAssignVendorUnknownRequest(t *testing.T) {
	svc := newMaintenanceService(t, &mockMaintenanceAPI{})

	_, err := svc.AssignVendor(context.Background(), "missing", &domain.AssignVendorInput{
		VendorID:         "v-1",
		EstimatedArrival: time.Now().Add(time.Hour),
	})
	var notFound *domain.ErrNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAssignVendorWriteFailurePropagates(t *testing.T) {
	boom := &domain.ErrUpstream{Status: 500, Message: "backend down"}
	api := &mockMaintenanceAPI{
		requests:  []domain.MaintenanceRequest{request("mr-1", domain.MaintenanceAwaitingVendor)},
		assignErr: boom,
	}
	svc := newMaintenanceService(t, api)

	_, err := svc.AssignVendor(context.Background(), "mr-1", &domain.AssignVendorInput{
		VendorID:         "v-1",
		EstimatedArrival: time.Now().Add(time.Hour),
	})
	var upstream *domain.ErrUpstream
	if !errors.As(err, &upstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}
