package service_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/odlemon/khaya-portal-sub000/internal/domain"
	"github.com/odlemon/khaya-portal-sub000/internal/infra/observability"
	"github.com/odlemon/khaya-portal-sub000/internal/service"
)

type mockEscrowAPI struct {
	lastRequest  *domain.ManualDistributionRequest
	lastEscrowID string
	result       *domain.DistributionResult
}

func (m *mockEscrowAPI) EscrowSummary(_ context.Context) (*domain.EscrowSummary, error) {
	return &domain.EscrowSummary{}, nil
}

func (m *mockEscrowAPI) PendingDistributions(_ context.Context) ([]domain.PendingDistribution, error) {
	return nil, nil
}

func (m *mockEscrowAPI) DistributionSummary(_ context.Context) (*domain.DistributionSummary, error) {
	return &domain.DistributionSummary{}, nil
}

func (m *mockEscrowAPI) Distribute(_ context.Context, escrowID string) (*domain.DistributionResult, error) {
	m.lastEscrowID = escrowID
	return m.result, nil
}

func (m *mockEscrowAPI) DistributeManual(_ context.Context, req *domain.ManualDistributionRequest) (*domain.DistributionResult, error) {
	m.lastRequest = req
	return m.result, nil
}

func TestDistributeManualCarriesIdempotencyKey(t *testing.T) {
	api := &mockEscrowAPI{result: &domain.DistributionResult{BatchID: "batch-1", DistributedCount: 2}}
	svc := service.NewEscrowService(api, observability.NewMetrics(), zap.NewNop())

	result, err := svc.DistributeManual(context.Background(), []string{"esc-1", "esc-2"})
	if err != nil {
		t.Fatalf("distribute: %v", err)
	}
	if result.BatchID != "batch-1" {
		t.Errorf("batch = %q", result.BatchID)
	}
	if api.lastRequest == nil || api.lastRequest.IdempotencyKey == "" {
		t.Fatal("request missing idempotency key")
	}
	if len(api.lastRequest.EscrowIDs) != 2 {
		t.Errorf("escrow ids = %v", api.lastRequest.EscrowIDs)
	}
}

func TestDistributeSingleEscrow(t *testing.T) {
	api := &mockEscrowAPI{result: &domain.DistributionResult{BatchID: "batch-7", DistributedCount: 1}}
	svc := service.NewEscrowService(api, observability.NewMetrics(), zap.NewNop())

	result, err := svc.Distribute(context.Background(), "esc-9")
	if err != nil {
		t.Fatalf("distribute: %v", err)
	}
	if api.lastEscrowID != "esc-9" {
		t.Errorf("escrow id = %q", api.lastEscrowID)
	}
	if result.DistributedCount != 1 {
		t.Errorf("distributed = %d", result.DistributedCount)
	}
}

func TestDistributeRequiresEscrowID(t *testing.T) {
	svc := service.NewEscrowService(&mockEscrowAPI{}, observability.NewMetrics(), zap.NewNop())

	_, err := svc.Distribute(context.Background(), "")
	var validation *domain.ErrValidation
	if !errors.As(err, &validation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDistributeManualRequiresSelection(t *testing.T) {
	svc := service.NewEscrowService(&mockEscrowAPI{}, observability.NewMetrics(), zap.NewNop())

	_, err := svc.DistributeManual(context.Background(), nil)
	var validation *domain.ErrValidation
	if !errors.As(err, &validation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
