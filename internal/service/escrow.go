package service

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/odlemon/khaya-portal-sub000/internal/domain"
	"github.com/odlemon/khaya-portal-sub000/internal/infra/observability"
	"github.com/odlemon/khaya-portal-sub000/internal/port"
)

var escrowTracer = otel.Tracer("service/escrow")

// EscrowService exposes the escrow summaries and the manual payout
// trigger. Each manual distribution carries a fresh idempotency key so
// a retried submission cannot double-pay.
type EscrowService struct {
	api     port.EscrowAPI
	metrics *observability.Metrics
	logger  *zap.Logger
	newKey  func() string
}

func NewEscrowService(api port.EscrowAPI, metrics *observability.Metrics, logger *zap.Logger) *EscrowService {
	return &EscrowService{api: api, metrics: metrics, logger: logger, newKey: uuid.NewString}
}

func (s *EscrowService) Summary(ctx context.Context) (*domain.EscrowSummary, error) {
	ctx, span := escrowTracer.Start(ctx, "EscrowService.Summary")
	defer span.End()
	return s.api.EscrowSummary(ctx)
}

// Distribute releases one held escrow transaction to its landlord.
func (s *EscrowService) Distribute(ctx context.Context, escrowID string) (*domain.DistributionResult, error) {
	ctx, span := escrowTracer.Start(ctx, "EscrowService.Distribute")
	defer span.End()
	span.SetAttributes(attribute.String("escrow.id", escrowID))

	if escrowID == "" {
		return nil, &domain.ErrValidation{Field: "escrowId", Message: "escrow id is required"}
	}
	result, err := s.api.Distribute(ctx, escrowID)
	if err != nil {
		s.logger.Warn("escrow distribution failed",
			zap.String("escrow_id", escrowID), zap.Error(err))
		return nil, err
	}
	s.logger.Info("escrow distributed", zap.String("escrow_id", escrowID))
	return result, nil
}

func (s *EscrowService) PendingDistributions(ctx context.Context) ([]domain.PendingDistribution, error) {
	ctx, span := escrowTracer.Start(ctx, "EscrowService.PendingDistributions")
	defer span.End()
	return s.api.PendingDistributions(ctx)
}

func (s *EscrowService) DistributionSummary(ctx context.Context) (*domain.DistributionSummary, error) {
	ctx, span := escrowTracer.Start(ctx, "EscrowService.DistributionSummary")
	defer span.End()
	return s.api.DistributionSummary(ctx)
}

func (s *EscrowService) DistributeManual(ctx context.Context, escrowIDs []string) (*domain.DistributionResult, error) {
	ctx, span := escrowTracer.Start(ctx, "EscrowService.DistributeManual")
	defer span.End()
	span.SetAttributes(attribute.Int("escrow.count", len(escrowIDs)))

	if len(escrowIDs) == 0 {
		return nil, &domain.ErrValidation{Field: "escrowIds", Message: "at least one escrow must be selected"}
	}
	req := &domain.ManualDistributionRequest{
		IdempotencyKey: s.newKey(),
		EscrowIDs:      escrowIDs,
	}
	result, err := s.api.DistributeManual(ctx, req)
	if err != nil {
		s.logger.Warn("manual distribution failed",
			zap.Int("escrow_count", len(escrowIDs)), zap.Error(err))
		return nil, err
	}
	s.logger.Info("manual distribution completed",
		zap.String("batch_id", result.BatchID),
		zap.Int("distributed", result.DistributedCount))
	return result, nil
}
