package client

import (
	"context"

	"go.uber.org/zap"

	"github.com/odlemon/khaya-portal-sub000/internal/domain"
	"github.com/odlemon/khaya-portal-sub000/internal/infra/backend"
)

// EscrowClient wraps the escrow and distribution endpoints.
type EscrowClient struct {
	backend *backend.Client
	logger  *zap.Logger
}

func NewEscrowClient(b *backend.Client, logger *zap.Logger) *EscrowClient {
	return &EscrowClient{backend: b, logger: logger}
}

func (c *EscrowClient) EscrowSummary(ctx context.Context) (*domain.EscrowSummary, error) {
	ctx, span := tracer.Start(ctx, "EscrowClient.EscrowSummary")
	defer span.End()

	var summary domain.EscrowSummary
	if err := c.backend.Get(ctx, "/escrow/summary", &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// Distribute releases a single held escrow. Batch payouts go through
// DistributeManual.
func (c *EscrowClient) Distribute(ctx context.Context, escrowID string) (*domain.DistributionResult, error) {
	ctx, span := tracer.Start(ctx, "EscrowClient.Distribute")
	defer span.End()

	var result domain.DistributionResult
	req := &domain.EscrowDistributeRequest{EscrowID: escrowID}
	if err := c.backend.Post(ctx, "/escrow/distribute", req, &result); err != nil {
		c.logger.Warn("escrow: distribution failed",
			zap.String("escrow_id", escrowID), zap.Error(err))
		return nil, err
	}
	return &result, nil
}

func (c *EscrowClient) PendingDistributions(ctx context.Context) ([]domain.PendingDistribution, error) {
	ctx, span := tracer.Start(ctx, "EscrowClient.PendingDistributions")
	defer span.End()

	var pending []domain.PendingDistribution
	if err := c.backend.Get(ctx, "/distribution/pending", &pending); err != nil {
		return nil, err
	}
	return pending, nil
}

func (c *EscrowClient) DistributionSummary(ctx context.Context) (*domain.DistributionSummary, error) {
	ctx, span := tracer.Start(ctx, "EscrowClient.DistributionSummary")
	defer span.End()

	var summary domain.DistributionSummary
	if err := c.backend.Get(ctx, "/distribution/summary", &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// DistributeManual triggers a payout batch. The split arithmetic lives in
// the backend; this only carries the escrow selection across.
func (c *EscrowClient) DistributeManual(ctx context.Context, req *domain.ManualDistributionRequest) (*domain.DistributionResult, error) {
	ctx, span := tracer.Start(ctx, "EscrowClient.DistributeManual")
	defer span.End()

	var result domain.DistributionResult
	if err := c.backend.Post(ctx, "/distribution/manual", req, &result); err != nil {
		c.logger.Warn("escrow: manual distribution failed", zap.Error(err))
		return nil, err
	}
	return &result, nil
}
