package client

import (
	"context"

	"go.uber.org/zap"

	"github.com/odlemon/khaya-portal-sub000/internal/domain"
	"github.com/odlemon/khaya-portal-sub000/internal/infra/backend"
)

// AgreementsClient wraps the agreement endpoints.
type AgreementsClient struct {
	backend *backend.Client
	logger  *zap.Logger
}

func NewAgreementsClient(b *backend.Client, logger *zap.Logger) *AgreementsClient {
	return &AgreementsClient{backend: b, logger: logger}
}

// ListAgreements fetches every agreement for the admin list.
func (c *AgreementsClient) ListAgreements(ctx context.Context) ([]domain.Agreement, error) {
	ctx, span := tracer.Start(ctx, "AgreementsClient.ListAgreements")
	defer span.End()

	var agreements []domain.Agreement
	if err := c.backend.Get(ctx, "/agreements/admin/all", &agreements); err != nil {
		return nil, err
	}
	return agreements, nil
}

// CreateAgreement creates an agreement. Validation happens before this
// call; failures here propagate to the caller.
func (c *AgreementsClient) CreateAgreement(ctx context.Context, in *domain.CreateAgreementInput) (*domain.Agreement, error) {
	ctx, span := tracer.Start(ctx, "AgreementsClient.CreateAgreement")
	defer span.End()

	var created domain.Agreement
	if err := c.backend.Post(ctx, "/agreements", in, &created); err != nil {
		c.logger.Warn("agreements: create failed", zap.Error(err))
		return nil, err
	}
	return &created, nil
}
