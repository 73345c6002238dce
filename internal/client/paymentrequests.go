package client

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/odlemon/khaya-portal-sub000/internal/domain"
	"github.com/odlemon/khaya-portal-sub000/internal/infra/backend"
)

// PaymentRequestsClient wraps the payout-request moderation endpoints.
type PaymentRequestsClient struct {
	backend *backend.Client
	logger  *zap.Logger
}

func NewPaymentRequestsClient(b *backend.Client, logger *zap.Logger) *PaymentRequestsClient {
	return &PaymentRequestsClient{backend: b, logger: logger}
}

func (c *PaymentRequestsClient) PendingPaymentRequests(ctx context.Context) ([]domain.PaymentRequest, error) {
	ctx, span := tracer.Start(ctx, "PaymentRequestsClient.PendingPaymentRequests")
	defer span.End()

	var requests []domain.PaymentRequest
	if err := c.backend.Get(ctx, "/payment-requests/pending", &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (c *PaymentRequestsClient) ApprovePaymentRequest(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "PaymentRequestsClient.ApprovePaymentRequest")
	defer span.End()

	if err := c.backend.Post(ctx, fmt.Sprintf("/payment-requests/%s/approve", id), nil, nil); err != nil {
		c.logger.Warn("payment request approval failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (c *PaymentRequestsClient) RejectPaymentRequest(ctx context.Context, id, reason string) error {
	ctx, span := tracer.Start(ctx, "PaymentRequestsClient.RejectPaymentRequest")
	defer span.End()

	body := map[string]string{"reason": reason}
	if err := c.backend.Post(ctx, fmt.Sprintf("/payment-requests/%s/reject", id), body, nil); err != nil {
		c.logger.Warn("payment request rejection failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}
