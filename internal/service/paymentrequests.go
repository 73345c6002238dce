package service

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/odlemon/khaya-portal-sub000/internal/domain"
	"github.com/odlemon/khaya-portal-sub000/internal/infra/observability"
	"github.com/odlemon/khaya-portal-sub000/internal/port"
)

var payoutTracer = otel.Tracer("service/paymentrequests")

// PaymentRequestsService moderates landlord payout requests. Approve
// and reject both refetch the pending list so the moderated request
// drops out of it.
type PaymentRequestsService struct {
	api     port.PaymentRequestsAPI
	metrics *observability.Metrics
	logger  *zap.Logger
}

func NewPaymentRequestsService(api port.PaymentRequestsAPI, metrics *observability.Metrics, logger *zap.Logger) *PaymentRequestsService {
	return &PaymentRequestsService{api: api, metrics: metrics, logger: logger}
}

func (s *PaymentRequestsService) Pending(ctx context.Context) ([]domain.PaymentRequest, error) {
	ctx, span := payoutTracer.Start(ctx, "PaymentRequestsService.Pending")
	defer span.End()
	return s.api.PendingPaymentRequests(ctx)
}

func (s *PaymentRequestsService) Approve(ctx context.Context, id string) ([]domain.PaymentRequest, error) {
	ctx, span := payoutTracer.Start(ctx, "PaymentRequestsService.Approve")
	defer span.End()
	span.SetAttributes(attribute.String("request.id", id))

	if err := s.api.ApprovePaymentRequest(ctx, id); err != nil {
		return nil, err
	}
	s.metrics.IncrRefetch("payment_requests")
	return s.api.PendingPaymentRequests(ctx)
}

func (s *PaymentRequestsService) Reject(ctx context.Context, id, reason string) ([]domain.PaymentRequest, error) {
	ctx, span := payoutTracer.Start(ctx, "PaymentRequestsService.Reject")
	defer span.End()
	span.SetAttributes(attribute.String("request.id", id))

	if reason == "" {
		return nil, &domain.ErrValidation{Field: "reason", Message: "a rejection reason is required"}
	}
	if err := s.api.RejectPaymentRequest(ctx, id, reason); err != nil {
		return nil, err
	}
	s.metrics.IncrRefetch("payment_requests")
	return s.api.PendingPaymentRequests(ctx)
}
