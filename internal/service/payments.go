package service

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/odlemon/khaya-portal-sub000/internal/collection"
	"github.com/odlemon/khaya-portal-sub000/internal/domain"
	"github.com/odlemon/khaya-portal-sub000/internal/infra/observability"
	"github.com/odlemon/khaya-portal-sub000/internal/port"
)

var paymentsTracer = otel.Tracer("service/payments")

// PaymentsService backs the payment and transaction listings.
type PaymentsService struct {
	api          port.PaymentsAPI
	payments     *collection.Collection[domain.Payment]
	transactions *collection.Collection[domain.Transaction]
	metrics      *observability.Metrics
	logger       *zap.Logger
}

func NewPaymentsService(api port.PaymentsAPI, metrics *observability.Metrics, logger *zap.Logger, pageSize int) *PaymentsService {
	s := &PaymentsService{api: api, metrics: metrics, logger: logger}
	s.payments = collection.New(
		api.ListPayments,
		paymentSearchFields,
		func(p domain.Payment) string { return p.ID },
		pageSize,
	)
	s.transactions = collection.New(
		api.ListTransactions,
		transactionSearchFields,
		func(t domain.Transaction) string { return t.ID },
		pageSize,
	)
	return s
}

func paymentSearchFields(p domain.Payment) []string {
	return []string{
		p.TenantID.FirstName,
		p.TenantID.LastName,
		p.TenantID.Email,
		p.PropertyID.Title,
		p.Status,
		p.PaymentMethod,
	}
}

func transactionSearchFields(t domain.Transaction) []string {
	return []string{t.Reference, t.Type, t.Status}
}

func (s *PaymentsService) Payments() *collection.Collection[domain.Payment] {
	return s.payments
}

func (s *PaymentsService) Transactions() *collection.Collection[domain.Transaction] {
	return s.transactions
}

func (s *PaymentsService) RefreshPayments(ctx context.Context) error {
	ctx, span := paymentsTracer.Start(ctx, "PaymentsService.RefreshPayments")
	defer span.End()
	return s.payments.Load(ctx)
}

func (s *PaymentsService) RefreshTransactions(ctx context.Context) error {
	ctx, span := paymentsTracer.Start(ctx, "PaymentsService.RefreshTransactions")
	defer span.End()
	return s.transactions.Load(ctx)
}

func (s *PaymentsService) TransactionSummary(ctx context.Context) (*domain.TransactionSummary, error) {
	ctx, span := paymentsTracer.Start(ctx, "PaymentsService.TransactionSummary")
	defer span.End()
	return s.api.TransactionSummary(ctx)
}
